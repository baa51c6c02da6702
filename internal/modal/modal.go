// Package modal implements the dialog flow used by interactive
// storefront surfaces as an explicit state machine: closed ->
// open(pending) -> closed. Each Show hands back a Pending whose result
// channel resolves exactly once, when the user confirms, cancels, or
// dismisses the dialog. A Show that arrives while another dialog is
// open is queued and presented in FIFO order once the current one
// resolves.
package modal

import (
	"sync"

	"go.uber.org/zap"
)

type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

type Kind string

const (
	KindConfirm Kind = "confirm"
	KindAlert   Kind = "alert"
	KindPrompt  Kind = "prompt"
)

type Variant string

const (
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantDanger  Variant = "danger"
)

type Options struct {
	Kind         Kind
	Variant      Variant
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	// Prompt-only fields.
	Placeholder  string
	DefaultValue string
}

// Result is what a dialog resolves with. Confirmed is false on cancel,
// escape and backdrop dismissal. Input carries the typed value for
// prompt dialogs.
type Result struct {
	Confirmed bool
	Input     string
}

// Pending is one in-flight dialog request. Result never blocks the
// resolver: the channel is buffered and closed after the single send.
type Pending struct {
	opts   Options
	result chan Result
	once   sync.Once
}

func newPending(opts Options) *Pending {
	return &Pending{opts: opts, result: make(chan Result, 1)}
}

func (p *Pending) Options() Options { return p.opts }

// Result resolves once with the outcome of the dialog. The channel is
// closed after the value is delivered, so a second receive yields the
// zero Result.
func (p *Pending) Result() <-chan Result { return p.result }

func (p *Pending) resolve(r Result) {
	p.once.Do(func() {
		p.result <- r
		close(p.result)
	})
}

// Controller owns the single dialog slot and the FIFO queue behind it.
type Controller struct {
	mu      sync.Mutex
	current *Pending
	queue   []*Pending
	logger  *zap.Logger
}

func NewController(logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{logger: logger}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		return StateOpen
	}
	return StateClosed
}

// Current returns the options of the open dialog, if any.
func (c *Controller) Current() (Options, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Options{}, false
	}
	return c.current.opts, true
}

// QueueLen reports how many requests are waiting behind the open dialog.
func (c *Controller) QueueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Show opens the dialog, or queues it when one is already open. The
// returned Pending resolves when this particular request is acted on.
func (c *Controller) Show(opts Options) *Pending {
	if opts.Kind == "" {
		opts.Kind = KindConfirm
	}
	if opts.Variant == "" {
		opts.Variant = VariantInfo
	}
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = "OK"
	}
	if opts.CancelLabel == "" && opts.Kind != KindAlert {
		opts.CancelLabel = "Cancel"
	}

	p := newPending(opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		c.current = p
	} else {
		c.queue = append(c.queue, p)
		c.logger.Debug("modal queued", zap.Int("queue_len", len(c.queue)))
	}
	return p
}

// Confirm resolves the open dialog with true. For prompt dialogs the
// typed value is passed as input; an omitted input falls back to the
// prompt's default value.
func (c *Controller) Confirm(input ...string) bool {
	value := ""
	if len(input) > 0 {
		value = input[0]
	}
	return c.settle(func(p *Pending) {
		if value == "" && p.opts.Kind == KindPrompt {
			value = p.opts.DefaultValue
		}
		p.resolve(Result{Confirmed: true, Input: value})
	})
}

// Cancel resolves the open dialog with false.
func (c *Controller) Cancel() bool {
	return c.settle(func(p *Pending) {
		p.resolve(Result{Confirmed: false})
	})
}

// Escape handles the escape key. It is the cancel path.
func (c *Controller) Escape() bool { return c.Cancel() }

// Backdrop handles a click outside the dialog. It is the cancel path.
func (c *Controller) Backdrop() bool { return c.Cancel() }

// Close dismisses the open dialog without user input, resolving it
// with false, and presents the next queued request if there is one.
func (c *Controller) Close() bool { return c.Cancel() }

// settle resolves the current dialog and promotes the next queued one.
// Returns false when no dialog is open.
func (c *Controller) settle(fn func(*Pending)) bool {
	c.mu.Lock()
	p := c.current
	if p == nil {
		c.mu.Unlock()
		return false
	}
	if len(c.queue) > 0 {
		c.current = c.queue[0]
		c.queue = c.queue[1:]
	} else {
		c.current = nil
	}
	c.mu.Unlock()

	fn(p)
	return true
}

// ShowConfirm opens a yes/no confirmation dialog.
func (c *Controller) ShowConfirm(title, message string) *Pending {
	return c.Show(Options{
		Kind:         KindConfirm,
		Variant:      VariantInfo,
		Title:        title,
		Message:      message,
		ConfirmLabel: "Confirm",
	})
}

// ShowConfirmDelete opens a destructive confirmation for the named item.
func (c *Controller) ShowConfirmDelete(itemName string) *Pending {
	return c.Show(Options{
		Kind:         KindConfirm,
		Variant:      VariantDanger,
		Title:        "Delete " + itemName + "?",
		Message:      "This action cannot be undone.",
		ConfirmLabel: "Delete",
	})
}

// ShowAlert opens an acknowledge-only dialog.
func (c *Controller) ShowAlert(title, message string) *Pending {
	return c.Show(Options{
		Kind:    KindAlert,
		Variant: VariantInfo,
		Title:   title,
		Message: message,
	})
}

func (c *Controller) ShowSuccess(message string) *Pending {
	return c.Show(Options{Kind: KindAlert, Variant: VariantSuccess, Title: "Success", Message: message})
}

func (c *Controller) ShowError(message string) *Pending {
	return c.Show(Options{Kind: KindAlert, Variant: VariantError, Title: "Error", Message: message})
}

func (c *Controller) ShowWarning(message string) *Pending {
	return c.Show(Options{Kind: KindAlert, Variant: VariantWarning, Title: "Warning", Message: message})
}

// ShowPrompt opens a text-input dialog resolving with the typed value.
func (c *Controller) ShowPrompt(title, message, defaultValue string) *Pending {
	return c.Show(Options{
		Kind:         KindPrompt,
		Variant:      VariantInfo,
		Title:        title,
		Message:      message,
		DefaultValue: defaultValue,
		ConfirmLabel: "Submit",
	})
}
