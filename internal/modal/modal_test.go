package modal_test

import (
	"testing"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/modal"

	"github.com/stretchr/testify/assert"
)

func receive(t *testing.T, p *modal.Pending) modal.Result {
	t.Helper()
	select {
	case r := <-p.Result():
		return r
	case <-time.After(time.Second):
		t.Fatal("dialog did not resolve")
		return modal.Result{}
	}
}

func TestController_ConfirmResolvesTrue(t *testing.T) {
	c := modal.NewController(nil)
	assert.Equal(t, modal.StateClosed, c.State())

	p := c.ShowConfirm("Remove item", "Remove Hades II from your cart?")
	assert.Equal(t, modal.StateOpen, c.State())

	assert.True(t, c.Confirm())
	r := receive(t, p)
	assert.True(t, r.Confirmed)
	assert.Equal(t, modal.StateClosed, c.State())
}

func TestController_CancelResolvesFalse(t *testing.T) {
	c := modal.NewController(nil)
	p := c.ShowConfirm("Remove item", "Sure?")

	assert.True(t, c.Cancel())
	r := receive(t, p)
	assert.False(t, r.Confirmed)
}

func TestController_EscapeAndBackdropAreCancel(t *testing.T) {
	c := modal.NewController(nil)

	p := c.ShowConfirmDelete("category Action")
	assert.True(t, c.Escape())
	assert.False(t, receive(t, p).Confirmed)

	p = c.ShowConfirmDelete("category Action")
	assert.True(t, c.Backdrop())
	assert.False(t, receive(t, p).Confirmed)
}

func TestController_PromptResolvesWithInput(t *testing.T) {
	c := modal.NewController(nil)

	p := c.ShowPrompt("Coupon", "Enter a coupon code", "")
	assert.True(t, c.Confirm("SUMMER-10"))
	r := receive(t, p)
	assert.True(t, r.Confirmed)
	assert.Equal(t, "SUMMER-10", r.Input)

	p = c.ShowPrompt("Name", "Template name", "untitled")
	assert.True(t, c.Confirm())
	r = receive(t, p)
	assert.True(t, r.Confirmed)
	assert.Equal(t, "untitled", r.Input)
}

func TestController_SecondShowIsQueuedFIFO(t *testing.T) {
	c := modal.NewController(nil)

	first := c.ShowConfirm("First", "first dialog")
	second := c.ShowConfirm("Second", "second dialog")
	third := c.ShowAlert("Third", "third dialog")
	assert.Equal(t, 2, c.QueueLen())

	opts, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, "First", opts.Title)

	assert.True(t, c.Confirm())
	assert.True(t, receive(t, first).Confirmed)

	// The first resolution promotes the second request, not the third.
	opts, ok = c.Current()
	assert.True(t, ok)
	assert.Equal(t, "Second", opts.Title)

	assert.True(t, c.Cancel())
	assert.False(t, receive(t, second).Confirmed)

	opts, ok = c.Current()
	assert.True(t, ok)
	assert.Equal(t, "Third", opts.Title)

	assert.True(t, c.Confirm())
	assert.True(t, receive(t, third).Confirmed)
	assert.Equal(t, modal.StateClosed, c.State())
	assert.Equal(t, 0, c.QueueLen())
}

func TestController_ActionsOnClosedControllerReturnFalse(t *testing.T) {
	c := modal.NewController(nil)
	assert.False(t, c.Confirm())
	assert.False(t, c.Cancel())
	assert.False(t, c.Close())
}

func TestController_ShowDefaults(t *testing.T) {
	c := modal.NewController(nil)

	p := c.Show(modal.Options{Message: "bare"})
	opts := p.Options()
	assert.Equal(t, modal.KindConfirm, opts.Kind)
	assert.Equal(t, modal.VariantInfo, opts.Variant)
	assert.Equal(t, "OK", opts.ConfirmLabel)
	assert.Equal(t, "Cancel", opts.CancelLabel)
	c.Close()

	// Alerts have no cancel affordance.
	p = c.ShowSuccess("Saved")
	assert.Empty(t, p.Options().CancelLabel)
	assert.Equal(t, modal.VariantSuccess, p.Options().Variant)
	c.Confirm()
	assert.True(t, receive(t, p).Confirmed)
}
