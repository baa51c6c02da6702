package cart

import (
	"log"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-facing message produced by a cart or wishlist
// mutation: add confirmations, partial-fulfillment warnings, basket-limit
// rejections.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier is an instance-owned pub/sub registry. Subscribe returns a
// disposer; a panicking subscriber is isolated so the rest still get the
// notification.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]func(Notification)
	nextID int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Notification))}
}

func (n *Notifier) Subscribe(fn func(Notification)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *Notifier) Publish(note Notification) {
	n.mu.Lock()
	subs := make([]func(Notification), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[CART] notification subscriber panicked: %v", r)
				}
			}()
			fn(note)
		}()
	}
}
