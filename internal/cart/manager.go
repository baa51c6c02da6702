// Package cart implements the session cart and wishlist over the
// injected key/value store. Every mutation follows the same sequence:
// persist, notify typed listeners with freshly-read state, dispatch a
// generic change signal for consumers that did not register a listener.
// When the backing store is unavailable every mutation returns false
// without invoking anyone.
package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/catalog"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"go.uber.org/zap"
)

type Item struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"originalPrice"`
	Image          string  `json:"image"`
	Platform       string  `json:"platform"`
	Quantity       int     `json:"quantity"`
	LimitPerBasket int     `json:"limit_per_basket,omitempty"`
}

type WishlistItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Image         string    `json:"image"`
	Platform      string    `json:"platform"`
	AddedAt       time.Time `json:"addedAt"`
}

type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
)

type ToggleResult struct {
	Action ToggleAction `json:"action"`
	OK     bool         `json:"ok"`
}

// Manager owns one session's cart and wishlist state. Listener
// registries are per-instance with disposer-returning subscription, so
// no state leaks across sessions or tests.
type Manager struct {
	store    store.Store
	notifier *Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	cartSubs map[int]func([]Item)
	wishSubs map[int]func([]WishlistItem)
	nextID   int
}

func NewManager(s store.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:    s,
		notifier: NewNotifier(),
		logger:   logger,
		now:      time.Now,
		cartSubs: make(map[int]func([]Item)),
		wishSubs: make(map[int]func([]WishlistItem)),
	}
}

func (m *Manager) Notifier() *Notifier { return m.notifier }

// Cart returns the persisted cart; malformed or missing state reads as
// empty, never as an error.
func (m *Manager) Cart() []Item {
	var items []Item
	store.GetJSON(m.store, store.KeyCart, &items)
	if items == nil {
		items = []Item{}
	}
	return items
}

func (m *Manager) Wishlist() []WishlistItem {
	var items []WishlistItem
	store.GetJSON(m.store, store.KeyWishlist, &items)
	if items == nil {
		items = []WishlistItem{}
	}
	return items
}

// CartCount is the total unit count, not the number of lines.
func (m *Manager) CartCount() int {
	count := 0
	for _, item := range m.Cart() {
		count += item.Quantity
	}
	return count
}

func (m *Manager) WishlistCount() int {
	return len(m.Wishlist())
}

func (m *Manager) IsInCart(id string) bool {
	return m.CartQuantity(id) > 0
}

func (m *Manager) CartQuantity(id string) int {
	for _, item := range m.Cart() {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

func (m *Manager) IsInWishlist(id string) bool {
	for _, item := range m.Wishlist() {
		if item.ID == id {
			return true
		}
	}
	return false
}

// AddToCart adds quantity units of a normalized product. An active basket
// limit is enforced by clamping: the add is rejected outright when no
// allowance remains, clamped (with a warning) when only part of the
// requested quantity fits, and fulfilled in full otherwise.
func (m *Manager) AddToCart(p catalog.Product, quantity int) bool {
	if p.ID == "" {
		return false
	}
	if quantity <= 0 {
		quantity = 1
	}

	m.mu.Lock()
	items := m.Cart()

	idx := -1
	for i := range items {
		if items[i].ID == p.ID {
			idx = i
			break
		}
	}

	limit := p.LimitPerBasket
	if limit <= 0 && idx >= 0 {
		limit = items[idx].LimitPerBasket
	}

	current := 0
	if idx >= 0 {
		current = items[idx].Quantity
	}

	partial := false
	if limit > 0 {
		remaining := limit - current
		if remaining <= 0 {
			m.mu.Unlock()
			m.notifier.Publish(Notification{
				Level:   LevelError,
				Message: fmt.Sprintf("Only %d of %q allowed per basket", limit, p.Name),
			})
			return false
		}
		if quantity > remaining {
			quantity = remaining
			partial = true
		}
	}

	if idx >= 0 {
		items[idx].Quantity += quantity
	} else {
		items = append(items, Item{
			ID:             p.ID,
			Name:           p.Name,
			Price:          p.Price,
			OriginalPrice:  p.OriginalPrice,
			Image:          p.Image,
			Platform:       p.Platform,
			Quantity:       quantity,
			LimitPerBasket: p.LimitPerBasket,
		})
	}

	if !store.SetJSON(m.store, store.KeyCart, items) {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.afterCartChange()
	if partial {
		m.notifier.Publish(Notification{
			Level:   LevelWarning,
			Message: fmt.Sprintf("Only %d more of %q could be added (basket limit %d)", quantity, p.Name, limit),
		})
	} else {
		m.notifier.Publish(Notification{
			Level:   LevelSuccess,
			Message: fmt.Sprintf("%s added to cart", p.Name),
		})
	}
	return true
}

// RemoveFromCart filters the line out unconditionally; removing an
// absent id is a no-op success.
func (m *Manager) RemoveFromCart(id string) bool {
	m.mu.Lock()
	items := m.Cart()

	removed := ""
	kept := items[:0]
	for _, item := range items {
		if item.ID == id {
			removed = item.Name
			continue
		}
		kept = append(kept, item)
	}

	if !store.SetJSON(m.store, store.KeyCart, kept) {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.afterCartChange()
	if removed != "" {
		m.notifier.Publish(Notification{
			Level:   LevelSuccess,
			Message: fmt.Sprintf("%s removed from cart", removed),
		})
	}
	return true
}

// UpdateCartQuantity sets a line's quantity exactly. Zero or negative
// removes the line; a quantity above an active basket limit is rejected
// without mutation.
func (m *Manager) UpdateCartQuantity(id string, quantity int) bool {
	if quantity <= 0 {
		return m.RemoveFromCart(id)
	}

	m.mu.Lock()
	items := m.Cart()

	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false
	}

	if limit := items[idx].LimitPerBasket; limit > 0 && quantity > limit {
		name := items[idx].Name
		m.mu.Unlock()
		m.notifier.Publish(Notification{
			Level:   LevelError,
			Message: fmt.Sprintf("Only %d of %q allowed per basket", limit, name),
		})
		return false
	}

	items[idx].Quantity = quantity
	if !store.SetJSON(m.store, store.KeyCart, items) {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.afterCartChange()
	return true
}

func (m *Manager) ClearCart() bool {
	m.mu.Lock()
	if !store.SetJSON(m.store, store.KeyCart, []Item{}) {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.afterCartChange()
	return true
}

// AddToWishlist is idempotent: at most one entry per product id.
func (m *Manager) AddToWishlist(p catalog.Product) bool {
	if p.ID == "" {
		return false
	}

	m.mu.Lock()
	items := m.Wishlist()
	for _, item := range items {
		if item.ID == p.ID {
			m.mu.Unlock()
			return true
		}
	}

	items = append(items, WishlistItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Platform:      p.Platform,
		AddedAt:       m.now(),
	})

	if !store.SetJSON(m.store, store.KeyWishlist, items) {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.afterWishlistChange()
	m.notifier.Publish(Notification{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("%s added to wishlist", p.Name),
	})
	return true
}

func (m *Manager) RemoveFromWishlist(id string) bool {
	m.mu.Lock()
	items := m.Wishlist()

	removed := ""
	kept := items[:0]
	for _, item := range items {
		if item.ID == id {
			removed = item.Name
			continue
		}
		kept = append(kept, item)
	}

	if !store.SetJSON(m.store, store.KeyWishlist, kept) {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.afterWishlistChange()
	if removed != "" {
		m.notifier.Publish(Notification{
			Level:   LevelSuccess,
			Message: fmt.Sprintf("%s removed from wishlist", removed),
		})
	}
	return true
}

// ToggleWishlist composes the membership check and the add/remove into
// one action from the caller's perspective, reporting which was taken.
func (m *Manager) ToggleWishlist(p catalog.Product) ToggleResult {
	if m.IsInWishlist(p.ID) {
		return ToggleResult{Action: ToggleRemoved, OK: m.RemoveFromWishlist(p.ID)}
	}
	return ToggleResult{Action: ToggleAdded, OK: m.AddToWishlist(p)}
}

// MoveToCart moves a wishlist entry into the cart. The wishlist removal
// only happens after the cart add succeeded (fully or clamped); a
// rejected add leaves the wishlist untouched.
func (m *Manager) MoveToCart(id string) bool {
	var entry *WishlistItem
	for _, item := range m.Wishlist() {
		if item.ID == id {
			it := item
			entry = &it
			break
		}
	}
	if entry == nil {
		return false
	}

	added := m.AddToCart(catalog.Product{
		ID:            entry.ID,
		Name:          entry.Name,
		Price:         entry.Price,
		OriginalPrice: entry.OriginalPrice,
		Image:         entry.Image,
		Platform:      entry.Platform,
	}, 1)
	if !added {
		return false
	}

	return m.RemoveFromWishlist(id)
}

// OnCartChange registers a typed listener invoked with the freshly-read
// cart after every successful mutation. Returns a disposer.
func (m *Manager) OnCartChange(fn func([]Item)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.cartSubs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.cartSubs, id)
	}
}

func (m *Manager) OnWishlistChange(fn func([]WishlistItem)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.wishSubs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.wishSubs, id)
	}
}

func (m *Manager) afterCartChange() {
	fresh := m.Cart()

	m.mu.Lock()
	subs := make([]func([]Item), 0, len(m.cartSubs))
	for _, fn := range m.cartSubs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		m.invoke(func() { fn(fresh) })
	}
	m.store.Dispatch(store.SignalCartUpdated)
}

func (m *Manager) afterWishlistChange() {
	fresh := m.Wishlist()

	m.mu.Lock()
	subs := make([]func([]WishlistItem), 0, len(m.wishSubs))
	for _, fn := range m.wishSubs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		m.invoke(func() { fn(fresh) })
	}
	m.store.Dispatch(store.SignalWishlistUpdated)
}

func (m *Manager) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("cart listener panicked", zap.Any("panic", r))
		}
	}()
	fn()
}
