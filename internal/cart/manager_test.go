package cart_test

import (
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/cart"
	"github.com/sedirimou/Gameva-sub001/internal/catalog"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/stretchr/testify/assert"
)

func limitedProduct(id string, limit int) catalog.Product {
	return catalog.Product{
		ID:             id,
		Name:           "Cyber Quest " + id,
		Price:          19.99,
		OriginalPrice:  29.99,
		Platform:       "Steam",
		LimitPerBasket: limit,
	}
}

func TestAddToCart_BasicAddAndMerge(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)
	p := limitedProduct("g1", 0)

	assert.True(t, m.AddToCart(p, 2))
	assert.True(t, m.AddToCart(p, 1))

	items := m.Cart()
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, m.CartCount())
	assert.True(t, m.IsInCart("g1"))
}

func TestAddToCart_QuantityNeverExceedsBasketLimit(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)
	p := limitedProduct("g1", 3)

	// any sequence of adds stays clamped at the limit
	assert.True(t, m.AddToCart(p, 2))
	assert.True(t, m.AddToCart(p, 5)) // clamped to the remaining 1
	assert.Equal(t, 3, m.CartQuantity("g1"))

	// no allowance left: rejected outright with a limit notification
	var notes []cart.Notification
	m.Notifier().Subscribe(func(n cart.Notification) { notes = append(notes, n) })

	assert.False(t, m.AddToCart(p, 1))
	assert.Equal(t, 3, m.CartQuantity("g1"))
	if assert.Len(t, notes, 1) {
		assert.Equal(t, cart.LevelError, notes[0].Level)
	}
}

func TestAddToCart_PartialFulfillmentEmitsWarning(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)

	var notes []cart.Notification
	m.Notifier().Subscribe(func(n cart.Notification) { notes = append(notes, n) })

	assert.True(t, m.AddToCart(limitedProduct("g1", 2), 5))
	assert.Equal(t, 2, m.CartQuantity("g1"))
	if assert.Len(t, notes, 1) {
		assert.Equal(t, cart.LevelWarning, notes[0].Level)
	}
}

func TestAddToCart_RejectsProductWithoutID(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)
	assert.False(t, m.AddToCart(catalog.Product{Name: "nameless"}, 1))
	assert.Empty(t, m.Cart())
}

func TestAddThenRemove_IsARoundTrip(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)
	m.AddToCart(limitedProduct("g1", 0), 1)
	before := m.Cart()

	m.AddToCart(limitedProduct("g2", 0), 3)
	assert.True(t, m.RemoveFromCart("g2"))

	assert.Equal(t, before, m.Cart())
}

func TestRemoveFromCart_AbsentIDIsNoOpSuccess(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)

	var notes []cart.Notification
	m.Notifier().Subscribe(func(n cart.Notification) { notes = append(notes, n) })

	assert.True(t, m.RemoveFromCart("ghost"))
	assert.Empty(t, notes) // nothing was actually removed
}

func TestUpdateCartQuantity(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)
	m.AddToCart(limitedProduct("g1", 3), 1)

	t.Run("sets_exactly", func(t *testing.T) {
		assert.True(t, m.UpdateCartQuantity("g1", 3))
		assert.Equal(t, 3, m.CartQuantity("g1"))
	})

	t.Run("above_limit_rejected_without_mutation", func(t *testing.T) {
		assert.False(t, m.UpdateCartQuantity("g1", 4))
		assert.Equal(t, 3, m.CartQuantity("g1"))
	})

	t.Run("zero_removes_the_line", func(t *testing.T) {
		assert.True(t, m.UpdateCartQuantity("g1", 0))
		assert.False(t, m.IsInCart("g1"))
	})

	t.Run("absent_id_fails", func(t *testing.T) {
		assert.False(t, m.UpdateCartQuantity("ghost", 2))
	})
}

func TestToggleWishlist(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)
	p := limitedProduct("g1", 0)

	first := m.ToggleWishlist(p)
	assert.Equal(t, cart.ToggleAdded, first.Action)
	assert.True(t, first.OK)
	assert.True(t, m.IsInWishlist("g1"))

	second := m.ToggleWishlist(p)
	assert.Equal(t, cart.ToggleRemoved, second.Action)
	assert.True(t, second.OK)
	assert.False(t, m.IsInWishlist("g1"))
}

func TestAddToWishlist_IsIdempotent(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)
	p := limitedProduct("g1", 0)

	assert.True(t, m.AddToWishlist(p))
	assert.True(t, m.AddToWishlist(p))
	assert.Equal(t, 1, m.WishlistCount())
	assert.False(t, m.Wishlist()[0].AddedAt.IsZero())
}

func TestMoveToCart(t *testing.T) {
	t.Run("success_removes_from_wishlist", func(t *testing.T) {
		m := cart.NewManager(store.NewMemory(), nil)
		m.AddToWishlist(limitedProduct("g1", 0))

		assert.True(t, m.MoveToCart("g1"))
		assert.True(t, m.IsInCart("g1"))
		assert.False(t, m.IsInWishlist("g1"))
	})

	t.Run("rejected_add_keeps_wishlist_entry", func(t *testing.T) {
		m := cart.NewManager(store.NewMemory(), nil)
		// cart already holds the full allowance for this product
		m.AddToCart(limitedProduct("g1", 1), 1)
		m.AddToWishlist(limitedProduct("g1", 1))

		assert.False(t, m.MoveToCart("g1"))
		assert.True(t, m.IsInWishlist("g1"))
		assert.Equal(t, 1, m.CartQuantity("g1"))
	})

	t.Run("absent_wishlist_entry_fails", func(t *testing.T) {
		m := cart.NewManager(store.NewMemory(), nil)
		assert.False(t, m.MoveToCart("ghost"))
	})
}

func TestListenersAndSignals(t *testing.T) {
	mem := store.NewMemory()
	m := cart.NewManager(mem, nil)

	var seen [][]cart.Item
	dispose := m.OnCartChange(func(items []cart.Item) { seen = append(seen, items) })

	signals := 0
	mem.On(store.SignalCartUpdated, func() { signals++ })

	m.AddToCart(limitedProduct("g1", 0), 1)
	if assert.Len(t, seen, 1) {
		assert.Len(t, seen[0], 1) // listeners receive freshly-read state
	}
	assert.Equal(t, 1, signals)

	dispose()
	m.AddToCart(limitedProduct("g2", 0), 1)
	assert.Len(t, seen, 1)
	assert.Equal(t, 2, signals)
}

func TestListenerPanicDoesNotBlockOthers(t *testing.T) {
	m := cart.NewManager(store.NewMemory(), nil)

	m.OnCartChange(func([]cart.Item) { panic("boom") })
	notified := false
	m.OnCartChange(func([]cart.Item) { notified = true })

	assert.True(t, m.AddToCart(limitedProduct("g1", 0), 1))
	assert.True(t, notified)
}

func TestUnavailableStore_AllMutationsFailSilently(t *testing.T) {
	m := cart.NewManager(store.NewUnavailable(), nil)

	invoked := false
	m.OnCartChange(func([]cart.Item) { invoked = true })
	m.Notifier().Subscribe(func(cart.Notification) { invoked = true })

	assert.False(t, m.AddToCart(limitedProduct("g1", 0), 1))
	assert.False(t, m.RemoveFromCart("g1"))
	assert.False(t, m.UpdateCartQuantity("g1", 2))
	assert.False(t, m.ClearCart())
	assert.False(t, m.AddToWishlist(limitedProduct("g1", 0)))
	assert.False(t, m.RemoveFromWishlist("g1"))
	assert.False(t, m.MoveToCart("g1"))

	assert.False(t, invoked)
	assert.Empty(t, m.Cart())
	assert.Empty(t, m.Wishlist())
}

func TestCart_MalformedPersistedStateReadsAsEmpty(t *testing.T) {
	mem := store.NewMemory()
	mem.Set(store.KeyCart, []byte("{not json"))

	m := cart.NewManager(mem, nil)
	assert.Empty(t, m.Cart())
	assert.Zero(t, m.CartCount())
}
