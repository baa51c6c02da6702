package store_test

import (
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/stretchr/testify/assert"
)

func TestMemory_RoundTrip(t *testing.T) {
	m := store.NewMemory()

	ok := store.SetJSON(m, store.KeyCart, []string{"a", "b"})
	assert.True(t, ok)

	var got []string
	assert.True(t, store.GetJSON(m, store.KeyCart, &got))
	assert.Equal(t, []string{"a", "b"}, got)

	assert.True(t, m.Remove(store.KeyCart))
	assert.False(t, store.GetJSON(m, store.KeyCart, &got))
}

func TestGetString_CurrencyKeysArePlainStrings(t *testing.T) {
	m := store.NewMemory()

	// a bare code must round-trip without JSON quoting
	assert.True(t, store.SetString(m, store.KeySelectedCurrency, "EUR"))
	raw, ok := m.Get(store.KeySelectedCurrency)
	assert.True(t, ok)
	assert.Equal(t, "EUR", string(raw))
	assert.Equal(t, "EUR", store.GetString(m, store.KeySelectedCurrency, "USD"))

	// and a legacy raw value written by an older client still reads back
	m.Set(store.KeyPreferredCurrency, []byte("EUR"))
	assert.Equal(t, "EUR", store.GetString(m, store.KeyPreferredCurrency, ""))
}

func TestGetString_OtherKeysFallBackToRawOnParseFailure(t *testing.T) {
	m := store.NewMemory()

	m.Set("note", []byte(`"hello"`))
	assert.Equal(t, "hello", store.GetString(m, "note", ""))

	m.Set("note", []byte("not-json"))
	assert.Equal(t, "not-json", store.GetString(m, "note", ""))

	assert.Equal(t, "fallback", store.GetString(m, "missing", "fallback"))
}

func TestGetJSON_MalformedValueTreatedAsAbsent(t *testing.T) {
	m := store.NewMemory()
	m.Set(store.KeyWishlist, []byte("{broken"))

	var got []string
	assert.False(t, store.GetJSON(m, store.KeyWishlist, &got))
}

func TestMemory_DispatchInvokesHandlersUntilDisposed(t *testing.T) {
	m := store.NewMemory()

	calls := 0
	dispose := m.On(store.SignalCartUpdated, func() { calls++ })

	m.Dispatch(store.SignalCartUpdated)
	assert.Equal(t, 1, calls)

	dispose()
	m.Dispatch(store.SignalCartUpdated)
	assert.Equal(t, 1, calls)
}

func TestUnavailable_DegradesSafely(t *testing.T) {
	u := store.NewUnavailable()

	_, ok := u.Get(store.KeyCart)
	assert.False(t, ok)
	assert.False(t, u.Set(store.KeyCart, []byte("x")))
	assert.False(t, u.Remove(store.KeyCart))
	assert.False(t, u.Dispatch(store.SignalCartUpdated))
	assert.False(t, store.SetJSON(u, store.KeyCart, []int{1}))
	assert.Equal(t, "EUR", store.GetString(u, store.KeySelectedCurrency, "EUR"))
}
