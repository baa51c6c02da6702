// Package store is the session-scoped key/value layer backing carts,
// wishlists and display preferences. Callers never learn whether a real
// backend is present: every method reports success with a bool and the
// Unavailable implementation degrades all of them to safe no-ops.
package store

import "encoding/json"

// Well-known keys. Cart and wishlist hold JSON arrays; the two currency
// keys hold a bare currency code, not a JSON-quoted string.
const (
	KeyCart              = "cart"
	KeyWishlist          = "wishlist"
	KeySelectedCurrency  = "selected_currency"
	KeyPreferredCurrency = "preferred_currency"
	KeyCheckoutData      = "checkoutData"
	KeyLastOrder         = "lastOrder"
	KeyLanguage          = "language"
)

// Broadcast signal names. Signals carry no payload; listeners re-read the
// store to pick up fresh state.
const (
	SignalCartUpdated     = "cartUpdated"
	SignalWishlistUpdated = "wishlistUpdated"
	SignalCurrencyChanged = "currencyChanged"
)

type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) bool
	Remove(key string) bool
	Dispatch(signal string) bool
}

func isPlainStringKey(key string) bool {
	return key == KeySelectedCurrency || key == KeyPreferredCurrency
}

// GetJSON reads key and unmarshals it into v. A value that fails to parse
// is treated as absent rather than an error.
func GetJSON(s Store, key string, v any) bool {
	raw, ok := s.Get(key)
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	return true
}

// SetJSON marshals v under key. Marshal failure counts as a failed write.
func SetJSON(s Store, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return s.Set(key, raw)
}

// GetString reads a string value. The currency-preference keys are stored
// as bare codes so they round-trip without JSON quoting; for every other
// key a JSON string is decoded first, falling back to the raw bytes.
func GetString(s Store, key, def string) string {
	raw, ok := s.Get(key)
	if !ok || len(raw) == 0 {
		return def
	}
	if isPlainStringKey(key) {
		return string(raw)
	}
	var decoded string
	if err := json.Unmarshal(raw, &decoded); err == nil {
		return decoded
	}
	return string(raw)
}

// SetString writes a string value, bare for the currency-preference keys
// and JSON-quoted otherwise, mirroring GetString.
func SetString(s Store, key, value string) bool {
	if isPlainStringKey(key) {
		return s.Set(key, []byte(value))
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return s.Set(key, raw)
}
