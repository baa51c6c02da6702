// Package currency owns price display and the persisted currency
// preference. The marketplace is deliberately mono-currency: every price
// is stored and rendered in EUR, and no conversion arithmetic is ever
// applied. The selection machinery still exists so a second currency can
// be introduced without touching callers.
package currency

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Currency struct {
	Code         string `json:"code"`
	Symbol       string `json:"symbol"`
	Decimals     int    `json:"decimals"`
	SymbolBefore bool   `json:"symbolBefore"`
}

var Euro = Currency{Code: "EUR", Symbol: "€", Decimals: 2, SymbolBefore: true}

// Supported lists every selectable currency. EUR only, by design.
var Supported = map[string]Currency{"EUR": Euro}

// totalPriceKeys is the tolerant read order for pricing heterogeneous
// line-item shapes in CalculateTotal.
var totalPriceKeys = []string{"finalPrice", "sellingPrice", "sale_price", "price"}

// Manager formats prices and owns the persisted preference plus its
// change-listener registry. Construct one per session scope; listeners
// are instance-owned so tests never leak subscriptions into each other.
type Manager struct {
	store  store.Store
	logger *zap.Logger

	mu        sync.Mutex
	current   Currency
	listeners map[int]func(Currency)
	nextID    int
}

func NewManager(s store.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:     s,
		logger:    logger,
		current:   Euro,
		listeners: make(map[int]func(Currency)),
	}
}

// Initialize loads the persisted preference, defaulting to EUR. It always
// leaves the manager in a usable state; the return value only reports
// whether a persisted preference was found, for diagnostic logging.
func (m *Manager) Initialize() bool {
	code := store.GetString(m.store, store.KeySelectedCurrency, "")
	if code == "" {
		code = store.GetString(m.store, store.KeyPreferredCurrency, "")
	}

	cur, supported := Supported[code]
	if !supported {
		if code != "" {
			m.logger.Warn("persisted currency not supported, resetting to EUR",
				zap.String("code", code))
		}
		m.mu.Lock()
		m.current = Euro
		m.mu.Unlock()
		return false
	}

	m.mu.Lock()
	m.current = cur
	m.mu.Unlock()
	return true
}

// SetCurrency validates, persists and broadcasts a preference change.
// Any unsupported code is rejected without mutation.
func (m *Manager) SetCurrency(code string) bool {
	cur, supported := Supported[code]
	if !supported {
		return false
	}

	if !store.SetString(m.store, store.KeySelectedCurrency, cur.Code) {
		return false
	}
	store.SetString(m.store, store.KeyPreferredCurrency, cur.Code)

	m.mu.Lock()
	m.current = cur
	m.mu.Unlock()

	m.notify(cur)
	m.store.Dispatch(store.SignalCurrencyChanged)
	return true
}

func (m *Manager) Current() Currency {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// FormatPrice renders an amount as €X.XX. The variadic target-currency
// argument is accepted and ignored: formatting is display-only and there
// is no conversion path. Kept so call sites are ready for a multi-currency
// future.
func (m *Manager) FormatPrice(amount float64, _ ...string) string {
	return Euro.Symbol + decimal.NewFromFloat(amount).StringFixed(int32(Euro.Decimals))
}

// CalculateTotal sums price × quantity over heterogeneous line items,
// reading the price from the documented fallback chain and defaulting
// quantity to 1. Decimal arithmetic avoids float drift on long carts.
func (m *Manager) CalculateTotal(items []map[string]any) float64 {
	total := decimal.Zero
	for _, item := range items {
		price := decimal.Zero
		for _, key := range totalPriceKeys {
			if v, ok := itemNumber(item[key]); ok {
				price = v
				break
			}
		}

		qty := decimal.NewFromInt(1)
		if v, ok := itemNumber(item["quantity"]); ok {
			qty = v
		} else if v, ok := itemNumber(item["qty"]); ok {
			qty = v
		}

		total = total.Add(price.Mul(qty))
	}

	f, _ := total.Float64()
	return f
}

func itemNumber(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// Subscribe registers a change listener and returns its disposer.
func (m *Manager) Subscribe(fn func(Currency)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// notify invokes every listener, isolating panics so one faulty
// subscriber cannot block the rest.
func (m *Manager) notify(cur Currency) {
	m.mu.Lock()
	listeners := make([]func(Currency), 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					m.logger.Error("currency listener panicked", zap.Any("panic", r))
				}
			}()
			fn(cur)
		}()
	}
}
