package currency_test

import (
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/currency"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	m := currency.NewManager(store.NewMemory(), nil)

	assert.Equal(t, "€9.50", m.FormatPrice(9.5))
	assert.Equal(t, "€0.00", m.FormatPrice(0))
	assert.Equal(t, "€1234.99", m.FormatPrice(1234.99))

	// the target-currency argument is display scaffolding and ignored
	assert.Equal(t, "€9.50", m.FormatPrice(9.5, "USD"))
}

func TestSetCurrency_OnlyEURSupported(t *testing.T) {
	mem := store.NewMemory()
	m := currency.NewManager(mem, nil)

	assert.False(t, m.SetCurrency("USD"))
	assert.False(t, m.SetCurrency(""))

	assert.True(t, m.SetCurrency("EUR"))
	raw, ok := mem.Get(store.KeySelectedCurrency)
	assert.True(t, ok)
	assert.Equal(t, "EUR", string(raw)) // bare code, not JSON-quoted
}

func TestInitialize(t *testing.T) {
	t.Run("no_preference_defaults_to_eur", func(t *testing.T) {
		m := currency.NewManager(store.NewMemory(), nil)
		assert.False(t, m.Initialize())
		assert.Equal(t, "EUR", m.Current().Code)
	})

	t.Run("persisted_preference_loads", func(t *testing.T) {
		mem := store.NewMemory()
		store.SetString(mem, store.KeySelectedCurrency, "EUR")
		m := currency.NewManager(mem, nil)
		assert.True(t, m.Initialize())
	})

	t.Run("unsupported_persisted_code_resets", func(t *testing.T) {
		mem := store.NewMemory()
		store.SetString(mem, store.KeySelectedCurrency, "GBP")
		m := currency.NewManager(mem, nil)
		assert.False(t, m.Initialize())
		assert.Equal(t, "EUR", m.Current().Code)
	})

	t.Run("falls_back_to_preferred_currency_key", func(t *testing.T) {
		mem := store.NewMemory()
		store.SetString(mem, store.KeyPreferredCurrency, "EUR")
		m := currency.NewManager(mem, nil)
		assert.True(t, m.Initialize())
	})
}

func TestSubscribe_NotifiesAndDisposes(t *testing.T) {
	m := currency.NewManager(store.NewMemory(), nil)

	var got []string
	dispose := m.Subscribe(func(c currency.Currency) {
		got = append(got, c.Code)
	})

	m.SetCurrency("EUR")
	assert.Equal(t, []string{"EUR"}, got)

	dispose()
	m.SetCurrency("EUR")
	assert.Equal(t, []string{"EUR"}, got)
}

func TestSubscribe_PanickingListenerDoesNotBlockOthers(t *testing.T) {
	m := currency.NewManager(store.NewMemory(), nil)

	notified := false
	m.Subscribe(func(currency.Currency) { panic("boom") })
	m.Subscribe(func(currency.Currency) { notified = true })

	assert.True(t, m.SetCurrency("EUR"))
	assert.True(t, notified)
}

func TestSetCurrency_DispatchesCurrencyChanged(t *testing.T) {
	mem := store.NewMemory()
	m := currency.NewManager(mem, nil)

	fired := false
	mem.On(store.SignalCurrencyChanged, func() { fired = true })

	m.SetCurrency("EUR")
	assert.True(t, fired)
}

func TestCalculateTotal_HeterogeneousShapes(t *testing.T) {
	m := currency.NewManager(store.NewMemory(), nil)

	total := m.CalculateTotal([]map[string]any{
		{"price": 10.0, "quantity": 2.0},
		{"finalPrice": 5.5, "price": 9.99}, // finalPrice wins, qty defaults to 1
		{"sale_price": "3.50", "qty": 2},   // numeric strings tolerated
	})
	assert.InDelta(t, 32.5, total, 1e-9)

	assert.Zero(t, m.CalculateTotal(nil))
	assert.Zero(t, m.CalculateTotal([]map[string]any{{"unpriced": true}}))
}
