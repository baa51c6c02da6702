package preferences_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/platform/store"
	"github.com/sedirimou/Gameva-sub001/internal/preferences"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func jsonRequest(body any) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/user/preferences", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPreferencesHandler_Update(t *testing.T) {
	t.Run("success_persists_language_and_currency", func(t *testing.T) {
		provider := store.NewMemoryProvider()
		h := preferences.NewHandler(provider, nil)
		c, w := newTestContext(t)
		c.Request = jsonRequest(map[string]any{"language": "de", "currency": "EUR"})
		c.Set("session_id", "s1")

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"language":"de"`)
		assert.Contains(t, w.Body.String(), `"currency":"EUR"`)

		st := provider.ForSession("s1")
		assert.Equal(t, "de", store.GetString(st, store.KeyLanguage, ""))
		assert.Equal(t, "EUR", store.GetString(st, store.KeySelectedCurrency, ""))
	})

	t.Run("success_dispatches_currency_changed", func(t *testing.T) {
		provider := store.NewMemoryProvider()
		st := provider.ForSession("s1").(*store.Memory)

		notified := false
		st.On(store.SignalCurrencyChanged, func() { notified = true })

		h := preferences.NewHandler(provider, nil)
		c, w := newTestContext(t)
		c.Request = jsonRequest(map[string]any{"currency": "EUR"})
		c.Set("session_id", "s1")

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, notified)
	})

	t.Run("error_unsupported_currency", func(t *testing.T) {
		h := preferences.NewHandler(store.NewMemoryProvider(), nil)
		c, w := newTestContext(t)
		c.Request = jsonRequest(map[string]any{"currency": "USD"})
		c.Set("session_id", "s1")

		h.Update(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "UNSUPPORTED_CURRENCY")
	})

	t.Run("error_no_session", func(t *testing.T) {
		h := preferences.NewHandler(store.NewMemoryProvider(), nil)
		c, w := newTestContext(t)
		c.Request = jsonRequest(map[string]any{"language": "fr"})

		h.Update(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "STORAGE_UNAVAILABLE")
	})
}

func TestPreferencesHandler_Get(t *testing.T) {
	t.Run("defaults_for_fresh_session", func(t *testing.T) {
		h := preferences.NewHandler(store.NewMemoryProvider(), nil)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/user/preferences", nil)
		c.Set("session_id", "s1")

		h.Get(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"language":"en"`)
		assert.Contains(t, w.Body.String(), `"currency":"EUR"`)
	})

	t.Run("reads_persisted_preferences", func(t *testing.T) {
		provider := store.NewMemoryProvider()
		store.SetString(provider.ForSession("s1"), store.KeyLanguage, "it")

		h := preferences.NewHandler(provider, nil)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/user/preferences", nil)
		c.Set("session_id", "s1")

		h.Get(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"language":"it"`)
	})
}
