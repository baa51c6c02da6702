package preferences

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/currency"
	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultLanguage = "en"

type Handler struct {
	provider store.Provider
	logger   *zap.Logger
}

func NewHandler(provider store.Provider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{provider: provider, logger: logger}
}

// GET /user/preferences
func (h *Handler) Get(c *gin.Context) {
	st := h.provider.ForSession(c.GetString("session_id"))
	mgr := currency.NewManager(st, h.logger)
	mgr.Initialize()

	response.Success(c, http.StatusOK, PreferencesResponse{
		Language: store.GetString(st, store.KeyLanguage, defaultLanguage),
		Currency: mgr.Current().Code,
	}, nil)
}

// PUT /user/preferences
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	st := h.provider.ForSession(c.GetString("session_id"))
	mgr := currency.NewManager(st, h.logger)
	mgr.Initialize()

	if req.Currency != "" && !mgr.SetCurrency(req.Currency) {
		response.Error(c, http.StatusUnprocessableEntity, "UNSUPPORTED_CURRENCY",
			"Currency "+req.Currency+" is not supported", nil)
		return
	}

	if req.Language != "" {
		if !store.SetString(st, store.KeyLanguage, req.Language) {
			response.Error(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE",
				"Preferences storage is not available for this session", nil)
			return
		}
	}

	response.Success(c, http.StatusOK, PreferencesResponse{
		Language: store.GetString(st, store.KeyLanguage, defaultLanguage),
		Currency: mgr.Current().Code,
	}, nil)
}
