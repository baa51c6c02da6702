package payment

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"

	"github.com/gin-gonic/gin"
	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

const maxWebhookBody = 64 * 1024

type Handler struct {
	paymentService Service
	logger         *zap.Logger
}

func NewHandler(paymentService Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{paymentService: paymentService, logger: logger}
}

// POST /checkout/payment-intent
func (h *Handler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	res, err := h.paymentService.CreateIntent(c.Request.Context(), c.GetString("session_id"), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// POST /checkout/webhook
//
// Stripe retries failed deliveries, so everything after signature
// verification must be idempotent. MarkPaid rejects replays.
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(body,
		c.GetHeader("Stripe-Signature"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
	)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripego.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			h.logger.Error("failed to parse payment intent payload", zap.Error(err))
			c.Status(http.StatusBadRequest)
			return
		}

		if err := h.paymentService.HandlePaymentSucceeded(c.Request.Context(), intent.ID); err != nil {
			// A replayed or unknown intent is not a delivery failure;
			// returning non-2xx would make Stripe retry forever.
			h.logger.Warn("payment succeeded event not applied",
				zap.String("payment_intent_id", intent.ID),
				zap.Error(err),
			)
		}

	default:
		h.logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
	}

	c.Status(http.StatusOK)
}
