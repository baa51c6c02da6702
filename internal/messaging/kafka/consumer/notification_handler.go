package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sedirimou/Gameva-sub001/internal/email"
	"github.com/sedirimou/Gameva-sub001/internal/emailtemplate"
)

type orderPaidPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	SessionID   string `json:"session_id"`
	Email       string `json:"email"`
	Total       string `json:"total"`
	Currency    string `json:"currency"`
}

// NotificationHandler turns order lifecycle events into outbound email.
type NotificationHandler struct {
	templates emailtemplate.Renderer
	mailer    email.Service
}

func NewNotificationHandler(templates emailtemplate.Renderer, mailer email.Service) *NotificationHandler {
	if templates == nil {
		panic("template renderer cannot be nil")
	}
	if mailer == nil {
		mailer = email.NewNoopService()
	}
	return &NotificationHandler{templates: templates, mailer: mailer}
}

// HandleOrderPaid sends the order confirmation email. Orders placed
// without an email address are acknowledged silently.
func (h *NotificationHandler) HandleOrderPaid(ctx context.Context, payload []byte) error {
	var event orderPaidPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode order paid payload: %w", err)
	}

	if event.Email == "" {
		log.Printf("[CONSUMER] Order %s has no email on file, skipping confirmation", event.OrderNumber)
		return nil
	}

	subject, html, err := h.templates.Render(ctx, emailtemplate.CodeOrderConfirmation, map[string]any{
		"OrderNumber": event.OrderNumber,
		"Total":       formatTotal(event.Total, event.Currency),
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation for order %s: %w", event.OrderNumber, err)
	}

	if err := h.mailer.Send(ctx, email.Message{
		To:      event.Email,
		Subject: subject,
		HTML:    html,
	}); err != nil {
		return fmt.Errorf("failed to send confirmation for order %s: %w", event.OrderNumber, err)
	}
	return nil
}

func formatTotal(total, currency string) string {
	if currency == "EUR" {
		return "€" + total
	}
	return total + " " + currency
}
