package consumer

import (
	"context"
	"log"

	"github.com/sedirimou/Gameva-sub001/internal/email"
	"github.com/sedirimou/Gameva-sub001/internal/emailtemplate"

	"github.com/segmentio/kafka-go"
)

// StartNotificationConsumer reads order events and sends customer
// notifications. Render failures are committed rather than retried:
// a broken template blocks every later message and a replayed send
// would double-mail the customer.
func StartNotificationConsumer(ctx context.Context, reader *kafka.Reader, templates emailtemplate.Renderer, mailer email.Service) {
	log.Println("[CONSUMER] Order notification consumer started")

	handler := NewNotificationHandler(templates, mailer)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[CONSUMER] Error fetching message: %v", err)
			continue
		}

		eventType := getHeader(msg, "event_type")

		switch eventType {
		case "ORDER_PAID":
			if err := handler.HandleOrderPaid(ctx, msg.Value); err != nil {
				log.Printf("[CONSUMER] Failed to handle ORDER_PAID at offset %d: %v", msg.Offset, err)
			}
		case "ORDER_CREATED":
			// No customer-facing action until payment settles.
		default:
			log.Printf("[CONSUMER] Skipping unknown event type %q at offset %d", eventType, msg.Offset)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Printf("[CONSUMER] Failed to commit offset %d: %v", msg.Offset, err)
		}
	}
}
