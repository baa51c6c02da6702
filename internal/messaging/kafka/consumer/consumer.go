package consumer

import (
	"context"
	"log"

	"github.com/sedirimou/Gameva-sub001/internal/product"

	"github.com/segmentio/kafka-go"
)

// StartImportConsumer reads catalog feed events and applies them to the
// product catalog. Messages are committed only after the handler
// succeeds, so a crashed import is replayed on restart.
func StartImportConsumer(ctx context.Context, reader *kafka.Reader, products product.Service) {
	log.Println("[CONSUMER] Catalog import consumer started")

	handler := NewImportHandler(products)

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
		case "PRODUCT_UPSERT":
			if err := handler.HandleProductUpsert(ctx, msg.Value); err != nil {
				log.Printf("[CONSUMER] Failed to handle PRODUCT_UPSERT at offset %d: %v", msg.Offset, err)
				continue
			}
		case "PRODUCT_DEACTIVATE":
			if err := handler.HandleProductDeactivate(ctx, msg.Value); err != nil {
				log.Printf("[CONSUMER] Failed to handle PRODUCT_DEACTIVATE at offset %d: %v", msg.Offset, err)
				continue
			}
		default:
			log.Printf("[CONSUMER] Skipping unknown event type %q at offset %d", eventType, msg.Offset)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Printf("[CONSUMER] Failed to commit offset %d: %v", msg.Offset, err)
		}
	}
}
