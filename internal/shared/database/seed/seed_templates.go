package seed

import (
	"context"
	"database/sql"
	"log"

	"github.com/sedirimou/Gameva-sub001/internal/emailtemplate"

	"github.com/google/uuid"
)

// SeedEmailTemplates installs the transactional templates the
// notification consumer depends on. Existing codes are left untouched
// so operator edits survive a reseed.
func SeedEmailTemplates(db *sql.DB) error {
	ctx := context.Background()
	repo := emailtemplate.NewRepository(db)

	templates := []struct {
		Code    string
		Name    string
		Subject string
		Body    string
	}{
		{
			Code:    emailtemplate.CodeOrderConfirmation,
			Name:    "Order confirmation",
			Subject: "Your order {{.OrderNumber}}",
			Body: "<h1>Thanks for your purchase!</h1>" +
				"<p>Order {{.OrderNumber}} for {{.Total}} is confirmed. " +
				"Your game keys are on the way.</p>",
		},
	}

	for _, t := range templates {
		_, err := repo.Create(ctx, emailtemplate.UpsertParams{
			ID:      uuid.New(),
			Code:    t.Code,
			Name:    t.Name,
			Subject: t.Subject,
			Body:    t.Body,
		})
		if err != nil {
			log.Println("skip seed template:", err)
			continue
		}
	}

	return nil
}
