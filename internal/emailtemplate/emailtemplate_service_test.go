package emailtemplate_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/email"
	"github.com/sedirimou/Gameva-sub001/internal/emailtemplate"
	emailMock "github.com/sedirimou/Gameva-sub001/internal/mock/email"
	templateMock "github.com/sedirimou/Gameva-sub001/internal/mock/emailtemplate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	repo   *templateMock.MockRepository
	mailer *emailMock.MockService
	svc    emailtemplate.Service
}

func setupServiceTest(t *testing.T) serviceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := templateMock.NewMockRepository(ctrl)
	mailer := emailMock.NewMockService(ctrl)

	svc := emailtemplate.NewService(emailtemplate.Deps{
		Repo:   repo,
		Mailer: mailer,
	})

	return serviceDeps{repo: repo, mailer: mailer, svc: svc}
}

func confirmationTemplate() emailtemplate.Template {
	return emailtemplate.Template{
		ID:       uuid.New(),
		Code:     emailtemplate.CodeOrderConfirmation,
		Name:     "Order confirmation",
		Subject:  "Your order {{.OrderNumber}}",
		Body:     "<p>Thanks! Your order {{.OrderNumber}} for {{.Total}} is confirmed.</p>",
		IsActive: sql.NullBool{Bool: true, Valid: true},
	}
}

func TestEmailTemplateService_Render(t *testing.T) {
	ctx := context.Background()

	t.Run("positive - subject and body render with data", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			GetByCode(ctx, emailtemplate.CodeOrderConfirmation).
			Return(confirmationTemplate(), nil)

		subject, body, err := deps.svc.Render(ctx, emailtemplate.CodeOrderConfirmation, map[string]any{
			"OrderNumber": "GMV-1-ABCD",
			"Total":       "€49.98",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Your order GMV-1-ABCD", subject)
		assert.Contains(t, body, "GMV-1-ABCD for €49.98")
	})

	t.Run("negative - unknown code", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			GetByCode(ctx, "missing").
			Return(emailtemplate.Template{}, sql.ErrNoRows)

		_, _, err := deps.svc.Render(ctx, "missing", nil)
		assert.ErrorIs(t, err, emailtemplate.ErrTemplateNotFound)
	})
}

func TestEmailTemplateService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("positive", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params emailtemplate.UpsertParams) (emailtemplate.Template, error) {
				assert.Equal(t, "order_confirmation", params.Code)
				tpl := confirmationTemplate()
				tpl.ID = params.ID
				return tpl, nil
			})

		res, err := deps.svc.Create(ctx, emailtemplate.CreateTemplateRequest{
			Code:    "order_confirmation",
			Name:    "Order confirmation",
			Subject: "Your order {{.OrderNumber}}",
			Body:    "<p>Thanks!</p>",
		})

		assert.NoError(t, err)
		assert.True(t, res.IsActive)
	})

	t.Run("negative - body with broken template syntax", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.svc.Create(ctx, emailtemplate.CreateTemplateRequest{
			Code:    "broken",
			Name:    "Broken",
			Subject: "ok",
			Body:    "{{.Unclosed",
		})
		assert.ErrorIs(t, err, emailtemplate.ErrTemplateSyntax)
	})
}

func TestEmailTemplateService_TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("positive - rendered mail goes out with TEST marker", func(t *testing.T) {
		deps := setupServiceTest(t)
		tpl := confirmationTemplate()

		deps.repo.EXPECT().GetByID(ctx, tpl.ID).Return(tpl, nil)
		deps.mailer.EXPECT().
			Send(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, msg email.Message) error {
				assert.Equal(t, "admin@example.com", msg.To)
				assert.Equal(t, "[TEST] Your order GMV-9", msg.Subject)
				assert.Contains(t, msg.HTML, "GMV-9")
				return nil
			})

		err := deps.svc.TestSend(ctx, tpl.ID.String(), emailtemplate.TestSendRequest{
			To:   "admin@example.com",
			Data: map[string]any{"OrderNumber": "GMV-9", "Total": "€10.00"},
		})
		assert.NoError(t, err)
	})

	t.Run("negative - mailer failure surfaces as send error", func(t *testing.T) {
		deps := setupServiceTest(t)
		tpl := confirmationTemplate()

		deps.repo.EXPECT().GetByID(ctx, tpl.ID).Return(tpl, nil)
		deps.mailer.EXPECT().Send(ctx, gomock.Any()).Return(assert.AnError)

		err := deps.svc.TestSend(ctx, tpl.ID.String(), emailtemplate.TestSendRequest{To: "admin@example.com"})
		assert.ErrorIs(t, err, emailtemplate.ErrSendFailed)
	})

	t.Run("negative - unknown template id", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.repo.EXPECT().GetByID(ctx, id).Return(emailtemplate.Template{}, sql.ErrNoRows)

		err := deps.svc.TestSend(ctx, id.String(), emailtemplate.TestSendRequest{To: "admin@example.com"})
		assert.ErrorIs(t, err, emailtemplate.ErrTemplateNotFound)
	})
}
