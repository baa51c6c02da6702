package emailtemplate

// CodeOrderConfirmation is the template sent after a successful payment.
const CodeOrderConfirmation = "order_confirmation"

type CreateTemplateRequest struct {
	Code    string `json:"code" binding:"required,min=2,max=64"`
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required"`
}

type UpdateTemplateRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Subject  string `json:"subject" binding:"required,max=200"`
	Body     string `json:"body" binding:"required"`
	IsActive *bool  `json:"isActive" binding:"required"`
}

type TestSendRequest struct {
	To   string         `json:"to" binding:"required,email"`
	Data map[string]any `json:"data"`
}

type ListTemplateQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

type TemplateResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	IsActive bool   `json:"isActive"`
}
