package emailtemplate

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Email template not found",
		http.StatusNotFound,
	)

	ErrInvalidTemplateID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid template ID",
		http.StatusBadRequest,
	)

	ErrDuplicateCode = apperror.New(
		apperror.CodeAlreadyExists,
		"A template with this code already exists",
		http.StatusConflict,
	)

	ErrTemplateSyntax = apperror.New(
		apperror.CodeInvalidInput,
		"Template body does not parse",
		http.StatusUnprocessableEntity,
	)

	ErrSendFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to send test email",
		http.StatusBadGateway,
	)
)
