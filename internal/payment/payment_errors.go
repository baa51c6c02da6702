package payment

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
)

var (
	ErrEmptyCheckout = apperror.New(
		apperror.CodeInvalidInput,
		"Checkout needs at least one item",
		http.StatusBadRequest,
	)

	ErrUnsupportedCurrency = apperror.New(
		apperror.CodeInvalidInput,
		"Only EUR payments are supported",
		http.StatusBadRequest,
	)

	ErrZeroAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Payment amount must be greater than zero",
		http.StatusBadRequest,
	)

	ErrPaymentFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to initialize payment",
		http.StatusInternalServerError,
	)
)
