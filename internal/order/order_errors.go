package order

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
)

var (
	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Order not found",
		http.StatusNotFound,
	)

	ErrInvalidOrderID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid order ID",
		http.StatusBadRequest,
	)

	ErrEmptyOrder = apperror.New(
		apperror.CodeInvalidInput,
		"Order needs at least one item",
		http.StatusBadRequest,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidInput,
		"Payment status transition not allowed",
		http.StatusConflict,
	)

	ErrOrderFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to process order",
		http.StatusInternalServerError,
	)
)
