package product

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
)

var (
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid product ID",
		http.StatusBadRequest,
	)

	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Product not found",
		http.StatusNotFound,
	)

	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"Batch request needs at least one product ID",
		http.StatusBadRequest,
	)

	ErrProductInactive = apperror.New(
		apperror.CodeNotFound,
		"Product is no longer available",
		http.StatusNotFound,
	)
)
