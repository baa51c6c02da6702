package category

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
)

var (
	ErrCategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Category not found",
		http.StatusNotFound,
	)

	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid category ID",
		http.StatusBadRequest,
	)

	ErrDuplicateCategory = apperror.New(
		apperror.CodeAlreadyExists,
		"A category with this name already exists",
		http.StatusConflict,
	)

	ErrUploadFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to upload category cover",
		http.StatusInternalServerError,
	)
)
