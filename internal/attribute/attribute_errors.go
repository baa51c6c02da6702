package attribute

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
)

var (
	ErrUnknownKind = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown attribute kind",
		http.StatusBadRequest,
	)

	ErrAttributeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attribute not found",
		http.StatusNotFound,
	)

	ErrInvalidAttributeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attribute ID",
		http.StatusBadRequest,
	)

	ErrDuplicateAttribute = apperror.New(
		apperror.CodeAlreadyExists,
		"An attribute with this name already exists for this kind",
		http.StatusConflict,
	)
)
