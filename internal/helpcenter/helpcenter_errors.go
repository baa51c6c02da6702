package helpcenter

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
)

var (
	ErrArticleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Article not found",
		http.StatusNotFound,
	)

	ErrInvalidArticleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid article ID",
		http.StatusBadRequest,
	)

	ErrDuplicateSlug = apperror.New(
		apperror.CodeAlreadyExists,
		"An article with this title already exists",
		http.StatusConflict,
	)
)
