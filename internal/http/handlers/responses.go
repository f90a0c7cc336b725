package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/http/respond"
	"github.com/tin229oo/nadias-lending/internal/identity"
	"github.com/tin229oo/nadias-lending/internal/lending"
)

// writeDomainError maps the domain error taxonomy onto HTTP statuses, keeping
// the error messages verbatim so collaborators can surface them directly.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lending.ErrNotAuthenticated):
		respond.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, lending.ErrNotAuthorized):
		respond.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, lending.ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, lending.ErrLoanNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, identity.ErrDuplicateEmail):
		respond.Error(w, http.StatusConflict, err.Error())
	default:
		zap.L().Error("internal error", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}
