// Package handlers exposes the services as JSON endpoints under /api.
package handlers

import (
	"net/http"

	"github.com/azuldeco/azul-admin/httpx"
	"github.com/azuldeco/azul-admin/internal/services"
	"github.com/azuldeco/azul-admin/internal/settings"
	"github.com/azuldeco/azul-admin/validation"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// respondError maps service errors to status codes. Anything unexpected is
// logged with the request id and reported as internal_error.
func respondError(w http.ResponseWriter, r *http.Request, l *log.Logger, err error) {
	var vs validation.Violations
	switch {
	case errors.As(err, &vs):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", vs)
	case errors.Is(err, services.ErrInvalidStatus):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
	case errors.Is(err, settings.ErrInvalidValue):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_value", nil)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, settings.ErrUnknownKey):
		httpx.JSONError(w, http.StatusNotFound, "unknown_setting", nil)
	case errors.Is(err, services.ErrDuplicateCode),
		errors.Is(err, services.ErrDuplicatePhone),
		errors.Is(err, services.ErrDuplicateName):
		httpx.JSONError(w, http.StatusConflict, errors.Cause(err).Error(), nil)
	case errors.Is(err, services.ErrNumberConflict):
		httpx.JSONError(w, http.StatusConflict, "number_conflict", nil)
	default:
		l.WithError(err).WithFields(log.Fields{
			"request_id": httpx.RequestID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Error("request failed")
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func decodeOr400(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.Decode(r, dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

func pathIDOr400(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := httpx.PathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
	}
	return id, ok
}
