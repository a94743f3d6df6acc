package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-seed-api/internal/app"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/service"
	"github.com/MKhiriev/go-seed-api/internal/store"
	"github.com/MKhiriev/go-seed-api/internal/utils"
	"github.com/MKhiriev/go-seed-api/internal/validators"
	"github.com/MKhiriev/go-seed-api/models"
)

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []struct {
	target error
	status int
}{
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrConflict, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusBadRequest},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{validators.ErrValidation, http.StatusBadRequest},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{store.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// detailFromError renders the client-facing message for err.
// notFound is used for [service.ErrNotFound].
func detailFromError(err error, notFound string) string {
	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		return conflict.Error()
	}

	var validation *validators.ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}

	switch statusFromError(err) {
	case http.StatusNotFound:
		return notFound
	case http.StatusBadRequest:
		if errors.Is(err, service.ErrInvalidCredentials) {
			return app.MsgIncorrectEmailOrPassword
		}
		return app.MsgInvalidDataProvided
	case http.StatusUnauthorized:
		return app.MsgCouldNotValidateCredentials
	case http.StatusForbidden:
		return app.MsgNotEnoughPermissions
	case http.StatusServiceUnavailable:
		return app.MsgServiceUnavailable
	default:
		return app.MsgInternalServerError
	}
}

func writeDetail(w http.ResponseWriter, detail string, status int) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.WriteJSON(w, models.ErrorResponse{Detail: detail}, status)
}

// writeError logs err once and answers with the mapped status and detail.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeDetail(w, detailFromError(err, notFound), status)
}
