package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-seed-api/internal/app"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/service"
	"github.com/MKhiriev/go-seed-api/internal/utils"
	"github.com/MKhiriev/go-seed-api/models"
)

const userIDParam = "user_id"

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err, app.MsgUserNotFound)
		return
	}

	public := make([]models.UserPublic, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	utils.WriteJSON(w, public, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetByID(r.Context(), chi.URLParam(r, userIDParam))
	if err != nil {
		writeError(w, r, err, app.MsgUserNotFound)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var registration models.UserRegistration
	if err := utils.DecodeJSON(w, r, &registration); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.createUser").Msg(app.MsgInvalidJSON)
		writeDetail(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.Create(r.Context(), registration)
	if err != nil {
		writeError(w, r, err, app.MsgUserNotFound)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusCreated)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.GetCurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated, app.MsgUserNotFound)
		return
	}

	utils.WriteJSON(w, current.Public(), http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.GetCurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated, app.MsgUserNotFound)
		return
	}

	var patch models.UserPatch
	if err := utils.DecodeJSON(w, r, &patch); err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "*Handler.updateUser").Msg(app.MsgInvalidJSON)
		writeDetail(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	patch.UpdatedAt = nil

	user, err := h.services.UserService.Update(r.Context(), current, chi.URLParam(r, userIDParam), patch)
	if err != nil {
		writeError(w, r, err, app.MsgUserNotFound)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	current, ok := utils.GetCurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrUnauthenticated, app.MsgUserNotFound)
		return
	}

	if err := h.services.UserService.Delete(r.Context(), current, chi.URLParam(r, userIDParam)); err != nil {
		writeError(w, r, err, app.MsgUserNotFound)
		return
	}

	utils.WriteJSON(w, true, http.StatusOK)
}
