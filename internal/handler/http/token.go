package http

import (
	"net/http"

	"github.com/MKhiriev/go-seed-api/internal/app"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/utils"
	"github.com/MKhiriev/go-seed-api/models"
)

// token exchanges the OAuth2 password form (username carries the email) for
// a bearer token.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, utils.MaxRequestBodyBytes)
	if err := r.ParseForm(); err != nil {
		log.Debug().Err(err).Msg("invalid form was passed")
		writeDetail(w, app.MsgInvalidForm, http.StatusBadRequest)
		return
	}

	credentials := models.Credentials{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := h.validator.Validate(ctx, credentials); err != nil {
		log.Debug().Err(err).Msg("invalid credentials form")
		writeDetail(w, app.MsgInvalidForm, http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Login(ctx, credentials.Username, credentials.Password)
	if err != nil {
		writeError(w, r, err, app.MsgUserNotFound)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.String(),
		TokenType:   models.TokenTypeBearer,
	}, http.StatusOK)
}
