package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-seed-api/internal/app"
	"github.com/MKhiriev/go-seed-api/internal/service"
	"github.com/MKhiriev/go-seed-api/internal/store"
	"github.com/MKhiriev/go-seed-api/internal/utils"
	"github.com/MKhiriev/go-seed-api/models"
)

var trinity = models.User{
	ID:       "01890a5d-ac96-774b-bcce-b302099a8057",
	Email:    "trinity@zion.org",
	Username: "trinity",
	Password: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid Bearer token", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "lower case scheme", header: "bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "surrounding spaces in token", header: "Bearer   tok  ", wantToken: "tok"},
		{name: "scheme only", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "foreign scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuth_Middleware_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		resolveErr  error
		resolves    bool
		wantStatus  int
		wantDetail  string
		wantNext    bool
		wantWWWAuth bool
	}{
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantDetail:  app.MsgNotAuthenticated,
			wantWWWAuth: true,
		},
		{
			name:        "malformed header",
			header:      "Token abc",
			wantStatus:  http.StatusUnauthorized,
			wantDetail:  app.MsgNotAuthenticated,
			wantWWWAuth: true,
		},
		{
			name:        "token rejected",
			header:      "Bearer bad",
			resolves:    true,
			resolveErr:  service.ErrUnauthenticated,
			wantStatus:  http.StatusUnauthorized,
			wantDetail:  app.MsgCouldNotValidateCredentials,
			wantWWWAuth: true,
		},
		{
			name:       "store unavailable",
			header:     "Bearer good",
			resolves:   true,
			resolveErr: fmt.Errorf("lookup: %w", store.ErrStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantDetail: app.MsgServiceUnavailable,
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			resolves:   true,
			wantStatus: http.StatusNoContent,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t)
			if tt.resolves {
				token, _ := getTokenFromAuthHeader(tt.header)
				mocks.auth.EXPECT().ResolveCurrentIdentity(gomock.Any(), token).Return(trinity, tt.resolveErr)
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				user, ok := utils.GetCurrentUserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, trinity, user)
				w.WriteHeader(http.StatusNoContent)
			})

			rr := executeAuth(h, tt.header, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantDetail != "" {
				assert.JSONEq(t, fmt.Sprintf(`{"detail":%q}`, tt.wantDetail), rr.Body.String())
			}
			if tt.wantWWWAuth {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
