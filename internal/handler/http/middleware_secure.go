package http

import (
	"net/http"

	"github.com/unrolled/secure"

	"github.com/MKhiriev/go-seed-api/internal/app"
	"github.com/MKhiriev/go-seed-api/internal/logger"
)

// withSecureHeaders sets the security response headers for a JSON API.
func withSecureHeaders() func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secureMiddleware.Process(w, r); err != nil {
				logger.FromRequest(r).Warn().Err(err).Msg("secure headers blocked request")
				writeDetail(w, app.MsgInternalServerError, http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
