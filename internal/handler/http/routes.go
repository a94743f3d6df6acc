package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/MKhiriev/go-seed-api/internal/app"
	"github.com/MKhiriev/go-seed-api/internal/config"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.metrics.middleware)
	router.Use(withSecureHeaders())
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	router.Use(middleware.Compress(5))
	router.Use(withGZipRequest)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(h.loginRateLimit()).Post("/auth/token", h.token)

		r.Get("/item", h.listItems)
		r.Post("/item", h.createItem)
		r.Get("/item/{item_id}", h.getItem)
		r.Put("/item/{item_id}", h.updateItem)
		r.Delete("/item/{item_id}", h.deleteItem)

		r.Get("/users", h.listUsers)
		r.Post("/users", h.createUser)
		r.Get("/users/{user_id}", h.getUser)

		r.Get("/api/version", h.getServerVersion)
		r.Get("/healthz", h.health)
		r.Method(http.MethodGet, "/metrics", h.metrics.handler())
	})

	// routes with bearer authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users/me", h.currentUser)
		r.Put("/users/{user_id}", h.updateUser)
		r.Delete("/users/{user_id}", h.deleteUser)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// loginRateLimit limits token requests per client IP and minute.
func (h *Handler) loginRateLimit() func(http.Handler) http.Handler {
	limit := h.cfg.LoginRateLimit
	if limit <= 0 {
		limit = config.DefaultLoginRateLimit
	}

	return httprate.Limit(
		limit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeDetail(w, app.MsgTooManyRequests, http.StatusTooManyRequests)
		}),
	)
}
