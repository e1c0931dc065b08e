package http

import (
	"github.com/MKhiriev/pos-backoffice/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP, middleware.Recoverer, h.withTraceID, h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	if h.gatherer != nil {
		router.Method("GET", "/metrics", metrics.Handler(h.gatherer))
	}

	router.Route("/api/auth", func(r chi.Router) {
		r.With(h.limitLogin).Post("/login", h.login)
		r.Post("/register", h.register)
		r.With(h.auth).Get("/me", h.me)
	})

	// administration, admin role and active account required
	router.Route("/api/users", func(r chi.Router) {
		r.Use(h.auth, h.requireAdmin)

		r.Get("/", h.listUsers)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getUser)
			r.Put("/", h.updateUser)
			r.Patch("/deactivate", h.deactivateUser)
			r.Post("/reset-token", h.generateResetToken)
			r.Put("/password", h.setPassword)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}
