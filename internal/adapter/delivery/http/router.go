// Package http provides the HTTP delivery layer of the router monitor: routing,
// request decoding and validation, authentication of the acting user and the
// JSON envelopes returned to the dashboard.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes a Chi router with middleware and the /api/v1 routes.
// checkLimit wraps the endpoints that trigger probing.
func NewRouter(
	logger *httplog.Logger,
	checkLimit func(http.Handler) http.Handler,
	routerUseCase routerUseCase,
	likeUseCase likeUseCase,
	userUseCase userUseCase,
) *chi.Mux {
	if checkLimit == nil {
		checkLimit = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*"},
		AllowedMethods:   []string{"POST", "GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept", userIDHeader},
		AllowCredentials: false,
		MaxAge:           84600,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/swagger.yml"),
	))

	r.Get("/docs/swagger.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./docs/swagger.yml")
	})

	validate := newValidator()
	rh := newRouterHandler(routerUseCase, validate)
	lh := newLikeHandler(likeUseCase)
	uh := newUserHandler(userUseCase, validate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", handlePing)

		r.Route("/routers", func(r chi.Router) {
			r.Get("/", rh.listRouters)
			r.With(authenticate).Post("/", rh.createRouter)
			r.With(checkLimit).Post("/check", rh.checkAll)

			r.Route("/{routerID}", func(r chi.Router) {
				r.Get("/", rh.getRouter)
				r.With(checkLimit).Post("/check", rh.checkRouter)

				r.Group(func(r chi.Router) {
					r.Use(authenticate)

					r.Put("/", rh.updateRouter)
					r.Delete("/", rh.deleteRouter)
					r.Put("/like", lh.like)
					r.Delete("/like", lh.unlike)
				})
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", uh.registerUser)

			r.Route("/me", func(r chi.Router) {
				r.Use(authenticate)

				r.Get("/", uh.getMe)
				r.Post("/invite", uh.applyInviteCode)
			})
		})
	})

	return r
}
