package web

import (
	"github.com/avolkov/userboard/internal/auth"
	"github.com/avolkov/userboard/internal/directory"
	"github.com/avolkov/userboard/internal/metrics"
	"github.com/avolkov/userboard/internal/session"
	"github.com/avolkov/userboard/internal/web/handlers"
	"github.com/avolkov/userboard/internal/web/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(dir directory.Client, sessions session.StoreProvider, cookies *auth.Manager, renderer *render.Renderer) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(dir, sessions, cookies, renderer)
	userHandler := handlers.NewUserHandler(dir, renderer)

	r.Get("/", sessionHandler.Entry)
	r.Get("/login", sessionHandler.LoginPage)
	r.Post("/login", sessionHandler.Login)
	r.Post("/logout", sessionHandler.Logout)

	r.Handle("/metrics", metrics.Handler())

	// Authenticated pages; the guard redirects to /login before any
	// directory call happens.
	r.Group(func(r chi.Router) {
		r.Use(cookies.RequireSession)

		r.Get("/users", userHandler.List)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/edit", userHandler.Edit)
			r.Post("/", userHandler.Update)
			r.Post("/delete", userHandler.Delete)
		})
	})

	return r
}
