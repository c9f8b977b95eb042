package main

import (
	"net/http"

	"github.com/AndresBaldeonMora/SM-Buscador-Peliculas/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.getMovies)
			r.Get("/{id}", app.getMovie)
			r.Get("/{id}/comments", app.getComments)
			r.With(app.requireAuthenticatedUser).Post("/{id}/comments", app.createComment)
		})
		r.Route("/catalog", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.getCatalog)
			r.Put("/search", app.setCatalogSearch)
			r.Put("/genres", app.setCatalogGenres)
			r.Post("/more", app.catalogLoadMore)
			r.Post("/filters/apply", app.applyCatalogFilters)
			r.Post("/filters/clear", app.clearCatalogFilters)
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.getFavorites)
			r.Post("/", app.addFavorite)
			r.Delete("/{id}", app.removeFavorite)
			r.Delete("/", app.resetFavorites)
		})
		r.Route("/preferences", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/genres", app.getPreferredGenres)
			r.Put("/genres", app.savePreferredGenres)
		})
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/signup", app.signup)
			r.Post("/login", app.login)
			r.Post("/social", app.socialLogin)
			r.With(app.requireAuthenticatedUser).Put("/password", app.changePassword)
			r.With(app.requireAuthenticatedUser).Get("/me", app.me)
		})
	})
	return router
}
