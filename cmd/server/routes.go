package main

import (
	"log/slog"
	"net/http"

	"games-api/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// application holds the application-wide dependencies.
type application struct {
	logger      *slog.Logger
	store       storage.GameStore
	staticDir   string   // Holds index.html and any assets it links
	corsOrigins []string // Allowed CORS origins; "*" or empty allows all
}

// routes sets up the HTTP router for the games API.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(seedRequestID)
	r.Use(middleware.RequestID)
	r.Use(echoRequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handlerTimeout))
	r.Use(app.cors)

	// --- Docs page and static assets ---
	r.Get("/", app.docsHandler)
	fs := http.FileServer(http.Dir(app.staticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fs))

	r.Get("/healthz", app.healthHandler)

	// --- Games API ---
	// chi matches the static "filter" segment before the {id} parameter.
	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", app.listGamesHandler)
		r.Get("/filter", app.filterGamesHandler)
		r.Post("/", app.createGameHandler)
		r.Get("/{id}", app.getGameHandler)
		r.Put("/{id}", app.replaceGameHandler)
		r.Delete("/{id}", app.deleteGameHandler)
	})

	return r
}
