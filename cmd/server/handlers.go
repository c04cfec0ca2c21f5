package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"games-api/internal/model"
	"games-api/internal/storage"
	"games-api/pkg/fsutils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// Response bodies for the write endpoints.
type (
	gameResponse struct {
		Message string     `json:"message"`
		Index   int        `json:"index"`
		Game    model.Game `json:"game"`
	}
	deleteResponse struct {
		Message string     `json:"message"`
		Removed model.Game `json:"removed"`
	}
	errorResponse struct {
		Error string `json:"error"`
	}
	validationResponse struct {
		Errors []string `json:"errors"`
	}
)

// writeJSON encodes v with the given status. Encoding failures are only
// logged since the header is already sent.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.Error("Error writing JSON response", "error", err, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
	}
}

// writeError maps store and validation errors to their 400 bodies.
// An oversized body is a 413 and anything unrecognised a 500.
func (app *application) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ierr     *storage.IndexError
		verr     *model.ValidationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.Is(err, storage.ErrInvalidQuery):
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: `Query "genre" is required.`})
	case errors.Is(err, storage.ErrInvalidIndex):
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "Index must be an integer."})
	case errors.As(err, &ierr):
		msg := fmt.Sprintf("Index out of range. Must be between 0 and %d.", ierr.Len-1)
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: msg})
	case errors.As(err, &verr):
		app.writeJSON(w, r, http.StatusBadRequest, validationResponse{Errors: verr.Errors})
	case errors.As(err, &tooLarge):
		app.writeJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{Error: "Request body too large."})
	default:
		app.logger.Error("Unhandled error", "error", err, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()))
		app.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

// decodeGame reads and validates a write payload. A body that is not a JSON
// object counts as an empty payload, so every field is reported as required.
func (app *application) decodeGame(w http.ResponseWriter, r *http.Request) (*model.Game, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	var payload model.GamePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		app.logger.Debug("Request body is not a JSON object", "error", err, "request_id", middleware.GetReqID(r.Context()))
		payload = model.GamePayload{}
	}
	return payload.Validate()
}

// indexParam parses the {id} URL parameter.
func indexParam(r *http.Request) (int, error) {
	return storage.ParseIndex(chi.URLParam(r, "id"))
}

// docsHandler serves the API documentation page.
func (app *application) docsHandler(w http.ResponseWriter, r *http.Request) {
	page := filepath.Join(app.staticDir, "index.html")
	if !fsutils.FileExists(page) {
		app.logger.Warn("Docs page not found", "path", page)
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, page)
}

func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "games": app.store.Len()})
}

func (app *application) listGamesHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, app.store.List())
}

func (app *application) filterGamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := app.store.Filter(r.URL.Query().Get("genre"))
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, games)
}

func (app *application) getGameHandler(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	game, err := app.store.Get(i)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, game)
}

func (app *application) createGameHandler(w http.ResponseWriter, r *http.Request) {
	game, err := app.decodeGame(w, r)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	added, index := app.store.Append(*game)
	app.logger.Info("Game added", "index", index, "title", added.Title, "request_id", middleware.GetReqID(r.Context()))
	app.writeJSON(w, r, http.StatusCreated, gameResponse{Message: "Game added", Index: index, Game: added})
}

func (app *application) replaceGameHandler(w http.ResponseWriter, r *http.Request) {
	// Index errors take precedence over payload errors.
	i, err := indexParam(r)
	if err == nil {
		_, err = app.store.Get(i)
	}
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	game, err := app.decodeGame(w, r)
	if err != nil {
		app.writeError(w, r, err)
		return
	}

	// The store may have shrunk since the check above; Replace re-checks under its lock.
	updated, err := app.store.Replace(i, *game)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.logger.Info("Game updated", "index", i, "title", updated.Title, "request_id", middleware.GetReqID(r.Context()))
	app.writeJSON(w, r, http.StatusOK, gameResponse{Message: "Game updated", Index: i, Game: updated})
}

func (app *application) deleteGameHandler(w http.ResponseWriter, r *http.Request) {
	i, err := indexParam(r)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	removed, err := app.store.Delete(i)
	if err != nil {
		app.writeError(w, r, err)
		return
	}
	app.logger.Info("Game deleted", "index", i, "title", removed.Title, "request_id", middleware.GetReqID(r.Context()))
	app.writeJSON(w, r, http.StatusOK, deleteResponse{Message: "Game deleted", Removed: removed})
}
