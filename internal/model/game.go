package model

import (
	"encoding/json"
	"strings"
)

// Game represents a single entry in the game library.
// It carries no identifier; a game is addressed by its position in the store.
type Game struct {
	Title     string `json:"title"`     // Display title (e.g., "Portal 2")
	Genre     string `json:"genre"`     // Free-form genre, matched by the filter endpoint
	Platform  string `json:"platform"`  // Platform the game shipped on (e.g., "PC", "PS4")
	Year      int    `json:"year"`      // Release year
	Developer string `json:"developer"` // Studio that made the game
}

// GamePayload is the raw body of a create or replace request.
// Every field is kept as undecoded JSON so that absent, null and wrongly
// typed values can be reported separately during validation.
type GamePayload struct {
	Title     json.RawMessage `json:"title"`
	Genre     json.RawMessage `json:"genre"`
	Platform  json.RawMessage `json:"platform"`
	Year      json.RawMessage `json:"year"`
	Developer json.RawMessage `json:"developer"`
}

// ValidationError lists every field violation found in a payload.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid game payload: " + strings.Join(e.Errors, " ")
}
