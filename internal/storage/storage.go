package storage

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"games-api/internal/model"
)

var (
	// ErrInvalidQuery is returned by Filter when the genre pattern is blank.
	ErrInvalidQuery = errors.New("genre query is required")
	// ErrInvalidIndex is returned by ParseIndex for non-integer input.
	ErrInvalidIndex = errors.New("index must be an integer")
	// ErrIndexOutOfRange is wrapped by IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// IndexError reports an index outside the store bounds at the time of the call.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// GameStore defines the operations the HTTP layer needs on the game library.
// Indices are positional: they are contiguous from 0 to Len()-1 and shift
// down after a Delete.
type GameStore interface {
	// List returns every game in current order.
	List() []model.Game

	// Filter returns the games whose genre contains pattern, ignoring case.
	Filter(pattern string) ([]model.Game, error)

	// Get returns the game at index.
	Get(index int) (model.Game, error)

	// Append adds a game at the end and returns it with its new index.
	Append(game model.Game) (model.Game, int)

	// Replace overwrites the game at index.
	Replace(index int, game model.Game) (model.Game, error)

	// Delete removes the game at index and returns it.
	Delete(index int) (model.Game, error)

	// Len returns the current number of games.
	Len() int
}

// ParseIndex converts a raw path segment into an index.
// Any finite whole number is accepted, including forms like "1.0" and "1e0";
// range checking is left to the store. Magnitudes beyond the int32 range are
// clamped so they still fail the range check.
func ParseIndex(raw string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrInvalidIndex
	}
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32, nil
	case f < math.MinInt32:
		return math.MinInt32, nil
	}
	return int(f), nil
}
