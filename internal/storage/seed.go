package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"games-api/internal/model"
	"games-api/pkg/fsutils"
)

// DefaultSeed returns the library the server starts with when no seed file
// is configured.
func DefaultSeed() []model.Game {
	return []model.Game{
		{Title: "The Legend of Zelda: Ocarina of Time", Genre: "Action-Adventure", Platform: "Nintendo 64", Year: 1998, Developer: "Nintendo EAD"},
		{Title: "Half-Life 2", Genre: "FPS", Platform: "PC", Year: 2004, Developer: "Valve"},
		{Title: "Portal 2", Genre: "Puzzle", Platform: "PC", Year: 2011, Developer: "Valve"},
		{Title: "God of War", Genre: "Action", Platform: "PS4", Year: 2018, Developer: "Santa Monica Studio"},
		{Title: "The Last of Us Part II", Genre: "Action-Adventure", Platform: "PS4", Year: 2020, Developer: "Naughty Dog"},
		{Title: "Elden Ring", Genre: "Action RPG", Platform: "PC", Year: 2022, Developer: "FromSoftware"},
		{Title: "Baldur's Gate 3", Genre: "RPG", Platform: "PC", Year: 2023, Developer: "Larian Studios"},
	}
}

// LoadSeedFile reads a JSON array of games from path.
// Each entry goes through the same validation as a create request; the first
// invalid entry fails the whole load. The file is only read, never written.
func LoadSeedFile(path string) ([]model.Game, error) {
	if path == "" {
		return nil, fmt.Errorf("seed file path cannot be empty")
	}

	data, err := fsutils.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("seed file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	var payloads []model.GamePayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data from %s: %w", path, err)
	}

	games := make([]model.Game, 0, len(payloads))
	for i, p := range payloads {
		g, err := p.Validate()
		if err != nil {
			return nil, fmt.Errorf("seed entry %d in %s: %w", i, path, err)
		}
		games = append(games, *g)
	}
	return games, nil
}
