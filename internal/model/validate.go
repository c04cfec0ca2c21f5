package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Validate checks the payload and, when it is acceptable, returns the
// populated Game. Every violation is collected and reported in field order
// (title, genre, platform, year, developer).
func (p GamePayload) Validate() (*Game, error) {
	var (
		g    Game
		errs []string
	)

	text := func(name string, raw json.RawMessage, dst *string) {
		s, msg := decodeText(name, raw)
		if msg != "" {
			errs = append(errs, msg)
			return
		}
		*dst = s
	}

	text("title", p.Title, &g.Title)
	text("genre", p.Genre, &g.Genre)
	text("platform", p.Platform, &g.Platform)
	if year, msg := decodeYear(p.Year); msg != "" {
		errs = append(errs, msg)
	} else {
		g.Year = year
	}
	text("developer", p.Developer, &g.Developer)

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return &g, nil
}

// Largest year accepted: every integer up to 2^53 has an exact float64 form.
const maxYearMagnitude = 1 << 53

func isMissing(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func requiredMsg(name string) string {
	return fmt.Sprintf("Field %q is required.", name)
}

func decodeText(name string, raw json.RawMessage) (string, string) {
	if isMissing(raw) {
		return "", requiredMsg(name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Sprintf("Field %q must be a string.", name)
	}
	if strings.TrimSpace(s) == "" {
		return "", requiredMsg(name)
	}
	return s, ""
}

func decodeYear(raw json.RawMessage) (int, string) {
	if isMissing(raw) {
		return 0, requiredMsg("year")
	}
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '"' {
		// Quoted numbers are rejected; a blank string counts as missing.
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil && strings.TrimSpace(s) == "" {
			return 0, requiredMsg("year")
		}
		return 0, `Field "year" must be an integer.`
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return 0, `Field "year" must be an integer.`
	}
	f, err := n.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, `Field "year" must be an integer.`
	}
	if math.IsInf(f, 0) || math.Abs(f) > maxYearMagnitude {
		return 0, `Field "year" is out of range.`
	}
	if f != math.Trunc(f) {
		return 0, `Field "year" must be an integer.`
	}
	return int(f), ""
}
