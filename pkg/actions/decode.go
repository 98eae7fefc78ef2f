// Package actions holds the building blocks shared by the workflow action handlers.
package actions

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Decode parses a step configuration into T. Malformed or empty input never
// fails: the zero T is returned with usedDefaults set, and the caller's
// required-field checks report what is missing.
func Decode[T any](logger *slog.Logger, raw string) (config T, usedDefaults bool) {
	if strings.TrimSpace(raw) == "" {
		logger.Debug("Empty action configuration, using defaults")

		return config, true
	}

	if err := json.Unmarshal([]byte(raw), &config); err != nil {
		logger.Warn("Failed to parse action configuration, using defaults", "error", err)

		var zero T

		return zero, true
	}

	return config, false
}
