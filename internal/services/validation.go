package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

func cleanName(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", validationError(field + " is required")
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return "", validationError(fmt.Sprintf("%s must be at most %d characters", field, maxNameLength))
	}
	return value, nil
}

// cleanDescription returns nil for an empty description so it is stored as NULL.
func cleanDescription(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return nil, validationError(fmt.Sprintf("description must be at most %d characters", maxDescriptionLength))
	}
	return &trimmed, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
