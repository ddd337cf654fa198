package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is wrapped by lookups and mutations that match no row.
var ErrNotFound = errors.New("not found")

const dateLayout = "2006-01-02"

var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().Format(dateLayout), nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(dateLayout), nil
}

func normalizeMealType(value string) (string, error) {
	v := normalizeName(value)
	if !mealTypes[v] {
		return "", fmt.Errorf("invalid meal type %q, expected breakfast, lunch, dinner or snack", value)
	}
	return v, nil
}

func requireID(kind string, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%s id is required", kind)
	}
	return nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
