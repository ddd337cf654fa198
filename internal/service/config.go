package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

const (
	// ConfigStrictUnits rejects logged portions whose unit cannot be classified.
	ConfigStrictUnits     = "strict_units"
	ConfigDefaultMealType = "default_meal_type"
)

var configValidators = map[string]func(string) (string, error){
	ConfigStrictUnits: func(v string) (string, error) {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return "", fmt.Errorf("%s must be true or false", ConfigStrictUnits)
		}
		return strconv.FormatBool(b), nil
	},
	ConfigDefaultMealType: normalizeMealType,
}

func SetConfig(db *sql.DB, key, value string) error {
	key = normalizeName(key)
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	validate, ok := configValidators[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	value, err := validate(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = normalizeName(key)
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

func strictUnits(db *sql.DB) (bool, error) {
	v, ok, err := GetConfig(db, ConfigStrictUnits)
	if err != nil || !ok {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}

func defaultMealType(db *sql.DB) (string, error) {
	v, ok, err := GetConfig(db, ConfigDefaultMealType)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "snack", nil
	}
	return v, nil
}
