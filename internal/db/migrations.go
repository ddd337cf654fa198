package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "food_log",
		sql: `
CREATE TABLE IF NOT EXISTS food_entries (
  id TEXT PRIMARY KEY,
  entry_date TEXT NOT NULL,
  meal_type TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_food_entries_date ON food_entries(entry_date);

CREATE TABLE IF NOT EXISTS food_groups (
  id TEXT PRIMARY KEY,
  entry_id TEXT NOT NULL REFERENCES food_entries(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_food_groups_entry ON food_groups(entry_id);

CREATE TABLE IF NOT EXISTS food_items (
  id TEXT PRIMARY KEY,
  group_id TEXT NOT NULL REFERENCES food_groups(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  quantity REAL NOT NULL CHECK(quantity >= 0),
  unit TEXT NOT NULL DEFAULT '',
  unit_kind TEXT NOT NULL CHECK(unit_kind IN ('weight', 'volume', 'count')),
  servings REAL NOT NULL CHECK(servings >= 0),
  resolved INTEGER NOT NULL DEFAULT 1,
  calories REAL NOT NULL DEFAULT 0 CHECK(calories >= 0),
  protein_g REAL NOT NULL DEFAULT 0 CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL DEFAULT 0 CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL DEFAULT 0 CHECK(fat_g >= 0),
  fiber_g REAL NOT NULL DEFAULT 0 CHECK(fiber_g >= 0),
  sugar_g REAL NOT NULL DEFAULT 0 CHECK(sugar_g >= 0),
  saturated_fat_g REAL NOT NULL DEFAULT 0 CHECK(saturated_fat_g >= 0),
  unsaturated_fat_g REAL NOT NULL DEFAULT 0 CHECK(unsaturated_fat_g >= 0),
  trans_fat_g REAL NOT NULL DEFAULT 0 CHECK(trans_fat_g >= 0),
  micronutrients_json TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_food_items_group ON food_items(group_id);
`,
	},
	{
		version: 2,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 3,
		name:    "reference_servings",
		sql: `
CREATE TABLE IF NOT EXISTS reference_servings (
  source TEXT NOT NULL,
  source_ref TEXT NOT NULL,
  name TEXT NOT NULL,
  brand TEXT NOT NULL DEFAULT '',
  serving_quantity REAL NOT NULL CHECK(serving_quantity > 0),
  serving_unit TEXT NOT NULL,
  serving_weight_g REAL,
  unit_kind TEXT NOT NULL CHECK(unit_kind IN ('weight', 'volume', 'count')),
  nutrients_json TEXT NOT NULL DEFAULT '{}',
  note TEXT NOT NULL DEFAULT '',
  fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(source, source_ref)
);
`,
	},
}

var defaultConfig = map[string]string{
	"strict_units":      "false",
	"default_meal_type": "snack",
}

// ApplyMigrations brings the schema up to date and seeds default config.
// It is safe to run repeatedly.
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for key, value := range defaultConfig {
		if _, err := db.Exec(`INSERT OR IGNORE INTO app_config(key, value) VALUES(?, ?)`, key, value); err != nil {
			return fmt.Errorf("seed default config %s: %w", key, err)
		}
	}
	return nil
}
