package db_test

import (
	"path/filepath"
	"testing"

	"github.com/saadjs/servings-cli/internal/db"
)

func TestApplyMigrationsIdempotentAndSeedsDefaults(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "servings.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 3 {
		t.Fatalf("expected 3 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"food_entries", "food_groups", "food_items", "app_config", "reference_servings"} {
		var n int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var microsCol int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('food_items') WHERE name = 'micronutrients_json'`).Scan(&microsCol); err != nil {
		t.Fatalf("check food_items micronutrients_json column: %v", err)
	}
	if microsCol != 1 {
		t.Fatalf("expected micronutrients_json column in food_items table")
	}

	var strict string
	if err := sqldb.QueryRow(`SELECT value FROM app_config WHERE key = 'strict_units'`).Scan(&strict); err != nil {
		t.Fatalf("read seeded config: %v", err)
	}
	if strict != "false" {
		t.Fatalf("expected strict_units default false, got %q", strict)
	}
}

func TestForeignKeysCascadeGroupsAndItems(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "servings.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := sqldb.Exec(`INSERT INTO food_entries(id, entry_date, meal_type) VALUES('e1', '2026-02-10', 'lunch')`); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO food_groups(id, entry_id, position, name) VALUES('g1', 'e1', 0, 'Toast')`); err != nil {
		t.Fatalf("insert group: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO food_items(id, group_id, position, name, quantity, unit, unit_kind, servings) VALUES('i1', 'g1', 0, 'Bread', 2, 'slice', 'count', 2)`); err != nil {
		t.Fatalf("insert item: %v", err)
	}
	if _, err := sqldb.Exec(`DELETE FROM food_entries WHERE id = 'e1'`); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	var items int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM food_items`).Scan(&items); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if items != 0 {
		t.Fatalf("expected items to cascade-delete, got %d", items)
	}
}
