package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/nutrient"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
)

type ListEntriesFilter struct {
	Date     string
	FromDate string
	ToDate   string
	MealType string
	Limit    int
}

// UpdateEntryInput changes entry metadata. Nil fields are left as they are.
// Items are never rescaled.
type UpdateEntryInput struct {
	ID          uuid.UUID
	Date        *string
	MealType    *string
	Description *string
}

func ListEntries(db *sql.DB, f ListEntriesFilter) ([]model.FoodEntry, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}

	query := `SELECT id, entry_date, meal_type, description, created_at, updated_at FROM food_entries WHERE 1=1`
	args := make([]any, 0)
	if strings.TrimSpace(f.Date) != "" {
		d, err := normalizeDate(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND entry_date = ?`
		args = append(args, d)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		d, err := normalizeDate(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND entry_date >= ?`
		args = append(args, d)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		d, err := normalizeDate(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND entry_date <= ?`
		args = append(args, d)
	}
	if strings.TrimSpace(f.MealType) != "" {
		meal, err := normalizeMealType(f.MealType)
		if err != nil {
			return nil, err
		}
		query += ` AND meal_type = ?`
		args = append(args, meal)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT ?`
	args = append(args, f.Limit)

	return queryEntries(db, query, args...)
}

// entriesBetween returns every entry in [from, to] in chronological order.
func entriesBetween(db *sql.DB, from, to string) ([]model.FoodEntry, error) {
	return queryEntries(db, `
SELECT id, entry_date, meal_type, description, created_at, updated_at
FROM food_entries
WHERE entry_date >= ? AND entry_date <= ?
ORDER BY entry_date ASC, created_at ASC
`, from, to)
}

func EntryByID(db *sql.DB, id uuid.UUID) (model.FoodEntry, error) {
	if err := requireID("entry", id); err != nil {
		return model.FoodEntry{}, err
	}
	entries, err := queryEntries(db, `
SELECT id, entry_date, meal_type, description, created_at, updated_at
FROM food_entries WHERE id = ?
`, id.String())
	if err != nil {
		return model.FoodEntry{}, err
	}
	if len(entries) == 0 {
		return model.FoodEntry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return entries[0], nil
}

func UpdateEntry(db *sql.DB, in UpdateEntryInput) error {
	current, err := EntryByID(db, in.ID)
	if err != nil {
		return err
	}
	if in.Date != nil {
		if current.Date, err = normalizeDate(*in.Date); err != nil {
			return err
		}
	}
	if in.MealType != nil {
		if current.MealType, err = normalizeMealType(*in.MealType); err != nil {
			return err
		}
	}
	if in.Description != nil {
		current.Description = strings.TrimSpace(*in.Description)
	}

	_, err = db.Exec(`
UPDATE food_entries
SET entry_date = ?, meal_type = ?, description = ?, updated_at = ?
WHERE id = ?
`, current.Date, current.MealType, current.Description, now(), in.ID.String())
	if err != nil {
		return fmt.Errorf("update entry %s: %w", in.ID, err)
	}
	return nil
}

func DeleteEntry(db *sql.DB, id uuid.UUID) error {
	if err := requireID("entry", id); err != nil {
		return err
	}
	res, err := db.Exec(`DELETE FROM food_entries WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for entry %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// RemoveItem deletes one item. A group left without items is deleted, and so
// is an entry left without groups. The returned flag reports the latter.
func RemoveItem(db *sql.DB, itemID uuid.UUID) (bool, error) {
	if err := requireID("item", itemID); err != nil {
		return false, err
	}
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin remove item tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var groupID, entryID string
	err = tx.QueryRow(`
SELECT g.id, g.entry_id FROM food_items i JOIN food_groups g ON g.id = i.group_id WHERE i.id = ?
`, itemID.String()).Scan(&groupID, &entryID)
	if err == sql.ErrNoRows {
		return false, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("lookup item %s: %w", itemID, err)
	}
	if _, err := tx.Exec(`DELETE FROM food_items WHERE id = ?`, itemID.String()); err != nil {
		return false, fmt.Errorf("delete item %s: %w", itemID, err)
	}
	if _, err := tx.Exec(`DELETE FROM food_groups WHERE id = ? AND NOT EXISTS (SELECT 1 FROM food_items WHERE group_id = ?)`, groupID, groupID); err != nil {
		return false, fmt.Errorf("prune group %s: %w", groupID, err)
	}
	res, err := tx.Exec(`DELETE FROM food_entries WHERE id = ? AND NOT EXISTS (SELECT 1 FROM food_groups WHERE entry_id = ?)`, entryID, entryID)
	if err != nil {
		return false, fmt.Errorf("prune entry %s: %w", entryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected for entry %s: %w", entryID, err)
	}
	if affected == 0 {
		if _, err := tx.Exec(`UPDATE food_entries SET updated_at = ? WHERE id = ?`, now(), entryID); err != nil {
			return false, fmt.Errorf("touch entry %s: %w", entryID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit remove item tx: %w", err)
	}
	return affected > 0, nil
}

// queryEntries reads entry rows, then their groups and items. Rows are fully
// drained before the nested queries run since the pool holds one connection.
func queryEntries(db *sql.DB, query string, args ...any) ([]model.FoodEntry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	entries := make([]model.FoodEntry, 0)
	for rows.Next() {
		var e model.FoodEntry
		var id, created, updated string
		if err := rows.Scan(&id, &e.Date, &e.MealType, &e.Description, &created, &updated); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse entry id %q: %w", id, err)
		}
		if e.CreatedAt, err = parseTimestamp(created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("entry %s created_at: %w", id, err)
		}
		if e.UpdatedAt, err = parseTimestamp(updated); err != nil {
			rows.Close()
			return nil, fmt.Errorf("entry %s updated_at: %w", id, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	rows.Close()

	for i := range entries {
		groups, err := loadGroups(db, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Groups = groups
	}
	return entries, nil
}

func loadGroups(db *sql.DB, entryID uuid.UUID) ([]model.FoodGroup, error) {
	rows, err := db.Query(`SELECT id, name FROM food_groups WHERE entry_id = ? ORDER BY position ASC`, entryID.String())
	if err != nil {
		return nil, fmt.Errorf("list groups for entry %s: %w", entryID, err)
	}
	groups := make([]model.FoodGroup, 0)
	for rows.Next() {
		var g model.FoodGroup
		var id string
		if err := rows.Scan(&id, &g.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan group: %w", err)
		}
		if g.ID, err = uuid.Parse(id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse group id %q: %w", id, err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	rows.Close()

	for i := range groups {
		items, err := loadItems(db, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Items = items
	}
	return groups, nil
}

func loadItems(db *sql.DB, groupID uuid.UUID) ([]model.FoodItem, error) {
	rows, err := db.Query(`
SELECT id, name, brand, quantity, unit, unit_kind, servings, resolved,
  calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, saturated_fat_g, unsaturated_fat_g, trans_fat_g,
  micronutrients_json
FROM food_items WHERE group_id = ? ORDER BY position ASC
`, groupID.String())
	if err != nil {
		return nil, fmt.Errorf("list items for group %s: %w", groupID, err)
	}
	defer rows.Close()

	items := make([]model.FoodItem, 0)
	for rows.Next() {
		var rec scaling.Record
		var id, kind, micros string
		if err := rows.Scan(&id, &rec.Name, &rec.Brand, &rec.Quantity, &rec.Unit, &kind, &rec.Servings, &rec.Resolved,
			&rec.Facts.Calories, &rec.Facts.Protein, &rec.Facts.Carbohydrates, &rec.Facts.Fat, &rec.Facts.Fiber,
			&rec.Facts.Sugar, &rec.Facts.SaturatedFat, &rec.Facts.UnsaturatedFat, &rec.Facts.TransFat, &micros); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		itemID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse item id %q: %w", id, err)
		}
		if rec.Kind, err = units.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("item %s: %w", id, err)
		}
		rec.Facts.Micros = nutrient.Amounts{}
		if strings.TrimSpace(micros) != "" {
			if err := json.Unmarshal([]byte(micros), &rec.Facts.Micros); err != nil {
				return nil, fmt.Errorf("decode micronutrients for item %s: %w", id, err)
			}
		}
		items = append(items, model.FoodItem{ID: itemID, ScaledFoodItem: scaling.Restore(rec)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
