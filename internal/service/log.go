package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
)

type LogItemInput struct {
	Name    string                   `json:"name"`
	Serving scaling.ReferenceServing `json:"serving"`
	Request scaling.UserRequest      `json:"portion"`
}

type LogGroupInput struct {
	Name  string         `json:"name"`
	Items []LogItemInput `json:"items"`
}

// LogFoodInput is one meal occasion as reported by the user. Date defaults to
// today and MealType to the default_meal_type config value.
type LogFoodInput struct {
	Date        string          `json:"date"`
	MealType    string          `json:"meal_type"`
	Description string          `json:"description"`
	Groups      []LogGroupInput `json:"groups"`
}

// LogFood scales every item of in against its reference serving and stores
// the resulting entry in one transaction.
func LogFood(db *sql.DB, in LogFoodInput) (model.FoodEntry, error) {
	date, err := normalizeDate(in.Date)
	if err != nil {
		return model.FoodEntry{}, err
	}
	if strings.TrimSpace(in.MealType) == "" {
		in.MealType, err = defaultMealType(db)
		if err != nil {
			return model.FoodEntry{}, err
		}
	}
	meal, err := normalizeMealType(in.MealType)
	if err != nil {
		return model.FoodEntry{}, err
	}
	if len(in.Groups) == 0 {
		return model.FoodEntry{}, fmt.Errorf("at least one food group is required")
	}
	strict, err := strictUnits(db)
	if err != nil {
		return model.FoodEntry{}, err
	}

	entry := model.FoodEntry{
		ID:          uuid.New(),
		Date:        date,
		MealType:    meal,
		Description: strings.TrimSpace(in.Description),
	}
	for gi, g := range in.Groups {
		if len(g.Items) == 0 {
			return model.FoodEntry{}, fmt.Errorf("group %d has no items", gi+1)
		}
		group := model.FoodGroup{ID: uuid.New(), Name: strings.TrimSpace(g.Name)}
		for _, it := range g.Items {
			item, err := buildItem(it, strict)
			if err != nil {
				return model.FoodEntry{}, err
			}
			group.Items = append(group.Items, item)
		}
		if group.Name == "" {
			group.Name = group.Items[0].Name()
		}
		entry.Groups = append(entry.Groups, group)
	}

	if err := insertEntry(db, entry); err != nil {
		return model.FoodEntry{}, err
	}
	slog.Info("logged food entry", "entry", entry.ID, "date", entry.Date, "items", entry.ItemCount())
	return EntryByID(db, entry.ID)
}

func buildItem(in LogItemInput, strict bool) (model.FoodItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.FoodItem{}, fmt.Errorf("food name is required")
	}
	if err := validateNonNegativeFloat(name+" quantity", in.Request.Quantity); err != nil {
		return model.FoodItem{}, err
	}
	if in.Serving.Quantity <= 0 {
		return model.FoodItem{}, fmt.Errorf("%s serving quantity must be > 0", name)
	}
	codes := make([]int, 0, len(in.Serving.NutrientCodeValues))
	for code := range in.Serving.NutrientCodeValues {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		field := fmt.Sprintf("%s nutrient %d", name, code)
		if err := validateNonNegativeFloat(field, in.Serving.NutrientCodeValues[code]); err != nil {
			return model.FoodItem{}, err
		}
	}
	if strict {
		if _, err := units.Classify(in.Request.Unit); err != nil {
			return model.FoodItem{}, fmt.Errorf("%s: %w", name, err)
		}
	}
	return model.FoodItem{
		ID:             uuid.New(),
		ScaledFoodItem: scaling.Build(name, in.Serving, in.Request),
	}, nil
}

func insertEntry(db *sql.DB, e model.FoodEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin log tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	if _, err := tx.Exec(`
INSERT INTO food_entries(id, entry_date, meal_type, description, created_at, updated_at)
VALUES(?, ?, ?, ?, ?, ?)
`, e.ID.String(), e.Date, e.MealType, e.Description, ts, ts); err != nil {
		return fmt.Errorf("insert food entry: %w", err)
	}
	for gi, g := range e.Groups {
		if _, err := tx.Exec(`INSERT INTO food_groups(id, entry_id, position, name) VALUES(?, ?, ?, ?)`,
			g.ID.String(), e.ID.String(), gi, g.Name); err != nil {
			return fmt.Errorf("insert food group %q: %w", g.Name, err)
		}
		for ii, it := range g.Items {
			if err := insertItem(tx, g.ID, ii, it); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit log tx: %w", err)
	}
	return nil
}

func insertItem(tx *sql.Tx, groupID uuid.UUID, position int, it model.FoodItem) error {
	rec := it.Record()
	micros := ""
	if len(rec.Facts.Micros) > 0 {
		b, err := json.Marshal(rec.Facts.Micros)
		if err != nil {
			return fmt.Errorf("marshal micronutrients for %q: %w", rec.Name, err)
		}
		micros = string(b)
	}
	_, err := tx.Exec(`
INSERT INTO food_items(
  id, group_id, position, name, brand, quantity, unit, unit_kind, servings, resolved,
  calories, protein_g, carbs_g, fat_g, fiber_g, sugar_g, saturated_fat_g, unsaturated_fat_g, trans_fat_g,
  micronutrients_json
) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, it.ID.String(), groupID.String(), position, rec.Name, rec.Brand, rec.Quantity, rec.Unit, string(rec.Kind), rec.Servings, rec.Resolved,
		rec.Facts.Calories, rec.Facts.Protein, rec.Facts.Carbohydrates, rec.Facts.Fat, rec.Facts.Fiber, rec.Facts.Sugar,
		rec.Facts.SaturatedFat, rec.Facts.UnsaturatedFat, rec.Facts.TransFat, micros)
	if err != nil {
		return fmt.Errorf("insert food item %q: %w", rec.Name, err)
	}
	return nil
}
