package servings

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saadjs/servings-cli/internal/db"
	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/scaling"
)

func withDB(run func(*sql.DB) error) error {
	sqldb, err := db.Open(settings.DBPath)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func parseUUIDArg(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, value)
	}
	return id, nil
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseNutrientFlags turns repeated CODE=VALUE flags into a code map.
func parseNutrientFlags(values []string) (map[int]float64, error) {
	out := make(map[int]float64, len(values))
	for _, raw := range values {
		code, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --nutrient %q (expected CODE=VALUE)", raw)
		}
		c, err := strconv.Atoi(strings.TrimSpace(code))
		if err != nil || c <= 0 {
			return nil, fmt.Errorf("invalid nutrient code %q", code)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid nutrient value %q for code %d", value, c)
		}
		out[c] = v
	}
	return out, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

type itemView struct {
	ID uuid.UUID `json:"id"`
	scaling.Record
}

type groupView struct {
	ID    uuid.UUID  `json:"id"`
	Name  string     `json:"name"`
	Items []itemView `json:"items"`
}

type entryView struct {
	ID          uuid.UUID   `json:"id"`
	Date        string      `json:"date"`
	MealType    string      `json:"meal_type"`
	Description string      `json:"description,omitempty"`
	Groups      []groupView `json:"groups"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func newEntryView(e model.FoodEntry) entryView {
	v := entryView{
		ID:          e.ID,
		Date:        e.Date,
		MealType:    e.MealType,
		Description: e.Description,
		Groups:      make([]groupView, 0, len(e.Groups)),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	for _, g := range e.Groups {
		gv := groupView{ID: g.ID, Name: g.Name, Items: make([]itemView, 0, len(g.Items))}
		for _, it := range g.Items {
			gv.Items = append(gv.Items, itemView{ID: it.ID, Record: it.Record()})
		}
		v.Groups = append(v.Groups, gv)
	}
	return v
}

func writeItemLine(w io.Writer, id uuid.UUID, it scaling.ScaledFoodItem) {
	f := it.Facts()
	marker := ""
	if !it.Resolved() {
		marker = " (unscaled)"
	}
	fmt.Fprintf(w, "%s\t%s\t%s %s\t%.2f\t%.0f\t%.1f\t%.1f\t%.1f%s\n",
		id, it.Name(), formatQty(it.Quantity()), it.Unit(), it.Servings(), f.Calories, f.Protein, f.Carbohydrates, f.Fat, marker)
}

func formatQty(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
