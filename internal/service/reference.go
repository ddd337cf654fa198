package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/servings-cli/internal/provider/usda"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/units"
)

// SourceUSDA identifies servings fetched from FoodData Central.
const SourceUSDA = "usda"

// ReferenceServingRecord is a cached reference serving keyed by its data
// source and the source's own identifier.
type ReferenceServingRecord struct {
	Source    string                   `json:"source"`
	SourceRef string                   `json:"source_ref"`
	Name      string                   `json:"name"`
	Brand     string                   `json:"brand,omitempty"`
	Note      string                   `json:"note,omitempty"`
	Serving   scaling.ReferenceServing `json:"serving"`
	FetchedAt time.Time                `json:"fetched_at"`
}

func SaveReferenceServing(db *sql.DB, r ReferenceServingRecord) error {
	r.Source = normalizeName(r.Source)
	r.SourceRef = strings.TrimSpace(r.SourceRef)
	r.Name = strings.TrimSpace(r.Name)
	if r.Source == "" || r.SourceRef == "" {
		return fmt.Errorf("reference serving source and ref are required")
	}
	if r.Name == "" {
		return fmt.Errorf("reference serving name is required")
	}
	if r.Serving.Quantity <= 0 {
		return fmt.Errorf("serving quantity must be > 0")
	}
	if strings.TrimSpace(r.Serving.Unit) == "" {
		return fmt.Errorf("serving unit is required")
	}
	if r.Serving.Kind == "" {
		r.Serving.Kind = units.ClassifyOrDefault(r.Serving.Unit)
	}
	nutrients, err := json.Marshal(r.Serving.NutrientCodeValues)
	if err != nil {
		return fmt.Errorf("marshal serving nutrients: %w", err)
	}

	_, err = db.Exec(`
INSERT INTO reference_servings(source, source_ref, name, brand, serving_quantity, serving_unit, serving_weight_g, unit_kind, nutrients_json, note, fetched_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source, source_ref) DO UPDATE SET
  name=excluded.name,
  brand=excluded.brand,
  serving_quantity=excluded.serving_quantity,
  serving_unit=excluded.serving_unit,
  serving_weight_g=excluded.serving_weight_g,
  unit_kind=excluded.unit_kind,
  nutrients_json=excluded.nutrients_json,
  note=excluded.note,
  fetched_at=excluded.fetched_at
`, r.Source, r.SourceRef, r.Name, strings.TrimSpace(r.Brand), r.Serving.Quantity, strings.TrimSpace(r.Serving.Unit),
		r.Serving.WeightGrams, string(r.Serving.Kind), string(nutrients), strings.TrimSpace(r.Note), now())
	if err != nil {
		return fmt.Errorf("save reference serving %s/%s: %w", r.Source, r.SourceRef, err)
	}
	return nil
}

// ReferenceServingByRef returns a cached serving. The flag is false on a miss.
func ReferenceServingByRef(db *sql.DB, source, ref string) (ReferenceServingRecord, bool, error) {
	source = normalizeName(source)
	ref = strings.TrimSpace(ref)
	if source == "" || ref == "" {
		return ReferenceServingRecord{}, false, fmt.Errorf("reference serving source and ref are required")
	}

	var (
		r         = ReferenceServingRecord{Source: source, SourceRef: ref}
		weight    sql.NullFloat64
		kind      string
		nutrients string
		fetched   string
	)
	err := db.QueryRow(`
SELECT name, brand, serving_quantity, serving_unit, serving_weight_g, unit_kind, nutrients_json, note, fetched_at
FROM reference_servings WHERE source = ? AND source_ref = ?
`, source, ref).Scan(&r.Name, &r.Brand, &r.Serving.Quantity, &r.Serving.Unit, &weight, &kind, &nutrients, &r.Note, &fetched)
	if err == sql.ErrNoRows {
		return ReferenceServingRecord{}, false, nil
	}
	if err != nil {
		return ReferenceServingRecord{}, false, fmt.Errorf("get reference serving %s/%s: %w", source, ref, err)
	}
	if weight.Valid {
		r.Serving.WeightGrams = scaling.Grams(weight.Float64)
	}
	if r.Serving.Kind, err = units.ParseKind(kind); err != nil {
		return ReferenceServingRecord{}, false, fmt.Errorf("reference serving %s/%s: %w", source, ref, err)
	}
	if err := json.Unmarshal([]byte(nutrients), &r.Serving.NutrientCodeValues); err != nil {
		return ReferenceServingRecord{}, false, fmt.Errorf("decode nutrients for %s/%s: %w", source, ref, err)
	}
	if r.FetchedAt, err = parseTimestamp(fetched); err != nil {
		return ReferenceServingRecord{}, false, fmt.Errorf("reference serving %s/%s fetched_at: %w", source, ref, err)
	}
	return r, true, nil
}

// FoodFetcher loads one FoodData Central food. *usda.Client implements it.
type FoodFetcher interface {
	Food(ctx context.Context, fdcID int64) (usda.Food, error)
}

// USDAServing returns the serving for fdcID from the cache, fetching and
// caching it on a miss or when refresh is set. The flag reports a cache hit.
func USDAServing(ctx context.Context, db *sql.DB, f FoodFetcher, fdcID int64, refresh bool) (ReferenceServingRecord, bool, error) {
	if fdcID <= 0 {
		return ReferenceServingRecord{}, false, fmt.Errorf("fdc id must be > 0")
	}
	ref := strconv.FormatInt(fdcID, 10)
	if !refresh {
		cached, ok, err := ReferenceServingByRef(db, SourceUSDA, ref)
		if err != nil {
			return ReferenceServingRecord{}, false, err
		}
		if ok {
			slog.Debug("reference serving cache hit", "source", SourceUSDA, "ref", ref)
			return cached, true, nil
		}
	}
	if f == nil {
		return ReferenceServingRecord{}, false, fmt.Errorf("fdc id %d is not cached and no USDA API key is configured", fdcID)
	}
	food, err := f.Food(ctx, fdcID)
	if err != nil {
		return ReferenceServingRecord{}, false, err
	}
	rec, err := CacheUSDAFood(db, food)
	if err != nil {
		return ReferenceServingRecord{}, false, err
	}
	return rec, false, nil
}

// CacheUSDAFood stores a fetched food as a reference serving.
func CacheUSDAFood(db *sql.DB, food usda.Food) (ReferenceServingRecord, error) {
	rec := ReferenceServingRecord{
		Source:    SourceUSDA,
		SourceRef: strconv.FormatInt(food.FDCID, 10),
		Name:      food.Description,
		Brand:     food.Brand,
		Note:      food.Note,
		Serving:   food.Serving,
	}
	if err := SaveReferenceServing(db, rec); err != nil {
		return ReferenceServingRecord{}, err
	}
	saved, _, err := ReferenceServingByRef(db, SourceUSDA, rec.SourceRef)
	if err != nil {
		return ReferenceServingRecord{}, err
	}
	return saved, nil
}
