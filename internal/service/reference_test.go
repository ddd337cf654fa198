package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saadjs/servings-cli/internal/provider/usda"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/service"
	"github.com/saadjs/servings-cli/internal/units"
)

func TestReferenceServingCacheRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, ok, err := service.ReferenceServingByRef(db, service.SourceUSDA, "171705")
	if err != nil {
		t.Fatalf("lookup miss: %v", err)
	}
	if ok {
		t.Fatalf("expected cache miss")
	}

	rec := service.ReferenceServingRecord{
		Source:    "USDA",
		SourceRef: "171705",
		Name:      "Avocado, raw",
		Note:      "1 fruit = 201 g",
		Serving: scaling.ReferenceServing{
			Quantity:           100,
			Unit:               "g",
			WeightGrams:        scaling.Grams(100),
			NutrientCodeValues: map[int]float64{208: 160, 204: 14.66, 306: 485},
		},
	}
	if err := service.SaveReferenceServing(db, rec); err != nil {
		t.Fatalf("save reference serving: %v", err)
	}

	got, ok, err := service.ReferenceServingByRef(db, service.SourceUSDA, "171705")
	if err != nil || !ok {
		t.Fatalf("lookup hit: ok=%v err=%v", ok, err)
	}
	if got.Name != rec.Name || got.Note != rec.Note {
		t.Fatalf("unexpected cached record: %+v", got)
	}
	if got.Serving.Kind != units.KindWeight {
		t.Fatalf("expected kind classified from unit, got %q", got.Serving.Kind)
	}
	if got.Serving.WeightGrams == nil || *got.Serving.WeightGrams != 100 {
		t.Fatalf("expected serving weight 100 g, got %v", got.Serving.WeightGrams)
	}
	if got.Serving.NutrientCodeValues[306] != 485 || len(got.Serving.NutrientCodeValues) != 3 {
		t.Fatalf("unexpected nutrients: %+v", got.Serving.NutrientCodeValues)
	}
	if got.FetchedAt.IsZero() {
		t.Fatalf("expected fetched_at to be set")
	}

	rec.Name = "Avocados, raw, all varieties"
	rec.Serving.WeightGrams = nil
	if err := service.SaveReferenceServing(db, rec); err != nil {
		t.Fatalf("overwrite reference serving: %v", err)
	}
	got, _, err = service.ReferenceServingByRef(db, "usda", "171705")
	if err != nil {
		t.Fatalf("lookup after overwrite: %v", err)
	}
	if got.Name != rec.Name || got.Serving.WeightGrams != nil {
		t.Fatalf("expected overwrite to replace fields, got %+v", got)
	}
}

func TestSaveReferenceServingValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	base := service.ReferenceServingRecord{
		Source: "usda", SourceRef: "1", Name: "x",
		Serving: scaling.ReferenceServing{Quantity: 1, Unit: "g"},
	}
	noRef := base
	noRef.SourceRef = " "
	zero := base
	zero.Serving.Quantity = 0
	noUnit := base
	noUnit.Serving.Unit = ""
	for name, rec := range map[string]service.ReferenceServingRecord{"no ref": noRef, "zero qty": zero, "no unit": noUnit} {
		if err := service.SaveReferenceServing(db, rec); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

type stubFetcher struct {
	calls int
	food  usda.Food
	err   error
}

func (s *stubFetcher) Food(_ context.Context, fdcID int64) (usda.Food, error) {
	s.calls++
	if s.err != nil {
		return usda.Food{}, s.err
	}
	f := s.food
	f.FDCID = fdcID
	return f, nil
}

func TestUSDAServingFetchesOnceThenUsesCache(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	f := &stubFetcher{food: usda.Food{
		Description: "Milk, whole",
		Serving: scaling.ReferenceServing{
			Quantity:           100,
			Unit:               "g",
			WeightGrams:        scaling.Grams(100),
			Kind:               units.KindWeight,
			NutrientCodeValues: map[int]float64{208: 61, 203: 3.2},
		},
	}}

	rec, cached, err := service.USDAServing(context.Background(), db, f, 746782, false)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if cached || f.calls != 1 || rec.SourceRef != "746782" || rec.Name != "Milk, whole" {
		t.Fatalf("expected live fetch, got cached=%v calls=%d rec=%+v", cached, f.calls, rec)
	}

	rec, cached, err = service.USDAServing(context.Background(), db, f, 746782, false)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if !cached || f.calls != 1 {
		t.Fatalf("expected cache hit, got cached=%v calls=%d", cached, f.calls)
	}
	if rec.Serving.NutrientCodeValues[203] != 3.2 {
		t.Fatalf("unexpected cached nutrients: %+v", rec.Serving.NutrientCodeValues)
	}

	if _, _, err := service.USDAServing(context.Background(), db, f, 746782, true); err != nil || f.calls != 2 {
		t.Fatalf("expected refresh to refetch, calls=%d err=%v", f.calls, err)
	}
}

func TestUSDAServingErrors(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, _, err := service.USDAServing(context.Background(), db, nil, 1, false); err == nil {
		t.Fatalf("expected error without fetcher on cache miss")
	}
	f := &stubFetcher{err: errors.New("boom")}
	if _, _, err := service.USDAServing(context.Background(), db, f, 1, false); err == nil {
		t.Fatalf("expected fetch error to propagate")
	}
	if _, _, err := service.USDAServing(context.Background(), db, f, 0, false); err == nil {
		t.Fatalf("expected invalid id error")
	}
}
