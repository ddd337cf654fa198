package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/saadjs/servings-cli/internal/db"
	"github.com/saadjs/servings-cli/internal/model"
	"github.com/saadjs/servings-cli/internal/scaling"
	"github.com/saadjs/servings-cli/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "servings.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func coffeeServing() scaling.ReferenceServing {
	return scaling.ReferenceServing{
		Quantity: 1,
		Unit:     "cup (8 fl oz)",
		Kind:     "volume",
		NutrientCodeValues: map[int]float64{
			208: 100,
			203: 8,
			301: 250,
		},
	}
}

func breadServing() scaling.ReferenceServing {
	return scaling.ReferenceServing{
		Quantity:           1,
		Unit:               "slice",
		WeightGrams:        scaling.Grams(30),
		NutrientCodeValues: map[int]float64{208: 80, 205: 15, 203: 3},
	}
}

func logItem(t *testing.T, sqldb *sql.DB, date, name string, serving scaling.ReferenceServing, qty float64, unit string) model.FoodEntry {
	t.Helper()
	e, err := service.LogFood(sqldb, service.LogFoodInput{
		Date:     date,
		MealType: "lunch",
		Groups: []service.LogGroupInput{{
			Items: []service.LogItemInput{{
				Name:    name,
				Serving: serving,
				Request: scaling.UserRequest{Quantity: qty, Unit: unit},
			}},
		}},
	})
	if err != nil {
		t.Fatalf("log %s: %v", name, err)
	}
	return e
}
