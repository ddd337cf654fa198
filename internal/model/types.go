package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/saadjs/servings-cli/internal/scaling"
)

// FoodEntry is one logged meal occasion.
type FoodEntry struct {
	ID          uuid.UUID
	Date        string
	MealType    string
	Description string
	Groups      []FoodGroup
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FoodGroup is a named portion of a meal, e.g. "Coffee with milk".
type FoodGroup struct {
	ID    uuid.UUID
	Name  string
	Items []FoodItem
}

// FoodItem is a stored scaled item together with its row identity.
type FoodItem struct {
	ID uuid.UUID
	scaling.ScaledFoodItem
}

// ItemCount returns the number of items across all groups.
func (e FoodEntry) ItemCount() int {
	n := 0
	for _, g := range e.Groups {
		n += len(g.Items)
	}
	return n
}
