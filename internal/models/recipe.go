// Package models defines the persisted records: users, recipes and their
// ingredient lines. JSON tags match the on-disk document layout.
package models

import (
	"fmt"
	"strings"
)

// Unit is the measurement unit of an ingredient line.
type Unit string

const (
	UnitNone       Unit = ""
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMillilitre Unit = "ml"
	UnitLitre      Unit = "l"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitPiece      Unit = "pcs"
)

// Units lists the accepted units in display order.
var Units = []Unit{UnitNone, UnitGram, UnitKilogram, UnitMillilitre, UnitLitre, UnitTeaspoon, UnitTablespoon, UnitCup, UnitPiece}

// Valid reports whether u is one of Units.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// Ingredient is one line of a recipe. Quantity is free-form text.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     Unit   `json:"unit"`
}

func (i Ingredient) String() string {
	return strings.Join(strings.Fields(fmt.Sprintf("%s %s %s", i.Quantity, i.Unit, i.Name)), " ")
}

// Recipe is an immutable cookbook record. ImagePath is nil when the recipe
// was saved without a photo and is serialized as null.
type Recipe struct {
	ID           string       `json:"id"`
	SubmittedBy  string       `json:"submitted_by"`
	DishName     string       `json:"dish_name"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
	ImagePath    *string      `json:"image_path"`
}

// HasImage reports whether an image path is set.
func (r Recipe) HasImage() bool {
	return r.ImagePath != nil && *r.ImagePath != ""
}

// IngredientCount is one row of the ingredient popularity ranking.
type IngredientCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
