// Package recipes persists the shared cookbook. Records are append-only and
// are returned in insertion order.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipekeeper/internal/models"
)

type Repository interface {
	ListAll(ctx context.Context) ([]models.Recipe, error)
	Append(ctx context.Context, recipe models.Recipe) error
}
