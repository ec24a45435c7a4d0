package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipekeeper/internal/docstore"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
)

type JSONRepository struct {
	doc *docstore.Document[models.Recipe]
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{doc: docstore.New[models.Recipe](path)}
}

func (r *JSONRepository) ListAll(ctx context.Context) ([]models.Recipe, error) {
	return r.doc.Load()
}

func (r *JSONRepository) Append(ctx context.Context, recipe models.Recipe) error {
	if recipe.Ingredients == nil {
		recipe.Ingredients = []models.Ingredient{}
	}
	return r.doc.Update(func(all []models.Recipe) ([]models.Recipe, error) {
		return append(all, recipe), nil
	})
}
