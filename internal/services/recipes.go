package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/recipes"
)

// RecipeIDLayout formats the submission time into a recipe id.
const RecipeIDLayout = "2006-01-02T15:04:05.000000"

type RecipeStore struct {
	repo recipes.Repository
}

func NewRecipeStore(repo recipes.Repository) *RecipeStore {
	return &RecipeStore{repo: repo}
}

func (s *RecipeStore) ListAll(ctx context.Context) ([]models.Recipe, error) {
	return s.repo.ListAll(ctx)
}

// Append stores recipe as given. Ids and dish names are not checked for
// uniqueness.
func (s *RecipeStore) Append(ctx context.Context, recipe models.Recipe) error {
	return s.repo.Append(ctx, recipe)
}

// Search returns the recipes whose dish name or any ingredient name contains
// query, ignoring case. A blank query matches everything.
func (s *RecipeStore) Search(ctx context.Context, query string) ([]models.Recipe, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	result := []models.Recipe{}
	for _, r := range all {
		if matchesRecipe(r, q) {
			result = append(result, r)
		}
	}
	return result, nil
}

func matchesRecipe(r models.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.DishName), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), q) {
			return true
		}
	}
	return false
}

// NewRecipeID derives a recipe id from the submission time, with microsecond
// resolution.
func (s *RecipeStore) NewRecipeID(now time.Time) string {
	return now.Format(RecipeIDLayout)
}
