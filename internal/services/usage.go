package services

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/recipes"
)

// DefaultTopLimit is used when TopIngredients is called with a non-positive
// limit.
const DefaultTopLimit = 15

type UsageAggregator struct {
	repo recipes.Repository
}

func NewUsageAggregator(repo recipes.Repository) *UsageAggregator {
	return &UsageAggregator{repo: repo}
}

// TopIngredients ranks ingredient names by how many ingredient lines use
// them. Names are compared lower-cased and trimmed; blank names are skipped.
// Ties are ordered by name. With nothing to rank it returns common.ErrNoData.
func (a *UsageAggregator) TopIngredients(ctx context.Context, limit int) ([]models.IngredientCount, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	all, err := a.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, r := range all {
		for _, ing := range r.Ingredients {
			name := strings.ToLower(strings.TrimSpace(ing.Name))
			if name == "" {
				continue
			}
			counts[name]++
		}
	}
	if len(counts) == 0 {
		return nil, common.ErrNoData
	}

	ranking := make([]models.IngredientCount, 0, len(counts))
	for name, n := range counts {
		ranking = append(ranking, models.IngredientCount{Name: name, Count: n})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].Name < ranking[j].Name
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}
