package recipes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleRecipe(id, dish string) models.Recipe {
	return models.Recipe{
		ID:          id,
		SubmittedBy: "alice",
		DishName:    dish,
		Ingredients: []models.Ingredient{
			{Name: "eggs", Quantity: "2", Unit: models.UnitPiece},
			{Name: "milk", Quantity: "100", Unit: models.UnitMillilitre},
		},
		Instructions: "Whisk & fry <gently>.",
	}
}

func TestJSONRepository_AppendPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	repo := NewJSONRepository(path)
	ctx := context.Background()

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	first := sampleRecipe("2024-01-01T10:00:00.000000", "Omelette")
	second := sampleRecipe("2024-01-01T10:00:01.000000", "Pancakes")
	second.ImagePath = strPtr("uploads/20240101_100001_p.jpg")

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0])
	assert.Equal(t, second, all[1])

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"image_path": null`)
	assert.Contains(t, string(raw), `Whisk & fry <gently>.`)
}

func TestJSONRepository_NilIngredientsStoredAsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	repo := NewJSONRepository(path)

	require.NoError(t, repo.Append(context.Background(), models.Recipe{ID: "x", DishName: "Water"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"ingredients": []`)
}

func TestJSONRepository_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":`), 0o644))
	repo := NewJSONRepository(path)

	_, err := repo.ListAll(context.Background())
	assert.ErrorIs(t, err, common.ErrCorruptDocument)

	err = repo.Append(context.Background(), sampleRecipe("a", "b"))
	assert.ErrorIs(t, err, common.ErrCorruptDocument)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":`, string(raw))
}
