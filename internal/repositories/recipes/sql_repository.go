package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/dbx"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
)

// SQLRepository stores one row per recipe. Ingredients are kept as a JSON
// array in a text column so both dialects share one schema.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) ListAll(ctx context.Context) ([]models.Recipe, error) {
	query := `SELECT id, submitted_by, dish_name, ingredients, instructions, image_path
		FROM recipes ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Recipe{}
	for rows.Next() {
		var (
			rec         models.Recipe
			ingredients string
			imagePath   sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.SubmittedBy, &rec.DishName, &ingredients, &rec.Instructions, &imagePath); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal([]byte(ingredients), &rec.Ingredients); err != nil {
			return nil, fmt.Errorf("%w: recipe %s ingredients: %v", common.ErrCorruptDocument, rec.ID, err)
		}
		if rec.Ingredients == nil {
			rec.Ingredients = []models.Ingredient{}
		}
		if imagePath.Valid {
			p := imagePath.String
			rec.ImagePath = &p
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Append(ctx context.Context, recipe models.Recipe) error {
	if recipe.Ingredients == nil {
		recipe.Ingredients = []models.Ingredient{}
	}
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}

	var imagePath sql.NullString
	if recipe.ImagePath != nil {
		imagePath = sql.NullString{String: *recipe.ImagePath, Valid: true}
	}

	query := r.dialect.Rebind(`INSERT INTO recipes
		(id, submitted_by, dish_name, ingredients, instructions, image_path)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, query,
		recipe.ID, recipe.SubmittedBy, recipe.DishName, string(ingredients), recipe.Instructions, imagePath)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
