package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recipekeeper/internal/models"
)

func validateCredentials(username string, password []byte) error {
	if strings.TrimSpace(username) == "" || len(password) == 0 {
		return ErrEmptyCredentials
	}
	return nil
}

func validateRecipe(dishName, instructions string, ingredients []models.Ingredient) error {
	if strings.TrimSpace(dishName) == "" || strings.TrimSpace(instructions) == "" || len(ingredients) == 0 {
		return ErrIncompleteRecipe
	}
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return ErrIncompleteRecipe
		}
		if !ing.Unit.Valid() {
			return fmt.Errorf("%w %q", ErrInvalidUnit, ing.Unit)
		}
	}
	return nil
}
