package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/dmitrijs2005/recipekeeper/internal/services"
)

// readFile is a seam for loading the photo from disk.
var readFile = os.ReadFile

func unitChoices() string {
	names := make([]string, 0, len(models.Units))
	for _, u := range models.Units {
		if u == models.UnitNone {
			names = append(names, "(none)")
			continue
		}
		names = append(names, string(u))
	}
	return strings.Join(names, ", ")
}

// AddRecipe walks the user through the recipe form. Ingredient rows are kept
// in the session draft, so they survive a failed submission and can be reused
// by the next add.
func (a *App) AddRecipe(ctx context.Context, s *Session) error {
	if err := a.requireSession(ctx, s); err != nil {
		return err
	}
	log := a.sessionLog(s)

	dishName, err := getSimpleText(a.reader, "Dish name", a.out)
	if err != nil {
		return err
	}

	if len(s.Draft) > 0 {
		keep, err := confirm(a.reader, fmt.Sprintf("Keep %d ingredient(s) from the previous attempt?", len(s.Draft)), a.out)
		if err != nil {
			return err
		}
		if !keep {
			s.Draft = nil
		}
	}

	if err := a.readIngredients(s); err != nil {
		return err
	}

	instructions, err := getMultiline(a.reader, "Instructions", a.out)
	if err != nil {
		return err
	}

	if err := validateRecipe(dishName, instructions, s.Draft); err != nil {
		return err
	}

	photoPath, err := getSimpleText(a.reader, "Photo file (empty to skip)", a.out)
	if err != nil {
		return err
	}

	recipe := models.Recipe{
		ID:           a.services.Recipes.NewRecipeID(a.now()),
		SubmittedBy:  s.Username,
		DishName:     strings.TrimSpace(dishName),
		Ingredients:  append([]models.Ingredient(nil), s.Draft...),
		Instructions: instructions,
	}

	if photoPath != "" {
		if path, ok := a.ingestPhoto(ctx, s, photoPath); ok {
			recipe.ImagePath = &path
		} else {
			fmt.Fprintln(a.out, "The photo could not be processed; saving the recipe without it.")
		}
	}

	if err := a.services.Recipes.Append(ctx, recipe); err != nil {
		return err
	}

	s.Draft = nil
	log.Info(ctx, "recipe saved", "id", recipe.ID, "dish", recipe.DishName, "image", recipe.HasImage())
	fmt.Fprintf(a.out, "Recipe %q saved.\n", recipe.DishName)
	return nil
}

// readIngredients appends rows to the draft until an empty name is entered.
// A row with an unknown unit is rejected and asked again.
func (a *App) readIngredients(s *Session) error {
	fmt.Fprintf(a.out, "Ingredients (units: %s). Leave the name empty to finish.\n", unitChoices())
	for {
		name, err := getSimpleText(a.reader, fmt.Sprintf("Ingredient #%d name", len(s.Draft)+1), a.out)
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}

		quantity, err := getSimpleText(a.reader, "Quantity", a.out)
		if err != nil {
			return err
		}

		unit, err := getSimpleText(a.reader, "Unit", a.out)
		if err != nil {
			return err
		}
		u := models.Unit(strings.ToLower(unit))
		if unit == "(none)" {
			u = models.UnitNone
		}
		if !u.Valid() {
			fmt.Fprintf(a.out, "%v %q, choose one of: %s\n", ErrInvalidUnit, unit, unitChoices())
			continue
		}

		s.Draft = append(s.Draft, models.Ingredient{Name: name, Quantity: quantity, Unit: u})
	}
}

func (a *App) ingestPhoto(ctx context.Context, s *Session, path string) (string, bool) {
	data, err := readFile(path)
	if err != nil {
		a.sessionLog(s).Warn(ctx, "photo not readable", "path", path, "error", err)
		return "", false
	}
	return a.services.Images.Ingest(ctx, &services.Upload{Filename: path, Data: data})
}
