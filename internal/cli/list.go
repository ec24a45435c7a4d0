package cli

import (
	"context"
	"fmt"
	"strings"
)

// List prints the recipes matching query, newest first.
func (a *App) List(ctx context.Context, s *Session, query string) error {
	if err := a.requireSession(ctx, s); err != nil {
		return err
	}

	found, err := a.services.Recipes.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		if strings.TrimSpace(query) == "" {
			fmt.Fprintln(a.out, "The cookbook is empty. Use 'add' to share a recipe.")
		} else {
			fmt.Fprintf(a.out, "No recipes match %q.\n", query)
		}
		return nil
	}

	for i := len(found) - 1; i >= 0; i-- {
		r := found[i]
		fmt.Fprintf(a.out, "\n%s  (by %s, %s)\n", r.DishName, r.SubmittedBy, r.ID)
		for _, ing := range r.Ingredients {
			fmt.Fprintf(a.out, "  - %s\n", ing)
		}
		for _, line := range strings.Split(r.Instructions, "\n") {
			fmt.Fprintf(a.out, "  %s\n", line)
		}
		if r.HasImage() {
			fmt.Fprintf(a.out, "  Photo: %s\n", *r.ImagePath)
		}
	}
	return nil
}
