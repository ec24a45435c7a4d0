package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
)

const maxBarWidth = 40

// Top prints the ingredient popularity ranking as a text bar chart.
// limit <= 0 uses the configured default.
func (a *App) Top(ctx context.Context, s *Session, limit int) error {
	if err := a.requireSession(ctx, s); err != nil {
		return err
	}
	if limit <= 0 {
		limit = a.topLimit
	}

	ranking, err := a.services.Usage.TopIngredients(ctx, limit)
	if errors.Is(err, common.ErrNoData) {
		fmt.Fprintln(a.out, "Not enough data yet. Add some recipes first.")
		return nil
	}
	if err != nil {
		return err
	}

	width, top := 0, ranking[0].Count
	for _, c := range ranking {
		width = max(width, len(c.Name))
	}
	for _, c := range ranking {
		bar := c.Count * maxBarWidth / top
		fmt.Fprintf(a.out, "%-*s %s %d\n", width, c.Name, strings.Repeat("#", max(bar, 1)), c.Count)
	}
	return nil
}
