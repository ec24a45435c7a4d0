// Package users persists registered accounts.
//
// Two implementations share the Repository contract: JSONRepository keeps the
// whole collection in one JSON document, SQLRepository stores one row per
// user in SQLite or Postgres. Both preserve registration order in List.
package users

import (
	"context"

	"github.com/dmitrijs2005/recipekeeper/internal/models"
)

type Repository interface {
	// List returns every user in registration order.
	List(ctx context.Context) ([]models.User, error)

	// FindByUsername returns the user with exactly this username or
	// common.ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Create appends user, failing with common.ErrAlreadyExists when the
	// username is taken.
	Create(ctx context.Context, user *models.User) error
}
