package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/docstore"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
)

type JSONRepository struct {
	doc *docstore.Document[models.User]
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{doc: docstore.New[models.User](path)}
}

func (r *JSONRepository) List(ctx context.Context) ([]models.User, error) {
	return r.doc.Load()
}

func (r *JSONRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	all, err := r.doc.Load()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Username == username {
			return &all[i], nil
		}
	}
	return nil, common.ErrNotFound
}

// Create checks for a duplicate and appends inside one locked
// read-modify-write, then rewrites the whole document.
func (r *JSONRepository) Create(ctx context.Context, user *models.User) error {
	return r.doc.Update(func(all []models.User) ([]models.User, error) {
		for _, u := range all {
			if u.Username == user.Username {
				return nil, fmt.Errorf("user %q: %w", user.Username, common.ErrAlreadyExists)
			}
		}
		return append(all, *user), nil
	})
}
