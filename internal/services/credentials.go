// Package services holds the operations the shell calls: account
// registration and login, recipe storage and search, photo ingestion and the
// ingredient popularity ranking.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/cryptox"
	"github.com/dmitrijs2005/recipekeeper/internal/logging"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/users"
)

// CredentialStore registers accounts and checks passwords against the stored
// digests. New accounts are hashed with scheme; existing records are always
// verified with the scheme they were written with.
type CredentialStore struct {
	repo   users.Repository
	scheme string
	log    logging.Logger
}

func NewCredentialStore(repo users.Repository, scheme string, log logging.Logger) *CredentialStore {
	return &CredentialStore{repo: repo, scheme: scheme, log: log}
}

// Register returns false without touching the store when username is taken.
// It performs no validation of empty values.
func (s *CredentialStore) Register(ctx context.Context, username, password string) (bool, error) {
	hash, salt, err := cryptox.NewPasswordHash(s.scheme, password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	err = s.repo.Create(ctx, &models.User{Username: username, PasswordHash: hash, Salt: salt})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.log.Debug(ctx, "username taken", "username", username)
			return false, nil
		}
		return false, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "username", username)
	return true, nil
}

// Authenticate reports whether a stored record matches both username and
// password. Unknown users and an absent store yield false.
func (s *CredentialStore) Authenticate(ctx context.Context, username, password string) (bool, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error reading users: %w", err)
	}
	return cryptox.VerifyPassword(password, user.PasswordHash, user.Salt), nil
}
