// Package common defines shared sentinel errors and small helpers used across
// RecipeKeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Storage errors. A corrupt document is the only unrecoverable condition.
	ErrCorruptDocument = errors.New("corrupt document")

	// Session token missing, expired or forged.
	ErrUnauthorized = errors.New("unauthorized")

	// Aggregation found no ingredient lines at all.
	ErrNoData = errors.New("no data")
)
