package cli

import "errors"

var (
	ErrEmptyCredentials = errors.New("username and password must not be empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrIncompleteRecipe = errors.New("dish name, instructions and at least one ingredient are required")
	ErrInvalidUnit      = errors.New("invalid unit")
	ErrNotLoggedIn      = errors.New("please log in first")
)
