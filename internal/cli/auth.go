package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/auth"
	"github.com/dmitrijs2005/recipekeeper/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for a username, a password and its confirmation and
// creates the account. A taken username is reported, not returned as error.
func (a *App) Register(ctx context.Context, s *Session) error {
	userName, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Choose a password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword(a.reader, "Repeat the password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if err := validateCredentials(userName, password); err != nil {
		return err
	}
	if string(password) != string(confirmation) {
		return ErrPasswordMismatch
	}

	ok, err := a.services.Credentials.Register(ctx, userName, string(password))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "Username %q is already taken.\n", userName)
		return nil
	}

	a.sessionLog(s).Info(ctx, "account created", "username", userName)
	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// Login checks the credentials and, on success, stores a signed session
// token in s.
func (a *App) Login(ctx context.Context, s *Session) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validateCredentials(userName, password); err != nil {
		return err
	}

	ok, err := a.services.Credentials.Authenticate(ctx, userName, string(password))
	if err != nil {
		return err
	}
	if !ok {
		a.sessionLog(s).Info(ctx, "login failed", "username", userName)
		fmt.Fprintln(a.out, "Invalid username or password.")
		return nil
	}

	token, err := auth.GenerateToken(userName, a.jwtSecret, a.sessionValidity)
	if err != nil {
		return fmt.Errorf("issue session token: %w", err)
	}

	s.Clear()
	s.Username = userName
	s.Token = token

	a.sessionLog(s).Info(ctx, "logged in", "username", userName)
	fmt.Fprintf(a.out, "Welcome, %s!\n", userName)
	return nil
}

func (a *App) Logout(ctx context.Context, s *Session) error {
	if s.LoggedIn() {
		a.sessionLog(s).Info(ctx, "logged out", "username", s.Username)
	}
	s.Clear()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// requireSession is the gate in front of every command that needs a user.
// An expired or tampered token ends the session.
func (a *App) requireSession(ctx context.Context, s *Session) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	userName, err := auth.GetUsernameFromToken(s.Token, a.jwtSecret)
	if err != nil || userName != s.Username {
		a.sessionLog(s).Info(ctx, "session rejected", "username", s.Username)
		s.Clear()
		return fmt.Errorf("session expired, please log in again: %w", common.ErrUnauthorized)
	}
	return nil
}
