package cli

import (
	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/google/uuid"
)

// Session is the state of one shell user: who is logged in, the signed
// session token, and the ingredient rows of an unfinished recipe.
type Session struct {
	ID       string
	Username string
	Token    string
	Draft    []models.Ingredient
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

func (s *Session) LoggedIn() bool {
	return s.Token != ""
}

// Clear forgets the user and the draft but keeps the session id.
func (s *Session) Clear() {
	s.Username = ""
	s.Token = ""
	s.Draft = nil
}
