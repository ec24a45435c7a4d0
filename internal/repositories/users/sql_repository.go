package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/dbx"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
)

// SQLRepository implements Repository over a DBTX (either *sql.DB or *sql.Tx).
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT username, password_hash, salt FROM users ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Salt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.dialect.Rebind(`SELECT username, password_hash, salt FROM users WHERE username = ?`)

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.Username, &u.PasswordHash, &u.Salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

// Create relies on the UNIQUE constraint: a conflicting insert affects no
// rows and is reported as common.ErrAlreadyExists.
func (r *SQLRepository) Create(ctx context.Context, user *models.User) error {
	query := r.dialect.Rebind(
		`INSERT INTO users (username, password_hash, salt) VALUES (?, ?, ?)
		 ON CONFLICT (username) DO NOTHING`)

	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Salt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", user.Username, common.ErrAlreadyExists)
	}
	return nil
}
