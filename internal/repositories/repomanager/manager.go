// Package repomanager selects the storage backend from configuration and
// vends the repositories bound to it.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/recipekeeper/internal/config"
	"github.com/dmitrijs2005/recipekeeper/internal/dbx"
	"github.com/dmitrijs2005/recipekeeper/internal/logging"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/recipes"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/users"
)

// Manager owns the backing store (if any) for the lifetime of the process.
type Manager struct {
	backend string
	db      *sql.DB
	dialect dbx.Dialect

	users   users.Repository
	recipes recipes.Repository
}

// dbOpen is a seam for tests.
var dbOpen = dbx.Open

// New opens the backend named by cfg.StorageBackend. For the SQL backends the
// schema is migrated, and when the database holds no users and no recipes
// the JSON documents found under cfg.DataDir are imported once.
func New(ctx context.Context, cfg *config.Config, log logging.Logger) (*Manager, error) {
	m := &Manager{backend: cfg.StorageBackend}

	if cfg.StorageBackend == config.BackendJSON {
		m.users = users.NewJSONRepository(cfg.UsersDocument())
		m.recipes = recipes.NewJSONRepository(cfg.RecipesDocument())
		log.Debug(ctx, "using json documents", "data_dir", cfg.DataDir)
		return m, nil
	}

	dialect, err := dbx.ParseDialect(cfg.StorageBackend)
	if err != nil {
		return nil, err
	}
	db, err := dbOpen(ctx, dialect, cfg.SQLDSN())
	if err != nil {
		return nil, err
	}

	m.db = db
	m.dialect = dialect
	m.users = users.NewSQLRepository(db, dialect)
	m.recipes = recipes.NewSQLRepository(db, dialect)

	nu, nr, err := m.ImportDocuments(ctx, cfg.UsersDocument(), cfg.RecipesDocument())
	if err != nil {
		db.Close()
		return nil, err
	}
	if nu+nr > 0 {
		log.Info(ctx, "imported json documents", "users", nu, "recipes", nr)
	}
	log.Debug(ctx, "using sql backend", "dialect", string(dialect))
	return m, nil
}

func (m *Manager) Backend() string { return m.backend }

func (m *Manager) Users() users.Repository { return m.users }

func (m *Manager) Recipes() recipes.Repository { return m.recipes }

// ImportDocuments copies the JSON documents at usersPath and recipesPath into
// the SQL database inside a single transaction. It does nothing when the
// database already holds data or for the json backend.
func (m *Manager) ImportDocuments(ctx context.Context, usersPath, recipesPath string) (importedUsers, importedRecipes int, err error) {
	if m.db == nil {
		return 0, 0, nil
	}

	empty, err := m.isEmpty(ctx)
	if err != nil || !empty {
		return 0, 0, err
	}

	srcUsers, err := users.NewJSONRepository(usersPath).List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("import users: %w", err)
	}
	srcRecipes, err := recipes.NewJSONRepository(recipesPath).ListAll(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("import recipes: %w", err)
	}
	if len(srcUsers) == 0 && len(srcRecipes) == 0 {
		return 0, 0, nil
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ur := users.NewSQLRepository(tx, m.dialect)
		for i := range srcUsers {
			if err := ur.Create(ctx, &srcUsers[i]); err != nil {
				return fmt.Errorf("import users: %w", err)
			}
		}
		rr := recipes.NewSQLRepository(tx, m.dialect)
		for _, r := range srcRecipes {
			if err := rr.Append(ctx, r); err != nil {
				return fmt.Errorf("import recipes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(srcUsers), len(srcRecipes), nil
}

func (m *Manager) isEmpty(ctx context.Context) (bool, error) {
	var n int
	query := `SELECT (SELECT COUNT(*) FROM users) + (SELECT COUNT(*) FROM recipes)`
	if err := m.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 0, nil
}

// Close releases the database handle of a SQL backend.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
