package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/blobstore"
	"github.com/dmitrijs2005/recipekeeper/internal/common"
	"github.com/dmitrijs2005/recipekeeper/internal/config"
	"github.com/dmitrijs2005/recipekeeper/internal/logging"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/recipekeeper/internal/services"
)

type CredentialService interface {
	Register(ctx context.Context, username, password string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

type RecipeService interface {
	Append(ctx context.Context, recipe models.Recipe) error
	Search(ctx context.Context, query string) ([]models.Recipe, error)
	NewRecipeID(now time.Time) string
}

type ImageService interface {
	Ingest(ctx context.Context, up *services.Upload) (string, bool)
}

type UsageService interface {
	TopIngredients(ctx context.Context, limit int) ([]models.IngredientCount, error)
}

// Services bundles what the commands call into.
type Services struct {
	Credentials CredentialService
	Recipes     RecipeService
	Images      ImageService
	Usage       UsageService
}

type App struct {
	services Services
	log      logging.Logger
	closer   io.Closer

	jwtSecret       []byte
	sessionValidity time.Duration
	topLimit        int

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens the configured storage and image backends and builds the
// services on top of them. Close releases the storage.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	rm, err := repomanager.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store, err := blobstore.New(ctx, cfg)
	if err != nil {
		rm.Close()
		return nil, err
	}

	secret := cfg.SecretKey
	if secret == "" {
		// sessions then only live as long as the process
		secret, err = common.MakeRandHexString(32)
		if err != nil {
			rm.Close()
			return nil, err
		}
	}

	svc := Services{
		Credentials: services.NewCredentialStore(rm.Users(), cfg.PasswordScheme, log),
		Recipes:     services.NewRecipeStore(rm.Recipes()),
		Images:      services.NewImageIngestor(store, cfg.MaxImageDimension, cfg.ImageQuality, log),
		Usage:       services.NewUsageAggregator(rm.Recipes()),
	}

	a := newApp(svc, log, os.Stdin, os.Stdout)
	a.closer = rm
	a.jwtSecret = []byte(secret)
	a.sessionValidity = cfg.SessionValidityDuration
	a.topLimit = cfg.TopIngredientsLimit
	return a, nil
}

func newApp(svc Services, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		services:        svc,
		log:             log,
		jwtSecret:       common.GenerateRandByteArray(32),
		sessionValidity: 30 * time.Minute,
		topLimit:        services.DefaultTopLimit,
		reader:          bufio.NewReader(in),
		out:             out,
		now:             time.Now,
	}
}

// Run starts the REPL with a fresh session and blocks until it ends.
func (a *App) Run(ctx context.Context) {
	s := NewSession()
	a.log.Debug(ctx, "shell started", "session_id", s.ID)
	runREPL(ctx, a, s, a.reader, a.out)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) sessionLog(s *Session) logging.Logger {
	return a.log.With("session_id", s.ID)
}
