package cli

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/blobstore"
	"github.com/dmitrijs2005/recipekeeper/internal/config"
	"github.com/dmitrijs2005/recipekeeper/internal/cryptox"
	"github.com/dmitrijs2005/recipekeeper/internal/logging"
	"github.com/dmitrijs2005/recipekeeper/internal/models"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/recipes"
	"github.com/dmitrijs2005/recipekeeper/internal/repositories/users"
	"github.com/dmitrijs2005/recipekeeper/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app     *App
	out     *bytes.Buffer
	dir     string
	recipes *recipes.JSONRepository
}

func newTestApp(t *testing.T, script ...string) *testApp {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	dir := t.TempDir()
	log := logging.Discard()
	ur := users.NewJSONRepository(filepath.Join(dir, "users.json"))
	rr := recipes.NewJSONRepository(filepath.Join(dir, "recipes.json"))

	svc := Services{
		Credentials: services.NewCredentialStore(ur, cryptox.SchemeSHA256, log),
		Recipes:     services.NewRecipeStore(rr),
		Images:      services.NewImageIngestor(blobstore.NewLocalStore(filepath.Join(dir, "uploads")), 800, 85, log),
		Usage:       services.NewUsageAggregator(rr),
	}

	out := &bytes.Buffer{}
	a := newApp(svc, log, strings.NewReader(strings.Join(script, "\n")+"\n"), out)
	a.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 42000, time.UTC) }
	return &testApp{app: a, out: out, dir: dir, recipes: rr}
}

func (ta *testApp) stored(t *testing.T) []models.Recipe {
	t.Helper()
	all, err := ta.recipes.ListAll(context.Background())
	require.NoError(t, err)
	return all
}

var signUpAndIn = []string{
	"register", "alice", "pw1", "pw1",
	"login", "alice", "pw1",
}

func script(parts ...[]string) []string {
	var all []string
	for _, p := range parts {
		all = append(all, p...)
	}
	return all
}

func TestApp_AccountFlow(t *testing.T) {
	ta := newTestApp(t,
		"register", "alice", "pw1", "pw1",
		"register", "alice", "pw2", "pw2",
		"register", "bob", "a", "b",
		"register", "", "x", "x",
		"login", "alice", "pw2",
		"login", "alice", "pw1",
		"logout",
		"exit",
	)

	ta.app.Run(context.Background())
	out := ta.out.String()

	assert.Contains(t, out, "Account created.")
	assert.Contains(t, out, `Username "alice" is already taken.`)
	assert.Contains(t, out, "Error: "+ErrPasswordMismatch.Error())
	assert.Contains(t, out, "Error: "+ErrEmptyCredentials.Error())
	assert.Contains(t, out, "Invalid username or password.")
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "rk (alice)> ")
	assert.Contains(t, out, "Logged out.")
}

func TestApp_CommandsRequireLogin(t *testing.T) {
	ta := newTestApp(t, "add", "list", "top", "exit")

	ta.app.Run(context.Background())

	assert.Equal(t, 3, strings.Count(ta.out.String(), "Error: "+ErrNotLoggedIn.Error()))
}

func TestApp_AddListTop(t *testing.T) {
	ta := newTestApp(t, script(signUpAndIn, []string{
		"top",
		"add", "Omelette",
		"Eggs", "2", "pcs",
		"salt", "1", "pinch",
		"salt", "1", "",
		"",
		"Whisk.", "Fry.", "",
		"",
		"add", "Pancakes",
		"eggs", "3", "PCS",
		"Milk", "1", "cup",
		"",
		"Mix and bake.", "",
		"",
		"list",
		"list milk",
		"list curry",
		"top 1",
		"exit",
	})...)

	ta.app.Run(context.Background())
	out := ta.out.String()

	assert.Contains(t, out, "Not enough data yet.")
	assert.Contains(t, out, `invalid unit "pinch"`)
	assert.Contains(t, out, `Recipe "Omelette" saved.`)
	assert.Contains(t, out, `Recipe "Pancakes" saved.`)
	assert.Contains(t, out, "  - 2 pcs Eggs")
	assert.Contains(t, out, "  - 1 salt")
	assert.Contains(t, out, `No recipes match "curry".`)
	assert.Contains(t, out, "eggs "+strings.Repeat("#", maxBarWidth)+" 2")
	assert.NotContains(t, out, "milk #")

	// newest first
	assert.Less(t, strings.Index(out, "Pancakes  (by alice"), strings.Index(out, "Omelette  (by alice"))

	all := ta.stored(t)
	require.Len(t, all, 2)
	assert.Equal(t, "2024-05-01T12:00:00.000042", all[0].ID)
	assert.Equal(t, "alice", all[0].SubmittedBy)
	assert.Equal(t, "Whisk.\nFry.", all[0].Instructions)
	assert.Equal(t, []models.Ingredient{
		{Name: "Eggs", Quantity: "2", Unit: models.UnitPiece},
		{Name: "salt", Quantity: "1", Unit: models.UnitNone},
	}, all[0].Ingredients)
	assert.Nil(t, all[0].ImagePath)
	assert.Equal(t, models.UnitPiece, all[1].Ingredients[0].Unit)
}

func TestApp_IncompleteRecipeKeepsDraft(t *testing.T) {
	ta := newTestApp(t, script(signUpAndIn, []string{
		"add", "",
		"flour", "200", "g",
		"",
		"Knead.", "",
		"add", "Bread",
		"y",
		"water", "300", "ml",
		"",
		"Knead and bake.", "",
		"",
		"exit",
	})...)

	ta.app.Run(context.Background())

	assert.Contains(t, ta.out.String(), "Error: "+ErrIncompleteRecipe.Error())
	assert.Contains(t, ta.out.String(), "Keep 1 ingredient(s) from the previous attempt?")

	all := ta.stored(t)
	require.Len(t, all, 1)
	assert.Equal(t, "Bread", all[0].DishName)
	assert.Len(t, all[0].Ingredients, 2)
	assert.Equal(t, "flour", all[0].Ingredients[0].Name)
}

func TestApp_DiscardDraft(t *testing.T) {
	ta := newTestApp(t, script(signUpAndIn, []string{
		"add", "Soup",
		"water", "1", "l", "",
		"",
		"add", "Soup",
		"n",
		"",
		"Boil.", "",
		"exit",
	})...)

	ta.app.Run(context.Background())

	assert.Equal(t, 2, strings.Count(ta.out.String(), "Error: "+ErrIncompleteRecipe.Error()))
	assert.Empty(t, ta.stored(t))
}

func TestApp_AddWithPhoto(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "cake.png")
	f, err := os.Create(photo)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1600, 1200))))
	require.NoError(t, f.Close())

	ta := newTestApp(t, script(signUpAndIn, []string{
		"add", "Cake", "sugar", "1", "cup", "", "Bake.", "", photo,
		"add", "Pie", "apples", "3", "pcs", "", "Bake.", "", filepath.Join(t.TempDir(), "missing.png"),
		"exit",
	})...)

	ta.app.Run(context.Background())

	all := ta.stored(t)
	require.Len(t, all, 2)

	require.NotNil(t, all[0].ImagePath)
	assert.Equal(t, filepath.Join(ta.dir, "uploads", "20240501_120000_cake.png"), *all[0].ImagePath)
	img, err := os.Open(*all[0].ImagePath)
	require.NoError(t, err)
	defer img.Close()
	cfg, err := png.DecodeConfig(img)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)

	assert.Nil(t, all[1].ImagePath)
	assert.Contains(t, ta.out.String(), "saving the recipe without it")
}

func TestApp_ExpiredSessionIsRejected(t *testing.T) {
	ta := newTestApp(t, script(signUpAndIn, []string{"list", "help", "exit"})...)
	ta.app.sessionValidity = -time.Minute

	ta.app.Run(context.Background())
	out := ta.out.String()

	assert.Contains(t, out, "Error: session expired")
	// the gate ended the session
	assert.Contains(t, out, helpLoggedOut)
}

func TestNewApp_FromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DataDir = t.TempDir()
	cfg.StorageBackend = config.BackendSQLite

	a, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Len(t, a.jwtSecret, 64)
	assert.Equal(t, cfg.TopIngredientsLimit, a.topLimit)
	require.NoError(t, a.Close())

	cfg.SecretKey = "fixed"
	cfg.StorageBackend = config.BackendJSON
	a, err = NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, []byte("fixed"), a.jwtSecret)
	require.NoError(t, a.Close())
}
