// Package config handles configuration for RecipeKeeper: defaults, a JSON
// overlay, environment variables (optionally from a .env file) and finally
// command-line flags. Later sources take precedence over earlier ones.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/logging"
)

// Storage backends.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Image backends.
const (
	ImagesLocal = "local"
	ImagesS3    = "s3"
)

// Password schemes.
const (
	SchemeSHA256   = "sha256"
	SchemeArgon2ID = "argon2id"
)

// Config holds runtime settings.
//
// Fields:
//   - DataDir: root for users.json, recipes.json, uploads/ and the default SQLite file.
//   - StorageBackend: json (whole-document files), sqlite or postgres.
//   - DatabaseDSN: DSN for the SQL backends. Empty means <DataDir>/recipekeeper.db for sqlite.
//   - ImageBackend: local (uploads dir) or s3.
//   - MaxImageDimension / ImageQuality: image normalization bounds.
//   - TopIngredientsLimit: default ranking size.
//   - PasswordScheme: digest used for new registrations.
//   - SecretKey: HMAC secret for session tokens. Empty means a random per-process key.
//   - SessionValidityDuration: session token lifetime.
//   - S3*: object storage settings, used only when ImageBackend is s3.
type Config struct {
	DataDir                 string
	StorageBackend          string
	DatabaseDSN             string
	ImageBackend            string
	MaxImageDimension       int
	ImageQuality            int
	TopIngredientsLimit     int
	PasswordScheme          string
	SecretKey               string
	SessionValidityDuration time.Duration
	LogLevel                string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
}

// LoadDefaults populates Config with development defaults matching the
// original on-disk layout.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.StorageBackend = BackendJSON
	c.DatabaseDSN = ""
	c.ImageBackend = ImagesLocal
	c.MaxImageDimension = 800
	c.ImageQuality = 85
	c.TopIngredientsLimit = 15
	c.PasswordScheme = SchemeSHA256
	c.SecretKey = ""
	c.SessionValidityDuration = 30 * time.Minute
	c.LogLevel = "info"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "recipes"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
}

// Load builds a Config from defaults, the JSON file named by -c/-config in
// args, the environment and finally the flags in args.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on any configuration error.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects unknown enum values and out-of-range image settings.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendJSON, BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	switch c.ImageBackend {
	case ImagesLocal, ImagesS3:
	default:
		return fmt.Errorf("unknown image backend %q", c.ImageBackend)
	}
	switch c.PasswordScheme {
	case SchemeSHA256, SchemeArgon2ID:
	default:
		return fmt.Errorf("unknown password scheme %q", c.PasswordScheme)
	}
	if c.StorageBackend == BackendPostgres && c.DatabaseDSN == "" {
		return fmt.Errorf("postgres backend requires a database DSN")
	}
	if c.MaxImageDimension <= 0 {
		return fmt.Errorf("max image dimension must be positive, got %d", c.MaxImageDimension)
	}
	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("image quality must be within 1..100, got %d", c.ImageQuality)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.SessionValidityDuration <= 0 {
		return fmt.Errorf("session validity must be positive")
	}
	return nil
}

// UsersDocument is the path of the users collection for the json backend.
func (c *Config) UsersDocument() string {
	return filepath.Join(c.DataDir, "users.json")
}

// RecipesDocument is the path of the recipes collection for the json backend.
func (c *Config) RecipesDocument() string {
	return filepath.Join(c.DataDir, "recipes.json")
}

// UploadsDir is where normalized images land with the local image backend.
func (c *Config) UploadsDir() string {
	return filepath.Join(c.DataDir, "uploads")
}

// SQLDSN returns DatabaseDSN, falling back to a file under DataDir for sqlite.
func (c *Config) SQLDSN() string {
	if c.DatabaseDSN == "" && c.StorageBackend == BackendSQLite {
		return filepath.Join(c.DataDir, "recipekeeper.db")
	}
	return c.DatabaseDSN
}
