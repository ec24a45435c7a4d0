package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"data_dir":                  "/var/lib/recipes",
		"storage_backend":           "postgres",
		"database_dsn":              "postgres://localhost/recipes",
		"image_backend":             "s3",
		"max_image_dimension":       640,
		"image_quality":             70,
		"top_ingredients_limit":     5,
		"password_scheme":           "argon2id",
		"secret_key":                "k",
		"session_validity_duration": "90s",
		"log_level":                 "debug",
		"s3_root_user":              "user",
		"s3_root_password":          "password",
		"s3_bucket":                 "bucket",
		"s3_region":                 "region",
		"s3_base_endpoint":          "http://minio:9000",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "/var/lib/recipes", cfg.DataDir)
		assert.Equal(t, BackendPostgres, cfg.StorageBackend)
		assert.Equal(t, "postgres://localhost/recipes", cfg.DatabaseDSN)
		assert.Equal(t, ImagesS3, cfg.ImageBackend)
		assert.Equal(t, 640, cfg.MaxImageDimension)
		assert.Equal(t, 70, cfg.ImageQuality)
		assert.Equal(t, 5, cfg.TopIngredientsLimit)
		assert.Equal(t, SchemeArgon2ID, cfg.PasswordScheme)
		assert.Equal(t, "k", cfg.SecretKey)
		assert.Equal(t, 90*time.Second, cfg.SessionValidityDuration)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
	})

	t.Run("missing keys keep existing values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "warn"})

		var cfg Config
		cfg.LoadDefaults()
		require.NoError(t, parseJson(&cfg, []string{"-c", partial}))

		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, 800, cfg.MaxImageDimension)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		cfg := &Config{DataDir: "keep"}
		require.NoError(t, parseJson(cfg, nil))
		assert.Equal(t, "keep", cfg.DataDir)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file fails", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}
