package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "RECIPEKEEPER_"

// loadDotEnv copies variables from path into the process environment without
// overriding ones already set. A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays RECIPEKEEPER_* variables obtained through lookup.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DATA_DIR":         &config.DataDir,
		"STORAGE_BACKEND":  &config.StorageBackend,
		"DATABASE_DSN":     &config.DatabaseDSN,
		"IMAGE_BACKEND":    &config.ImageBackend,
		"PASSWORD_SCHEME":  &config.PasswordScheme,
		"SECRET_KEY":       &config.SecretKey,
		"LOG_LEVEL":        &config.LogLevel,
		"S3_ROOT_USER":     &config.S3RootUser,
		"S3_ROOT_PASSWORD": &config.S3RootPassword,
		"S3_BUCKET":        &config.S3Bucket,
		"S3_REGION":        &config.S3Region,
		"S3_BASE_ENDPOINT": &config.S3BaseEndpoint,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MAX_IMAGE_DIMENSION":   &config.MaxImageDimension,
		"IMAGE_QUALITY":         &config.ImageQuality,
		"TOP_INGREDIENTS_LIMIT": &config.TopIngredientsLimit,
	}
	for key, dst := range ints {
		v, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*dst = n
	}

	if v, ok := lookup(envPrefix + "SESSION_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSESSION_VALIDITY: %w", envPrefix, err)
		}
		config.SessionValidityDuration = d
	}

	return nil
}
