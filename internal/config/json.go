package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/recipekeeper/internal/flagx"
	"github.com/dmitrijs2005/recipekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Zero values
// leave the corresponding Config field untouched.
type JsonConfig struct {
	DataDir                 string         `json:"data_dir"`
	StorageBackend          string         `json:"storage_backend"`
	DatabaseDSN             string         `json:"database_dsn"`
	ImageBackend            string         `json:"image_backend"`
	MaxImageDimension       int            `json:"max_image_dimension"`
	ImageQuality            int            `json:"image_quality"`
	TopIngredientsLimit     int            `json:"top_ingredients_limit"`
	PasswordScheme          string         `json:"password_scheme"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	LogLevel                string         `json:"log_level"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the file named by -c/-config in args.
// Without such a flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.DataDir, c.DataDir)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.ImageBackend, c.ImageBackend)
	setInt(&config.MaxImageDimension, c.MaxImageDimension)
	setInt(&config.ImageQuality, c.ImageQuality)
	setInt(&config.TopIngredientsLimit, c.TopIngredientsLimit)
	setString(&config.PasswordScheme, c.PasswordScheme)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
