package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/recipekeeper/internal/flagx"
)

// parseFlags overlays Config fields from the flags in args.
//
// Supported flags (short forms):
//
//	-d string   data directory
//	-s string   storage backend (json, sqlite, postgres)
//	-n string   database DSN
//	-i string   image backend (local, s3)
//	-p string   password scheme for new users (sha256, argon2id)
//	-k string   session token secret key
//	-t int      session validity, minutes
//	-m int      default number of top ingredients
//	-l string   log level
//	-u string   S3 root user
//	-w string   S3 root password
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//
// Unknown arguments are filtered out first so -c/-config never collide.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-n", "-i", "-p", "-k", "-t", "-m", "-l", "-u", "-w", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("recipekeeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "n", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.ImageBackend, "i", config.ImageBackend, "image backend")
	fs.StringVar(&config.PasswordScheme, "p", config.PasswordScheme, "password scheme")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "session secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")

	fs.IntVar(&config.TopIngredientsLimit, "m", config.TopIngredientsLimit, "top ingredients limit")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "w", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
		}
	})
	return nil
}
