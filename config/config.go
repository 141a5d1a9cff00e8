// Package config reads the settings of the ledger tools from a dotenv file
// and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultFile is the dotenv file read when no other is given.
const DefaultFile = "ledger.env"

// Environment keys.
const (
	EnvDBPath       = "LEDGER_DB_PATH"
	EnvDefaultVenue = "LEDGER_DEFAULT_VENUE"
	EnvExportDir    = "LEDGER_EXPORT_DIR"
	EnvLogLevel     = "LEDGER_LOG_LEVEL"
)

// Config holds the settings shared by every command.
type Config struct {
	DBPath       string // SQLite file of the ledger
	DefaultVenue string // venue used when an entry gives none
	ExportDir    string // directory receiving export files
	LogLevel     string // zerolog level name
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:    "ledger.db",
		ExportDir: "exports",
		LogLevel:  "warn",
	}
}

// Load returns the settings read from the dotenv file at path, overridden by
// the process environment, on top of Default. A missing file is not an
// error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		values, err = map[string]string{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return build(values, os.LookupEnv), nil
}

// build applies file values then environment values over the defaults.
func build(file map[string]string, env func(string) (string, bool)) Config {
	c := Default()
	set := func(dst *string, key string) {
		if v, ok := file[key]; ok && v != "" {
			*dst = v
		}
		if v, ok := env(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.DBPath, EnvDBPath)
	set(&c.DefaultVenue, EnvDefaultVenue)
	set(&c.ExportDir, EnvExportDir)
	set(&c.LogLevel, EnvLogLevel)
	return c
}
