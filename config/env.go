package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvConfig   = "BWMFI_CONFIG"
	EnvDB       = "BWMFI_DB"
	EnvLogLevel = "BWMFI_LOG_LEVEL"
)

// Env holds the settings read from the process environment.
type Env struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

// LoadEnv loads path (default ".env") into the environment if it exists,
// then reads the BWMFI_* variables. Variables already set win over the file.
func LoadEnv(path string) (Env, error) {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return Env{}, fmt.Errorf("load env file %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Env{}, fmt.Errorf("stat env file %s: %w", path, err)
	}

	return Env{
		ConfigPath: os.Getenv(EnvConfig),
		DBPath:     getenv(EnvDB, "bwmfi.db"),
		LogLevel:   getenv(EnvLogLevel, "info"),
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
