package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docloc/internal/logfields"
)

// loadEnvFile loads environment variables from .env/.env.local in dir (the
// working directory when empty). It stops at the first file that parses.
// Variables already set to a non-empty value in the process environment
// are not overwritten; empty ones count as unset.
func loadEnvFile(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		path := name
		if dir != "" {
			path = filepath.Join(dir, name)
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			slog.Warn("Ignoring unreadable env file", logfields.Path(path), logfields.Error(err))
			continue
		}
		for key, value := range values {
			if os.Getenv(key) == "" {
				_ = os.Setenv(key, value)
			}
		}
		slog.Debug("Loaded environment variables", logfields.Path(path), logfields.Count(len(values)))
		return
	}
}
