package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files in priority order: .env.local > .env.
// godotenv.Load never overwrites already-set variables, so OS env
// always wins and .env.local wins over .env. Returns the files that
// were actually present.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
