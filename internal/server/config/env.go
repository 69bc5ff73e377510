package config

import (
	"os"
	"strconv"
	"time"

	"github.com/fieldpass/fieldpass/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. An optional
// .env file (path from the -e/-env-file flag, falling back to ./.env) is
// loaded first; godotenv never overrides variables already present in the
// process environment.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		_ = godotenv.Load(path)
	} else {
		_ = godotenv.Load()
	}

	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("REDIS_URL"); ok {
		config.RedisURL = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY_HOURS"); ok {
		if hours, err := strconv.Atoi(v); err == nil {
			config.TokenValidityDuration = time.Duration(hours) * time.Hour
		}
	}
	if v, ok := os.LookupEnv("RESET_CODE_VALIDITY_MINUTES"); ok {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.ResetCodeValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v, ok := os.LookupEnv("PASSWORD_HASH_COST"); ok {
		if cost, err := strconv.Atoi(v); err == nil {
			config.PasswordHashCost = cost
		}
	}
	if v, ok := os.LookupEnv("RELEASE_MODE"); ok {
		if release, err := strconv.ParseBool(v); err == nil {
			config.ReleaseMode = release
		}
	}
}
