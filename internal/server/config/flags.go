package config

import (
	"flag"
	"os"
	"time"

	"github.com/fieldpass/fieldpass/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-r string   Redis URL for the revocation denylist
//	-s string   session token HMAC secret key
//	-t int      session token validity, hours
//	-c int      password-reset code validity, minutes
//	-m          release mode
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and then converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-s", "-t", "-c", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityHours := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	resetValidityMinutes := fs.Int("c", int(config.ResetCodeValidityDuration.Minutes()), "reset code validity (in minutes)")

	fs.BoolVar(&config.ReleaseMode, "m", config.ReleaseMode, "release mode")

	_ = fs.Parse(args)

	config.TokenValidityDuration = time.Duration(*tokenValidityHours) * time.Hour
	config.ResetCodeValidityDuration = time.Duration(*resetValidityMinutes) * time.Minute
}
