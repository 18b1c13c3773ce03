// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Identifiers and secrets are strings;
// durations use Go duration syntax (e.g. "30m").
type Config struct {
	Env              string        // application environment (e.g. "dev", "prod")
	Port             string        // HTTP port to listen on
	DBUser           string        // database username
	DBPass           string        // database password (optional)
	DBHost           string        // database host address
	DBPort           string        // database port number
	DBName           string        // database name
	JWTSecret        string        // secret used to verify JWTs issued by the auth service
	DraftTTL         time.Duration // how long a staged reservation draft survives
	SweepInterval    time.Duration // how often the checkout sweep runs
	StripeSecretKey  string        // secret API key for the checkout gateway
	StripeSuccessURL string        // absolute URL the gateway redirects to after payment
	StripeCancelURL  string        // absolute URL the gateway redirects to on cancel
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		DraftTTL:         duration("DRAFT_TTL", 30*time.Minute),
		SweepInterval:    duration("SWEEP_INTERVAL", time.Minute),
		StripeSecretKey:  must("STRIPE_SECRET_KEY"),
		StripeSuccessURL: must("STRIPE_SUCCESS_URL"),
		StripeCancelURL:  must("STRIPE_CANCEL_URL"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// duration parses an optional duration variable, falling back to def
// when unset.  An unparsable value is fatal so typos fail fast.
func duration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}
