package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses duration values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs, a time.Duration for the autosave quiet period.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	BaseURL        string        // canonical site URL used in the sitemap
	DBUser         string        // database username
	DBPass         string        // database password (optional)
	DBHost         string        // database host address
	DBPort         string        // database port number
	DBName         string        // database name
	JWTSecret      string        // secret used to sign JWTs
	AccessTTLMin   int           // access token time-to-live in minutes
	RefreshTTLDays int           // refresh token time-to-live in days
	BcryptCost     int           // bcrypt cost for password hashing
	SessionTTLDays int           // lifetime of the visitor session cookie in days
	AutosaveDelay  time.Duration // quiet period before a pending draft write is flushed
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional values fall
// back to defaults sensible for local development.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),                                    // environment (dev/test/prod)
		Port:           must("APP_PORT"),                                   // port to bind the HTTP server
		BaseURL:        getenv("APP_URL", "http://localhost:8080"),         // base URL for absolute links
		DBUser:         must("DB_USER"),                                    // database user
		DBPass:         os.Getenv("DB_PASS"),                               // database password (empty allowed)
		DBHost:         must("DB_HOST"),                                    // database host
		DBPort:         must("DB_PORT"),                                    // database port
		DBName:         must("DB_NAME"),                                    // database name
		JWTSecret:      must("JWT_SECRET"),                                 // secret used for signing JWTs
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),                    // TTL for access tokens in minutes
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),                  // TTL for refresh tokens in days
		BcryptCost:     mustInt("BCRYPT_COST"),                             // bcrypt cost factor
		SessionTTLDays: envIntDef("SESSION_TTL_DAYS", 7),                   // visitor session cookie lifetime
		AutosaveDelay:  envDurDef("AUTOSAVE_DELAY", 1500*time.Millisecond), // draft autosave quiet period
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envIntDef reads an optional integer variable, returning def when the
// variable is unset or malformed.
func envIntDef(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}

// envDurDef reads an optional duration variable ("1.5s", "500ms", ...),
// returning def when the variable is unset or malformed.
func envDurDef(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return def
}
