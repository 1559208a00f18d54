package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits the operator list
	"time"    // time parses the wait-clock interval
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. The types reflect how the
// values are used in the application: strings for identifiers and
// secrets, ints for durations and pool sizes.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	JWTSecret    string        // secret used to sign JWTs
	AccessTTLMin int           // access token time-to-live in minutes
	BedCount     int           // size of the fixed bed pool
	BedsPerWard  int           // how many beds share one ward
	TickInterval time.Duration // how often the wait clock advances
	SeedDemo     bool          // seed the demo beds and queue at startup
	Operators    []Operator    // accounts allowed to issue commands
}

// Operator is one account of the OPERATORS list. Role is either
// ADMIN or STAFF; PasswordHash is a bcrypt hash, never a plain
// password.
type Operator struct {
	Username     string
	Role         string
	PasswordHash string
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),                 // environment (dev/test/prod)
		Port:         must("APP_PORT"),                // port to bind the HTTP server
		JWTSecret:    must("JWT_SECRET"),              // secret used for signing JWTs
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"), // TTL for access tokens in minutes
		BedCount:     envInt("BED_COUNT", 20),         // fixed pool size
		BedsPerWard:  envInt("BEDS_PER_WARD", 5),      // ward grouping
		TickInterval: envDur("TICK_INTERVAL", time.Minute),
		SeedDemo:     envBool("SEED_DEMO", false),
		Operators:    parseOperators(must("OPERATORS")),
	}
}

// parseOperators splits a comma separated list of
// username:role:bcrypt-hash triples. A bcrypt hash contains no colon,
// so the last field of each triple is taken verbatim.
func parseOperators(raw string) []Operator {
	var out []Operator
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			log.Fatalf("invalid OPERATORS entry: %q (want user:role:hash)", entry)
		}
		role := strings.ToUpper(strings.TrimSpace(parts[1]))
		if role != "ADMIN" && role != "STAFF" {
			log.Fatalf("invalid operator role %q for %q", role, parts[0])
		}
		out = append(out, Operator{
			Username:     strings.TrimSpace(parts[0]),
			Role:         role,
			PasswordHash: parts[2],
		})
	}
	if len(out) == 0 {
		log.Fatal("OPERATORS defined no accounts")
	}
	return out
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer. If conversion fails, the application logs a fatal error
// and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
