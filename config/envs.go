package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	DiscountFactor      float64 // Discount factor used when a maze does not carry its own
	MaxError            float64 // Maximum utility error allowed in value iteration
	NumPolicyEvaluation int     // Policy evaluation sweeps per policy improvement
	ResultsDir          string  // Directory where result logs and plots are written
	MaxMazeSide         int     // Largest maze side accepted by the planning API
	HostIP              string  // Host IP for the server
	RESTPort            int     // Port for the REST API
	GinMode             string  // Mode for the Gin framework (e.g., release, debug, test)
	DBURI               string  // MongoDB connection URI; empty disables plan storage
	DBName              string  // Name of the database
	RedisAddr           string  // Redis address; empty disables the plan cache
	RedisPassword       string  // Password for Redis
	RedisDB             int     // Redis logical database
	CacheTTLSeconds     int     // Lifetime of cached plans
	JWTSecret           string  // Secret key for JWT signing; empty disables authorization
	JWTIssuer           string  // Issuer claim for JWTs
}

// Default values for every optional setting.
var Defaults = Config{
	DiscountFactor:      0.99,
	MaxError:            20,
	NumPolicyEvaluation: 100,
	ResultsDir:          "results/",
	MaxMazeSide:         100,
	HostIP:              "0.0.0.0",
	RESTPort:            8080,
	GinMode:             "release",
	DBName:              "vinom_planner",
	CacheTTLSeconds:     3600,
	JWTIssuer:           "vinom-planner",
}

// Load initializes and returns the application configuration.
// It loads environment variables from a .env file when one is present and
// falls back to Defaults for unset variables.
func Load() (Config, error) {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, which has the signature of os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}
	d := Defaults

	c := Config{
		DiscountFactor:      e.float("DISCOUNT_FACTOR", d.DiscountFactor),
		MaxError:            e.float("MAX_ERROR", d.MaxError),
		NumPolicyEvaluation: e.int("NUM_POLICY_EVALUATION", d.NumPolicyEvaluation),
		ResultsDir:          e.string("RESULTS_DIR", d.ResultsDir),
		MaxMazeSide:         e.int("MAX_MAZE_SIDE", d.MaxMazeSide),
		HostIP:              e.string("HOST_IP", d.HostIP),
		RESTPort:            e.int("REST_PORT", d.RESTPort),
		GinMode:             e.string("GIN_MODE", d.GinMode),
		DBURI:               e.string("DB_URI", d.DBURI),
		DBName:              e.string("DB_NAME", d.DBName),
		RedisAddr:           e.string("REDIS_ADDR", d.RedisAddr),
		RedisPassword:       e.string("REDIS_PASSWORD", d.RedisPassword),
		RedisDB:             e.int("REDIS_DB", d.RedisDB),
		CacheTTLSeconds:     e.int("CACHE_TTL_SECONDS", d.CacheTTLSeconds),
		JWTSecret:           e.string("JWT_SECRET", d.JWTSecret),
		JWTIssuer:           e.string("JWT_ISSUER", d.JWTIssuer),
	}
	if e.err != nil {
		return Config{}, e.err
	}

	if c.DiscountFactor <= 0 || c.DiscountFactor >= 1 {
		return Config{}, fmt.Errorf("DISCOUNT_FACTOR must be in (0, 1), got %v", c.DiscountFactor)
	}
	if c.MaxError <= 0 {
		return Config{}, fmt.Errorf("MAX_ERROR must be positive, got %v", c.MaxError)
	}
	if c.NumPolicyEvaluation < 1 {
		return Config{}, fmt.Errorf("NUM_POLICY_EVALUATION must be at least 1, got %d", c.NumPolicyEvaluation)
	}

	return c, nil
}

// env reads typed variables and keeps the first parse error.
type env struct {
	lookup func(string) (string, bool)
	err    error
}

// string retrieves the value of an environment variable or returns a default value if not set.
func (e *env) string(key, defaultValue string) string {
	if value, exists := e.lookup(key); exists {
		return value
	}
	return defaultValue
}

// int retrieves an environment variable as an integer.
func (e *env) int(key string, defaultValue int) int {
	valueStr, exists := e.lookup(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value
}

// float retrieves an environment variable as a float.
func (e *env) float(key string, defaultValue float64) float64 {
	valueStr, exists := e.lookup(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("environment variable %s must be a number: %w", key, err)
	}
	return value
}
