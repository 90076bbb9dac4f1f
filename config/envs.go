package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// History backends accepted in HISTORY_BACKEND.
const (
	HistoryRedis  = "redis"
	HistoryBadger = "badger"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP                string // Host IP for the server
	RESTPort              int    // Port for the REST API
	DBHost                string // Hostname or IP address for the database
	DBPort                int    // Port number for the database
	DBUser                string // Username for the database
	DBPassword            string // Password for the database
	DBName                string // Name of the database
	RedisAddr             string // host:port of the Redis server backing the walk history
	RedisPassword         string // Password for Redis, empty for none
	HistoryBackend        string // redis or badger
	BadgerPath            string // Directory of the Badger history, empty keeps it in memory
	HistoryTTLSeconds     int    // How long a served walk stays in the history
	HistoryCapacity       int    // Most recent walks remembered per generator scope
	GinMode               string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret             string // Secret key for JWT signing
	JWTIssuer             string // Issuer claim for JWTs
	RevealTokenTTLSeconds int    // Lifetime of a solution reveal token
	SearchStepBudget      int    // Frontier pops allowed per generation request
	SearchTimeoutMS       int    // Wall clock allowed per generation request
	MaxBoardDimension     int    // Largest accepted board width or height
}

// Envs holds the application's configuration loaded from environment variables.
// It is populated by Load.
var Envs Config

// Load reads the configuration into Envs.
// It loads environment variables from a .env file and exits if a required one is missing.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg, err := load(os.LookupEnv)
	if err != nil {
		log.Fatalf("[APP] [FATAL] %v", err)
	}
	Envs = cfg
	return cfg
}

type lookupFunc func(string) (string, bool)

type reader struct {
	lookup lookupFunc
	err    error
}

// load populates the Config struct from lookup, returning the first problem found.
func load(lookup lookupFunc) (Config, error) {
	r := &reader{lookup: lookup}
	cfg := Config{
		HostIP:                r.mustGetEnv("HOST_IP"),
		RESTPort:              r.mustGetEnvAsInt("REST_PORT"),
		DBHost:                r.mustGetEnv("DB_HOST"),
		DBPort:                r.mustGetEnvAsInt("DB_PORT"),
		DBUser:                r.mustGetEnv("DB_USER"),
		DBPassword:            r.mustGetEnv("DB_PASS"),
		DBName:                r.mustGetEnv("DB_NAME"),
		RedisAddr:             r.getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         r.getEnvWithDefault("REDIS_PASSWORD", ""),
		HistoryBackend:        r.getEnvWithDefault("HISTORY_BACKEND", HistoryRedis),
		BadgerPath:            r.getEnvWithDefault("BADGER_PATH", ""),
		HistoryTTLSeconds:     r.getEnvAsIntWithDefault("HISTORY_TTL_SECONDS", 86400),
		HistoryCapacity:       r.getEnvAsIntWithDefault("HISTORY_CAPACITY", 1024),
		GinMode:               r.getEnvWithDefault("GIN_MODE", "release"),
		JWTSecret:             r.mustGetEnv("JWT_SECRET"),
		JWTIssuer:             r.mustGetEnv("JWT_ISSUER"),
		RevealTokenTTLSeconds: r.getEnvAsIntWithDefault("REVEAL_TOKEN_TTL_SECONDS", 3600),
		SearchStepBudget:      r.getEnvAsIntWithDefault("SEARCH_STEP_BUDGET", 2_000_000),
		SearchTimeoutMS:       r.getEnvAsIntWithDefault("SEARCH_TIMEOUT_MS", 2000),
		MaxBoardDimension:     r.getEnvAsIntWithDefault("MAX_BOARD_DIMENSION", 64),
	}
	if r.err != nil {
		return Config{}, r.err
	}

	if cfg.HistoryBackend != HistoryRedis && cfg.HistoryBackend != HistoryBadger {
		return Config{}, fmt.Errorf("environment variable HISTORY_BACKEND must be %s or %s, got %q", HistoryRedis, HistoryBadger, cfg.HistoryBackend)
	}
	return cfg, nil
}

// mustGetEnv retrieves the value of an environment variable or records an error if not set.
func (r *reader) mustGetEnv(key string) string {
	value, exists := r.lookup(key)
	if !exists && r.err == nil {
		r.err = fmt.Errorf("environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or records an error if not set or cannot be parsed.
func (r *reader) mustGetEnvAsInt(key string) int {
	return r.atoi(key, r.mustGetEnv(key))
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func (r *reader) getEnvWithDefault(key, defaultValue string) string {
	if value, exists := r.lookup(key); exists {
		return value
	}
	return defaultValue
}

func (r *reader) getEnvAsIntWithDefault(key string, defaultValue int) int {
	value, exists := r.lookup(key)
	if !exists {
		return defaultValue
	}
	return r.atoi(key, value)
}

func (r *reader) atoi(key, valueStr string) int {
	if r.err != nil {
		return 0
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		r.err = fmt.Errorf("environment variable %s must be an integer: %v", key, err)
	}
	return value
}
