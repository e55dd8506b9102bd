// Package config loads application configuration from environment variables.
package config

import (
    "log"
    "os"
    "strconv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers, ints for counts and offsets.
type Config struct {
    Env              string // application environment (e.g. "dev", "prod")
    Port             string // HTTP port to listen on
    StoreDriver      string // keyed-store driver: "mysql" or "redis"
    DBUser           string // database username (mysql driver)
    DBPass           string // database password (optional)
    DBHost           string // database host address (mysql driver)
    DBPort           string // database port number (mysql driver)
    DBName           string // database name (mysql driver)
    UTCOffsetSeconds int    // fixed offset of restaurant local time, seconds east of UTC
    MaxAttempts      int    // commit attempts per booking before giving up
    ConsumerEnabled  bool   // run the reservation audit consumer in-process
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. The MySQL coordinates are
// only required when the mysql store driver is selected.
func Load() Config {
    cfg := Config{
        Env:              must("APP_ENV"),
        Port:             must("APP_PORT"),
        StoreDriver:      envStr("STORE_DRIVER", "mysql"),
        DBPass:           os.Getenv("DB_PASS"),
        UTCOffsetSeconds: envInt("RESTAURANT_UTC_OFFSET_SECONDS", 0),
        MaxAttempts:      envInt("BOOKING_MAX_ATTEMPTS", 3),
        ConsumerEnabled:  envBool("RESERVATION_CONSUMER_ENABLED", true),
    }
    if cfg.StoreDriver != "mysql" && cfg.StoreDriver != "redis" {
        log.Fatalf("unsupported STORE_DRIVER: %q", cfg.StoreDriver)
    }
    if cfg.StoreDriver == "mysql" {
        cfg.DBUser = must("DB_USER")
        cfg.DBHost = must("DB_HOST")
        cfg.DBPort = must("DB_PORT")
        cfg.DBName = must("DB_NAME")
    }
    return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

func envStr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            return n
        }
    }
    return def
}

func envBool(key string, def bool) bool {
    if v := os.Getenv(key); v != "" {
        if b, err := strconv.ParseBool(v); err == nil {
            return b
        }
    }
    return def
}
