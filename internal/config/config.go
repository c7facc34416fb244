// Package config collects runtime settings from the environment.
//
// A .env file in the working directory is loaded first when present; real
// environment variables win over it. Command-line flags override the result.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every setting the binary reads from the environment.
type Config struct {
	Port         string // PORT, default 5175
	LogLevel     string // LOG_LEVEL, default info
	WordsFile    string // WORDS_FILE, empty means the embedded list
	DBPath       string // DB_PATH, empty disables result persistence
	ClientOrigin string // CLIENT_ORIGIN, default http://localhost:5173
	MaxWrong     int    // MAX_WRONG, default 5
	BenchWorkers int    // BENCH_WORKERS, 0 means GOMAXPROCS
}

// Load reads .env (if any) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		DBPath:       os.Getenv("DB_PATH"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		MaxWrong:     getInt("MAX_WRONG", 5),
		BenchWorkers: getInt("BENCH_WORKERS", 0),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getInt parses k as an integer; unparsable or negative values fall back to def.
func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
