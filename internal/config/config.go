// internal/config/config.go
//
// Environment-driven configuration.
// main loads .env (godotenv) first, then Load reads the process environment.
// Command line flags may override individual fields afterwards.
//
// Environment variables:
//   PORT, LOG_LEVEL, WORDS_FILE, ANSWERS_FILE, OPENING_GUESS, MAX_ROUNDS,
//   CANDIDATES_ONLY, ROUND_TIMEOUT, RANK_WORKERS, RANK_CACHE_SIZE,
//   SESSION_SECRET, SESSION_TTL, CLIENT_ORIGIN, DB_PATH, DAILY_SALT
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Config holds every tunable of the solver binaries.
type Config struct {
	Port           string
	LogLevel       string
	WordsFile      string // empty: embedded corpus
	AnswersFile    string // empty: embedded answers
	Opening        string
	MaxRounds      int
	CandidatesOnly bool
	RoundTimeout   time.Duration
	RankWorkers    int
	RankCacheSize  int
	SessionSecret  string
	SessionTTL     time.Duration
	ClientOrigin   string
	DBPath         string // empty: batch runs are not persisted
	DailySalt      string
}

// Load reads the environment, applying defaults for unset variables.
func Load() (Config, error) {
	c := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		WordsFile:     os.Getenv("WORDS_FILE"),
		AnswersFile:   os.Getenv("ANSWERS_FILE"),
		Opening:       getEnv("OPENING_GUESS", solver.DefaultOpening),
		SessionSecret: getEnv("SESSION_SECRET", "dev_secret_change_me"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DBPath:        os.Getenv("DB_PATH"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
	}
	var err error
	if c.MaxRounds, err = envInt("MAX_ROUNDS", solver.DefaultMaxRounds); err != nil {
		return c, err
	}
	if c.CandidatesOnly, err = envBool("CANDIDATES_ONLY", false); err != nil {
		return c, err
	}
	if c.RoundTimeout, err = envDuration("ROUND_TIMEOUT", 10*time.Second); err != nil {
		return c, err
	}
	if c.RankWorkers, err = envInt("RANK_WORKERS", 0); err != nil {
		return c, err
	}
	if c.RankCacheSize, err = envInt("RANK_CACHE_SIZE", 4096); err != nil {
		return c, err
	}
	if c.SessionTTL, err = envDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	if _, err := words.ParseWord(c.Opening); err != nil {
		return fmt.Errorf("config: OPENING_GUESS: %w", err)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("config: MAX_ROUNDS must be positive, got %d", c.MaxRounds)
	}
	if c.RoundTimeout <= 0 {
		return fmt.Errorf("config: ROUND_TIMEOUT must be positive, got %s", c.RoundTimeout)
	}
	if c.RankCacheSize < 0 {
		return fmt.Errorf("config: RANK_CACHE_SIZE must not be negative, got %d", c.RankCacheSize)
	}
	return nil
}

// SolverConfig converts to the engine rules. Call after Validate.
func (c Config) SolverConfig() solver.Config {
	return solver.Config{
		Opening:        words.MustParse(c.Opening),
		MaxRounds:      c.MaxRounds,
		CandidatesOnly: c.CandidatesOnly,
	}
}

// RankerConfig converts to ranker tuning.
func (c Config) RankerConfig() solver.RankerConfig {
	return solver.RankerConfig{Workers: c.RankWorkers, CacheSize: c.RankCacheSize}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

func envBool(k string, def bool) (bool, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", k, err)
	}
	return b, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("config: %s: %w", k, err)
	}
	return d, nil
}
