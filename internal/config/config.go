package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/scythe504/skribblr-party/internal/game"
)

type Config struct {
	Port           int
	AllowedOrigins []string
	LogLevel       string
	LogPretty      bool
	// PostgresURL enables the game archive when set.
	PostgresURL string
	// WordsFile replaces the built-in lexicon tiers it defines.
	WordsFile string
	Game      game.Config
}

// Load reads a .env file if one exists, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	defaults := game.DefaultConfig()
	cfg := Config{
		Port:           3000,
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		PostgresURL:    getenv("POSTGRES_URL"),
		WordsFile:      getenv("WORDS_FILE"),
		Game:           defaults,
	}

	var errs []error
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("PORT: invalid port %q", v))
		}
		cfg.Port = port
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LOG_PRETTY"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("LOG_PRETTY: %w", err))
		}
		cfg.LogPretty = pretty
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"START_DELAY", &cfg.Game.StartDelay},
		{"FIRST_ROUND_DELAY", &cfg.Game.FirstRoundDelay},
		{"NEXT_ROUND_DELAY", &cfg.Game.NextRoundDelay},
		{"WORD_CHOICE_TIMEOUT", &cfg.Game.WordChoiceTimeout},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid duration %q", d.key, v))
			continue
		}
		*d.dst = parsed
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
