package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Seed       int64  `env:"WEREWOLF_SEED" envDefault:"0"`
	Games      int    `env:"WEREWOLF_GAMES" envDefault:"1"`
	MaxRevotes int    `env:"WEREWOLF_MAX_REVOTES" envDefault:"3"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"LOG_FILE" envDefault:"logs/werewolf.log"`
	ExportFile string `env:"EXPORT_FILE"`
}

// Load reads the optional dotenv files into the environment, then parses
// Config from it. Variables already set win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.Games < 1 {
		return Config{}, fmt.Errorf("parse env: WEREWOLF_GAMES must be at least 1, got %d", c.Games)
	}
	if c.MaxRevotes < 0 {
		return Config{}, fmt.Errorf("parse env: WEREWOLF_MAX_REVOTES must not be negative, got %d", c.MaxRevotes)
	}
	return c, nil
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
