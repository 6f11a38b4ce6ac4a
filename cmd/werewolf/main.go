package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kiliankoe/werewolf/internal/bot"
	"github.com/kiliankoe/werewolf/internal/config"
	"github.com/kiliankoe/werewolf/internal/game"
	"github.com/kiliankoe/werewolf/internal/random"
	"github.com/kiliankoe/werewolf/internal/sim"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
)

const version = "v0.3.0-dev"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		seedFlag    = flag.Int64("seed", 0, "PRNG seed for the bots (overrides WEREWOLF_SEED)")
		gamesFlag   = flag.Int("games", 0, "Number of games to play (overrides WEREWOLF_GAMES)")
		exportFlag  = flag.String("export", "", "Append game reports to this file (overrides EXPORT_FILE)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Werewolf - round resolution engine with bot players

Usage: %s [options]

Options:
  -h, --help        Show this help message
  -v, --version     Show version information
  --seed N          PRNG seed for the bots (default: random)
  --games N         Number of games to play (default: 1)
  --export FILE     Append a report of every game to FILE

Environment Variables:
  WEREWOLF_SEED         PRNG seed, 0 picks one at random (default: 0)
  WEREWOLF_GAMES        Number of games to play (default: 1)
  WEREWOLF_MAX_REVOTES  Stalled tie revotes before the lowest id wins (default: 3)
  LOG_LEVEL             trace, debug, info, warn or error (default: info)
  LOG_FILE              Log file, empty disables it (default: logs/werewolf.log)
  EXPORT_FILE           Append game reports to this file (default: disabled)

Variables may also be set in a .env file in the working directory.

Examples:
  %s                       Play one game
  %s --seed 42 --games 10  Play ten reproducible games
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Werewolf %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *gamesFlag > 0 {
		cfg.Games = *gamesFlag
	}
	if *exportFlag != "" {
		cfg.ExportFile = *exportFlag
	}

	// zerolog setup (human-friendly console, plus a plain log file)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(cfg.Level())
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if cfg.LogFile != "" {
		f, err := openLogFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		out = zerolog.MultiLevelWriter(out, f)
	}
	zerologlog.Logger = zerolog.New(out).With().Timestamp().Logger()
	logger := zerologlog.Logger

	seed, err := random.SeedOr(cfg.Seed)
	if err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}
	logger.Info().Int64("seed", seed).Int("games", cfg.Games).Msg("starting")

	reg := game.DefaultRegistry()
	runner := sim.NewRunner(bot.NewRandom(seed), logger)
	wins := map[game.Faction]int{}
	for i := range cfg.Games {
		s, err := game.NewSession(sim.Preset(reg),
			game.WithLogger(logger.With().Int("game", i+1).Logger()),
			game.WithMaxRevotes(cfg.MaxRevotes),
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("new session")
		}
		sum, err := runner.Play(s)
		if err != nil {
			logger.Error().Err(err).Str("session", s.ID).Msg("game aborted")
			continue
		}
		wins[sum.Winner]++
		if cfg.ExportFile != "" {
			if err := game.ExportSession(s, cfg.ExportFile); err != nil {
				logger.Error().Err(err).Str("file", cfg.ExportFile).Msg("export failed")
			}
		}
	}

	logger.Info().
		Int("villagers", wins[game.FactionVillagers]).
		Int("werewolves", wins[game.FactionWerewolves]).
		Msg("all games played")
}

func openLogFile(name string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
