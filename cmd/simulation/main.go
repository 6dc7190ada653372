package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/lao-tseu-is-alive/go-agent-motion/internal/simulation"
)

func main() {
	configFile := flag.String("config", "config.json", "path to the config file")
	schemaFile := flag.String("schema", "config.schema.json", "path to the config schema")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := simulation.LoadConfig(*configFile, *schemaFile)
	if err != nil {
		log.Warn().Err(err).Msg("config load failed, using defaults")
		cfg = simulation.DefaultConfig()
	}

	game, err := simulation.NewGame(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Agent Motion: Steering & Picking")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game loop failed")
	}
}
