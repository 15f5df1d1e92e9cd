package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/config"
	"github.com/Garsondee/Swarm-Front/internal/logging"
	"github.com/Garsondee/Swarm-Front/internal/tui"
)

func main() {
	configDir := flag.String("config", ".", "directory holding battle.yaml")
	logFile := flag.String("log", filepath.Join(os.TempDir(), "swarm-front.log"), "log file; the terminal belongs to the battle")
	flag.Parse()

	boot := logging.New("info", os.Stderr)
	if err := config.Load(*configDir); err != nil {
		boot.Fatal().Err(err).Msg("loading config")
	}

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		boot.Fatal().Err(err).Str("path", *logFile).Msg("opening log file")
	}
	defer f.Close()
	log := logging.NewJSON(config.GetString("logLevel"), f)

	cfg, err := config.Battle()
	if err != nil {
		boot.Fatal().Err(err).Msg("building battle")
	}
	w, err := battle.NewWorld(cfg, battle.WithLogger(log))
	if err != nil {
		boot.Fatal().Err(err).Msg("creating world")
	}

	frames, ref := config.Benchmark()
	app, err := tui.New(w, tui.Options{
		Bench: battle.NewBenchmark(frames, ref),
		Sound: config.GetBool("sound.enabled"),
		Log:   log,
	})
	if err != nil {
		w.Close()
		boot.Fatal().Err(err).Msg("opening terminal")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = app.Run(ctx)
	app.Close()
	if err != nil {
		boot.Fatal().Err(err).Msg("terminal loop")
	}
}
