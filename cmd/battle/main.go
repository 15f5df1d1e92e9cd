package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Swarm-Front/internal/battle"
	"github.com/Garsondee/Swarm-Front/internal/config"
	"github.com/Garsondee/Swarm-Front/internal/game"
	"github.com/Garsondee/Swarm-Front/internal/logging"
)

func main() {
	configDir := flag.String("config", ".", "directory holding battle.yaml")
	flag.Parse()

	boot := logging.New("info", os.Stderr)
	if err := config.Load(*configDir); err != nil {
		boot.Fatal().Err(err).Msg("loading config")
	}
	log := logging.New(config.GetString("logLevel"), os.Stderr)

	cfg, err := config.Battle()
	if err != nil {
		log.Fatal().Err(err).Msg("building battle")
	}
	w, err := battle.NewWorld(cfg, battle.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("creating world")
	}

	frames, ref := config.Benchmark()
	g := game.New(w, game.Options{
		Bench:    battle.NewBenchmark(frames, ref),
		SimSpeed: config.GetFloat64("display.simSpeed"),
		Log:      log,
	})

	ebiten.SetWindowTitle("Swarm Front")
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("game loop")
	}
}
