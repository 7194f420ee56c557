//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"cell-society/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := cfg.Simulation(flag.CommandLine)
	if err != nil {
		log.Fatal(err)
	}
	game, err := app.New(sim, cfg.Scale, cfg.SPS)
	if err != nil {
		log.Fatal(err)
	}

	title := sim.Title
	if title == "" {
		title = sim.Variant
	}
	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("cell society: " + title)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
