//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"ising-mc/internal/app"
	"ising-mc/internal/core"
	"ising-mc/internal/mc"
	_ "ising-mc/internal/sims/ising"
	_ "ising-mc/internal/sims/twostate"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	model, err := core.LookupModel(cfg.Model)
	if err != nil {
		log.Fatal(err)
	}
	chain, err := mc.NewChain(model, cfg.Size, cfg.Temperature, mc.InitSpec(cfg.Init), cfg.Seed)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(chain, cfg.Scale, cfg.Rate, cfg.HUDWidth, cfg.Seed)
	view := cfg.Size * cfg.Scale

	ebiten.SetWindowTitle("ising-mc: " + model.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(view+cfg.HUDWidth, view)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
