//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"sled-mountain/internal/app"
	"sled-mountain/internal/core"
	"sled-mountain/internal/run"
	"sled-mountain/internal/sled"
	pkgcore "sled-mountain/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var store run.Store = run.NewFileStore(cfg.StatePath)
	if flags.Seed != "" {
		store = run.NewMemoryStore(run.State{Seed: flags.Seed})
	}
	_, m, err := run.Begin(store, cfg.Mountain, run.BeginOptions{
		RNG:       pkgcore.NewRNG(time.Now().UnixNano()),
		FreshSeed: flags.Fresh,
	})
	if err != nil {
		log.Fatalf("begin run: %v", err)
	}

	session := app.NewSession(m, sled.DefaultOptions(), core.NewFixedStep(cfg.Viewer.TPS))
	game := app.New(session, cfg.Viewer.Scale, cfg.Viewer.HUDWidth)
	size := session.Size()

	ebiten.SetWindowTitle("sled-mountain: " + session.Name())
	ebiten.SetWindowSize(size.W*cfg.Viewer.Scale+cfg.Viewer.HUDWidth, size.H*cfg.Viewer.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
