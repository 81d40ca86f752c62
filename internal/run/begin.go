package run

import (
	"fmt"
	"log"
	"strings"

	"sled-mountain/internal/mountain"
	"sled-mountain/pkg/core"
)

// BeginOptions controls how a run starts.
type BeginOptions struct {
	// RNG mints the seed when the state has none or FreshSeed is set.
	RNG *core.RNG
	// FreshSeed discards the stored seed.
	FreshSeed bool
	// Logger receives progress lines. Nil uses the standard logger.
	Logger *log.Logger
	// LogLayers adds one line per generated layer.
	LogLayers bool
}

// Begin loads the run state, mints a seed if needed, bumps the run counter,
// saves the state and builds the mountain for it.
func Begin(store Store, cfg mountain.Config, opts BeginOptions) (State, *mountain.Mountain, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	st, err := store.Load()
	if err != nil {
		return State{}, nil, fmt.Errorf("load run state: %w", err)
	}

	if opts.FreshSeed || strings.TrimSpace(st.Seed) == "" {
		if opts.RNG == nil {
			st.Seed = mountain.DefaultSeed
		} else {
			st.Seed = opts.RNG.SeedString()
		}
		logger.Printf("minted seed %q", st.Seed)
	}
	st.Run++

	var mopts []mountain.Option
	if opts.LogLayers {
		mopts = append(mopts, mountain.WithLogger(logger))
	}
	m, err := mountain.New(st.Seed, cfg, mopts...)
	if err != nil {
		return State{}, nil, fmt.Errorf("build mountain: %w", err)
	}
	if err := store.Save(st); err != nil {
		return State{}, nil, fmt.Errorf("save run state: %w", err)
	}
	logger.Printf("run %d on seed %q: %d layers", st.Run, st.Seed, len(m.Layers()))
	return st, m, nil
}
