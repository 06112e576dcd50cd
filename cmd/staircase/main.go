package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oceanviz/staircase/internal/config"
	"github.com/oceanviz/staircase/internal/engine"
	"github.com/oceanviz/staircase/internal/log"
	"github.com/oceanviz/staircase/internal/system"
)

// Everything about a run is fixed: inputs under input/, outputs under
// output/ and frames/, with an optional staircase.yaml overriding the
// compiled-in scenario. No flags, no environment variables.
func main() {
	if err := log.Init(true); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	system.InitResourceLimits()
	system.LogHostInfo()

	for _, d := range []string{"input", "output"} {
		os.MkdirAll(d, 0755)
	}

	cfg, err := config.Load(config.ScenarioPath)
	if err != nil {
		log.Errorf("Failed to load scenario: %v", err)
		os.Exit(1)
	}
	log.Infof("scenario: %s vs %s, %d frames @ %d fps, %dx%d",
		cfg.Profiles[0].ID, cfg.Profiles[1].ID, cfg.Frames, cfg.FPS, cfg.Width, cfg.Height)

	if err := engine.New(cfg).Run(context.Background()); err != nil {
		log.Errorf("Pipeline failed: %v", err)
		os.Exit(1)
	}

	log.Infof("wrote %s and %s", cfg.Output.GIF, cfg.Output.Comparison)
}
