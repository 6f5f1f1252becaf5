// golemsim runs the golem rig headless: it steps a scripted input sequence
// at a fixed rate and logs the blend state of every segment.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/golem/internal/config"
	"github.com/Faultbox/golem/internal/engine/joint"
	"github.com/Faultbox/golem/internal/engine/texture"
	"github.com/Faultbox/golem/internal/game/rig"
	"github.com/Faultbox/golem/internal/logger"
	"github.com/Faultbox/golem/internal/sim"
)

var (
	flagScript      = flag.String("script", "inc:1s,idle:0.5s,dec:1s", "Input phases as action:duration pairs (inc, dec, both, idle)")
	flagDt          = flag.Duration("dt", time.Second/60, "Fixed timestep")
	flagEvery       = flag.Int("every", 10, "Log every Nth tick (0 = final state only)")
	flagAtlasOut    = flag.String("atlas-out", "", "Write the atlas as WebP to this path")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config as YAML to this path")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	script, err := sim.ParseScript(*flagScript)
	if err != nil {
		return fmt.Errorf("invalid --script: %w", err)
	}

	def, err := rig.FromConfig(cfg.Rig)
	if err != nil {
		return fmt.Errorf("invalid rig: %w", err)
	}

	if *flagWriteConfig != "" {
		if err := cfg.SaveTo(*flagWriteConfig); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		logger.Info("config written", zap.String("path", *flagWriteConfig))
	}
	if *flagSaveConfig {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
	}

	if *flagAtlasOut != "" {
		if err := writeAtlas(cfg.Atlas, def, *flagAtlasOut); err != nil {
			return err
		}
	}

	params := joint.Params{Rate: cfg.Control.Rate, BlendRate: cfg.Control.BlendRate}
	r, meshes, err := sim.Assemble(def, params)
	if err != nil {
		return err
	}

	logger.Info("running",
		zap.Stringer("script", script),
		zap.Duration("total", script.Total()),
		zap.Duration("dt", *flagDt),
		zap.Int("meshes", meshes.Len()),
	)

	res, err := sim.Run(r, script, *flagDt, func(tk sim.Tick) {
		if *flagEvery <= 0 || tk.N%*flagEvery != 0 {
			return
		}
		logSamples(tk.N, tk.Phase.Action.String(), tk.Samples)
	})
	if err != nil {
		return err
	}

	logSamples(res.Ticks, "final", res.Final)
	return nil
}

func writeAtlas(cfg config.AtlasConfig, def *rig.Definition, path string) error {
	grid := def.AtlasGrid()
	layout := texture.Layout{Cols: grid.Cols, Rows: grid.Rows, CellSize: cfg.CellSize}

	img := texture.Generate(layout)
	if cfg.Path != "" {
		var err error
		if img, err = texture.Load(cfg.Path, layout); err != nil {
			return fmt.Errorf("loading atlas: %w", err)
		}
	}

	if err := texture.SaveWebP(path, img); err != nil {
		return fmt.Errorf("writing atlas: %w", err)
	}
	logger.Info("atlas written", zap.String("path", path), zap.Int("cols", grid.Cols), zap.Int("rows", grid.Rows))
	return nil
}

func logSamples(n int, phase string, samples []sim.Sample) {
	for _, s := range samples {
		pos := s.Position.Array()
		logger.Info("segment",
			zap.Int("tick", n),
			zap.String("phase", phase),
			zap.String("part", s.Part),
			zap.Float32("alpha", s.Alpha),
			zap.Float32("blend", s.Blend),
			zap.Float32s("position", pos[:]),
		)
	}
}
