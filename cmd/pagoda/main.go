package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pagoda/internal/config"
	"pagoda/internal/viewer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "pagoda: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pagoda", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML or TOML config file")
	theme := fs.String("theme", "", "day or night")
	blossoms := fs.Int("blossoms", 0, "petal density, 0-200")
	seed := fs.Uint64("seed", 0, "generation seed, 0 picks one from the clock")
	width := fs.Int("width", 0, "window width")
	height := fs.Int("height", 0, "window height")
	mute := fs.Bool("mute", false, "disable ambience")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	// Only flags given on the command line override file and env.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme":
			cfg.Theme = *theme
		case "blossoms":
			cfg.Blossoms = *blossoms
		case "seed":
			cfg.Seed = *seed
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "mute":
			cfg.Audio.Enabled = !*mute
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	scene, err := cfg.Scene()
	if err != nil {
		return err
	}
	log.Info("starting",
		"theme", scene.Theme,
		"blossoms", scene.BlossomDensity,
		"seed", scene.Seed,
		"audio", cfg.Audio.Enabled,
	)

	return viewer.Run(viewer.Options{
		Window: viewer.WindowOptions{
			Width:   cfg.Window.Width,
			Height:  cfg.Window.Height,
			Title:   cfg.Window.Title,
			Samples: cfg.Window.Samples,
		},
		Scene:  scene,
		Audio:  cfg.Audio.Enabled,
		Volume: cfg.Audio.Volume,
		Log:    log,
	})
}
