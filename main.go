package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/iburimskiy/voxel-pyramid/internal/config"
	"github.com/iburimskiy/voxel-pyramid/internal/export"
	"github.com/iburimskiy/voxel-pyramid/internal/game"
	"github.com/iburimskiy/voxel-pyramid/internal/scene"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Default()
	flag.BoolVar(&cfg.Headless, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", config.HeadlessHz, "Frame rate in headless mode.")
	flag.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Mode, "mode", config.DefaultMode, "Voxel primitive: sphere or cube.")
	flag.IntVar(&cfg.Stars, "stars", config.StarCount, "Number of background stars.")
	flag.StringVar(&cfg.Variant, "variant", config.DefaultVariant, "Star animation: twinkle or pulse.")
	drift := flag.Float64("drift", 0, "Tint stars by position with this factor (e.g. 0.02).")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "Star field seed (0 = random).")
	flag.BoolVar(&cfg.Shade, "shade", false, "Gouraud-shade voxels from their normals.")
	flag.BoolVar(&cfg.Audio, "audio", false, "Play an ambient drone that follows the stars.")
	flag.StringVar(&cfg.ExportPath, "export", "", "Write the pyramid to this .glb file and exit.")
	flag.Parse()
	cfg.ColorDrift = float32(*drift)

	loop, err := scene.New(cfg, nil)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	if cfg.ExportPath != "" {
		if err := loop.Start(); err != nil {
			fatal(cfg, "failed to build scene", err)
		}
		if err := export.WriteGLB(cfg.ExportPath, loop.Scene().Mesh); err != nil {
			fatal(cfg, "failed to export pyramid", err)
		}
		slog.Info("pyramid exported", "path", cfg.ExportPath)
		loop.Stop()
		return
	}

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		surface, err := scene.NewHeadlessSurface(ctx, scene.HeadlessConfig{Hz: cfg.Hz, Frames: cfg.Frames})
		if err != nil {
			fatal(cfg, "failed to create headless surface", err)
		}
		if err := loop.Run(ctx, surface); err != nil && !errors.Is(err, context.Canceled) {
			fatal(cfg, "headless run failed", err)
		}
		return
	}

	if err := game.Run(cfg, loop); err != nil {
		fatal(cfg, "failed to run window", err)
	}
}

func fatal(cfg config.Config, msg string, err error) {
	slog.Error(msg, "error", err)
	if !cfg.Headless {
		game.ReportFatal(cfg.Title, err)
	}
	os.Exit(1)
}
