package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/abdeljalil-salhi/ft-vox/internal/config"
	"github.com/abdeljalil-salhi/ft-vox/internal/engine"
	"github.com/abdeljalil-salhi/ft-vox/internal/export"
)

func main() {
	cfg := config.DefaultConfig()

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "chunk edge length in voxels (1-63)")
	flag.IntVar(&cfg.WorldWidth, "world-width", cfg.WorldWidth, "world width in chunks")
	flag.IntVar(&cfg.WorldHeight, "world-height", cfg.WorldHeight, "world height in chunks")
	flag.IntVar(&cfg.WorldDepth, "world-depth", cfg.WorldDepth, "world depth in chunks")
	flag.Float64Var(&cfg.FOVDegrees, "fov", cfg.FOVDegrees, "vertical field of view in degrees")
	flag.Float64Var(&cfg.Near, "near", cfg.Near, "near clip distance")
	flag.Float64Var(&cfg.Far, "far", cfg.Far, "far clip distance")
	flag.Float64Var(&cfg.AspectRatio, "aspect", cfg.AspectRatio, "viewport aspect ratio")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "build workers (0 = one per CPU)")
	flag.StringVar(&cfg.Jitter, "jitter", cfg.Jitter, "strata and vegetation jitter: seeded or random")
	flag.BoolVar(&cfg.AmbientOcclusion, "ao", cfg.AmbientOcclusion, "bake ambient occlusion into meshes")
	flag.IntVar(&cfg.CloudHeight, "cloud-height", cfg.CloudHeight, "cloud layer elevation in voxels (0 = twice the world height)")

	configSrc := flag.String("config", "", "YAML config file path or go-getter URL")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	exportPath := flag.String("export", "", "write meshes and clouds to this zstd file")
	printConfig := flag.Bool("print-config", false, "print the effective config as YAML and exit")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fromFile := config.DefaultConfig()
	if *configSrc != "" {
		loaded, err := config.Load(ctx, *configSrc)
		if err != nil {
			log.Error("load config", "source", *configSrc, "error", err)
			os.Exit(1)
		}
		fromFile = loaded
		log.Info("loaded config", "source", *configSrc)
	}
	applied, err := config.ApplyEnv(fromFile, os.LookupEnv)
	if err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if len(applied) > 0 {
		log.Info("applied environment overrides", "vars", applied)
	}
	config.Merge(cfg, fromFile, explicit)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	if *printConfig {
		data, err := cfg.YAML()
		if err != nil {
			log.Error("print config", "error", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	build := uuid.NewString()
	log = log.With("build", build)

	eng, err := engine.New(cfg, log)
	if err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if err := eng.Build(ctx); err != nil {
		log.Error("build world", "error", err)
		os.Exit(1)
	}

	stats := eng.Stats()
	cam := eng.SpawnCamera()
	log.Info("world ready",
		"chunks", stats.Chunks,
		"meshed", stats.Meshed,
		"vertices", stats.Vertices,
		"cloudQuads", stats.CloudQuads,
		"visibleFromSpawn", len(eng.Frame(cam)),
		"duration", stats.TerrainTime+stats.MeshTime+stats.CloudTime,
	)

	if *exportPath != "" {
		if err := export.WriteFile(*exportPath, eng.Snapshot(build)); err != nil {
			log.Error("export meshes", "path", *exportPath, "error", err)
			os.Exit(1)
		}
		log.Info("meshes exported", "path", *exportPath)
	}
}
