// Package engine drives the voxel pipeline for a host: it builds the world,
// answers per-frame visibility queries and applies player edits.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/abdeljalil-salhi/ft-vox/internal/config"
	"github.com/abdeljalil-salhi/ft-vox/internal/export"
	"github.com/abdeljalil-salhi/ft-vox/pkg/camera"
	"github.com/abdeljalil-salhi/ft-vox/pkg/mesh"
	"github.com/abdeljalil-salhi/ft-vox/pkg/sky"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world/gen"
)

// SpawnYaw is the initial camera yaw in degrees.
const SpawnYaw = -90

// Stats summarizes the last build.
type Stats struct {
	Chunks      int
	Meshed      int // chunks with a non-empty mesh
	Vertices    int
	CloudQuads  int
	TerrainTime time.Duration
	MeshTime    time.Duration
	CloudTime   time.Duration
}

// Engine owns one world and its cloud layer.
type Engine struct {
	cfg       *config.Config
	log       *slog.Logger
	generator gen.Generator
	noise     *gen.NoiseGenerator

	mu     sync.Mutex // guards grid, clouds and stats
	grid   *world.Grid
	clouds []uint16
	stats  Stats
}

// New creates an Engine for cfg. The world is not built until Build.
func New(cfg *config.Config, log *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	terrain := gen.NewTerrain(cfg.GenParams())
	return newEngine(cfg, log, terrain, terrain.Noise()), nil
}

func newEngine(cfg *config.Config, log *slog.Logger, g gen.Generator, noise *gen.NoiseGenerator) *Engine {
	return &Engine{
		cfg:       cfg,
		log:       log,
		generator: g,
		noise:     noise,
	}
}

// Build generates every chunk, meshes it and builds the cloud layer.
func (e *Engine) Build(ctx context.Context) error {
	e.log.Info("building world",
		"seed", e.cfg.Seed,
		"chunkSize", e.cfg.ChunkSize,
		"width", e.cfg.WorldWidth,
		"height", e.cfg.WorldHeight,
		"depth", e.cfg.WorldDepth,
		"jitter", e.cfg.Jitter,
	)

	grid, err := world.New(world.Options{
		ChunkSize: e.cfg.ChunkSize,
		Width:     e.cfg.WorldWidth,
		Height:    e.cfg.WorldHeight,
		Depth:     e.cfg.WorldDepth,
		Generator: e.generator,
		Workers:   e.cfg.Workers,
		Mesh:      e.cfg.MeshOptions(),
	})
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}

	var stats Stats
	start := time.Now()
	if err := grid.Generate(ctx); err != nil {
		return err
	}
	stats.TerrainTime = time.Since(start)
	e.log.Info("terrain generated", "chunks", grid.Len(), "duration", stats.TerrainTime)

	start = time.Now()
	if err := grid.Remesh(ctx, e.cfg.MeshOptions()); err != nil {
		return err
	}
	stats.MeshTime = time.Since(start)
	countMeshes(grid, &stats)
	e.log.Info("meshes built",
		"meshed", stats.Meshed,
		"vertices", stats.Vertices,
		"ambientOcclusion", e.cfg.AmbientOcclusion,
		"duration", stats.MeshTime,
	)

	start = time.Now()
	coverage := sky.Clouds(e.noise, e.cfg.WorldWidth*e.cfg.ChunkSize, e.cfg.WorldDepth*e.cfg.ChunkSize)
	rects := sky.Merge(coverage)
	clouds := sky.Mesh(rects, e.cfg.CloudLevel())
	stats.CloudTime = time.Since(start)
	stats.CloudQuads = len(rects)
	e.log.Info("clouds built",
		"cells", coverage.Count(),
		"quads", stats.CloudQuads,
		"duration", stats.CloudTime,
	)

	e.mu.Lock()
	e.grid = grid
	e.clouds = clouds
	e.stats = stats
	e.mu.Unlock()
	return nil
}

// Grid returns the built world, or nil before Build succeeds.
func (e *Engine) Grid() *world.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid
}

// Clouds returns the cloud vertex coordinates, three uint16 per vertex.
func (e *Engine) Clouds() []uint16 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clouds
}

// Stats returns the statistics of the last build.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// SpawnCamera returns a camera above the world center looking along -z.
func (e *Engine) SpawnCamera() *camera.Camera {
	center := float32(e.cfg.WorldWidth * e.cfg.ChunkSize / 2)
	top := float32(e.cfg.WorldHeight * e.cfg.ChunkSize)
	return camera.New(mgl32.Vec3{center, top, center}, SpawnYaw, 0, e.Lens())
}

// Lens returns the projection settings from the config.
func (e *Engine) Lens() camera.Lens {
	return camera.Lens{
		VerticalFOV: mgl32.DegToRad(float32(e.cfg.FOVDegrees)),
		Aspect:      float32(e.cfg.AspectRatio),
		Near:        float32(e.cfg.Near),
		Far:         float32(e.cfg.Far),
	}
}

// Frame returns the chunks cam can see, in index order.
func (e *Engine) Frame(cam *camera.Camera) []*world.Chunk {
	grid := e.Grid()
	if grid == nil {
		return nil
	}
	return grid.Visible(cam.Frustum(), cam.Eye())
}

// SetShading switches between ambient occlusion and flat shading. Only the
// meshes are rebuilt.
func (e *Engine) SetShading(ctx context.Context, ambientOcclusion bool) error {
	grid := e.Grid()
	if grid == nil {
		return fmt.Errorf("set shading: world not built")
	}

	start := time.Now()
	if err := grid.Remesh(ctx, mesh.Options{AmbientOcclusion: ambientOcclusion}); err != nil {
		return err
	}

	e.mu.Lock()
	e.stats.MeshTime = time.Since(start)
	countMeshes(grid, &e.stats)
	e.mu.Unlock()

	e.log.Info("shading changed", "ambientOcclusion", ambientOcclusion, "duration", time.Since(start))
	return nil
}

// Snapshot captures the current meshes and clouds for export.
func (e *Engine) Snapshot(build string) *export.Snapshot {
	grid := e.Grid()
	snap := &export.Snapshot{
		Header: export.Header{
			Build:       build,
			Seed:        e.cfg.Seed,
			ChunkSize:   e.cfg.ChunkSize,
			WorldWidth:  e.cfg.WorldWidth,
			WorldHeight: e.cfg.WorldHeight,
			WorldDepth:  e.cfg.WorldDepth,
		},
		Clouds: e.Clouds(),
	}
	if grid == nil {
		return snap
	}
	snap.Header.Occlusion = grid.Shading().AmbientOcclusion
	grid.ForEachChunk(func(c *world.Chunk) {
		words := c.Mesh().Words()
		if len(words) == 0 {
			return
		}
		pos := c.Position()
		snap.Chunks = append(snap.Chunks, export.ChunkMesh{
			Index: c.Index(),
			X:     pos.X,
			Y:     pos.Y,
			Z:     pos.Z,
			Words: words,
		})
	})
	return snap
}

func countMeshes(grid *world.Grid, stats *Stats) {
	stats.Chunks = grid.Len()
	stats.Meshed, stats.Vertices = 0, 0
	grid.ForEachChunk(func(c *world.Chunk) {
		if n := c.Mesh().VertexCount(); n > 0 {
			stats.Meshed++
			stats.Vertices += n
		}
	})
}
