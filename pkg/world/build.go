package world

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"

	"github.com/abdeljalil-salhi/ft-vox/pkg/mesh"
)

// Build allocates a grid, generates all terrain, then meshes every chunk.
// Meshing starts only after every chunk has its voxels.
func Build(ctx context.Context, opts Options) (*Grid, error) {
	g, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := g.Generate(ctx); err != nil {
		return nil, err
	}
	if err := g.Remesh(ctx, opts.Mesh); err != nil {
		return nil, err
	}
	return g, nil
}

// Generate fills every chunk from the generator in parallel. It returns early
// with the context error if ctx is cancelled; chunks not reached stay empty.
func (g *Grid) Generate(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.parallel(ctx, func(c *Chunk) {
		clear(c.voxels)
		g.generator.Fill(c.voxels, c.pos)
		c.refreshEmpty()
	})
	if err != nil {
		return fmt.Errorf("generate terrain: %w", err)
	}
	return nil
}

// Remesh rebuilds the mesh of every chunk with opts. Voxels are not touched.
// Empty chunks get no mesh. Shading reports opts only once the whole pass has
// succeeded; a cancelled pass leaves it unchanged.
func (g *Grid) Remesh(ctx context.Context, opts mesh.Options) error {
	g.meshMu.Lock()
	defer g.meshMu.Unlock()

	g.mu.RLock()
	err := g.parallel(ctx, func(c *Chunk) {
		g.meshChunk(c, opts)
	})
	g.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("build meshes: %w", err)
	}

	g.mu.Lock()
	g.shading = opts
	g.mu.Unlock()
	return nil
}

// meshChunk rebuilds and publishes the mesh of c. The caller holds the lock.
func (g *Grid) meshChunk(c *Chunk, opts mesh.Options) {
	if c.Empty() {
		c.mesh.Store(nil)
		return
	}
	pos := [3]int{c.pos.X, c.pos.Y, c.pos.Z}
	c.mesh.Store(g.builder.Build(c.voxels, pos, lockedSource{g}, opts))
}

// parallel runs fn for every chunk on a bounded worker pool and waits for all
// of them. Chunks not yet started when ctx is cancelled are skipped.
func (g *Grid) parallel(ctx context.Context, fn func(c *Chunk)) error {
	pool := pond.NewPool(g.workers)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	for _, c := range g.chunks {
		group.SubmitErr(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(c)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
