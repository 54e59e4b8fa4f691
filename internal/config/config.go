// Package config holds the ft_vox configuration model and its loaders.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/abdeljalil-salhi/ft-vox/pkg/mesh"
	"github.com/abdeljalil-salhi/ft-vox/pkg/world/gen"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every configuration validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the world and view configuration.
type Config struct {
	Seed        int64 `json:"seed" yaml:"seed"`
	ChunkSize   int   `json:"chunk_size" yaml:"chunk_size"`
	WorldWidth  int   `json:"world_width" yaml:"world_width"`   // chunks along x
	WorldHeight int   `json:"world_height" yaml:"world_height"` // chunks along y
	WorldDepth  int   `json:"world_depth" yaml:"world_depth"`   // chunks along z

	FOVDegrees  float64 `json:"fov_degrees" yaml:"fov_degrees"` // vertical
	Near        float64 `json:"near" yaml:"near"`
	Far         float64 `json:"far" yaml:"far"`
	AspectRatio float64 `json:"aspect_ratio" yaml:"aspect_ratio"`

	Workers          int    `json:"workers" yaml:"workers"` // 0 = one per CPU
	Jitter           string `json:"jitter" yaml:"jitter"`   // "seeded" or "random"
	AmbientOcclusion bool   `json:"ambient_occlusion" yaml:"ambient_occlusion"`
	CloudHeight      int    `json:"cloud_height" yaml:"cloud_height"` // 0 = twice the world height
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:             16,
		ChunkSize:        48,
		WorldWidth:       16,
		WorldHeight:      2,
		WorldDepth:       16,
		FOVDegrees:       50,
		Near:             0.1,
		Far:              2000,
		AspectRatio:      16.0 / 9.0,
		Jitter:           string(gen.JitterSeeded),
		AmbientOcclusion: true,
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["chunk-size"] {
		cfg.ChunkSize = fromFile.ChunkSize
	}
	if !explicitFlags["world-width"] {
		cfg.WorldWidth = fromFile.WorldWidth
	}
	if !explicitFlags["world-height"] {
		cfg.WorldHeight = fromFile.WorldHeight
	}
	if !explicitFlags["world-depth"] {
		cfg.WorldDepth = fromFile.WorldDepth
	}
	if !explicitFlags["fov"] {
		cfg.FOVDegrees = fromFile.FOVDegrees
	}
	if !explicitFlags["near"] {
		cfg.Near = fromFile.Near
	}
	if !explicitFlags["far"] {
		cfg.Far = fromFile.Far
	}
	if !explicitFlags["aspect"] {
		cfg.AspectRatio = fromFile.AspectRatio
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["jitter"] {
		cfg.Jitter = fromFile.Jitter
	}
	if !explicitFlags["ao"] {
		cfg.AmbientOcclusion = fromFile.AmbientOcclusion
	}
	if !explicitFlags["cloud-height"] {
		cfg.CloudHeight = fromFile.CloudHeight
	}
}

// Validate reports the first constraint cfg violates, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.ChunkSize < 1 || c.ChunkSize > mesh.MaxChunkSize:
		return fmt.Errorf("%w: chunk_size %d outside [1, %d]", ErrInvalid, c.ChunkSize, mesh.MaxChunkSize)
	case c.WorldWidth < 1 || c.WorldHeight < 1 || c.WorldDepth < 1:
		return fmt.Errorf("%w: world extents %dx%dx%d must be positive",
			ErrInvalid, c.WorldWidth, c.WorldHeight, c.WorldDepth)
	case c.WorldWidth*c.ChunkSize > math.MaxUint16 || c.WorldDepth*c.ChunkSize > math.MaxUint16:
		return fmt.Errorf("%w: world footprint %dx%d voxels exceeds %d",
			ErrInvalid, c.WorldWidth*c.ChunkSize, c.WorldDepth*c.ChunkSize, math.MaxUint16)
	case c.FOVDegrees <= 0 || c.FOVDegrees >= 180:
		return fmt.Errorf("%w: fov_degrees %g outside (0, 180)", ErrInvalid, c.FOVDegrees)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: need 0 < near < far, got near %g far %g", ErrInvalid, c.Near, c.Far)
	case c.AspectRatio <= 0:
		return fmt.Errorf("%w: aspect_ratio %g must be positive", ErrInvalid, c.AspectRatio)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalid, c.Workers)
	case c.CloudHeight < 0 || c.CloudLevel() > math.MaxUint16:
		return fmt.Errorf("%w: cloud level %d outside [0, %d]", ErrInvalid, c.CloudLevel(), math.MaxUint16)
	}
	if _, err := gen.ParseJitterMode(c.Jitter); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// CloudLevel returns the cloud layer elevation in voxels. An unset
// CloudHeight follows the world: twice its height.
func (c *Config) CloudLevel() int {
	if c.CloudHeight > 0 {
		return c.CloudHeight
	}
	return 2 * c.WorldHeight * c.ChunkSize
}

// JitterMode returns the parsed jitter mode. Call after Validate.
func (c *Config) JitterMode() gen.JitterMode {
	m, _ := gen.ParseJitterMode(c.Jitter)
	return m
}

// MeshOptions returns the shading options the config selects.
func (c *Config) MeshOptions() mesh.Options {
	return mesh.Options{AmbientOcclusion: c.AmbientOcclusion}
}

// GenParams returns the terrain parameters the config selects.
func (c *Config) GenParams() gen.Params {
	return gen.Params{
		Seed:        c.Seed,
		ChunkSize:   c.ChunkSize,
		WorldWidth:  c.WorldWidth,
		WorldHeight: c.WorldHeight,
		WorldDepth:  c.WorldDepth,
		Jitter:      c.JitterMode(),
	}
}

// YAML encodes cfg as a YAML document that Decode accepts.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
