package gen

const (
	caveScale        = 0.09
	caveFloorScale   = 0.1
	caveCeilingDepth = 10
)

// CaveGenerator decides which buried voxels are carved out as caves.
type CaveGenerator struct {
	noise *NoiseGenerator
}

// NewCaveGenerator creates a CaveGenerator sampling noise.
func NewCaveGenerator(noise *NoiseGenerator) *CaveGenerator {
	return &CaveGenerator{noise: noise}
}

// IsCave reports whether the voxel at world coordinates is cave air.
// The 3D sample must be positive and wy must lie between a noise-derived floor
// and caveCeilingDepth below the column surface.
func (cg *CaveGenerator) IsCave(wx, wy, wz, height int) bool {
	fx, fy, fz := float64(wx), float64(wy), float64(wz)
	if cg.noise.Noise3D(fx*caveScale, fy*caveScale, fz*caveScale) <= 0 {
		return false
	}
	floor := cg.noise.Noise2D(fx*caveFloorScale, fz*caveFloorScale)*3 + 3
	return floor < fy && wy < height-caveCeilingDepth
}
