package gen

// surfaceMaterial returns the material for a surface voxel at jittered elevation ry.
func surfaceMaterial(ry int) uint8 {
	switch {
	case ry >= SnowLevel:
		return Snow
	case ry >= StoneLevel:
		return Stone
	case ry >= DirtLevel:
		return Dirt
	case ry >= GrassLevel:
		return Grass
	default:
		return Sand
	}
}
