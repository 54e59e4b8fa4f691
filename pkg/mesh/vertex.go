// Package mesh extracts packed, ambient-occluded surface geometry from chunk voxel arrays.
package mesh

// Bit layout of a packed vertex, most to least significant:
//
//	x:6 | y:6 | z:6 | voxel:8 | face:3 | ao:2 | flip:1
const (
	shiftX     = 26
	shiftY     = 20
	shiftZ     = 14
	shiftVoxel = 6
	shiftFace  = 3
	shiftAO    = 1

	maskCoord = 0x3F
	maskVoxel = 0xFF
	maskFace  = 0x7
	maskAO    = 0x3
)

// MaxChunkSize is the largest chunk edge whose face corners fit the 6-bit coordinate fields.
// Corners reach coordinate size, so 64 itself does not fit.
const MaxChunkSize = maskCoord

// Vertex is the unpacked form of a packed vertex word.
type Vertex struct {
	X, Y, Z uint8
	Voxel   uint8
	Face    Face
	AO      uint8
	Flip    bool
}

// Pack encodes a vertex into 32 bits. Inputs wider than their field are masked.
func Pack(x, y, z int, voxel uint8, face Face, ao uint8, flip bool) uint32 {
	w := uint32(x&maskCoord)<<shiftX |
		uint32(y&maskCoord)<<shiftY |
		uint32(z&maskCoord)<<shiftZ |
		uint32(voxel)<<shiftVoxel |
		uint32(face&maskFace)<<shiftFace |
		uint32(ao&maskAO)<<shiftAO
	if flip {
		w |= 1
	}
	return w
}

// Unpack decodes a packed vertex word.
func Unpack(w uint32) Vertex {
	return Vertex{
		X:     uint8(w >> shiftX & maskCoord),
		Y:     uint8(w >> shiftY & maskCoord),
		Z:     uint8(w >> shiftZ & maskCoord),
		Voxel: uint8(w >> shiftVoxel & maskVoxel),
		Face:  Face(w >> shiftFace & maskFace),
		AO:    uint8(w >> shiftAO & maskAO),
		Flip:  w&1 == 1,
	}
}

// Pack re-encodes v.
func (v Vertex) Pack() uint32 {
	return Pack(int(v.X), int(v.Y), int(v.Z), v.Voxel, v.Face, v.AO, v.Flip)
}
