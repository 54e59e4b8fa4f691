// Package sky builds the flat cloud layer drawn above the world.
package sky

import "encoding/binary"

// Cloud coverage sampling.
const (
	CoverageScale     = 0.13
	CoverageThreshold = 0.2
)

// Noise2D is a 2D coherent noise source.
type Noise2D interface {
	Noise2D(x, y float64) float64
}

// Coverage is a presence grid over the horizontal world footprint, indexed x + width*z.
type Coverage struct {
	width, depth int
	cells        []bool
}

// NewCoverage creates an empty coverage grid.
func NewCoverage(width, depth int) *Coverage {
	return &Coverage{width: width, depth: depth, cells: make([]bool, width*depth)}
}

// Clouds samples noise to decide which cells carry a cloud.
func Clouds(noise Noise2D, width, depth int) *Coverage {
	c := NewCoverage(width, depth)
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			if noise.Noise2D(CoverageScale*float64(x), CoverageScale*float64(z)) >= CoverageThreshold {
				c.cells[x+width*z] = true
			}
		}
	}
	return c
}

// Size returns the grid extents.
func (c *Coverage) Size() (width, depth int) { return c.width, c.depth }

// Set marks a cell as covered or clear.
func (c *Coverage) Set(x, z int, covered bool) { c.cells[x+c.width*z] = covered }

// At reports whether a cell is covered. Cells outside the grid are clear.
func (c *Coverage) At(x, z int) bool {
	if x < 0 || x >= c.width || z < 0 || z >= c.depth {
		return false
	}
	return c.cells[x+c.width*z]
}

// Count returns the number of covered cells.
func (c *Coverage) Count() int {
	n := 0
	for _, v := range c.cells {
		if v {
			n++
		}
	}
	return n
}

// Bytes encodes vertex coordinates as little-endian 16-bit words.
func Bytes(vertices []uint16) []byte {
	out := make([]byte, 0, 2*len(vertices))
	for _, v := range vertices {
		out = binary.LittleEndian.AppendUint16(out, v)
	}
	return out
}
