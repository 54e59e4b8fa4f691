package sky

// Rect is a merged rectangle of covered cells.
type Rect struct {
	X, Z int // corner cell
	W, D int // extent along x and z
}

// Area returns the number of cells in r.
func (r Rect) Area() int { return r.W * r.D }

// Merge greedily covers every covered cell with non-overlapping rectangles.
// Rows are scanned z then x. A run is extended along x, then every column of
// the run is extended along z and the shortest extension is kept.
func Merge(c *Coverage) []Rect {
	visited := make([]bool, len(c.cells))
	free := func(x, z int) bool {
		return c.cells[x+c.width*z] && !visited[x+c.width*z]
	}

	var rects []Rect
	for z := 0; z < c.depth; z++ {
		for x := 0; x < c.width; x++ {
			if !free(x, z) {
				continue
			}

			w := 1
			for x+w < c.width && free(x+w, z) {
				w++
			}

			d := c.depth - z
			for ix := 0; ix < w; ix++ {
				n := 1
				for z+n < c.depth && free(x+ix, z+n) {
					n++
				}
				d = min(d, n)
			}

			for iz := 0; iz < d; iz++ {
				for ix := 0; ix < w; ix++ {
					visited[x+ix+c.width*(z+iz)] = true
				}
			}
			rects = append(rects, Rect{X: x, Z: z, W: w, D: d})
		}
	}
	return rects
}

// VerticesPerRect is the number of vertices emitted per rectangle.
const VerticesPerRect = 6

// Mesh turns rectangles into two triangles each at height y. Every vertex is
// three uint16 coordinates (x, y, z).
func Mesh(rects []Rect, y int) []uint16 {
	out := make([]uint16, 0, len(rects)*VerticesPerRect*3)
	cy := uint16(y)
	for _, r := range rects {
		x0, z0 := uint16(r.X), uint16(r.Z)
		x1, z1 := uint16(r.X+r.W), uint16(r.Z+r.D)

		v0 := [3]uint16{x0, cy, z0}
		v1 := [3]uint16{x1, cy, z1}
		v2 := [3]uint16{x1, cy, z0}
		v3 := [3]uint16{x0, cy, z1}
		for _, v := range [...][3]uint16{v0, v1, v2, v0, v3, v1} {
			out = append(out, v[:]...)
		}
	}
	return out
}
