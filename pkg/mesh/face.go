package mesh

// Face identifies one of the six cube faces.
type Face uint8

const (
	FaceTop    Face = iota // +y
	FaceBottom             // -y
	FaceRight              // +x
	FaceLeft               // -x
	FaceBack               // -z
	FaceFront              // +z
)

// FaceCount is the number of cube faces.
const FaceCount = 6

var faceNames = [FaceCount]string{"top", "bottom", "right", "left", "back", "front"}

func (f Face) String() string {
	if f < FaceCount {
		return faceNames[f]
	}
	return "invalid"
}

// Normal returns the unit offset from a voxel to the neighbour behind face f.
func (f Face) Normal() [3]int {
	return faceNormals[f]
}

var faceNormals = [FaceCount][3]int{
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
	FaceRight:  {1, 0, 0},
	FaceLeft:   {-1, 0, 0},
	FaceBack:   {0, 0, -1},
	FaceFront:  {0, 0, 1},
}

// faceCorners holds the four corner offsets v0..v3 of each face relative to the voxel origin.
var faceCorners = [FaceCount][4][3]int{
	FaceTop:    {{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
	FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	FaceRight:  {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	FaceLeft:   {{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
	FaceBack:   {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
	FaceFront:  {{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}},
}

// faceWinding lists the corner order of the two triangles of each face.
// Index 1 is used when the quad diagonal is flipped.
var faceWinding = [FaceCount][2][6]int{
	FaceTop:    {{0, 3, 2, 0, 2, 1}, {1, 0, 3, 1, 3, 2}},
	FaceBottom: {{0, 2, 3, 0, 1, 2}, {1, 3, 0, 1, 2, 3}},
	FaceRight:  {{0, 1, 2, 0, 2, 3}, {3, 0, 1, 3, 1, 2}},
	FaceLeft:   {{0, 2, 1, 0, 3, 2}, {3, 1, 0, 3, 2, 1}},
	FaceBack:   {{0, 1, 2, 0, 2, 3}, {3, 0, 1, 3, 1, 2}},
	FaceFront:  {{0, 2, 1, 0, 3, 2}, {3, 1, 0, 3, 2, 1}},
}

// VerticesPerFace is the number of packed vertices emitted per visible face.
const VerticesPerFace = 6
