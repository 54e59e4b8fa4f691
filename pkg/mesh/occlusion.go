package mesh

// ringUV is the ring of eight cells around a face neighbour, in the (u, v)
// coordinates of the face plane, labelled a through h.
var ringUV = [8][2]int{
	{0, -1},  // a
	{-1, -1}, // b
	{-1, 0},  // c
	{-1, 1},  // d
	{0, 1},   // e
	{1, 1},   // f
	{1, 0},   // g
	{1, -1},  // h
}

// cornerTriples groups ring cells per face corner v0..v3: abc, gha, efg, cde.
var cornerTriples = [4][3]int{
	{0, 1, 2},
	{6, 7, 0},
	{4, 5, 6},
	{2, 3, 4},
}

// planeAxes maps each face to the world axes playing u and v.
var planeAxes = [FaceCount][2]int{
	FaceTop:    {0, 2}, // u=x, v=z
	FaceBottom: {0, 2},
	FaceRight:  {1, 2}, // u=y, v=z
	FaceLeft:   {1, 2},
	FaceBack:   {1, 0}, // u=y, v=x
	FaceFront:  {1, 0},
}

// occlusionRing holds, per face, the eight sample offsets relative to the
// voxel itself (the face neighbour plus the in-plane ring offset).
var occlusionRing [FaceCount][8][3]int

func init() {
	for f := range Face(FaceCount) {
		n := faceNormals[f]
		u, v := planeAxes[f][0], planeAxes[f][1]
		for i, uv := range ringUV {
			off := n
			off[u] += uv[0]
			off[v] += uv[1]
			occlusionRing[f][i] = off
		}
	}
}

// OcclusionOffsets returns the eight sample offsets of face f, relative to the voxel.
func OcclusionOffsets(f Face) [8][3]int {
	return occlusionRing[f]
}

// cornerOcclusion counts void ring cells per corner. 3 means fully lit.
func cornerOcclusion(void [8]bool) [4]uint8 {
	var ao [4]uint8
	for c, triple := range cornerTriples {
		for _, i := range triple {
			if void[i] {
				ao[c]++
			}
		}
	}
	return ao
}

// shouldFlip reports whether the quad is split along the v1-v3 diagonal,
// which happens when the odd corners are strictly brighter.
func shouldFlip(ao [4]uint8) bool {
	return ao[1]+ao[3] > ao[0]+ao[2]
}
