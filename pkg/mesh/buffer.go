package mesh

import "encoding/binary"

// Mesh is an immutable packed vertex sequence for one chunk.
type Mesh struct {
	words []uint32
}

// NewMesh wraps packed vertex words. The slice is not copied.
func NewMesh(words []uint32) *Mesh {
	return &Mesh{words: words}
}

// Words returns the packed vertices. Callers must not modify the slice.
func (m *Mesh) Words() []uint32 {
	if m == nil {
		return nil
	}
	return m.words
}

// VertexCount returns the number of packed vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.words)
}

// Faces returns the number of emitted faces.
func (m *Mesh) Faces() int {
	return m.VertexCount() / VerticesPerFace
}

// Bytes encodes the vertices as little-endian 32-bit words, 4 bytes per vertex.
func (m *Mesh) Bytes() []byte {
	words := m.Words()
	out := make([]byte, 0, 4*len(words))
	for _, w := range words {
		out = binary.LittleEndian.AppendUint32(out, w)
	}
	return out
}

// Decode parses a little-endian vertex buffer produced by Bytes.
// Trailing bytes that do not form a whole word are ignored.
func Decode(buf []byte) []uint32 {
	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return words
}
