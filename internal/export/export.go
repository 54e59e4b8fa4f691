// Package export writes built chunk meshes and the cloud layer to a
// zstd-compressed file that an external viewer can upload without
// rebuilding the world.
//
// The stream is a JSON header line followed by little-endian records:
// per chunk its index, chunk coordinates, word count and packed vertex
// words, then the cloud vertex count and its uint16 coordinates.
package export

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/abdeljalil-salhi/ft-vox/pkg/mesh"
	"github.com/abdeljalil-salhi/ft-vox/pkg/sky"
)

// Version is the current stream version.
const Version = 1

// ErrFormat is wrapped by every malformed stream error.
var ErrFormat = errors.New("malformed mesh export")

// MaxWorldChunks bounds the world size a stream may declare.
const MaxWorldChunks = 1 << 20

// Header describes the world the meshes were built from.
type Header struct {
	Version     int    `json:"version"`
	Build       string `json:"build"`
	Seed        int64  `json:"seed"`
	ChunkSize   int    `json:"chunk_size"`
	WorldWidth  int    `json:"world_width"`
	WorldHeight int    `json:"world_height"`
	WorldDepth  int    `json:"world_depth"`
	Occlusion   bool   `json:"ambient_occlusion"`
	Chunks      int    `json:"chunks"`
}

// ChunkMesh is the mesh of one non-empty chunk.
type ChunkMesh struct {
	Index   int
	X, Y, Z int // chunk coordinates
	Words   []uint32
}

// Snapshot is everything written to one export stream.
type Snapshot struct {
	Header Header
	Chunks []ChunkMesh
	Clouds []uint16
}

// Write encodes snap to w. Header.Chunks is filled from snap.Chunks.
func Write(w io.Writer, snap *Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	h := snap.Header
	h.Version = Version
	h.Chunks = len(snap.Chunks)
	hb, err := json.Marshal(h)
	if err != nil {
		enc.Close()
		return fmt.Errorf("marshal header: %w", err)
	}
	hb = append(hb, '\n')

	if err := writeBody(bw, hb, snap); err != nil {
		enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close zstd: %w", err)
	}
	return nil
}

func writeBody(w io.Writer, header []byte, snap *Snapshot) error {
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	le := binary.LittleEndian
	for _, c := range snap.Chunks {
		rec := [5]uint32{uint32(c.Index), uint32(c.X), uint32(c.Y), uint32(c.Z), uint32(len(c.Words))}
		if err := binary.Write(w, le, rec); err != nil {
			return fmt.Errorf("write chunk %d: %w", c.Index, err)
		}
		if err := binary.Write(w, le, c.Words); err != nil {
			return fmt.Errorf("write chunk %d: %w", c.Index, err)
		}
	}
	if err := binary.Write(w, le, uint32(len(snap.Clouds))); err != nil {
		return fmt.Errorf("write clouds: %w", err)
	}
	if _, err := w.Write(sky.Bytes(snap.Clouds)); err != nil {
		return fmt.Errorf("write clouds: %w", err)
	}
	return nil
}

// Read decodes a stream written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReaderSize(dec, 256*1024)

	line, err := br.ReadSlice('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrFormat, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(line, &snap.Header); err != nil {
		return nil, fmt.Errorf("%w: parse header: %v", ErrFormat, err)
	}
	h := snap.Header
	if err := h.check(); err != nil {
		return nil, err
	}
	total := uint64(h.WorldWidth) * uint64(h.WorldHeight) * uint64(h.WorldDepth)

	le := binary.LittleEndian
	size := uint64(h.ChunkSize)
	maxWords := size * size * size * mesh.MaxVerticesPerVoxel
	for i := 0; i < h.Chunks; i++ {
		var rec [5]uint32
		if err := binary.Read(br, le, &rec); err != nil {
			return nil, fmt.Errorf("%w: chunk record %d: %v", ErrFormat, i, err)
		}
		if uint64(rec[0]) >= total || uint64(rec[4]) > maxWords {
			return nil, fmt.Errorf("%w: chunk record %d out of range", ErrFormat, i)
		}
		words, err := readBatched[uint32](br, uint64(rec[4]))
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d words: %v", ErrFormat, rec[0], err)
		}
		snap.Chunks = append(snap.Chunks, ChunkMesh{
			Index: int(rec[0]),
			X:     int(rec[1]),
			Y:     int(rec[2]),
			Z:     int(rec[3]),
			Words: words,
		})
	}

	var n uint32
	if err := binary.Read(br, le, &n); err != nil {
		return nil, fmt.Errorf("%w: cloud count: %v", ErrFormat, err)
	}
	// At most one quad per footprint cell.
	maxCloud := uint64(h.WorldWidth) * size * uint64(h.WorldDepth) * size * sky.VerticesPerRect * 3
	if uint64(n) > maxCloud {
		return nil, fmt.Errorf("%w: %d cloud coordinates", ErrFormat, n)
	}
	if snap.Clouds, err = readBatched[uint16](br, uint64(n)); err != nil {
		return nil, fmt.Errorf("%w: clouds: %v", ErrFormat, err)
	}
	return &snap, nil
}

// check validates header fields before any of its counts are trusted.
func (h Header) check() error {
	if h.Version != Version {
		return fmt.Errorf("%w: version %d, want %d", ErrFormat, h.Version, Version)
	}
	if h.ChunkSize < 1 || h.ChunkSize > mesh.MaxChunkSize {
		return fmt.Errorf("%w: chunk size %d", ErrFormat, h.ChunkSize)
	}
	for _, e := range [...]int{h.WorldWidth, h.WorldHeight, h.WorldDepth} {
		if e < 1 || e > MaxWorldChunks {
			return fmt.Errorf("%w: world extents %dx%dx%d",
				ErrFormat, h.WorldWidth, h.WorldHeight, h.WorldDepth)
		}
	}
	if h.WorldWidth*h.ChunkSize > math.MaxUint16 || h.WorldDepth*h.ChunkSize > math.MaxUint16 {
		return fmt.Errorf("%w: world footprint exceeds %d voxels", ErrFormat, math.MaxUint16)
	}
	total := uint64(h.WorldWidth) * uint64(h.WorldHeight) * uint64(h.WorldDepth)
	if total > MaxWorldChunks {
		return fmt.Errorf("%w: world of %d chunks exceeds %d", ErrFormat, total, MaxWorldChunks)
	}
	if h.Chunks < 0 || uint64(h.Chunks) > total {
		return fmt.Errorf("%w: %d chunks in a world of %d", ErrFormat, h.Chunks, total)
	}
	return nil
}

// readBatch bounds how much memory a record count can claim before the
// stream has delivered the data.
const readBatch = 64 * 1024

func readBatched[T uint16 | uint32](r io.Reader, n uint64) ([]T, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]T, min(n, readBatch))
	var out []T
	for n > 0 {
		b := buf[:min(n, uint64(len(buf)))]
		if err := binary.Read(r, binary.LittleEndian, b); err != nil {
			return nil, err
		}
		out = append(out, b...)
		n -= uint64(len(b))
	}
	return out, nil
}

// WriteFile writes snap to path through a temp file and rename.
func WriteFile(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := Write(f, snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// ReadFile reads a snapshot written by WriteFile.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
