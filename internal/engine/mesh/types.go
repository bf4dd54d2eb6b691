// Package mesh builds deduplicated indexed meshes from geometry files.
package mesh

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/Faultbox/shadowmesh/pkg/formats"
)

// ErrIndexOutOfRange is returned by Validate when an index has no vertex.
var ErrIndexOutOfRange = errors.New("mesh index out of range")

// Vertex is a mesh vertex with position, normal, and texture coordinates.
// The layout is uploaded to the GPU as-is (32 bytes, offsets 0/12/24).
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Defaults for corners that omit a texture coordinate or normal.
var (
	DefaultTexCoord = [2]float32{0, 0}
	DefaultNormal   = [3]float32{0, 1, 0}
)

// PackedKey identifies a unique (position, texcoord, normal) combination.
// Absent components are formats.Absent (-1).
type PackedKey struct {
	Position int
	TexCoord int
	Normal   int
}

// KeyOf returns the packed key of a face corner.
func KeyOf(c formats.OBJCorner) PackedKey {
	return PackedKey{Position: c.Position, TexCoord: c.TexCoord, Normal: c.Normal}
}

// Compare orders keys by position, then texcoord, then normal.
func (k PackedKey) Compare(o PackedKey) int {
	if c := cmp.Compare(k.Position, o.Position); c != 0 {
		return c
	}
	if c := cmp.Compare(k.TexCoord, o.TexCoord); c != 0 {
		return c
	}
	return cmp.Compare(k.Normal, o.Normal)
}

// Mesh holds unique vertices in first-seen order and the triangle indices
// referencing them.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Bounds returns the bounding box of all vertex positions.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}

// TriangleCount returns len(Indices)/3.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that every index references an existing vertex.
func (m *Mesh) Validate() error {
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d is %d, have %d vertices", ErrIndexOutOfRange, i, idx, len(m.Vertices))
		}
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	return nil
}
