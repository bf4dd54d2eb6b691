package mesh

import (
	"github.com/Faultbox/shadowmesh/pkg/formats"
)

// Build fan-triangulates every face of obj and deduplicates the corners.
//
// Each distinct PackedKey becomes one vertex, appended the first time the key
// is seen; every triangle corner (new or reused) appends its vertex index.
// Faces with fewer than three corners produce no triangles.
func Build(obj *formats.OBJ) *Mesh {
	m := &Mesh{
		Indices: make([]uint32, 0, obj.TriangleCount()*3),
	}
	slots := make(map[PackedKey]uint32)

	resolve := func(c formats.OBJCorner) uint32 {
		key := KeyOf(c)
		if idx, ok := slots[key]; ok {
			return idx
		}

		v := Vertex{
			Position: obj.Positions[c.Position],
			Normal:   DefaultNormal,
			TexCoord: DefaultTexCoord,
		}
		if c.TexCoord != formats.Absent {
			v.TexCoord = obj.TexCoords[c.TexCoord]
		}
		if c.Normal != formats.Absent {
			v.Normal = obj.Normals[c.Normal]
		}

		idx := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, v)
		slots[key] = idx
		return idx
	}

	for _, face := range obj.Faces {
		corners := face.Corners
		for i := 1; i+1 < len(corners); i++ {
			m.Indices = append(m.Indices,
				resolve(corners[0]),
				resolve(corners[i]),
				resolve(corners[i+1]),
			)
		}
	}

	return m
}

// Plane returns a square ground quad centred on the origin at height y,
// facing +Y and wound counter-clockwise when seen from above.
func Plane(halfSize, y float32) *Mesh {
	up := [3]float32{0, 1, 0}
	return &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-halfSize, y, -halfSize}, Normal: up, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{halfSize, y, -halfSize}, Normal: up, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{halfSize, y, halfSize}, Normal: up, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{-halfSize, y, halfSize}, Normal: up, TexCoord: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}
