package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads a .gltf or .glb file and concatenates every triangle
// primitive of every mesh into one indexed Mesh. Missing normals and texture
// coordinates get the same defaults as OBJ corners.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	out := &Mesh{}
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(out, doc, prim); err != nil {
				return nil, fmt.Errorf("%s: mesh %d primitive %d: %w", path, mi, pi, err)
			}
		}
	}
	if len(out.Vertices) == 0 {
		return nil, fmt.Errorf("%s: no triangle primitives", path)
	}
	return out, nil
}

func appendPrimitive(out *Mesh, doc *gltf.Document, prim *gltf.Primitive) error {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	base := uint32(len(out.Vertices))
	for i, p := range positions {
		v := Vertex{Position: p, Normal: DefaultNormal, TexCoord: DefaultTexCoord}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		out.Vertices = append(out.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			out.Indices = append(out.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		out.Indices = append(out.Indices, base+idx)
	}
	return nil
}
