package mesh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/shadowmesh/internal/logger"
	"github.com/Faultbox/shadowmesh/pkg/formats"
)

// Parse reads an OBJ description from r and builds the indexed mesh.
func Parse(r io.Reader) (*Mesh, error) {
	obj, err := formats.ParseOBJ(r)
	if err != nil {
		return nil, err
	}
	return Build(obj), nil
}

// LoadOBJ opens and parses an OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Load loads a mesh file, choosing the reader by extension
// (.obj, .gltf, .glb).
func Load(path string) (*Mesh, error) {
	var (
		m   *Mesh
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		m, err = LoadOBJ(path)
	case ".gltf", ".glb":
		m, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q: %s", ext, path)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("indices", len(m.Indices)),
	)
	return m, nil
}
