// Package formats provides parsers for the geometry file formats the viewer reads.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedOBJRecord = errors.New("malformed OBJ record")
	ErrOBJIndexOutOfRange = errors.New("OBJ index out of range")
)

// Absent marks a face corner component that was not given.
const Absent = -1

// OBJCorner references one face corner by 0-based record indices.
// TexCoord and Normal are Absent when the corner omits them.
type OBJCorner struct {
	Position int
	TexCoord int
	Normal   int
}

// OBJFace is one polygon as written in the file (not yet triangulated).
type OBJFace struct {
	Corners []OBJCorner
	Line    int // Source line, for diagnostics
}

// OBJ holds the raw records of a Wavefront OBJ file.
type OBJ struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace
}

// ParseOBJ reads v, vt, vn and f records from r. Other record types are
// skipped. Face references are converted to 0-based indices; negative
// references are resolved relative to the records read so far.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3, lineNo)
			if err != nil {
				return nil, err
			}
			obj.Positions = append(obj.Positions, [3]float32{p[0], p[1], p[2]})

		case "vt":
			uv, err := parseFloats(fields[1:], 2, lineNo)
			if err != nil {
				return nil, err
			}
			obj.TexCoords = append(obj.TexCoords, [2]float32{uv[0], uv[1]})

		case "vn":
			n, err := parseFloats(fields[1:], 3, lineNo)
			if err != nil {
				return nil, err
			}
			obj.Normals = append(obj.Normals, [3]float32{n[0], n[1], n[2]})

		case "f":
			face := OBJFace{Line: lineNo, Corners: make([]OBJCorner, 0, len(fields)-1)}
			for _, tok := range fields[1:] {
				c, err := obj.parseCorner(tok, lineNo)
				if err != nil {
					return nil, err
				}
				face.Corners = append(face.Corners, c)
			}
			obj.Faces = append(obj.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if err := obj.validate(); err != nil {
		return nil, err
	}
	return obj, nil
}

// TriangleCount returns the number of triangles a fan triangulation of all
// faces produces.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, f := range o.Faces {
		if len(f.Corners) >= 3 {
			n += len(f.Corners) - 2
		}
	}
	return n
}

// parseCorner parses idx, idx/tidx, idx/tidx/nidx or idx//nidx.
func (o *OBJ) parseCorner(tok string, lineNo int) (OBJCorner, error) {
	c := OBJCorner{Position: Absent, TexCoord: Absent, Normal: Absent}

	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return c, fmt.Errorf("%w: line %d: face corner %q", ErrMalformedOBJRecord, lineNo, tok)
	}

	var err error
	if c.Position, err = resolveIndex(parts[0], len(o.Positions), lineNo); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.TexCoord, err = resolveIndex(parts[1], len(o.TexCoords), lineNo); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.Normal, err = resolveIndex(parts[2], len(o.Normals), lineNo); err != nil {
			return c, err
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based (or negative, relative) reference to a
// 0-based index. count is the number of records of that kind seen so far.
func resolveIndex(s string, count, lineNo int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return Absent, fmt.Errorf("%w: line %d: index %q", ErrMalformedOBJRecord, lineNo, s)
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0 && count+i >= 0:
		return count + i, nil
	default:
		return Absent, fmt.Errorf("%w: line %d: index %d", ErrOBJIndexOutOfRange, lineNo, i)
	}
}

// validate checks every face reference against the final record counts.
func (o *OBJ) validate() error {
	for _, f := range o.Faces {
		for _, c := range f.Corners {
			if c.Position >= len(o.Positions) {
				return fmt.Errorf("%w: line %d: position %d of %d", ErrOBJIndexOutOfRange, f.Line, c.Position+1, len(o.Positions))
			}
			if c.TexCoord >= len(o.TexCoords) {
				return fmt.Errorf("%w: line %d: texcoord %d of %d", ErrOBJIndexOutOfRange, f.Line, c.TexCoord+1, len(o.TexCoords))
			}
			if c.Normal >= len(o.Normals) {
				return fmt.Errorf("%w: line %d: normal %d of %d", ErrOBJIndexOutOfRange, f.Line, c.Normal+1, len(o.Normals))
			}
		}
	}
	return nil
}

func parseFloats(fields []string, n, lineNo int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: line %d: want %d values, got %d", ErrMalformedOBJRecord, lineNo, n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedOBJRecord, lineNo, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
