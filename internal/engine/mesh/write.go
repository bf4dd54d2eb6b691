package mesh

import (
	"bufio"
	"io"
	"strconv"
)

// WriteOBJ writes m as OBJ with one v/vt/vn record per vertex, so parsing
// the output reproduces the same vertices and indices.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	for _, v := range m.Vertices {
		writeRecord(bw, "v", v.Position[:])
	}
	for _, v := range m.Vertices {
		writeRecord(bw, "vt", v.TexCoord[:])
	}
	for _, v := range m.Vertices {
		writeRecord(bw, "vn", v.Normal[:])
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		bw.WriteString("f")
		for _, idx := range m.Indices[i : i+3] {
			n := strconv.FormatUint(uint64(idx)+1, 10)
			bw.WriteString(" " + n + "/" + n + "/" + n)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeRecord(bw *bufio.Writer, tag string, vals []float32) {
	bw.WriteString(tag)
	for _, f := range vals {
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	bw.WriteByte('\n')
}
