package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/philipparndt/meshedge/pkg/mesh"
)

// WriteOBJ writes the mesh as Wavefront OBJ. Coordinates use the shortest
// representation that parses back to the same float64.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
