package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/meshedge/pkg/geometry"
	"github.com/philipparndt/meshedge/pkg/mesh"
)

// ReadOBJ parses Wavefront OBJ geometry. Only "o", "v" and "f" records are
// used. Face entries may carry texture and normal references ("1/2/3",
// "1//3"); these are ignored. Negative indices count back from the last
// vertex read so far. Polygons are fan-triangulated.
func ReadOBJ(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	m := mesh.New("", nil, nil)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "o":
			if len(fields) > 1 && m.Name == "" {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			m.Vertices = append(m.Vertices, v)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			poly := make([]int, 0, len(fields)-1)
			for _, field := range fields[1:] {
				id, err := parseOBJIndex(field, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				poly = append(poly, id)
			}
			m.Faces = append(m.Faces, fan(poly)...)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseOBJIndex converts a 1-based or negative OBJ reference to a 0-based id
func parseOBJIndex(field string, vertexCount int) (int, error) {
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", field, err)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return vertexCount + n, nil
	default:
		return 0, fmt.Errorf("invalid face index 0: %w", mesh.ErrInvalidVertexIndex)
	}
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
