package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/meshedge/pkg/mesh"
)

// ReadOFF parses an Object File Format mesh. Polygons are fan-triangulated;
// per-face colors after the vertex list are ignored.
func ReadOFF(r io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0

	// next returns the fields of the next non-empty, non-comment line
	next := func() ([]string, error) {
		for scanner.Scan() {
			lineNo++
			line := scanner.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			if fields := strings.Fields(line); len(fields) > 0 {
				return fields, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading OFF: %w", err)
		}
		return nil, fmt.Errorf("line %d: unexpected end of file", lineNo)
	}

	fields, err := next()
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(fields[0], "OFF") {
		return nil, fmt.Errorf("line %d: missing OFF header", lineNo)
	}
	// counts may follow the header on the same line
	fields = fields[1:]
	if len(fields) == 0 {
		if fields, err = next(); err != nil {
			return nil, err
		}
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("line %d: expected vertex and face counts", lineNo)
	}
	vertexCount, err := strconv.Atoi(fields[0])
	if err != nil || vertexCount < 0 {
		return nil, fmt.Errorf("line %d: invalid vertex count %q", lineNo, fields[0])
	}
	faceCount, err := strconv.Atoi(fields[1])
	if err != nil || faceCount < 0 {
		return nil, fmt.Errorf("line %d: invalid face count %q", lineNo, fields[1])
	}

	m := mesh.New("", nil, nil)
	for range vertexCount {
		if fields, err = next(); err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
		}
		v, err := parseVector(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		m.Vertices = append(m.Vertices, v)
	}

	for range faceCount {
		if fields, err = next(); err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 3 || len(fields) < n+1 {
			return nil, fmt.Errorf("line %d: invalid polygon %q", lineNo, strings.Join(fields, " "))
		}
		poly := make([]int, n)
		for i := range poly {
			if poly[i], err = strconv.Atoi(fields[i+1]); err != nil {
				return nil, fmt.Errorf("line %d: invalid face index %q: %w", lineNo, fields[i+1], err)
			}
		}
		m.Faces = append(m.Faces, fan(poly)...)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
