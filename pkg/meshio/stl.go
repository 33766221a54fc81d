package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/meshedge/pkg/geometry"
	"github.com/philipparndt/meshedge/pkg/mesh"
)

// welder turns an STL triangle soup into an indexed mesh by merging
// vertices with bit-identical positions.
type welder struct {
	mesh *mesh.Mesh
	ids  map[geometry.Vector3]int
}

func newWelder() *welder {
	return &welder{
		mesh: mesh.New("", nil, nil),
		ids:  make(map[geometry.Vector3]int),
	}
}

func (w *welder) id(v geometry.Vector3) int {
	if id, ok := w.ids[v]; ok {
		return id
	}
	id := len(w.mesh.Vertices)
	w.ids[v] = id
	w.mesh.Vertices = append(w.mesh.Vertices, v)
	return id
}

func (w *welder) addTriangle(v1, v2, v3 geometry.Vector3) {
	w.mesh.Faces = append(w.mesh.Faces, mesh.Face{w.id(v1), w.id(v2), w.id(v3)})
}

// ReadSTL reads an ASCII or binary STL file.
// A file is binary when its length matches the facet count in its header,
// even if the header starts with "solid"; otherwise a leading "solid"
// keyword selects the ASCII parser.
func ReadSTL(r io.ReadSeeker) (*mesh.Mesh, error) {
	header := make([]byte, 84)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to determine file size: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	if n == len(header) {
		count := int64(binary.LittleEndian.Uint32(header[80:]))
		if size == 84+50*count {
			return parseBinary(r)
		}
	}

	if n >= 5 && string(header[:5]) == "solid" {
		return parseASCII(r)
	}

	return parseBinary(r)
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*mesh.Mesh, error) {
	scanner := bufio.NewScanner(reader)
	w := newWelder()

	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				w.mesh.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, want 3", lineNo, len(vertices))
			}
			w.addTriangle(vertices[0], vertices[1], vertices[2])
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return w.mesh, nil
}

// stlTriangle is the 50-byte binary STL facet record
type stlTriangle struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*mesh.Mesh, error) {
	w := newWelder()

	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	w.mesh.Name = string(bytes.TrimSpace(bytes.TrimRight(header, "\x00")))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	br := bufio.NewReader(reader)
	for i := uint32(0); i < triangleCount; i++ {
		var tri stlTriangle
		if err := binary.Read(br, binary.LittleEndian, &tri); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		w.addTriangle(toVector(tri.V1), toVector(tri.V2), toVector(tri.V3))
	}

	return w.mesh, nil
}

func toVector(v [3]float32) geometry.Vector3 {
	return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
}
