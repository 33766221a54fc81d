// Package mesh holds indexed triangle meshes and the per-element edge
// length transforms over them.
//
// A mesh is a vertex table (one position per vertex id) and a face table
// (three vertex ids per triangle). Local edge e of a face is the edge that
// does not touch local vertex e:
//
//	edge 0 = (v1, v2)
//	edge 1 = (v2, v0)
//	edge 2 = (v0, v1)
//
// Every transform allocates a fresh output table with one row per face.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/meshedge/pkg/geometry"
)

var (
	// ErrInvalidVertexIndex is returned when an element references a vertex
	// id outside the vertex table.
	ErrInvalidVertexIndex = errors.New("invalid vertex index")

	// ErrDimension is returned when a matrix has the wrong number of columns.
	ErrDimension = errors.New("dimension mismatch")
)

// Face is a triangle given by three vertex ids
type Face [3]int

// Mesh is an indexed triangle mesh
type Mesh struct {
	Name     string
	Vertices []geometry.Vector3
	Faces    []Face
}

// New creates a mesh from vertex and face tables. The tables are used as
// given, not copied.
func New(name string, vertices []geometry.Vector3, faces []Face) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Faces:    faces,
	}
}

// VertexCount returns the number of rows in the vertex table
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of triangles
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// Validate checks that every face references an existing vertex
func (m *Mesh) Validate() error {
	return Validate(len(m.Vertices), m.Faces)
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range m.Vertices {
		bbox.Extend(v)
	}
	return bbox
}

// Scaled returns a copy of the mesh with every coordinate multiplied by s.
// The face table is copied as well so the result shares nothing with m.
func (m *Mesh) Scaled(s float64) *Mesh {
	vertices := make([]geometry.Vector3, len(m.Vertices))
	for i, v := range m.Vertices {
		vertices[i] = v.Mul(s)
	}
	faces := make([]Face, len(m.Faces))
	copy(faces, m.Faces)
	return New(m.Name, vertices, faces)
}

// EdgeLengths computes the three edge lengths of every face
func (m *Mesh) EdgeLengths() (Table, error) {
	return EdgeLengths(m.Vertices, m.Faces)
}

// EdgeLengthsSquared computes the three squared edge lengths of every face
func (m *Mesh) EdgeLengthsSquared() (Table, error) {
	return EdgeLengthsSquared(m.Vertices, m.Faces)
}

// Validate checks that every face index lies in [0, vertexCount)
func Validate(vertexCount int, faces []Face) error {
	for i, f := range faces {
		if err := checkElement(vertexCount, i, f[:]); err != nil {
			return err
		}
	}
	return nil
}

func checkElement(vertexCount, row int, ids []int) error {
	for _, id := range ids {
		if id < 0 || id >= vertexCount {
			return fmt.Errorf("element %d: vertex %d (have %d vertices): %w", row, id, vertexCount, ErrInvalidVertexIndex)
		}
	}
	return nil
}
