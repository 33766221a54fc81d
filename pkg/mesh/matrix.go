package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/philipparndt/meshedge/pkg/geometry"
)

// VerticesFromMatrix reads an N×3 matrix of coordinates into a vertex table
func VerticesFromMatrix(m mat.Matrix) ([]geometry.Vector3, error) {
	r, c := m.Dims()
	if c != 3 {
		return nil, fmt.Errorf("vertex matrix has %d columns, want 3: %w", c, ErrDimension)
	}
	vertices := make([]geometry.Vector3, r)
	for i := range vertices {
		vertices[i] = geometry.NewVector3(m.At(i, 0), m.At(i, 1), m.At(i, 2))
	}
	return vertices, nil
}

// FacesFromMatrix reads an M×3 matrix of vertex ids into a face table.
// Entries must be non-negative integers.
func FacesFromMatrix(m mat.Matrix) ([]Face, error) {
	r, c := m.Dims()
	if c != 3 {
		return nil, fmt.Errorf("face matrix has %d columns, want 3: %w", c, ErrDimension)
	}
	faces := make([]Face, r)
	for i := range faces {
		for j := range 3 {
			v := m.At(i, j)
			if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
				return nil, fmt.Errorf("face %d: entry %v is not a vertex id: %w", i, v, ErrInvalidVertexIndex)
			}
			faces[i][j] = int(v)
		}
	}
	return faces, nil
}

// Dense copies the table into an M×3 matrix. An empty table yields an
// empty matrix, since gonum has no zero-row dense matrices.
func (t Table) Dense() *mat.Dense {
	if len(t) == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, 0, 3*len(t))
	for _, row := range t {
		data = append(data, row[:]...)
	}
	return mat.NewDense(len(t), 3, data)
}

// EdgeLengthsMatrix computes edge lengths, or squared lengths, for meshes
// held as gonum matrices.
func EdgeLengthsMatrix(v, f mat.Matrix, squared bool) (*mat.Dense, error) {
	vertices, err := VerticesFromMatrix(v)
	if err != nil {
		return nil, err
	}
	faces, err := FacesFromMatrix(f)
	if err != nil {
		return nil, err
	}

	var t Table
	if squared {
		t, err = EdgeLengthsSquared(vertices, faces)
	} else {
		t, err = EdgeLengths(vertices, faces)
	}
	if err != nil {
		return nil, err
	}
	return t.Dense(), nil
}
