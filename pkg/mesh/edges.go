package mesh

import (
	"math"

	"github.com/philipparndt/meshedge/pkg/geometry"
)

// Table holds one row of three edge values per face
type Table [][3]float64

// Rows returns the number of faces in the table
func (t Table) Rows() int {
	return len(t)
}

// RowSum sums row f in column order
func (t Table) RowSum(f int) float64 {
	return t[f][0] + t[f][1] + t[f][2]
}

// Sqrt returns a new table holding the square root of every entry
func (t Table) Sqrt() Table {
	out := make(Table, len(t))
	for i, row := range t {
		for e, v := range row {
			out[i][e] = math.Sqrt(v)
		}
	}
	return out
}

// local vertex pairs per edge, edge e is opposite vertex e
var faceEdges = [3][2]int{{1, 2}, {2, 0}, {0, 1}}

// EdgeVertices returns the local vertices (a, b) joined by edge e.
// It panics if e is not 0, 1 or 2.
func EdgeVertices(e int) (a, b int) {
	return faceEdges[e][0], faceEdges[e][1]
}

// EdgeLengthsSquared returns, for every face f and edge e, the squared
// Euclidean distance between the two vertices of e.
func EdgeLengthsSquared(vertices []geometry.Vector3, faces []Face) (Table, error) {
	if err := Validate(len(vertices), faces); err != nil {
		return nil, err
	}
	out := make(Table, len(faces))
	fillSquared(vertices, faces, out)
	return out, nil
}

// EdgeLengths returns, for every face f and edge e, the Euclidean distance
// between the two vertices of e.
func EdgeLengths(vertices []geometry.Vector3, faces []Face) (Table, error) {
	if err := Validate(len(vertices), faces); err != nil {
		return nil, err
	}
	out := make(Table, len(faces))
	fillLengths(vertices, faces, out)
	return out, nil
}

// fillSquared writes rows for faces into out, which must have len(faces) rows.
// Indices must already be validated.
func fillSquared(vertices []geometry.Vector3, faces []Face, out Table) {
	for i, f := range faces {
		for e, p := range faceEdges {
			out[i][e] = vertices[f[p[0]]].SquaredDistance(vertices[f[p[1]]])
		}
	}
}

func fillLengths(vertices []geometry.Vector3, faces []Face, out Table) {
	for i, f := range faces {
		for e, p := range faceEdges {
			out[i][e] = vertices[f[p[0]]].Distance(vertices[f[p[1]]])
		}
	}
}
