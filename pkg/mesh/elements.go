package mesh

import (
	"math"

	"github.com/philipparndt/meshedge/pkg/geometry"
)

// Segment is a line segment given by two vertex ids
type Segment [2]int

// Tet is a tetrahedron given by four vertex ids
type Tet [4]int

// tetEdges lists the vertex pairs of the six tetrahedron edges. The first
// three edges join vertex 3 to the others, the last three are the edges of
// face (0, 1, 2) in triangle order.
var tetEdges = [6][2]int{{3, 0}, {3, 1}, {3, 2}, {1, 2}, {2, 0}, {0, 1}}

// SegmentLengths returns the length of every segment
func SegmentLengths(vertices []geometry.Vector3, segments []Segment) ([]float64, error) {
	for i, s := range segments {
		if err := checkElement(len(vertices), i, s[:]); err != nil {
			return nil, err
		}
	}
	out := make([]float64, len(segments))
	for i, s := range segments {
		out[i] = vertices[s[0]].Distance(vertices[s[1]])
	}
	return out, nil
}

// TetEdgeLengthsSquared returns the six squared edge lengths of every tetrahedron
func TetEdgeLengthsSquared(vertices []geometry.Vector3, tets []Tet) ([][6]float64, error) {
	for i, t := range tets {
		if err := checkElement(len(vertices), i, t[:]); err != nil {
			return nil, err
		}
	}
	out := make([][6]float64, len(tets))
	for i, t := range tets {
		for e, p := range tetEdges {
			out[i][e] = vertices[t[p[0]]].SquaredDistance(vertices[t[p[1]]])
		}
	}
	return out, nil
}

// TetEdgeLengths returns the six edge lengths of every tetrahedron
func TetEdgeLengths(vertices []geometry.Vector3, tets []Tet) ([][6]float64, error) {
	out, err := TetEdgeLengthsSquared(vertices, tets)
	if err != nil {
		return nil, err
	}
	for i := range out {
		for e := range out[i] {
			out[i][e] = math.Sqrt(out[i][e])
		}
	}
	return out, nil
}
