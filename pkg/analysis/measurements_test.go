package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshedge/pkg/geometry"
	"github.com/philipparndt/meshedge/pkg/mesh"
)

// rightTriangles returns two 3-4-5 triangles sharing the hypotenuse
func rightTriangles() *mesh.Mesh {
	return mesh.New("pair", []geometry.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 0},
		{X: 3, Y: 4, Z: 0},
		{X: 0, Y: 4, Z: 0},
	}, []mesh.Face{
		{0, 1, 2},
		{0, 2, 3},
	})
}

func analyze(t *testing.T, m *mesh.Mesh) *Result {
	t.Helper()
	l, err := m.EdgeLengths()
	require.NoError(t, err)
	return Analyze(m, l)
}

func TestAnalyze(t *testing.T) {
	result := analyze(t, rightTriangles())

	assert.Equal(t, "pair", result.Name)
	assert.Equal(t, 4, result.VertexCount)
	assert.Equal(t, 2, result.TriangleCount)
	assert.Equal(t, 6, result.EdgeCount)
	assert.Equal(t, 3.0, result.MinEdgeLength)
	assert.Equal(t, 5.0, result.MaxEdgeLength)
	assert.Equal(t, 24.0, result.TotalLength)
	assert.InDelta(t, 4.0, result.AvgEdgeLength, 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), result.StdEdgeLength, 1e-12)
	assert.Equal(t, geometry.NewVector3(3, 4, 0), result.Dimensions)

	// edge 1 of face 0 runs from local vertex 2 back to local vertex 0
	edge := result.Edges[1]
	assert.Equal(t, 0, edge.Face)
	assert.Equal(t, 1, edge.Edge)
	assert.Equal(t, geometry.NewVector3(3, 4, 0), edge.Start)
	assert.Equal(t, geometry.NewVector3(0, 0, 0), edge.End)
	assert.Equal(t, 5.0, edge.Length)
}

func TestAnalyzeEmpty(t *testing.T) {
	result := analyze(t, mesh.New("empty", nil, nil))

	assert.Zero(t, result.EdgeCount)
	assert.Zero(t, result.MinEdgeLength)
	assert.Zero(t, result.MaxEdgeLength)
	assert.Empty(t, result.Edges)
}

func TestPerimeters(t *testing.T) {
	l, err := rightTriangles().EdgeLengths()
	require.NoError(t, err)
	assert.Equal(t, []float64{12, 12}, Perimeters(l))
}

func TestFindEdges(t *testing.T) {
	result := analyze(t, rightTriangles())

	longest := FindLongestEdges(result, 2)
	require.Len(t, longest, 2)
	for _, e := range longest {
		assert.Equal(t, 5.0, e.Length)
	}

	shortest := FindShortestEdges(result, 100)
	require.Len(t, shortest, 6)
	assert.Equal(t, 3.0, shortest[0].Length)
	assert.Equal(t, 5.0, shortest[5].Length)

	assert.Empty(t, FindShortestEdges(result, -1))

	between := FindEdgesByLength(result, 3.5, 4.5)
	require.Len(t, between, 2)
	for _, e := range between {
		assert.Equal(t, 4.0, e.Length)
	}

	// results are copies
	longest[0].Length = 0
	assert.Equal(t, 5.0, FindLongestEdges(result, 1)[0].Length)
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVector3(1, -2.5, 0)))
}
