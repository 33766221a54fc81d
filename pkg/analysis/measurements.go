// Package analysis summarises the edge length table of a mesh.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/philipparndt/meshedge/pkg/geometry"
	"github.com/philipparndt/meshedge/pkg/mesh"
)

// EdgeInfo describes one local edge of one face
type EdgeInfo struct {
	Face   int
	Edge   int
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// Result contains edge statistics of a mesh
type Result struct {
	Name          string
	VertexCount   int
	TriangleCount int
	EdgeCount     int
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	StdEdgeLength float64
	TotalLength   float64
	Edges         []EdgeInfo
}

// Analyze collects every face edge of m together with its length from
// lengths, which must be the edge length table of m.
func Analyze(m *mesh.Mesh, lengths mesh.Table) *Result {
	result := &Result{
		Name:          m.Name,
		VertexCount:   m.VertexCount(),
		TriangleCount: m.FaceCount(),
		BoundingBox:   m.BoundingBox(),
		Edges:         make([]EdgeInfo, 0, 3*len(lengths)),
	}
	result.Dimensions = result.BoundingBox.Size()

	values := make([]float64, 0, 3*len(lengths))
	for f, row := range lengths {
		face := m.Faces[f]
		for e, length := range row {
			a, b := mesh.EdgeVertices(e)
			result.Edges = append(result.Edges, EdgeInfo{
				Face:   f,
				Edge:   e,
				Start:  m.Vertices[face[a]],
				End:    m.Vertices[face[b]],
				Length: length,
			})
			values = append(values, length)
		}
	}

	result.EdgeCount = len(values)
	if result.EdgeCount == 0 {
		return result
	}

	result.MinEdgeLength = math.Inf(1)
	result.MaxEdgeLength = math.Inf(-1)
	for _, v := range values {
		result.MinEdgeLength = math.Min(result.MinEdgeLength, v)
		result.MaxEdgeLength = math.Max(result.MaxEdgeLength, v)
		result.TotalLength += v
	}
	result.AvgEdgeLength, result.StdEdgeLength = stat.PopMeanStdDev(values, nil)

	return result
}

// Perimeters returns the sum of each table row in column order
func Perimeters(lengths mesh.Table) []float64 {
	out := make([]float64, len(lengths))
	for f := range lengths {
		out[f] = lengths.RowSum(f)
	}
	return out
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *Result, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.Edges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the model
func FindLongestEdges(result *Result, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a > b })
}

// FindShortestEdges returns the N shortest edges in the model
func FindShortestEdges(result *Result, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a < b })
}

func sortedEdges(result *Result, count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.Edges))
	copy(edges, result.Edges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})

	count = max(0, min(count, len(edges)))
	return edges[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
