package mesh

import (
	"math/rand/v2"

	"github.com/philipparndt/meshedge/pkg/geometry"
)

// unitCube returns a 1×1×1 cube. Every face lists its diagonal as edge 2,
// and vertices 1, 3, 4 and 6 are alternating corners.
func unitCube() *Mesh {
	vertices := []geometry.Vector3{
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 1},
		{X: 0, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1},
		{X: 1, Y: 1, Z: 1},
	}
	faces := []Face{
		{1, 3, 0}, {3, 1, 2}, // z = 0
		{4, 6, 5}, {6, 4, 7}, // z = 1
		{1, 4, 0}, {4, 1, 5}, // y = 0
		{3, 6, 2}, {6, 3, 7}, // y = 1
		{1, 6, 2}, {6, 1, 5}, // x = 0
		{3, 4, 0}, {4, 3, 7}, // x = 1
	}
	return New("cube", vertices, faces)
}

// tetFaces are the faces of the regular tetrahedron on the cube's
// alternating corners.
var tetFaces = []Face{
	{4, 6, 1},
	{6, 4, 3},
	{4, 1, 3},
	{1, 6, 3},
}

func randomMesh(r *rand.Rand, vertexCount, faceCount int) *Mesh {
	vertices := make([]geometry.Vector3, vertexCount)
	for i := range vertices {
		vertices[i] = geometry.NewVector3(r.NormFloat64(), r.NormFloat64(), r.NormFloat64())
	}
	faces := make([]Face, faceCount)
	for i := range faces {
		faces[i] = Face{r.IntN(vertexCount), r.IntN(vertexCount), r.IntN(vertexCount)}
	}
	return New("random", vertices, faces)
}
