// Package meshio loads indexed triangle meshes from OBJ, OFF and STL files,
// and from OpenSCAD sources rendered through the openscad binary.
package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshedge/pkg/mesh"
	"github.com/philipparndt/meshedge/pkg/openscad"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Load reads a mesh, choosing the format from the file extension
func Load(filename string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".scad":
		return loadSCAD(filename)
	case ".obj", ".off", ".stl":
	default:
		return nil, fmt.Errorf("%s: %w %q (expected .obj, .off, .stl or .scad)", filename, ErrUnsupportedFormat, ext)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var m *mesh.Mesh
	switch ext {
	case ".obj":
		m, err = ReadOBJ(file)
	case ".off":
		m, err = ReadOFF(file)
	case ".stl":
		m, err = ReadSTL(file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return m, nil
}

// loadSCAD renders an OpenSCAD file to a temporary STL and loads it
func loadSCAD(filename string) (*mesh.Mesh, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", filename, err)
	}
	renderer := openscad.NewRenderer(filepath.Dir(abs))

	tmp, err := os.CreateTemp("", "meshedge-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary STL: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	if err := renderer.RenderToSTL(abs, tmpName); err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	m, err := Load(tmpName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return m, nil
}

// fan splits a polygon into triangles sharing its first vertex
func fan(poly []int) []mesh.Face {
	faces := make([]mesh.Face, 0, len(poly)-2)
	for i := 1; i+1 < len(poly); i++ {
		faces = append(faces, mesh.Face{poly[0], poly[i], poly[i+1]})
	}
	return faces
}
