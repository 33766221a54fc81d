// Package openscad renders OpenSCAD sources to STL meshes with the external
// openscad binary, and finds the files a source depends on.
package openscad

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// dependencyPattern matches "use <file>" and "include <file>" statements
var dependencyPattern = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer handles OpenSCAD file rendering to STL
type Renderer struct {
	// Binary is the openscad executable, looked up in PATH.
	Binary  string
	workDir string
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		Binary:  "openscad",
		workDir: workDir,
	}
}

func (r *Renderer) abs(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.workDir, file)
}

// RenderToSTL renders an OpenSCAD file to an STL file
func (r *Renderer) RenderToSTL(scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.Binary)
	if err != nil {
		return ErrNotInstalled
	}

	cmd := exec.Command(bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(output.String()); msg != "" {
			return fmt.Errorf("failed to render %s: %w\n%s", scadFile, err, msg)
		}
		return fmt.Errorf("failed to render %s: %w", scadFile, err)
	}

	return nil
}

// ResolveDependencies returns the absolute paths of scadFile and every file
// it reaches through use/include statements, each listed once.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	var visit func(file string) error
	visit = func(file string) error {
		if visited[file] {
			return nil
		}
		visited[file] = true
		deps = append(deps, file)

		direct, err := r.parseDependencies(file)
		if err != nil {
			return err
		}
		for _, dep := range direct {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(filepath.Clean(r.abs(scadFile))); err != nil {
		return nil, err
	}
	return deps, nil
}

// parseDependencies lists the use/include targets of a single file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	scadDir := filepath.Dir(scadFile)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyPattern.FindStringSubmatch(line); m != nil {
			deps = append(deps, r.resolveDepPath(m[1], scadDir))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath resolves a dependency relative to the including file,
// falling back to the work directory.
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(filepath.Join(currentDir, depPath))
	}

	p := filepath.Join(currentDir, depPath)
	if _, err := os.Stat(p); err == nil {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(r.workDir, depPath))
}
