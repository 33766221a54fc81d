package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshedge/internal/config"
	"github.com/philipparndt/meshedge/pkg/meshio"
)

var cubeOBJ = filepath.Join("..", "..", "pkg", "meshio", "testdata", "cube.obj")

// run executes the CLI with args and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvPath, "")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLengthsJSON(t *testing.T) {
	out, _, err := run(t, "lengths", "--format", "json", cubeOBJ)
	require.NoError(t, err)

	var doc lengthsDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "cube", doc.Mesh)
	assert.False(t, doc.Squared)
	assert.Equal(t, 12, doc.Faces)
	require.Len(t, doc.Rows, 12)
	for f, row := range doc.Rows {
		assert.Equal(t, [3]float64{1, 1, math.Sqrt(2)}, row, "face %d", f)
	}
}

func TestLengthsSquaredScaledYAML(t *testing.T) {
	out, _, err := run(t, "lengths", "--squared", "--scale", "1e8", "--format", "yaml", "--workers", "4", cubeOBJ)
	require.NoError(t, err)

	var doc lengthsDoc
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.True(t, doc.Squared)
	require.Len(t, doc.Rows, 12)
	for f, row := range doc.Rows {
		assert.Equal(t, [3]float64{1e16, 1e16, 2e16}, row, "face %d", f)
	}
}

func TestLengthsCSV(t *testing.T) {
	out, _, err := run(t, "lengths", "-f", "csv", "-p", "3", cubeOBJ)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "face,e0,e1,e2", lines[0])
	assert.Equal(t, "0,1.000,1.000,1.414", lines[1])
}

func TestLengthsTable(t *testing.T) {
	out, _, err := run(t, "lengths", cubeOBJ)
	require.NoError(t, err)

	assert.Contains(t, out, "Edge Lengths: cube")
	assert.Contains(t, out, "1.4142135623730951")
	assert.Contains(t, out, "e0 (v1-v2)")
}

func TestLengthsConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "meshedge.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\nformat = \"csv\"\nprecision = 1\n"), 0o644))

	out, _, err := run(t, "--config", cfgPath, "lengths", cubeOBJ)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "face,e0,e1,e2\n0,1.0,1.0,1.4\n"), out)

	// flags override the file
	out, _, err = run(t, "--config", cfgPath, "lengths", "-f", "json", cubeOBJ)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestLengthsErrors(t *testing.T) {
	_, _, err := run(t, "lengths", "model.ply")
	assert.ErrorIs(t, err, meshio.ErrUnsupportedFormat)

	_, _, err = run(t, "lengths", "--scale", "-1", cubeOBJ)
	assert.Error(t, err)

	for _, scale := range []string{"NaN", "+Inf", "-Inf"} {
		_, _, err = run(t, "lengths", "--scale", scale, cubeOBJ)
		assert.Error(t, err, "scale %s", scale)
	}

	_, _, err = run(t, "lengths", "-f", "xml", cubeOBJ)
	assert.Error(t, err)

	_, _, err = run(t, "lengths", "--workers", "-1", cubeOBJ)
	assert.ErrorContains(t, err, "compute.workers")

	_, _, err = run(t, "lengths", "--precision", "-2", cubeOBJ)
	assert.ErrorContains(t, err, "output.precision")

	_, _, err = run(t, "lengths")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	out, _, err := run(t, "stats", "--longest", "-n", "3", cubeOBJ)
	require.NoError(t, err)

	assert.Contains(t, out, "Top 3 Longest Edges")
	assert.Contains(t, out, "Triangles: 12")
	assert.Contains(t, out, "Edges: 36")
	assert.Contains(t, out, "Minimum: 1.000000 units")
	assert.Contains(t, out, "Maximum: 1.414214 units")
	assert.Equal(t, 3, strings.Count(out, "1.414214\n"))
}

func TestStatsRange(t *testing.T) {
	out, _, err := run(t, "stats", "--min", "2", "--max", "3", cubeOBJ)
	require.NoError(t, err)
	assert.Contains(t, out, "No edges found matching the criteria.")
}

func TestStatsCount(t *testing.T) {
	_, _, err := run(t, "stats", "-n", "-1", cubeOBJ)
	assert.ErrorContains(t, err, "count must be >= 0")

	out, _, err := run(t, "stats", "-n", "0", cubeOBJ)
	require.NoError(t, err)
	assert.Contains(t, out, "All Edges (showing first 0 of 36)")
	assert.Contains(t, out, "No edges found matching the criteria.")
}

func TestScale(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "tiny.obj")
	_, stderr, err := run(t, "scale", cubeOBJ, "1e-8", "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote scaled mesh")

	m, err := meshio.Load(dst)
	require.NoError(t, err)
	l, err := m.EdgeLengths()
	require.NoError(t, err)
	side, diag := 1e-8, float64(1e-8*math.Sqrt(2))
	for f, row := range l {
		assert.Equal(t, [3]float64{side, side, diag}, row, "face %d", f)
		assert.Equal(t, side+side+diag, l.RowSum(f), "face %d", f)
	}
}

func TestScaleRequiresOutput(t *testing.T) {
	_, _, err := run(t, "scale", cubeOBJ, "2")
	assert.Error(t, err)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := run(t, "-v", "lengths", "-f", "csv", cubeOBJ)
	require.NoError(t, err)
	assert.Contains(t, stderr, "loaded mesh")
	assert.Contains(t, stderr, "computed edge lengths")

	_, stderr, err = run(t, "lengths", "-f", "csv", cubeOBJ)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "loaded mesh")
}

// lockedBuffer lets the watch command write while the test reads
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchReportsChanges(t *testing.T) {
	t.Setenv(config.EnvPath, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "cube.obj")
	src, err := os.ReadFile(cubeOBJ)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, src, 0o644))

	cfgPath := filepath.Join(dir, "meshedge.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[watch]\ndebounce = \"100ms\"\n"), 0o644))

	var stdout lockedBuffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "watch", path})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "faces=12")
	}, 5*time.Second, 20*time.Millisecond, "no initial summary")
	assert.Contains(t, stdout.String(), "1.414214")

	m, err := meshio.Load(path)
	require.NoError(t, err)
	var scaled bytes.Buffer
	require.NoError(t, meshio.WriteOBJ(&scaled, m.Scaled(2)))
	require.NoError(t, os.WriteFile(path, scaled.Bytes(), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "2.828427")
	}, 5*time.Second, 20*time.Millisecond, "no summary after the file changed")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "1.000000")
	assert.Contains(t, lines[len(lines)-1], "2.000000")
	assert.Contains(t, lines[len(lines)-1], "2.828427")
}
