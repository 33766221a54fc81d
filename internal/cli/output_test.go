package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshedge/pkg/mesh"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{math.Sqrt(2), -1, "1.4142135623730951"},
		{math.Sqrt(2), 2, "1.41"},
		{1e-8, -1, "1e-08"},
		{2e16, 0, "20000000000000000"},
		{math.NaN(), -1, "NaN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.v, tt.precision))
	}
}

func TestTableWriterTable(t *testing.T) {
	var buf bytes.Buffer
	tw := tableWriter{format: "table", precision: 1}
	require.NoError(t, tw.write(&buf, "tri", true, mesh.Table{{16, 25, 9}}))

	out := buf.String()
	assert.Contains(t, out, "Squared Edge Lengths: tri")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := strings.Fields(lines[len(lines)-1])
	assert.Equal(t, []string{"0", "16.0", "25.0", "9.0"}, last)
}

func TestTableWriterUnknownFormat(t *testing.T) {
	err := tableWriter{format: "xml"}.write(&bytes.Buffer{}, "", false, nil)
	assert.Error(t, err)
}
