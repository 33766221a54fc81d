package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshedge/pkg/mesh"
)

// lengthsDoc is the json/yaml form of an edge length table
type lengthsDoc struct {
	Mesh    string       `json:"mesh" yaml:"mesh"`
	Squared bool         `json:"squared" yaml:"squared"`
	Faces   int          `json:"faces" yaml:"faces"`
	Rows    [][3]float64 `json:"rows" yaml:"rows,flow"`
}

// tableWriter prints an edge length table in one output format
type tableWriter struct {
	format    string
	precision int
}

// formatValue prints v with precision digits after the point, or in the
// shortest form that parses back to v when precision is -1.
func formatValue(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func (tw tableWriter) write(w io.Writer, name string, squared bool, t mesh.Table) error {
	switch tw.format {
	case "csv":
		return tw.writeCSV(w, t)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lengthsDoc{Mesh: name, Squared: squared, Faces: len(t), Rows: t}); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(lengthsDoc{Mesh: name, Squared: squared, Faces: len(t), Rows: t}); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "table", "":
		return tw.writeTable(w, name, squared, t)
	default:
		return fmt.Errorf("unknown output format %q", tw.format)
	}
}

func (tw tableWriter) writeCSV(w io.Writer, t mesh.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"face", "e0", "e1", "e2"}); err != nil {
		return err
	}
	for f, row := range t {
		record := []string{strconv.Itoa(f)}
		for _, v := range row {
			record = append(record, formatValue(v, tw.precision))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (tw tableWriter) writeTable(w io.Writer, name string, squared bool, t mesh.Table) error {
	heading := "Edge Lengths"
	if squared {
		heading = "Squared Edge Lengths"
	}
	if name != "" {
		heading += ": " + name
	}
	if _, err := io.WriteString(w, title(heading)); err != nil {
		return err
	}

	tab := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tab, "Face\te0 (v1-v2)\te1 (v2-v0)\te2 (v0-v1)\t")
	for f, row := range t {
		fmt.Fprintf(tab, "%d\t%s\t%s\t%s\t\n", f,
			formatValue(row[0], tw.precision),
			formatValue(row[1], tw.precision),
			formatValue(row[2], tw.precision))
	}
	return tab.Flush()
}
