package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedge/pkg/analysis"
)

func newStatsCmd() *cobra.Command {
	var (
		count     int
		longest   bool
		shortest  bool
		minLength float64
		maxLength float64
		scale     float64
	)

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Summarise edge lengths and list extreme edges",
		Long:  "Show edge length statistics and find the longest, shortest, or edges within a specific length range.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			if count < 0 {
				return fmt.Errorf("count must be >= 0, got %d", count)
			}

			m, err := loadMesh(ctx, args[0], scale)
			if err != nil {
				return err
			}
			t, err := computeLengths(ctx, m, false, cfg.Compute.Workers)
			if err != nil {
				return err
			}
			result := analysis.Analyze(m, t)

			var edges []analysis.EdgeInfo
			var heading string

			switch {
			case longest:
				edges = analysis.FindLongestEdges(result, count)
				heading = fmt.Sprintf("Top %d Longest Edges", len(edges))
			case shortest:
				edges = analysis.FindShortestEdges(result, count)
				heading = fmt.Sprintf("Top %d Shortest Edges", len(edges))
			case maxLength > 0:
				edges = analysis.FindEdgesByLength(result, minLength, maxLength)
				heading = fmt.Sprintf("Edges between %.6f and %.6f units (found %d)", minLength, maxLength, len(edges))
			default:
				edges = result.Edges
				heading = fmt.Sprintf("All Edges (showing first %d of %d)", min(count, len(edges)), len(edges))
			}
			if len(edges) > count {
				edges = edges[:count]
			}

			return writeStats(cmd.OutOrStdout(), heading, result, edges)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of edges to display")
	cmd.Flags().BoolVarP(&longest, "longest", "l", false, "show longest edges")
	cmd.Flags().BoolVarP(&shortest, "shortest", "s", false, "show shortest edges")
	cmd.Flags().Float64Var(&minLength, "min", 0.0, "minimum edge length filter")
	cmd.Flags().Float64Var(&maxLength, "max", 0.0, "maximum edge length filter")
	cmd.Flags().Float64Var(&scale, "scale", 1, "scale all coordinates before measuring")
	cmd.MarkFlagsMutuallyExclusive("longest", "shortest")

	return cmd
}

func writeStats(w io.Writer, heading string, result *analysis.Result, edges []analysis.EdgeInfo) error {
	fmt.Fprint(w, title(heading))
	if result.Name != "" {
		fmt.Fprintf(w, "Mesh: %s\n", result.Name)
	}
	fmt.Fprintf(w, "Vertices: %d\n", result.VertexCount)
	fmt.Fprintf(w, "Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(w, "Dimensions: %s\n\n", analysis.FormatVector(result.Dimensions))

	fmt.Fprintln(w, styleHeader.Render("Edge Lengths:"))
	fmt.Fprintf(w, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Fprintf(w, "  Average: %.6f units\n", result.AvgEdgeLength)
	fmt.Fprintf(w, "  Std dev: %.6f units\n", result.StdEdgeLength)
	fmt.Fprintf(w, "  Total: %.6f units\n\n", result.TotalLength)

	if len(edges) == 0 {
		_, err := fmt.Fprintln(w, "No edges found matching the criteria.")
		return err
	}

	tab := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tab, "Face\tEdge\tStart\tEnd\tLength")
	for _, e := range edges {
		fmt.Fprintf(tab, "%d\t%d\t%s\t%s\t%.6f\n",
			e.Face, e.Edge,
			analysis.FormatVector(e.Start),
			analysis.FormatVector(e.End),
			e.Length)
	}
	return tab.Flush()
}
