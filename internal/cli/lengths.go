package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedge/pkg/mesh"
	"github.com/philipparndt/meshedge/pkg/meshio"
)

// loadMesh reads path and applies scale when it is not 1
func loadMesh(ctx context.Context, path string, scale float64) (*mesh.Mesh, error) {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	m, err := meshio.Load(path)
	if err != nil {
		return nil, err
	}
	p.done("loaded mesh", "path", path, "vertices", m.VertexCount(), "faces", m.FaceCount())

	if scale != 1 {
		if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
			return nil, fmt.Errorf("scale must be a positive finite number, got %g", scale)
		}
		m = m.Scaled(scale)
		logger.Debug("scaled mesh", "factor", scale)
	}
	return m, nil
}

// computeLengths runs the edge length transform with the configured workers
func computeLengths(ctx context.Context, m *mesh.Mesh, squared bool, workers int) (mesh.Table, error) {
	p := newProgress(loggerFromContext(ctx))

	t, err := mesh.Compute(ctx, m.Vertices, m.Faces, mesh.Options{Squared: squared, Workers: workers})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}
	p.done("computed edge lengths", "faces", len(t), "squared", squared, "workers", workers)
	return t, nil
}

func newLengthsCmd() *cobra.Command {
	var (
		squared   bool
		scale     float64
		format    string
		precision int
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "lengths <file>",
		Short: "Print the edge lengths of every triangle",
		Long: `Print one row per triangle with the lengths of its three edges.
Edge e of a triangle is the edge opposite its vertex e:
e0 joins v1 and v2, e1 joins v2 and v0, e2 joins v0 and v1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			merged := *cfg
			if cmd.Flags().Changed("format") {
				merged.Output.Format = format
			}
			if cmd.Flags().Changed("precision") {
				merged.Output.Precision = precision
			}
			if cmd.Flags().Changed("workers") {
				merged.Compute.Workers = workers
			}
			if err := merged.Validate(); err != nil {
				return err
			}
			tw := tableWriter{format: merged.Output.Format, precision: merged.Output.Precision}

			m, err := loadMesh(ctx, args[0], scale)
			if err != nil {
				return err
			}
			t, err := computeLengths(ctx, m, squared, merged.Compute.Workers)
			if err != nil {
				return err
			}
			return tw.write(cmd.OutOrStdout(), m.Name, squared, t)
		},
	}

	cmd.Flags().BoolVar(&squared, "squared", false, "print squared lengths")
	cmd.Flags().Float64Var(&scale, "scale", 1, "scale all coordinates before measuring")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, csv, json or yaml")
	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "digits after the decimal point (-1 for shortest exact)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "number of goroutines")

	return cmd
}
