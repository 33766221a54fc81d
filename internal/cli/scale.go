package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedge/pkg/meshio"
)

func newScaleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scale <file> <factor>",
		Short: "Write a uniformly scaled copy of a mesh as OBJ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid scale factor %q: %w", args[1], err)
			}

			m, err := loadMesh(cmd.Context(), args[0], factor)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := meshio.WriteOBJ(f, m); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", output, err)
			}

			loggerFromContext(cmd.Context()).Info("wrote scaled mesh", "path", output, "factor", factor)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output OBJ file")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
