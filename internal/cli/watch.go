package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedge/pkg/analysis"
	"github.com/philipparndt/meshedge/pkg/openscad"
	"github.com/philipparndt/meshedge/pkg/watcher"
)

func newWatchCmd() *cobra.Command {
	var scale float64

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print edge statistics every time a mesh file changes",
		Long: `Watch a mesh file and print a one-line edge length summary after every change.
For OpenSCAD sources every file reached through use/include is watched as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve path %s: %w", args[0], err)
			}

			files := []string{path}
			if strings.EqualFold(filepath.Ext(path), ".scad") {
				files, err = openscad.NewRenderer(filepath.Dir(path)).ResolveDependencies(path)
				if err != nil {
					return fmt.Errorf("failed to resolve dependencies: %w", err)
				}
			}

			var mu sync.Mutex
			report := func() {
				mu.Lock()
				defer mu.Unlock()

				m, err := loadMesh(ctx, path, scale)
				if err != nil {
					logger.Error("reload failed", "err", err)
					return
				}
				t, err := computeLengths(ctx, m, false, cfg.Compute.Workers)
				if err != nil {
					logger.Error("compute failed", "err", err)
					return
				}
				r := analysis.Analyze(m, t)
				fmt.Fprintf(out, "%s  faces=%s  min=%s  max=%s  avg=%s\n",
					styleTitle.Render(r.Name),
					styleNumber.Render(fmt.Sprint(r.TriangleCount)),
					styleNumber.Render(fmt.Sprintf("%.6f", r.MinEdgeLength)),
					styleNumber.Render(fmt.Sprintf("%.6f", r.MaxEdgeLength)),
					styleNumber.Render(fmt.Sprintf("%.6f", r.AvgEdgeLength)))
			}

			fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
			if err != nil {
				return err
			}
			defer fw.Close()

			if err := fw.Watch(files, func(string) { report() }); err != nil {
				return err
			}
			fw.Start(ctx)

			report()
			logger.Info("watching for changes", "files", len(files))

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 1, "scale all coordinates before measuring")

	return cmd
}
