// Package cli implements the meshedge command-line interface.
//
// Every command loads a mesh with meshio, runs the edge length transform
// from the mesh package and prints the result. Settings come from a TOML
// file (see the config package) and can be overridden with flags. Logs go
// to stderr through charmbracelet/log; results go to stdout.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/philipparndt/meshedge/internal/config"
	"github.com/philipparndt/meshedge/version"
)

// Execute runs the meshedge CLI until the command finishes or the process
// receives SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   "meshedge",
		Short: "Measure triangle edge lengths of meshes",
		Long: `meshedge computes the three edge lengths of every triangle in a mesh.
It reads OBJ, OFF and STL files (ASCII or binary), and OpenSCAD sources when
the openscad binary is installed.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = withConfig(withLogger(ctx, logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("meshedge %s\ncommit: %s\nbuilt: %s\n",
		version.GetFullVersion(), version.GitCommit, version.BuildDate))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $"+config.EnvPath+" or ./"+config.DefaultPath+")")

	root.AddCommand(newLengthsCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newScaleCmd())
	root.AddCommand(newWatchCmd())

	return root
}
