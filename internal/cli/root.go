// Package cli wires the chart2svg command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chart2svg/internal/logging"
)

// Version is set at build time with -ldflags "-X chart2svg/internal/cli.Version=...".
var Version = "dev"

// globalOptions are the persistent flags shared by every chart command.
type globalOptions struct {
	configPath string
	output     string
	debug      bool
	logFormat  string

	log *logging.Logger
}

// NewRootCmd creates the top-level "chart2svg" command and registers all
// subcommands.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "chart2svg",
		Short: "Render time-series and Gantt data as SVG charts",
		Long: `chart2svg renders a CSV price series as a zoomable line chart, or a
YAML task tree as a collapsible Gantt chart, and writes the result as SVG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var json bool
			switch opts.logFormat {
			case "text":
			case "json":
				json = true
			default:
				return fmt.Errorf("invalid log format %q (want text or json)", opts.logFormat)
			}
			level := logging.LevelInfo
			if opts.debug {
				level = logging.LevelDebug
			}
			opts.log = logging.NewLogger(cmd.ErrOrStderr(), level, json)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file (optional)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "", `output SVG file, "-" for stdout (default: input name with .svg)`)
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newLineCmd(opts, false),
		newGanttCmd(opts, false),
		newWatchCmd(opts),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the chart2svg version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "chart2svg %s\n", Version)
			return nil
		},
	}
}
