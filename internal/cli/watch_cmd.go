package cli

import "github.com/spf13/cobra"

func newWatchCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a chart every time its data file changes",
		Long: `watch renders a chart like its line and gantt siblings, then keeps the
chart alive and redraws it whenever the data file is written. Stop with Ctrl-C.`,
	}

	cmd.AddCommand(
		newLineCmd(opts, true),
		newGanttCmd(opts, true),
	)

	return cmd
}
