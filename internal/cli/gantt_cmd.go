package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chart2svg/internal/chart"
	"chart2svg/internal/config"
	"chart2svg/internal/gantt"
	"chart2svg/internal/logging"
	"chart2svg/internal/scene"
)

type ganttJob struct {
	path     string
	collapse []string
	chart    *chart.Gantt
	log      *logging.Logger
}

func (j *ganttJob) Input() string { return j.path }

// Load replaces the chart's records, which also resets collapse state,
// then collapses the named records again.
func (j *ganttJob) Load() error {
	records, err := gantt.LoadFile(j.path)
	if err != nil {
		return err
	}
	if err := j.chart.SetData(records); err != nil {
		return err
	}
	if len(j.collapse) == 0 {
		return nil
	}
	n := j.chart.Collapse(j.collapse...)
	j.log.Debug("collapsed", "requested", len(j.collapse), "matched", n)
	if n == 0 {
		return nil
	}
	return j.chart.Render()
}

func (j *ganttJob) WriteSVG(w io.Writer) error { return j.chart.WriteSVG(w) }

func newGanttCmd(opts *globalOptions, watching bool) *cobra.Command {
	var dataPath, identity string
	var collapse []string

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: "Render a YAML task tree as a Gantt chart",
		Example: `  chart2svg gantt --data tasks.yaml
  chart2svg gantt --data tasks.yaml --collapse "Design,Build" --output plan.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath, config.DefaultGantt())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("identity") {
				cfg.Identity = identity
			}

			surf, err := chart.NewSurface(scene.GanttLayerID)
			if err != nil {
				return err
			}
			log := opts.log.With("file", dataPath)
			c, err := chart.NewGantt(surf, cfg, log)
			if err != nil {
				return err
			}

			var names []string
			for _, name := range collapse {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}

			return run(cmd, opts, &ganttJob{
				path:     dataPath,
				collapse: names,
				chart:    c,
				log:      log,
			}, watching)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "YAML file with the task tree (required)")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "names of tasks to start collapsed")
	cmd.Flags().StringVar(&identity, "identity", config.IdentityStable, "bar identity across renders: stable or pass")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
