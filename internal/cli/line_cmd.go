package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"chart2svg/internal/chart"
	"chart2svg/internal/config"
	"chart2svg/internal/scene"
	"chart2svg/internal/series"
	"chart2svg/internal/viewport"
)

type lineJob struct {
	path  string
	load  series.LoadOptions
	chart *chart.Line

	// zoom is applied once, after the first load. Later loads keep
	// whatever transform the chart holds.
	zoom *viewport.Transform
}

func (j *lineJob) Input() string { return j.path }

func (j *lineJob) Load() error {
	s, err := series.LoadCSVFile(j.path, j.load)
	if err != nil {
		return err
	}
	if err := j.chart.SetData(s); err != nil {
		return err
	}
	if j.zoom != nil {
		j.chart.Handler().Set(*j.zoom)
		j.zoom = nil
	}
	return nil
}

func (j *lineJob) WriteSVG(w io.Writer) error { return j.chart.WriteSVG(w) }

func newLineCmd(opts *globalOptions, watching bool) *cobra.Command {
	var csvPath, zoom string
	var lenient bool

	cmd := &cobra.Command{
		Use:   "line",
		Short: "Render a date,price CSV as a line chart",
		Example: `  chart2svg line --csv prices.csv
  chart2svg line --csv prices.csv --zoom 2,-282.5 --output zoomed.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath, config.DefaultTime())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("lenient") {
				cfg.CSV.Lenient = lenient
			}

			var t *viewport.Transform
			if zoom != "" {
				parsed, err := viewport.Parse(zoom)
				if err != nil {
					return fmt.Errorf("invalid --zoom: %w", err)
				}
				t = &parsed
			}

			surf, err := chart.NewSurface(scene.LinesLayerID)
			if err != nil {
				return err
			}
			log := opts.log.With("file", csvPath)
			c, err := chart.NewLine(surf, cfg, log)
			if err != nil {
				return err
			}

			return run(cmd, opts, &lineJob{
				path: csvPath,
				load: series.LoadOptions{
					DateColumn:  cfg.CSV.DateColumn,
					PriceColumn: cfg.CSV.PriceColumn,
					Lenient:     cfg.CSV.Lenient,
					Log:         log,
				},
				chart: c,
				zoom:  t,
			}, watching)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with date and price columns (required)")
	cmd.Flags().StringVar(&zoom, "zoom", "", `initial zoom as "k" or "k,ty"`)
	cmd.Flags().BoolVar(&lenient, "lenient", false, "keep rows with unparsable dates instead of failing")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}
