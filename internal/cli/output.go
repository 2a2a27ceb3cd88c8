package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"chart2svg/internal/watch"
)

// job loads one input file into a chart that lives for the whole command,
// so that reloads in watch mode reconcile against the previous render.
type job interface {
	Input() string
	Load() error
	WriteSVG(w io.Writer) error
}

// outputFilename determines the output filename for the SVG file.
// If output is provided and not empty, it returns that filename.
// Otherwise, it derives the filename from the input file by replacing
// the extension with .svg (e.g., "data.csv" becomes "data.svg").
func outputFilename(input, output string) string {
	if output != "" {
		return output
	}

	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".svg"
}

// writeOutput writes the chart to path, or to the command's stdout for "-".
func writeOutput(cmd *cobra.Command, opts *globalOptions, j job, path string) error {
	if path == "-" {
		return j.WriteSVG(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	if err := j.WriteSVG(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing SVG file: %w", err)
	}
	opts.log.Info("SVG generated", "file", path)
	return nil
}

// run renders j once and, when watching, again after every change to its
// input until interrupted.
func run(cmd *cobra.Command, opts *globalOptions, j job, watching bool) error {
	out := outputFilename(j.Input(), opts.output)

	if err := j.Load(); err != nil {
		return err
	}
	if err := writeOutput(cmd, opts, j, out); err != nil {
		return err
	}
	if !watching {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts.log.Info("watching for changes", "file", j.Input())
	return watch.File(ctx, j.Input(), watch.DefaultDebounce, func() error {
		if err := j.Load(); err != nil {
			return err
		}
		return writeOutput(cmd, opts, j, out)
	}, opts.log)
}
