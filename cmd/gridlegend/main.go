// Command gridlegend renders a grid legend described by a TOML spec file
// into a PNG image. It exists to preview legend layouts without a host
// charting application.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/VantageDataChat/gridlegend"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "gridlegend",
		Short:         "Grid legend layout preview tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	render := &cobra.Command{
		Use:   "render <spec.toml>",
		Short: "Render a legend spec to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})

			out, _ := cmd.Flags().GetString("out")
			width, _ := cmd.Flags().GetInt("width")
			height, _ := cmd.Flags().GetInt("height")
			return runRender(logger, args[0], out, width, height)
		},
	}
	render.Flags().String("out", "legend.png", "output PNG path")
	render.Flags().Int("width", 640, "image width in pixels")
	render.Flags().Int("height", 480, "image height in pixels")

	root.AddCommand(render)
	return root
}

func runRender(logger *log.Logger, specPath, out string, width, height int) error {
	cfg, err := loadSpec(specPath)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}
	logger.Debug("spec loaded", "rows", len(cfg.Rows), "cols", len(cfg.Cols), "items", len(cfg.Items))

	renderer := gridlegend.NewImageRenderer(width, height)
	opts, items, err := cfg.build()
	if err != nil {
		return fmt.Errorf("build options: %w", err)
	}

	legend, err := gridlegend.Place(renderer, gridlegend.BindItems(items...), cfg.Rows, cfg.Cols, opts)
	if err != nil {
		return fmt.Errorf("place legend: %w", err)
	}
	if legend == nil {
		logger.Warn("nothing to legend, no output written")
		return nil
	}

	geom := legend.Geometry()
	x, y := legend.Corner()
	logger.Info("legend placed",
		"size", fmt.Sprintf("%gx%g", geom.TotalWidth, geom.TotalHeight),
		"corner", fmt.Sprintf("(%g, %g)", x, y),
		"location", opts.Location)

	if err := renderer.SavePNG(out); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	logger.Info("wrote image", "path", out)
	return nil
}
