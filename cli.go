//go:build !js

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"xgraph/app"
	"xgraph/config"
	"xgraph/hal"
	"xgraph/internal/buildinfo"
)

type options struct {
	configPath  string
	width       int
	height      int
	origin      string
	rangeX      []float64
	rangeY      []float64
	encoding    string
	skipColumns int
	sheet       string
	selection   []int
	output      string
	scale       float64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "xgraph [file]",
		Short: "Plot the columns of a CSV or XLSX file as line series",
		Long: `xgraph opens a window that plots every data column of a file as a line.
Drop another file onto the window to replace the plot. Keys 1-9 toggle series,
Enter renders the selection.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, opts, args)
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.IntVar(&opts.width, "width", 0, "Canvas width in pixels")
	f.IntVar(&opts.height, "height", 0, "Canvas height in pixels")
	f.StringVar(&opts.origin, "origin", "", `Axis origin, e.g. "left|bottom" or "center"`)
	f.Float64SliceVar(&opts.rangeX, "range-x", nil, "X axis range as min,max (default: 0,rows)")
	f.Float64SliceVar(&opts.rangeY, "range-y", nil, "Y axis range as min,max")
	f.StringVar(&opts.encoding, "encoding", "", "CSV text encoding (shift_jis, utf-8, euc-jp, ...)")
	f.IntVar(&opts.skipColumns, "skip-columns", 0, "Leading label columns to ignore")
	f.StringVar(&opts.sheet, "sheet", "", "XLSX worksheet (default: first)")
	f.IntSliceVar(&opts.selection, "select", nil, "Series to render, numbered from 1 as in the window list (default: all)")

	renderCmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a file to PNG without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args[0])
		},
	}
	renderCmd.Flags().StringVarP(&opts.output, "output", "o", "graph.png", "Output PNG path")
	renderCmd.Flags().Float64Var(&opts.scale, "scale", 0, "Resize the PNG by this factor")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `config prints the settings a run would use after the config file and the
flags are applied. The output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, opts)
		},
	}

	rootCmd.AddCommand(renderCmd, configCmd, versionCmd)
	return rootCmd
}

// resolve loads the config file, if any, and applies the flags that were set.
func resolve(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		c, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = c
	}

	set := cmd.Flags().Changed
	if set("width") {
		cfg.Width = opts.width
	}
	if set("height") {
		cfg.Height = opts.height
	}
	if set("origin") {
		cfg.Origin = opts.origin
	}
	if set("range-x") {
		cfg.RangeX = opts.rangeX
	}
	if set("range-y") {
		cfg.RangeY = opts.rangeY
	}
	if set("encoding") {
		cfg.Encoding = opts.encoding
	}
	if set("skip-columns") {
		cfg.SkipColumns = opts.skipColumns
	}
	if set("sheet") {
		cfg.Sheet = opts.sheet
	}
	if set("scale") {
		cfg.Headless.Scale = opts.scale
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func appConfig(cfg config.Config, opts *options) (app.Config, error) {
	view, err := cfg.View()
	if err != nil {
		return app.Config{}, err
	}
	ac := app.Config{
		Options:      cfg.Options(),
		View:         view,
		RenderOnLoad: true,
	}
	for _, n := range opts.selection {
		if n < 1 {
			return app.Config{}, fmt.Errorf("--select %d: series are numbered from 1", n)
		}
		ac.Select = append(ac.Select, n-1)
	}
	return ac, nil
}

func readInput(ac *app.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ac.File, ac.Data = path, data
	return nil
}

func runWindow(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := resolve(cmd, opts)
	if err != nil {
		return err
	}
	ac, err := appConfig(cfg, opts)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if err := readInput(&ac, args[0]); err != nil {
			return err
		}
	}
	return hal.RunWindow(hal.WindowConfig{Width: cfg.Width, Height: cfg.Height, Title: "xgraph"}, app.Runner(ac))
}

func runConfig(cmd *cobra.Command, opts *options) error {
	cfg, err := resolve(cmd, opts)
	if err != nil {
		return err
	}
	b, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func runRender(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := resolve(cmd, opts)
	if err != nil {
		return err
	}
	ac, err := appConfig(cfg, opts)
	if err != nil {
		return err
	}
	if err := readInput(&ac, path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	err = hal.RunHeadless(ctx, app.Runner(ac), hal.HeadlessConfig{
		Enabled: true,
		Hz:      cfg.Headless.Hz,
		Ticks:   max(cfg.Headless.Ticks, 1),
		Width:   cfg.Width,
		Height:  cfg.Height,
		Scale:   cfg.Headless.Scale,
		Output:  opts.output,
		Log:     cmd.ErrOrStderr(),
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
