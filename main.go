package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geobox/app"
	"geobox/hal"
	"geobox/internal/buildinfo"
	"geobox/internal/config"
	"geobox/internal/logging"
)

type options struct {
	configPath string
	headless   bool
	hz         int
	ticks      uint64
	stereo     bool
	logLevel   string
}

func main() {
	if err := newRootCmd(run).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runFunc func(ctx context.Context, cfg config.Config, headless bool) error

func newRootCmd(run runFunc) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "geobox",
		Short:         "Geo-anchored draggable boxes",
		Long:          "Pick up boxes anchored around a simulated geolocation, carry them with the device and drop them back into the world.",
		Version:       buildinfo.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, opts.headless)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.BoolVar(&opts.headless, "headless", false, "run without a window")
	f.IntVar(&opts.hz, "hz", 60, "tick rate in headless mode")
	f.Uint64Var(&opts.ticks, "ticks", 0, "stop after N ticks in headless mode (0 = run forever)")
	f.BoolVar(&opts.stereo, "stereo", false, "render two side-by-side eye views")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

// loadConfig reads the config file and applies flags that were set explicitly.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	f := cmd.Flags()
	if f.Changed("hz") {
		cfg.Headless.Hz = opts.hz
	}
	if f.Changed("ticks") {
		cfg.Headless.Ticks = opts.ticks
	}
	if f.Changed("stereo") {
		cfg.View.Stereo = opts.stereo
	}
	if f.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, headless bool) error {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	hc := hal.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Scale:  cfg.Window.Scale,
		Title:  cfg.Window.Title,
		Log:    log,
	}
	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, cfg) }

	if !headless {
		return hal.RunWindow(hc, newApp)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	err = hal.RunHeadless(ctx, hc, hal.HeadlessConfig{Hz: cfg.Headless.Hz, Ticks: cfg.Headless.Ticks}, newApp)
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	if err != nil {
		log.Error("headless run failed", zap.Error(err))
	}
	return err
}
