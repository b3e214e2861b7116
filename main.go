package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ppi-radar.klederson.com/internal/app"
	"ppi-radar.klederson.com/internal/config"
	"ppi-radar.klederson.com/internal/feed"
	"ppi-radar.klederson.com/internal/logging"
	"ppi-radar.klederson.com/internal/overlay"
)

var (
	flagConfig      string
	flagLogDir      string
	flagLogLevel    string
	flagNoOverlay   bool
	flagOverlayAddr string
	flagSpeed       float32
	flagTolerance   float32

	flagDemo    bool
	flagFeed    string
	flagAdapter string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ppi-radar",
		Short: "PPI Radar - Plan-position-indicator radar display in the terminal",
		Long: `PPI Radar draws a rotating radar sweep over a ring and radial grid and
lights up targets as the beam passes over them.

Targets come from the config file and, optionally, from a live feed: --demo
for synthetic contacts or --feed ble to place nearby Bluetooth Low Energy
advertisers on the scope (requires sudo or CAP_NET_ADMIN).

Text sent as UDP datagrams to the overlay port (default 5555) is shown
beside the scope, one message per line.`,
		SilenceUsage: true,
		RunE:         run,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "YAML config file (defaults are used when empty)")
	pf.StringVar(&flagLogDir, "log-dir", "", "Directory for the log file (default: user config dir)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagNoOverlay, "no-overlay", false, "Do not listen for UDP overlay text")
	pf.StringVar(&flagOverlayAddr, "overlay-addr", "", "UDP address for overlay text (e.g. :5555)")
	pf.Float32Var(&flagSpeed, "speed", 0, "Sweep speed in degrees per second")
	pf.Float32Var(&flagTolerance, "tolerance", 0, "Detection cone width in degrees")

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Add synthetic contacts (no Bluetooth required)")
	rootCmd.Flags().StringVar(&flagFeed, "feed", "", "Contact feed: none, demo, ble")
	rootCmd.Flags().StringVar(&flagAdapter, "adapter", "", "Bluetooth adapter to use with --feed ble")

	rootCmd.AddCommand(newRecordCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-dir") {
		cfg.Log.Dir = flagLogDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flagNoOverlay {
		cfg.Overlay.Enabled = false
	}
	if flags.Changed("overlay-addr") {
		cfg.Overlay.Addr = flagOverlayAddr
	}
	if flags.Changed("speed") {
		cfg.Radar.SweepSpeed = flagSpeed
	}
	if flags.Changed("tolerance") {
		cfg.Radar.Tolerance = flagTolerance
	}
	if flagDemo {
		cfg.Feed.Source = config.FeedDemo
	}
	if flags.Changed("feed") {
		cfg.Feed.Source = flagFeed
	}
	if flags.Changed("adapter") {
		cfg.Feed.Adapter = flagAdapter
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func newListener(cfg *config.Config, lg *logging.Logger) *overlay.Listener {
	if !cfg.Overlay.Enabled {
		return nil
	}
	return overlay.NewListener(cfg.Overlay.Addr, cfg.Overlay.QueueSize, lg)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lg, err := logging.New(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		return err
	}
	defer lg.Close()

	scanner, err := feed.New(cfg.Feed.Source, cfg.Feed.Adapter, lg)
	if err != nil {
		return err
	}

	model := app.New(cfg, scanner, newListener(cfg, lg), lg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Start the feed and overlay with a reference to the tea program
	if err := model.Start(ctx, p); err != nil {
		lg.Error("feed start failed", slog.Any("error", err))
		if cfg.Feed.Source == config.FeedBLE {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./ppi-radar --feed ble")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./ppi-radar")
			fmt.Fprintln(os.Stderr, "  ./ppi-radar --demo    (synthetic contacts, no hardware needed)")
		}
		model.Stop()
		return err
	}
	defer model.Stop()

	_, err = p.Run()
	return err
}
