package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ppi-radar.klederson.com/internal/app"
	"ppi-radar.klederson.com/internal/config"
	"ppi-radar.klederson.com/internal/logging"
	"ppi-radar.klederson.com/internal/record"
)

var (
	flagOut      string
	flagFrames   int
	flagStep     float32
	flagRealtime bool
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Run the radar without a display and record every frame",
		Long: `record drives the sweep and targets headlessly and writes the grid
geometry followed by every frame (sweep cone, targets, overlay text) to a
zstd-compressed msgpack file.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runRecord,
	}
	cmd.Flags().StringVarP(&flagOut, "out", "o", "radar"+record.Extension, "Output file")
	cmd.Flags().IntVarP(&flagFrames, "frames", "n", 300, "Number of frames to record")
	cmd.Flags().Float32Var(&flagStep, "step", 1.0/config.TargetFPS, "Simulated seconds per frame")
	cmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames in wall time, e.g. to capture overlay text")
	return cmd
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagFrames < 1 {
		return fmt.Errorf("--frames must be >= 1, got %d", flagFrames)
	}

	lg, err := logging.New(cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		return err
	}
	defer lg.Close()

	f, err := os.Create(flagOut)
	if err != nil {
		return fmt.Errorf("create recording: %w", err)
	}
	return writeRecording(f, func(w *record.Writer) error {
		return recordFrames(cmd.Context(), cfg, lg, w)
	})
}

// writeRecording runs fn on a recording writer over out, then flushes the
// writer and closes out. The first error wins.
func writeRecording(out io.WriteCloser, fn func(w *record.Writer) error) (err error) {
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close recording: %w", cerr)
		}
	}()

	w, err := record.NewWriter(out)
	if err != nil {
		return err
	}
	err = fn(w)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// recordFrames runs the recorder alongside the overlay listener until the
// frame count is reached or the user interrupts.
func recordFrames(ctx context.Context, cfg *config.Config, lg *logging.Logger, w *record.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rec := &record.Recorder{
		Session: app.NewSession(cfg),
		Step:    flagStep,
		Logger:  lg.With(slog.String("component", "record")),
	}
	if flagRealtime {
		rec.Interval = time.Duration(float64(flagStep) * float64(time.Second))
	}

	listener := newListener(cfg, lg)
	if listener != nil {
		if err := listener.Start(ctx); err != nil {
			return err
		}
		rec.Source = listener
	}

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		n, err := rec.Run(gctx, w, flagFrames)
		fmt.Fprintf(os.Stderr, "recorded %d frames to %s\n", n, flagOut)
		return err
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-done:
		}
		if listener != nil {
			listener.Stop()
			if d := listener.Dropped(); d > 0 {
				lg.Warn("overlay messages dropped", slog.Int("count", d))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
