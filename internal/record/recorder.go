package record

import (
	"context"
	"log/slog"
	"time"

	"ppi-radar.klederson.com/internal/logging"
	"ppi-radar.klederson.com/internal/overlay"
	"ppi-radar.klederson.com/internal/radar"
)

// Recorder drives a session without a display and writes every frame.
type Recorder struct {
	Session *radar.Session
	Source  overlay.Source // optional overlay messages, stored per frame

	// Step is the simulated time per frame in seconds.
	Step float32
	// Interval paces frames in wall time; zero runs as fast as possible.
	Interval time.Duration

	Logger *logging.Logger
}

// Run records n frames, or until ctx is done. It returns how many frames
// were written.
func (r *Recorder) Run(ctx context.Context, w *Writer, n int) (int, error) {
	if err := w.WriteHeader(NewHeader(r.Session)); err != nil {
		return 0, err
	}

	var tick <-chan time.Time
	if r.Interval > 0 {
		t := time.NewTicker(r.Interval)
		defer t.Stop()
		tick = t.C
	}

	var elapsed float64
	for i := 0; i < n; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return i, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return i, err
		}

		f := r.Session.Frame(r.Step)
		var msgs []string
		if r.Source != nil {
			msgs = r.Source.Drain()
		}
		if err := w.WriteFrame(NewFrame(i, elapsed, f, r.Session.Tracker.Targets(), msgs)); err != nil {
			return i, err
		}
		elapsed += float64(r.Step)

		if f.Detected > 0 {
			r.Logger.Debug("detection", slog.Int("frame", i), slog.Float64("angle", float64(f.Angle)),
				slog.Int("count", f.Detected))
		}
	}
	r.Logger.Info("recording done", slog.Int("frames", n))
	return n, nil
}
