package app

import (
	"fmt"

	"ppi-radar.klederson.com/internal/config"
	"ppi-radar.klederson.com/internal/radar"
)

// NewSession builds a radar session from the radar and target sections of
// the config. Configured targets are named T01, T02, ...
func NewSession(cfg *config.Config) *radar.Session {
	rc := cfg.Radar
	state := radar.NewState(rc.SweepSpeed, rc.SweepAngle, rc.Tolerance)
	state.SetColors(toColor(rc.GridColor), toColor(rc.SweepColor))

	targets := make([]radar.Target, len(cfg.Targets))
	for i, tc := range cfg.Targets {
		targets[i] = radar.Target{
			ID:              fmt.Sprintf("T%02d", i+1),
			Angle:           tc.Angle,
			Radius:          tc.Radius,
			AngularVelocity: tc.AngularVelocity,
			RadialVelocity:  tc.RadialVelocity,
		}
	}

	return radar.NewSession(state, radar.NewTracker(targets), radar.Layout{
		Rings:    rc.Rings,
		Radials:  rc.Radials,
		Segments: rc.Segments,
	})
}

func toColor(c config.RGBA) radar.Color {
	return radar.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}
