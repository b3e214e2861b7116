package record

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppi-radar.klederson.com/internal/radar"
)

type fakeSource struct {
	batches [][]string
}

func (f *fakeSource) Drain() []string {
	if len(f.batches) == 0 {
		return nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b
}

func newSession() *radar.Session {
	tracker := radar.NewTracker([]radar.Target{
		{ID: "T01", Angle: 350, Radius: 0.5},
		{ID: "T02", Angle: 90, Radius: 0.8, AngularVelocity: 10},
	})
	return radar.NewSession(radar.NewState(60, 0, 30), tracker,
		radar.Layout{Rings: 5, Radials: 12, Segments: 100})
}

func TestRecordRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	rec := &Recorder{
		Session: newSession(),
		Source:  &fakeSource{batches: [][]string{{"hello"}, nil, {"a", "b"}}},
		Step:    0.1,
	}
	n, err := rec.Run(context.Background(), w, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()

	h := r.Header()
	assert.Equal(t, formatVersion, h.Version)
	assert.Equal(t, 5, h.Rings)
	assert.Len(t, h.RingVertices, 5*101*radar.FloatsPerVertex)
	assert.Len(t, h.RadialVertices, 24*radar.FloatsPerVertex)

	var frames []*Frame
	for {
		f, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		frames = append(frames, f)
	}
	require.Len(t, frames, 3)

	// 6 degrees per frame, clockwise from 0.
	assert.InDelta(t, 354, frames[0].Angle, 1e-3)
	assert.InDelta(t, 342, frames[2].Angle, 1e-3)
	assert.InDelta(t, 0.2, frames[2].Time, 1e-6)
	assert.Len(t, frames[0].Sweep, 102*radar.FloatsPerVertex)

	assert.Equal(t, []string{"hello"}, frames[0].Messages)
	assert.Empty(t, frames[1].Messages)
	assert.Equal(t, []string{"a", "b"}, frames[2].Messages)

	// T01 at 350 is inside the 30 degree cone, T02 is not.
	require.Len(t, frames[0].Targets, 2)
	assert.Equal(t, "T01", frames[0].Targets[0].ID)
	assert.True(t, frames[0].Targets[0].Detected)
	assert.False(t, frames[0].Targets[1].Detected)
	assert.Equal(t, 1, frames[0].Detected())
	assert.InDelta(t, 91, frames[0].Targets[1].Angle, 1e-3)
}

func TestRecorderStopsOnCancel(t *testing.T) {
	w, err := NewWriter(io.Discard)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := (&Recorder{Session: newSession(), Step: 0.1}).Run(ctx, w, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}

func TestWriterOrdering(t *testing.T) {
	w, err := NewWriter(io.Discard)
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.WriteFrame(&Frame{}))
	require.NoError(t, w.WriteHeader(Header{}))
	assert.Error(t, w.WriteHeader(Header{}))
	assert.NoError(t, w.WriteFrame(&Frame{}))
}

func TestReaderRejectsGarbage(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("not a recording")))
	assert.Error(t, err)
}
