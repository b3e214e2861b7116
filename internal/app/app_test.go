package app

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppi-radar.klederson.com/internal/config"
	"ppi-radar.klederson.com/internal/feed"
	"ppi-radar.klederson.com/internal/overlay"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am
}

func TestNewSessionFromConfig(t *testing.T) {
	s := NewSession(config.Default())

	assert.Equal(t, float32(60), s.State.Speed())
	assert.Equal(t, float32(5), s.State.Tolerance())
	assert.Equal(t, 8, s.Tracker.Len())
	assert.Equal(t, "T01", s.Tracker.Targets()[0].ID)
	assert.Equal(t, 5, s.Layout().Rings)
	assert.Len(t, s.Rings(), 5*101)
	assert.Len(t, s.Radials(), 24)
}

func TestTickAdvancesByWallTime(t *testing.T) {
	m := New(config.Default(), nil, nil, nil)
	t0 := time.Unix(100, 0)

	// First tick assumes one frame period: 60 deg/s / 30 fps = 2 deg.
	m = update(t, m, TickMsg(t0))
	assert.InDelta(t, 358, m.Session().State.Angle(), 1e-3)

	m = update(t, m, TickMsg(t0.Add(500*time.Millisecond)))
	assert.InDelta(t, 328, m.Session().State.Angle(), 1e-3)
}

func TestPauseFreezesSweep(t *testing.T) {
	m := New(config.Default(), nil, nil, nil)
	t0 := time.Unix(100, 0)
	m = update(t, m, TickMsg(t0))

	m = update(t, m, key("p"))
	require.True(t, m.Session().Paused())
	m = update(t, m, TickMsg(t0.Add(time.Second)))
	assert.InDelta(t, 358, m.Session().State.Angle(), 1e-3)

	m = update(t, m, key("p"))
	assert.False(t, m.Session().Paused())
}

func TestKeysTuneParameters(t *testing.T) {
	m := New(config.Default(), nil, nil, nil)
	st := m.Session().State

	m = update(t, m, key("+"))
	assert.Equal(t, float32(70), st.Speed())
	for i := 0; i < 10; i++ {
		m = update(t, m, key("-"))
	}
	assert.Equal(t, float32(0), st.Speed(), "speed does not go negative")

	m = update(t, m, key("]"))
	assert.Equal(t, float32(6), st.Tolerance())
	for i := 0; i < 10; i++ {
		m = update(t, m, key("["))
	}
	assert.Equal(t, float32(1), st.Tolerance())
	assert.Equal(t, float32(0), st.Angle(), "tuning leaves the angle alone")
}

func TestQuit(t *testing.T) {
	m := New(config.Default(), nil, nil, nil)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestContactBecomesTarget(t *testing.T) {
	m := New(config.Default(), nil, nil, nil)
	m = update(t, m, feed.ContactMsg{ID: "aa:bb:cc", Name: "Pixel", RSSI: -59})

	tr := m.Session().Tracker
	require.Equal(t, 9, tr.Len())
	tg := tr.Targets()[8]
	assert.Equal(t, "aa:bb:cc", tg.ID)
	assert.Equal(t, feed.IDToBearing("aa:bb:cc"), tg.Angle)
	// -59 dBm is 1 m, well inside the display minimum.
	assert.InDelta(t, 0.1, tg.Radius, 1e-6)

	m = update(t, m, feed.ContactMsg{ID: "aa:bb:cc", RSSI: -120})
	assert.Equal(t, 9, tr.Len(), "a known contact keeps its slot")
	assert.Greater(t, tr.Targets()[8].Radius, float32(0.1))

	// Fresh contacts survive eviction.
	m = update(t, m, EvictMsg(time.Now()))
	assert.Equal(t, 9, tr.Len())

	rows := m.targetRows()
	require.Len(t, rows, 9)
	assert.False(t, rows[0].Contact)
	assert.True(t, rows[8].Contact)
	assert.Equal(t, "Pixel", rows[8].Name)
}

func TestFeedErrorIsShown(t *testing.T) {
	m := New(config.Default(), nil, nil, nil)
	m = update(t, m, feed.ErrorMsg{Err: errors.New("adapter gone")})
	assert.Equal(t, []string{"feed: adapter gone"}, m.shared.display.Lines())
}

func TestView(t *testing.T) {
	m := New(config.Default(), nil, nil, nil)
	assert.Equal(t, "Initializing radar...", m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, TickMsg(time.Unix(100, 0)))
	out := m.View()
	assert.Contains(t, out, "PPI-RADAR")
	assert.Contains(t, out, "TARGETS [")
	assert.Contains(t, out, "MSG [off]")
	assert.Contains(t, out, "Targets: 8")
}

func TestOverlayMessagesReachDisplay(t *testing.T) {
	cfg := config.Default()
	l := overlay.NewListener("127.0.0.1:0", cfg.Overlay.QueueSize, nil)
	m := New(cfg, nil, l, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx, nil))
	defer m.Stop()

	conn, err := net.Dial("udp", l.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Write([]byte("CONTACT 042\n"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		m.tick(time.Now())
		return len(m.shared.display.Lines()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "CONTACT 042", m.shared.display.Lines()[0])
	assert.Equal(t, l.Addr().String(), m.overlayState().Addr)
}

func TestOverlayBindFailureIsNotFatal(t *testing.T) {
	taken, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	m := New(config.Default(), nil, overlay.NewListener(taken.LocalAddr().String(), 10, nil), nil)
	require.NoError(t, m.Start(context.Background(), nil))
	defer m.Stop()

	assert.Error(t, m.overlayState().Err)
	assert.Empty(t, m.overlayState().Addr)
}
