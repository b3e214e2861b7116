package app

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ppi-radar.klederson.com/internal/config"
	"ppi-radar.klederson.com/internal/feed"
	"ppi-radar.klederson.com/internal/logging"
	"ppi-radar.klederson.com/internal/overlay"
	"ppi-radar.klederson.com/internal/radar"
	"ppi-radar.klederson.com/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	session  *radar.Session
	store    *feed.Store
	scanner  feed.Scanner
	listener *overlay.Listener
	display  *overlay.Display
	scope    *ui.Scope
	lg       *logging.Logger

	frame      radar.Frame
	lastTick   time.Time
	overlayErr error
}

// AppModel is the root Bubble Tea model for the radar display.
type AppModel struct {
	width  int
	height int

	feedName string

	shared *shared
}

// New creates a new AppModel. scanner and listener may be nil.
func New(cfg *config.Config, scanner feed.Scanner, listener *overlay.Listener, lg *logging.Logger) AppModel {
	session := NewSession(cfg)
	return AppModel{
		feedName: cfg.Feed.Source,
		shared: &shared{
			session:  session,
			store:    feed.NewStore(),
			scanner:  scanner,
			listener: listener,
			display:  overlay.NewDisplay(cfg.Overlay.Lines),
			scope:    ui.NewScope(0, 0),
			lg:       lg.With(slog.String("component", "app")),
			frame:    session.Frame(0),
		},
	}
}

// Session exposes the radar session, mainly for tests.
func (m AppModel) Session() *radar.Session {
	return m.shared.session
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		evictCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.shared.scope.Resize(ui.ScopeSize(m.radarWidth(), m.bodyHeight()))
		m.shared.scope.Draw(m.shared.frame)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.tick(time.Time(msg))
		return m, tickCmd()

	case EvictMsg:
		m.evict()
		return m, evictCmd()

	case feed.ContactMsg:
		m.contact(msg)
		return m, nil

	case feed.ErrorMsg:
		m.shared.lg.Error("feed error", slog.Any("error", msg.Err))
		m.shared.display.Add("feed: " + msg.Err.Error())
		return m, nil
	}

	return m, nil
}

// tick advances the session by the wall time since the previous tick.
func (m AppModel) tick(now time.Time) {
	sh := m.shared
	dt := float32(1) / config.TargetFPS
	if !sh.lastTick.IsZero() {
		dt = float32(now.Sub(sh.lastTick).Seconds())
	}
	sh.lastTick = now

	sh.frame = sh.session.Frame(dt)
	if sh.listener != nil {
		sh.display.Pull(sh.listener)
	}
	sh.scope.Draw(sh.frame)
}

func (m AppModel) contact(msg feed.ContactMsg) {
	c := m.shared.store.Upsert(msg.ID, msg.Name, float64(msg.RSSI))
	m.shared.session.Tracker.Upsert(c.ID, c.Bearing, c.Radius(config.ContactMaxRange))
}

func (m AppModel) evict() {
	ids := m.shared.store.Evict(config.ContactTimeout)
	if n := m.shared.session.Tracker.Remove(ids...); n > 0 {
		m.shared.lg.Debug("contacts evicted", slog.Int("count", n))
	}
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.shared.session
	speed, tol := s.State.Speed(), s.State.Tolerance()

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.Stop()
		return m, tea.Quit

	case "p", "P", " ":
		s.SetPaused(!s.Paused())

	case "+", "=":
		s.UpdateParameters(speed+config.SpeedStep, tol)

	case "-", "_":
		s.UpdateParameters(max(speed-config.SpeedStep, 0), tol)

	case "]":
		s.UpdateParameters(speed, min(tol+config.ToleranceStep, 360))

	case "[":
		s.UpdateParameters(speed, max(tol-config.ToleranceStep, config.ToleranceStep))
	}

	return m, nil
}

func (m AppModel) bodyHeight() int {
	return max(m.height-2, 5) // menu + status
}

func (m AppModel) radarWidth() int {
	return max(m.width*2/3, 30)
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing radar..."
	}

	sh := m.shared
	bodyH := m.bodyHeight()
	radarW := m.radarWidth()
	sideW := max(m.width-radarW, 20)

	menuBar := ui.RenderMenuBar(m.width, m.feedName, sh.session.Paused())
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, sh.scope, ui.RenderLegend(sh.frame.Tolerance))

	listH := bodyH / 2
	targetList := ui.RenderTargetList(m.targetRows(), sideW, listH)
	overlayPanel := ui.RenderOverlayPanel(sh.display.Lines(), m.overlayState(), sideW, bodyH-listH)
	side := lipgloss.JoinVertical(lipgloss.Left, targetList, overlayPanel)

	statusBar := ui.RenderStatusBar(m.width, ui.Status{
		Paused:    sh.session.Paused(),
		Angle:     sh.frame.Angle,
		Speed:     sh.session.State.Speed(),
		Tolerance: sh.frame.Tolerance,
		Targets:   sh.session.Tracker.Len(),
		Detected:  sh.frame.Detected,
		Contacts:  sh.store.Count(),
	})

	return ui.ComposeLayout(menuBar, radarPanel, side, statusBar)
}

func (m AppModel) targetRows() []ui.TargetRow {
	contacts := make(map[string]feed.Contact)
	for _, c := range m.shared.store.Snapshot() {
		contacts[c.ID] = c
	}

	now := time.Now()
	targets := m.shared.session.Tracker.Targets()
	rows := make([]ui.TargetRow, len(targets))
	for i, tg := range targets {
		row := ui.TargetRow{
			ID:       tg.ID,
			Angle:    tg.Angle,
			Radius:   tg.Radius,
			Detected: tg.Detected,
		}
		if c, ok := contacts[tg.ID]; ok {
			row.Name = c.DisplayName()
			row.Contact = true
			row.RSSI = c.RSSI
			row.Age = now.Sub(c.LastSeen)
		}
		rows[i] = row
	}
	return rows
}

func (m AppModel) overlayState() ui.OverlayState {
	sh := m.shared
	st := ui.OverlayState{Err: sh.overlayErr}
	if sh.listener != nil {
		if addr := sh.listener.Addr(); addr != nil {
			st.Addr = addr.String()
		}
		st.Dropped = sh.listener.Dropped()
	}
	return st
}

// Start starts the overlay listener and the contact feed. Must be called
// before p.Run(). A listener that fails to bind is reported on screen and
// does not stop the radar.
func (m *AppModel) Start(ctx context.Context, p *tea.Program) error {
	sh := m.shared
	if sh.listener != nil {
		if err := sh.listener.Start(ctx); err != nil {
			sh.overlayErr = err
			sh.listener = nil
		}
	}
	if sh.scanner != nil {
		if err := sh.scanner.Start(p); err != nil {
			return err
		}
	}
	return nil
}

// Stop halts the feed and the overlay listener.
func (m AppModel) Stop() {
	if m.shared.scanner != nil {
		m.shared.scanner.Stop()
	}
	if m.shared.listener != nil {
		m.shared.listener.Stop()
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func evictCmd() tea.Cmd {
	return tea.Tick(config.EvictInterval, func(t time.Time) tea.Msg {
		return EvictMsg(t)
	})
}
