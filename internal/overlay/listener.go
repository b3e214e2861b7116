package overlay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"ppi-radar.klederson.com/internal/logging"
)

const maxDatagram = 2048

// ErrClosed is returned by Start on a listener that was already stopped.
var ErrClosed = errors.New("overlay: listener closed")

// Listener receives newline-delimited UTF-8 text datagrams and queues each
// line for the frame loop. The queue is bounded; when full the oldest
// message is dropped.
type Listener struct {
	addr string
	lg   *logging.Logger

	mu      sync.Mutex
	queue   *Ring[string]
	dropped int

	conn    net.PacketConn
	done    chan struct{}
	stopped bool
}

// NewListener creates a listener for addr (e.g. ":5555") with the given
// queue capacity.
func NewListener(addr string, queueSize int, lg *logging.Logger) *Listener {
	return &Listener{
		addr:  addr,
		lg:    lg.With(slog.String("component", "overlay")),
		queue: NewRing[string](queueSize),
	}
}

// Start binds the socket and runs the receive loop in a goroutine until
// ctx is cancelled or Stop is called.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrClosed
	}
	if l.conn != nil {
		return nil
	}

	conn, err := net.ListenPacket("udp", l.addr)
	if err != nil {
		l.lg.Error("bind failed", slog.String("addr", l.addr), slog.Any("error", err))
		return fmt.Errorf("overlay listen %s: %w", l.addr, err)
	}
	done := make(chan struct{})
	l.conn, l.done = conn, done
	l.lg.Info("listening", slog.String("addr", conn.LocalAddr().String()))

	go func() {
		select {
		case <-ctx.Done():
			l.Stop()
		case <-done:
		}
	}()
	go l.loop(conn, done)
	return nil
}

// Addr returns the bound address, or nil before Start.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil
	}
	return l.conn.LocalAddr()
}

func (l *Listener) loop(conn net.PacketConn, done chan struct{}) {
	defer close(done)
	buf := make([]byte, maxDatagram)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				l.lg.Error("receive failed", slog.Any("error", err))
			}
			l.lg.Info("listener stopped")
			return
		}
		if n == 0 {
			continue
		}
		lines := SplitLines(buf[:n])
		l.lg.Debug("received", slog.String("from", from.String()), slog.Int("lines", len(lines)))
		l.push(lines)
	}
}

func (l *Listener) push(lines []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range lines {
		if l.queue.Push(line) {
			l.dropped++
		}
	}
}

// Pop removes the oldest queued message.
func (l *Listener) Pop() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.Pop()
}

// Drain removes and returns every queued message, oldest first.
func (l *Listener) Drain() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for {
		msg, ok := l.queue.Pop()
		if !ok {
			return out
		}
		out = append(out, msg)
	}
}

// Dropped returns how many messages were discarded because the queue was
// full.
func (l *Listener) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Stop closes the socket and waits for the receive loop to exit. It is
// safe to call more than once.
func (l *Listener) Stop() {
	l.mu.Lock()
	l.stopped = true
	conn, done := l.conn, l.done
	l.mu.Unlock()

	if conn == nil {
		return
	}
	_ = conn.Close()
	<-done
}

// SplitLines breaks a datagram into non-empty lines, replacing invalid
// UTF-8 sequences.
func SplitLines(b []byte) []string {
	text := strings.ToValidUTF8(string(b), "�")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
