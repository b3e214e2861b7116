package overlay

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startListener(t *testing.T, queueSize int) *Listener {
	t.Helper()
	l := NewListener("127.0.0.1:0", queueSize, nil)
	require.NoError(t, l.Start(context.Background()))
	t.Cleanup(l.Stop)
	return l
}

func send(t *testing.T, addr net.Addr, payloads ...string) {
	t.Helper()
	conn, err := net.Dial("udp", addr.String())
	require.NoError(t, err)
	defer conn.Close()
	for _, p := range payloads {
		_, err := conn.Write([]byte(p))
		require.NoError(t, err)
	}
}

func TestListenerReceivesLines(t *testing.T) {
	l := startListener(t, 100)
	send(t, l.Addr(), "Radar test packet", "track 7\r\ntrack 8\n")

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, l.Drain()...)
		return len(got) == 3
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"Radar test packet", "track 7", "track 8"}, got)
}

func TestListenerDropsOldest(t *testing.T) {
	l := startListener(t, 3)
	for i := 0; i < 5; i++ {
		send(t, l.Addr(), fmt.Sprintf("m%d", i))
	}

	require.Eventually(t, func() bool { return l.Dropped() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"m2", "m3", "m4"}, l.Drain())

	_, ok := l.Pop()
	assert.False(t, ok)
}

func TestListenerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewListener("127.0.0.1:0", 10, nil)
	require.NoError(t, l.Start(ctx))
	cancel()

	require.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return l.stopped
	}, 2*time.Second, 10*time.Millisecond)
	l.Stop()
	assert.ErrorIs(t, l.Start(context.Background()), ErrClosed)
}

func TestListenerBindFailure(t *testing.T) {
	l := startListener(t, 10)
	other := NewListener(l.Addr().String(), 10, nil)
	err := other.Start(context.Background())
	assert.Error(t, err)
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitLines([]byte("a\n\nb\r\n")))
	assert.Nil(t, SplitLines([]byte("\n")))
	assert.Equal(t, []string{"ok�"}, SplitLines([]byte{'o', 'k', 0xff}))
}
