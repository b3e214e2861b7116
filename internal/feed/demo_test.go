package feed

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppi-radar.klederson.com/internal/config"
)

type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestDemoScannerDeterministic(t *testing.T) {
	a := NewDemoScanner(5, 42)
	b := NewDemoScanner(5, 42)
	assert.Equal(t, a.emit(0.2), b.emit(0.2))

	msgs := NewDemoScanner(5, 7).emit(0.2)
	require.NotEmpty(t, msgs)
	for _, m := range msgs {
		assert.Len(t, m.ID, 17)
		assert.Less(t, m.RSSI, int16(-30))
	}
}

func TestDemoScannerStartStop(t *testing.T) {
	s := NewDemoScanner(3, 1)
	s.interval = 5 * time.Millisecond

	rec := &recorder{}
	require.NoError(t, s.Start(rec))
	require.Eventually(t, func() bool { return rec.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	s.Stop()
	s.Stop()

	n := rec.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, rec.count(), "no sends after Stop")

	rec.mu.Lock()
	_, ok := rec.msgs[0].(ContactMsg)
	rec.mu.Unlock()
	assert.True(t, ok)
}

func TestNew(t *testing.T) {
	s, err := New(config.FeedNone, "hci0", nil)
	assert.NoError(t, err)
	assert.Nil(t, s)

	s, err = New(config.FeedDemo, "hci0", nil)
	assert.NoError(t, err)
	assert.IsType(t, &DemoScanner{}, s)

	_, err = New("sonar", "hci0", nil)
	assert.Error(t, err)
}
