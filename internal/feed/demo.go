package feed

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

var demoNames = []string{
	"HARBOR-PILOT",
	"FERRY 21",
	"TUG ALBA",
	"BUOY 4",
	"SAILBOAT",
	"TRAWLER 9",
	"",
	"PATROL 3",
	"DREDGER",
	"",
}

type demoContact struct {
	id        string
	name      string
	baseRSSI  float64
	phase     float64
	amplitude float64
	active    bool
}

// DemoScanner generates fake contacts whose signal, and therefore range,
// drifts over time.
type DemoScanner struct {
	contacts []demoContact
	rng      *rand.Rand
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewDemoScanner creates n fake contacts. The seed makes runs repeatable.
func NewDemoScanner(n int, seed int64) *DemoScanner {
	rng := rand.New(rand.NewSource(seed))
	contacts := make([]demoContact, n)
	for i := range contacts {
		contacts[i] = demoContact{
			id:        randomAddr(rng),
			name:      demoNames[i%len(demoNames)],
			baseRSSI:  -50 - rng.Float64()*30, // -50 to -80 dBm
			phase:     rng.Float64() * 2 * math.Pi,
			amplitude: 3 + rng.Float64()*6,
			active:    true,
		}
	}
	return &DemoScanner{
		contacts: contacts,
		rng:      rng,
		interval: 200 * time.Millisecond,
	}
}

// Start begins emitting contacts in a goroutine.
func (s *DemoScanner) Start(out Sender) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx, out)
	return nil
}

func (s *DemoScanner) loop(ctx context.Context, out Sender) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t += s.interval.Seconds()
			for _, msg := range s.emit(t) {
				out.Send(msg)
			}
		}
	}
}

func (s *DemoScanner) emit(t float64) []ContactMsg {
	var msgs []ContactMsg
	for i := range s.contacts {
		c := &s.contacts[i]

		// Occasionally drop off the air and come back
		if s.rng.Float64() < 0.005 {
			c.active = !c.active
		}
		if !c.active {
			continue
		}

		rssi := c.baseRSSI + c.amplitude*math.Sin(t*0.5+c.phase) + (s.rng.Float64()-0.5)*2
		msgs = append(msgs, ContactMsg{
			ID:   c.id,
			Name: c.name,
			RSSI: int16(rssi),
		})
	}
	return msgs
}

// Stop halts the demo scanner and waits for its goroutine.
func (s *DemoScanner) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}

func randomAddr(rng *rand.Rand) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
