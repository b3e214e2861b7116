package feed

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ppi-radar.klederson.com/internal/radar"
)

// ContactMsg is sent through the program when a feed hears a contact.
type ContactMsg struct {
	ID   string
	Name string
	RSSI int16
}

// ErrorMsg reports a feed that stopped on its own.
type ErrorMsg struct {
	Err error
}

// Sender is the part of *tea.Program feeds talk to.
type Sender interface {
	Send(msg tea.Msg)
}

// Contact is a smoothed, positioned feed contact.
type Contact struct {
	ID       string
	Name     string
	RSSI     float64
	LastSeen time.Time
	Bearing  float32 // degrees, 0=+X, counter-clockwise
	Distance float64 // estimated meters
}

// DisplayName returns the contact name or "[unnamed]" if empty.
func (c *Contact) DisplayName() string {
	if c.Name == "" {
		return "[unnamed]"
	}
	return c.Name
}

// Radius maps the contact's distance onto the display, saturating at the
// outer ring.
func (c *Contact) Radius(maxRange float64) float32 {
	if maxRange <= 0 {
		return radar.RadiusMax
	}
	return radar.Clamp(float32(c.Distance/maxRange), radar.RadiusMin, radar.RadiusMax)
}

// IDToBearing derives a stable bearing from a contact ID using a hash.
// Returns degrees in [0, 360).
func IDToBearing(id string) float32 {
	h := sha256.Sum256([]byte(id))
	val := binary.BigEndian.Uint32(h[:4])
	return radar.NormalizeDegrees(float32(float64(val) / (float64(math.MaxUint32) + 1) * 360))
}

// RSSIToDistance estimates distance from RSSI using the log-distance path loss model.
// Formula: d = 10^((measuredPower - rssi) / (10 * n))
func RSSIToDistance(rssi, measuredPower, pathLossExp float64) float64 {
	if rssi >= 0 {
		return 0.1
	}
	d := math.Pow(10, (measuredPower-rssi)/(10*pathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}
