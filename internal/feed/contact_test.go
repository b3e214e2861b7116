package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ppi-radar.klederson.com/internal/radar"
)

func TestIDToBearing(t *testing.T) {
	for _, id := range []string{"", "AA:BB:CC:DD:EE:FF", "contact-1", "x"} {
		b := IDToBearing(id)
		assert.GreaterOrEqual(t, b, float32(0))
		assert.Less(t, b, float32(360))
		assert.Equal(t, b, IDToBearing(id))
	}
	assert.NotEqual(t, IDToBearing("a"), IDToBearing("b"))
}

func TestRSSIToDistance(t *testing.T) {
	assert.InDelta(t, 1.0, RSSIToDistance(-59, -59, 2.5), 1e-9)
	assert.InDelta(t, 10.0, RSSIToDistance(-84, -59, 2.5), 1e-9)
	assert.Equal(t, 0.1, RSSIToDistance(5, -59, 2.5))
	assert.Equal(t, 0.1, RSSIToDistance(-1, -59, 2.5))
}

func TestContactRadius(t *testing.T) {
	c := Contact{Distance: 15}
	assert.InDelta(t, 0.5, c.Radius(30), 1e-6)

	c.Distance = 100
	assert.Equal(t, radar.RadiusMax, c.Radius(30))

	c.Distance = 0.1
	assert.Equal(t, radar.RadiusMin, c.Radius(30))
	assert.Equal(t, radar.RadiusMax, c.Radius(0))
}

func TestContactName(t *testing.T) {
	assert.Equal(t, "buoy", ContactName("buoy", []uint16{0x004C}, "AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, "Apple EE:FF", ContactName("", []uint16{0xFFFF, 0x004C}, "AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, "Apple", ContactName("", []uint16{0x004C}, "x"))
	assert.Equal(t, "", ContactName("", []uint16{0xFFFF}, "AA:BB:CC:DD:EE:FF"))
}
