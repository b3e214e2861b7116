// Package feed supplies live contacts that are placed on the radar as
// targets alongside the configured ones.
package feed

import (
	"fmt"

	"ppi-radar.klederson.com/internal/config"
	"ppi-radar.klederson.com/internal/logging"
)

// Scanner is a contact source.
type Scanner interface {
	Start(out Sender) error
	Stop()
}

const demoContacts = 8

// New returns the scanner for a configured source, or nil for "none".
func New(source, adapter string, lg *logging.Logger) (Scanner, error) {
	switch source {
	case config.FeedNone, "":
		return nil, nil
	case config.FeedDemo:
		return NewDemoScanner(demoContacts, 1), nil
	case config.FeedBLE:
		return NewBLEScanner(adapter, lg), nil
	default:
		return nil, fmt.Errorf("unknown feed source %q", source)
	}
}
