package feed

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"tinygo.org/x/bluetooth"

	"ppi-radar.klederson.com/internal/logging"
)

// BLEScanner turns Bluetooth Low Energy advertisements into contacts.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	name    string
	lg      *logging.Logger
	running atomic.Bool
}

// NewBLEScanner creates a scanner on the default adapter. name is only
// used for logging and display.
func NewBLEScanner(name string, lg *logging.Logger) *BLEScanner {
	return &BLEScanner{
		adapter: bluetooth.DefaultAdapter,
		name:    name,
		lg:      lg.With(slog.String("component", "ble"), slog.String("adapter", name)),
	}
}

// Start enables the adapter and scans in a goroutine. Each advertisement
// is sent as a ContactMsg.
func (s *BLEScanner) Start(out Sender) error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter %s: %w (try running with sudo or setcap cap_net_admin+ep)", s.name, err)
	}

	s.running.Store(true)
	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running.Load() {
				return
			}

			addr := result.Address.String()
			var ids []uint16
			for _, m := range result.ManufacturerData() {
				ids = append(ids, m.CompanyID)
			}

			out.Send(ContactMsg{
				ID:   addr,
				Name: ContactName(result.LocalName(), ids, addr),
				RSSI: result.RSSI,
			})
		})
		if err != nil {
			s.lg.Error("scan stopped", slog.Any("error", err))
			out.Send(ErrorMsg{Err: fmt.Errorf("ble scan on %s: %w", s.name, err)})
		}
	}()

	s.lg.Info("scanning")
	return nil
}

// Stop halts the scan.
func (s *BLEScanner) Stop() {
	if s.running.Swap(false) {
		_ = s.adapter.StopScan()
	}
}
