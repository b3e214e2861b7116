package app

import "time"

// TickMsg triggers a frame update.
type TickMsg time.Time

// EvictMsg triggers contact eviction.
type EvictMsg time.Time
