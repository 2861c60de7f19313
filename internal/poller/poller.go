// internal/poller/poller.go
package poller

import (
	"errors"
	"time"
)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Device   string
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg Config
	src Source
}

// New creates a poller with immutable config.
func New(cfg Config, src Source) (*Poller, error) {
	if cfg.Device == "" {
		return nil, errors.New("poller: device name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("poller: source required")
	}
	return &Poller{cfg: cfg, src: src}, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: a failed read produces a Result with no values.
func (p *Poller) PollOnce() Result {
	start := time.Now()

	values, err := p.src.ReadAll()

	return Result{
		Device:  p.cfg.Device,
		At:      start,
		Elapsed: time.Since(start),
		Values:  values,
		Err:     err,
	}
}
