package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64 // 0 = run until ctx is done

	// Start is the simulated clock's first reading; zero means the wall clock.
	Start time.Time
}

// RunHeadless drives the app without opening a window. The host clock is
// simulated: it starts at cfg.Start and advances by 1/Hz before every step,
// regardless of scheduling jitter.
func RunHeadless(ctx context.Context, cfg Config, hc HeadlessConfig, newApp func(HAL) func() error) error {
	if hc.Hz <= 0 {
		hc.Hz = 60
	}
	d := time.Second / time.Duration(hc.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hc.Hz)
	}

	h := newHost(cfg)
	if !hc.Start.IsZero() {
		h.t.set(hc.Start)
	}
	step := newApp(h)
	h.log.Info("headless run", zap.Int("hz", hc.Hz), zap.Uint64("ticks", hc.Ticks))

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.advance(d)
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrExit) {
						return nil
					}
					return err
				}
			}
			tick++
			if hc.Ticks > 0 && tick >= hc.Ticks {
				h.log.Info("headless run finished", zap.Uint64("ticks", tick), zap.Uint64("presented", h.fb.Presented()))
				return nil
			}
		}
	}
}
