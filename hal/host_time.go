package hal

import (
	"sync"
	"time"
)

type hostTime struct {
	mu  sync.Mutex
	now time.Time
}

func newHostTime() *hostTime {
	return &hostTime{now: time.Now()}
}

func (t *hostTime) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

func (t *hostTime) set(now time.Time) {
	t.mu.Lock()
	t.now = now
	t.mu.Unlock()
}

func (t *hostTime) advance(d time.Duration) {
	t.mu.Lock()
	t.now = t.now.Add(d)
	t.mu.Unlock()
}
