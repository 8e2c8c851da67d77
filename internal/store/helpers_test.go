package store

import (
	"fmt"
	"testing"
	"time"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: epoch}
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return NewMemoryStore(WithClock(clock.Now), WithIDGenerator(ids)), clock
}

func at(minutes int) time.Time {
	return epoch.Add(time.Duration(minutes) * time.Minute)
}

func ptr[T any](v T) *T { return &v }
