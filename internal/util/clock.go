package util

import (
	"sync"
	"time"
)

type Clock interface {
	NowUtc() time.Time
}

// Since reports the time elapsed on clock since start.
func Since(clock Clock, start time.Time) time.Duration {
	return clock.NowUtc().Sub(start)
}

type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) NowUtc() time.Time {
	return time.Now().UTC()
}

// StubClock only moves when told to.
type StubClock struct {
	now  time.Time
	step time.Duration
	lock sync.Mutex
}

func NewStubClock() *StubClock {
	return &StubClock{now: time.Now().UTC()}
}

// NewSteppingStubClock returns a StubClock that advances by step after every
// read, so consecutive reads observe a fixed elapsed duration.
func NewSteppingStubClock(step time.Duration) *StubClock {
	clock := NewStubClock()
	clock.step = step
	return clock
}

func (c *StubClock) NowUtc() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

func (c *StubClock) SetNow(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now.UTC()
}

func (c *StubClock) Advance(d time.Duration) time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
