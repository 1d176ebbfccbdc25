package clock

import "sync"

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu  sync.Mutex
	now Reading
}

// NewFake returns a fake clock starting at the given reading.
func NewFake(start Reading) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() Reading {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by the given number of seconds.
func (f *Fake) Advance(seconds float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now += Reading(seconds)
}

// Set jumps the clock to an absolute reading. Tests use it to simulate
// anomalies a real monotonic source cannot produce.
func (f *Fake) Set(reading Reading) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = reading
}
