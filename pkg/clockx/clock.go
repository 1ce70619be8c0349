// Package clockx supplies "now" to everything that compares dates. Nothing in
// the recruitment packages reads the system clock directly.
package clockx

import (
	"sync"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

type Clock interface {
	Now() time.Time
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Simulated is a calendar clock that only moves when told to. It backs the
// "advance days" feature and deterministic tests.
type Simulated struct {
	mu  sync.RWMutex
	now time.Time
}

// NewSimulated starts a simulated clock at the day of start.
func NewSimulated(start time.Time) *Simulated {
	return &Simulated{now: kernel.DateOf(start)}
}

func (s *Simulated) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// AdvanceDays moves the clock forward and returns the new date.
func (s *Simulated) AdvanceDays(days int) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.AddDate(0, 0, days)
	return s.now
}

// Set jumps to the given day.
func (s *Simulated) Set(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = kernel.DateOf(t)
}

// Func adapts a plain function, handy in tests.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }
