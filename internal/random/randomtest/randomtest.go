// Package randomtest provides a scripted random.Sampler for tests.
package randomtest

import (
	"fmt"
	"sync"

	"github.com/ayuyan/bot/internal/random"
)

// Scripted replays a fixed sequence of values. Each value must fall inside
// the range requested by the caller, which lets tests assert both the
// outcome and the bounds a component asked for.
type Scripted struct {
	mu     sync.Mutex
	values []int
	calls  []Call
}

// Call records one Sample invocation.
type Call struct {
	Low, High int
}

// New returns a Scripted source that yields values in order.
func New(values ...int) *Scripted {
	return &Scripted{values: values}
}

// Sample returns the next scripted value.
func (s *Scripted) Sample(low, high int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if low >= high {
		return 0, fmt.Errorf("%w: [%d, %d)", random.ErrInvalidRange, low, high)
	}
	s.calls = append(s.calls, Call{Low: low, High: high})
	if len(s.values) == 0 {
		return 0, fmt.Errorf("randomtest: script exhausted after %d calls", len(s.calls)-1)
	}
	v := s.values[0]
	s.values = s.values[1:]
	if v < low || v >= high {
		return 0, fmt.Errorf("randomtest: scripted value %d outside [%d, %d)", v, low, high)
	}
	return v, nil
}

// Calls returns the ranges requested so far.
func (s *Scripted) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// Remaining returns how many scripted values have not been consumed.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

var _ random.Sampler = (*Scripted)(nil)
