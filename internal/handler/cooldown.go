package handler

import (
	"sync"
	"time"
)

// sweepThreshold is the entry count above which expired cooldowns are
// pruned on the next check.
const sweepThreshold = 1024

// Cooldowns rate-limits each member per command.
type Cooldowns struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

func NewCooldowns(window time.Duration) *Cooldowns {
	return &Cooldowns{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// Allow records a use of command by member and reports whether it is
// permitted. When it is not, the remaining wait is returned.
func (c *Cooldowns) Allow(member, command string) (time.Duration, bool) {
	if c.window <= 0 || member == "" {
		return 0, true
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	key := member + "\x00" + command
	if at, ok := c.last[key]; ok {
		if wait := c.window - now.Sub(at); wait > 0 {
			return wait, false
		}
	}
	c.last[key] = now

	if len(c.last) > sweepThreshold {
		for k, at := range c.last {
			if now.Sub(at) >= c.window {
				delete(c.last, k)
			}
		}
	}
	return 0, true
}
