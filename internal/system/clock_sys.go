package system

import (
	"time"

	"github.com/chrozal/mudcore/internal/clock"
	"github.com/chrozal/mudcore/internal/core/tick"
)

// ClockSystem advances the shared game clock once per cycle. Phase 1
// (PreUpdate) — every other system that reads time-of-day this cycle
// should see it already advanced.
type ClockSystem struct {
	clock *clock.Clock
}

func NewClockSystem(c *clock.Clock) *ClockSystem {
	return &ClockSystem{clock: c}
}

func (s *ClockSystem) Phase() tick.Phase { return tick.PhasePreUpdate }

func (s *ClockSystem) Update(dt time.Duration) {
	s.clock.Advance(dt)
}
