package system

import (
	"time"

	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/world"
)

// RoundtimeSystem decrements every live character and mob's roundtime
// countdown once per cycle, clamped at zero. Phase 2 (Update), registered
// ahead of NpcAiSystem in the same phase, so a roundtime that just expired
// this cycle is already actionable for the rest of the tick.
type RoundtimeSystem struct {
	world *world.World
}

func NewRoundtimeSystem(w *world.World) *RoundtimeSystem {
	return &RoundtimeSystem{world: w}
}

func (s *RoundtimeSystem) Phase() tick.Phase { return tick.PhaseUpdate }

func (s *RoundtimeSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	for _, c := range s.world.AllCharacters() {
		if c.Roundtime > 0 {
			c.Roundtime -= secs
			if c.Roundtime < 0 {
				c.Roundtime = 0
			}
		}
	}
	for _, m := range s.world.AllMobs() {
		if m.Dead {
			continue
		}
		if m.Roundtime > 0 {
			m.Roundtime -= secs
			if m.Roundtime < 0 {
				m.Roundtime = 0
			}
		}
	}
}
