package system

import (
	"time"

	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/effect"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// DeathSystem advances every DYING character whose death timer has elapsed
// into DEAD, decrementing their spiritual tether. Release back to ALIVE is
// player-initiated (handler.handleRelease) and not this system's concern.
// Phase 3 (PostUpdate).
type DeathSystem struct {
	world *world.World
	out   effect.OutputSink
	bus   *event.Bus
}

func NewDeathSystem(w *world.World, out effect.OutputSink, bus *event.Bus) *DeathSystem {
	return &DeathSystem{world: w, out: out, bus: bus}
}

func (s *DeathSystem) Phase() tick.Phase { return tick.PhasePostUpdate }

func (s *DeathSystem) Update(_ time.Duration) {
	now := time.Now()
	for _, c := range s.world.AllCharacters() {
		if c.Status != model.StatusDying {
			continue
		}
		if now.Before(c.DeathTimerEndsAt) {
			continue
		}
		c.Status = model.StatusDead
		if c.Tether > 0 {
			c.Tether--
		}
		c.Dirty = true
		if s.out != nil {
			s.out.Tell(c.ID, "Your spirit slips from your body. Type 'release' to return.")
		}
	}
}
