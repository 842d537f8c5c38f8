package system

import (
	"time"

	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/effect"
	"github.com/chrozal/mudcore/internal/world"
)

// BuffTickSystem drives the effect engine's DoT damage and expiration sweep
// across every live character and mob. Phase 2 (Update).
type BuffTickSystem struct {
	world *world.World
	out   effect.OutputSink
}

func NewBuffTickSystem(w *world.World, out effect.OutputSink) *BuffTickSystem {
	return &BuffTickSystem{world: w, out: out}
}

func (s *BuffTickSystem) Phase() tick.Phase { return tick.PhaseUpdate }

func (s *BuffTickSystem) Update(_ time.Duration) {
	effect.Tick(s.world, s.out)
}
