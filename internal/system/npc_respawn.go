package system

import (
	"time"

	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/effect"
	"github.com/chrozal/mudcore/internal/world"
)

// NpcRespawnSystem resets a dead mob in place to full state once its
// respawn delay has elapsed (spec.md section 3 Mob lifecycle). Phase 3
// (PostUpdate).
type NpcRespawnSystem struct {
	world *world.World
	out   effect.OutputSink
}

func NewNpcRespawnSystem(w *world.World, out effect.OutputSink) *NpcRespawnSystem {
	return &NpcRespawnSystem{world: w, out: out}
}

func (s *NpcRespawnSystem) Phase() tick.Phase { return tick.PhasePostUpdate }

func (s *NpcRespawnSystem) Update(_ time.Duration) {
	now := time.Now()
	for _, m := range s.world.AllMobs() {
		if !m.Dead {
			continue
		}
		if now.Sub(m.TimeOfDeath) < m.RespawnDelay {
			continue
		}
		m.Respawn()
		if s.out != nil {
			for _, c := range s.world.CharactersInRoom(m.RoomID) {
				s.out.Tell(c.ID, m.Name+" appears.")
			}
		}
	}
}
