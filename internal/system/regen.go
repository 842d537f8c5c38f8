package system

import (
	"time"

	"github.com/chrozal/mudcore/internal/config"
	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// RegenSystem restores HP and essence toward max for every living, non-dead
// character each cycle. NODE rooms multiply the restored amount (spec.md
// section 3's NODE room flag). Phase 3 (PostUpdate).
type RegenSystem struct {
	world *world.World
	cfg   config.RegenConfig
}

func NewRegenSystem(w *world.World, cfg config.RegenConfig) *RegenSystem {
	return &RegenSystem{world: w, cfg: cfg}
}

func (s *RegenSystem) Phase() tick.Phase { return tick.PhasePostUpdate }

func (s *RegenSystem) Update(_ time.Duration) {
	for _, c := range s.world.AllCharacters() {
		if c.Status == model.StatusDead || c.Status == model.StatusDying {
			continue
		}
		mult := 1.0
		if room := s.world.Room(c.RoomID); room != nil && room.Flags.Has(model.RoomFlagNode) {
			mult = s.cfg.NodeMultiplier
		}
		c.HP += s.cfg.HPPerTick * mult
		c.Essence += s.cfg.EssencePerTick * mult
		c.ClampVitals()
	}
}
