package system

import (
	"math/rand"
	"time"

	"github.com/chrozal/mudcore/internal/combat"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// NpcAiSystem drives every live mob's per-tick behavior in the order
// spec.md section 4.8 lists: drop a stale target, attack when roundtime
// has elapsed, or (if idle and AGGRESSIVE) pick a new target from the
// room and attempt an attack the same tick. Phase 2 (Update) — runs after
// RoundtimeSystem has already ticked mob roundtime down for this cycle.
type NpcAiSystem struct {
	world *world.World
	out   combat.OutputSink
	bus   *event.Bus
}

func NewNpcAiSystem(w *world.World, out combat.OutputSink, bus *event.Bus) *NpcAiSystem {
	return &NpcAiSystem{world: w, out: out, bus: bus}
}

func (s *NpcAiSystem) Phase() tick.Phase { return tick.PhaseUpdate }

func (s *NpcAiSystem) Update(_ time.Duration) {
	for _, m := range s.world.AllMobs() {
		if m.Dead {
			continue
		}
		s.stepMob(m)
	}
}

func (s *NpcAiSystem) stepMob(m *model.Mob) {
	if m.IsFighting {
		target := s.liveTarget(m)
		if target == nil {
			m.IsFighting = false
			m.TargetID = 0
			return
		}
		if m.Roundtime <= 0 {
			s.attack(m, target)
		}
		return
	}

	if !m.Flags.Has(model.MobFlagAggressive) {
		return
	}
	candidates := s.world.CharactersInRoom(m.RoomID)
	var alive []*model.Character
	for _, c := range candidates {
		if c.Status == model.StatusAlive && !c.Hidden {
			alive = append(alive, c)
		}
	}
	if len(alive) == 0 {
		return
	}
	target := alive[rand.Intn(len(alive))]
	m.TargetID = int64(target.ID)
	m.IsFighting = true
	if m.Roundtime <= 0 {
		s.attack(m, target)
	}
}

// liveTarget resolves a fighting mob's target character, dropping it if
// dead, released, or no longer in the mob's room.
func (s *NpcAiSystem) liveTarget(m *model.Mob) *model.Character {
	target := s.world.Character(model.CharacterID(m.TargetID))
	if target == nil || target.Status != model.StatusAlive || target.RoomID != m.RoomID {
		return nil
	}
	return target
}

func (s *NpcAiSystem) attack(m *model.Mob, target *model.Character) {
	if len(m.Attacks) == 0 {
		return
	}
	atk := m.Attacks[rand.Intn(len(m.Attacks))]
	req := combat.AttackRequest{
		Attacker: &combat.MobCombatant{M: m},
		Defender: &combat.CharCombatant{C: target, W: s.world},
		Kind:     combat.RatingMAR,
		Source: combat.AttackSource{
			BaseDamage: atk.DamageBase,
			RngDamage:  atk.DamageRng,
			DamageType: atk.DamageType,
			Speed:      atk.Speed,
		},
	}
	combat.ResolveAttack(s.world, s.out, s.bus, req)
}
