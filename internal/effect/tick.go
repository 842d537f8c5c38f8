package effect

import (
	"fmt"
	"time"

	"github.com/chrozal/mudcore/internal/combat"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// Expire removes one named effect from a target, reverting any max_hp
// delta it applied at entry and clamping hp to the new max (spec.md
// section 4.5). Safe to call on a name that is no longer present.
func Expire(w *world.World, target combat.Combatant, name string, out OutputSink) {
	effects := target.EffectsMap()
	e, ok := effects[name]
	if !ok {
		return
	}
	delete(effects, name)

	if e.Affected == model.StatMaxHP {
		target.SetMaxHP(target.MaxHP() - float64(e.Amount))
		if target.CurrentHP() > target.MaxHP() {
			target.SetHP(target.MaxHP())
		}
	}

	if ch, ok := target.Underlying().(*model.Character); ok && out != nil {
		msgs := abilityMessages(w, e.SourceKey)
		out.Tell(ch.ID, firstNonEmpty(msgs["expire_msg_self"], e.Name+" fades away."))
	}

	if bus != nil {
		var targetID int64
		if ch, ok := target.Underlying().(*model.Character); ok {
			targetID = int64(ch.ID)
		} else if m, ok := target.Underlying().(*model.Mob); ok {
			targetID = int64(m.ID)
		}
		event.Emit(bus, event.EffectExpired{TargetID: targetID, EffectName: name})
	}
}

// bus lets Expire emit EffectExpired without threading it through every
// call site; set once at boot by SetBus.
var bus *event.Bus

// SetBus wires the event bus the tick sweep and manual expirations publish
// to. Called once from handler.RegisterAll during startup.
func SetBus(b *event.Bus) { bus = b }

// TickDoTs applies one interval's worth of damage-over-time effects
// (poison, bleed) on a single combatant, resolving a fatal tick as an
// environmental defeat with no attacker attribution (spec.md section 4.5).
func TickDoTs(w *world.World, out OutputSink, c combat.Combatant) {
	for _, e := range c.EffectsMap() {
		if e.Kind != model.EffectPoison && e.Kind != model.EffectBleed {
			continue
		}
		if e.Amount <= 0 {
			continue
		}
		newHP := c.CurrentHP() - float64(e.Amount)
		if newHP < 0 {
			newHP = 0
		}
		c.SetHP(newHP)

		if ch, ok := c.Underlying().(*model.Character); ok {
			out.Tell(ch.ID, fmt.Sprintf("You take %d %s damage!", e.Amount, kindLabel(e.Kind)))
		}

		if newHP <= 0 {
			combat.ResolveEnvironmentalDeath(w, out, bus, c, kindLabel(e.Kind))
			return
		}
	}
}

func kindLabel(k model.EffectKind) string {
	if k == model.EffectPoison {
		return "poison"
	}
	return "bleed"
}

// SweepExpired removes every effect on a combatant whose EndsAt has
// passed, applying the same symmetric reversion Expire does for each.
func SweepExpired(w *world.World, c combat.Combatant, now time.Time, out OutputSink) {
	for name, e := range c.EffectsMap() {
		if e.Expired(now) {
			Expire(w, c, name, out)
		}
	}
}

// Tick runs one effect-engine interval over every live character and mob in
// the world: DoT damage, then expiration. Called once per cycle at
// PhaseUpdate by system.BuffTickSystem.
func Tick(w *world.World, out OutputSink) {
	now := time.Now()
	for _, ch := range w.AllCharacters() {
		cc := &combat.CharCombatant{C: ch, W: w}
		TickDoTs(w, out, cc)
		SweepExpired(w, cc, now, out)
	}
	for _, m := range w.AllMobs() {
		if m.Dead {
			continue
		}
		mc := &combat.MobCombatant{M: m}
		TickDoTs(w, out, mc)
		SweepExpired(w, mc, now, out)
	}
}
