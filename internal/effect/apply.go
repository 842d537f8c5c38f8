// Package effect implements the buff/debuff/DoT lifecycle (spec.md section
// 4.5): applying a named effect to a target, its immediate secondary
// mutations, and the tick-driven damage-over-time and expiration sweep.
package effect

import (
	"time"

	"github.com/chrozal/mudcore/internal/combat"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// OutputSink is the same seam internal/combat uses to reach a character's
// connection without importing internal/net or internal/session.
type OutputSink = combat.OutputSink

func kindFromType(t string) model.EffectKind {
	switch t {
	case "debuff":
		return model.EffectDebuff
	case "stun":
		return model.EffectStun
	case "bleed":
		return model.EffectBleed
	case "poison":
		return model.EffectPoison
	case "silence":
		return model.EffectSilence
	case "shapechange":
		return model.EffectShapechange
	case "stance_lock":
		return model.EffectStanceLock
	default:
		return model.EffectBuff
	}
}

func typeOf(details map[string]any) string {
	t, _ := details["type"].(string)
	return t
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func asAmount(details map[string]any) int {
	if v, ok := details["amount"]; ok {
		return int(asFloat(v))
	}
	return int(asFloat(details["potency"]))
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// endsAt computes an Effect's EndsAt from a duration in seconds. duration
// == -1 encodes "until removed", stored as the zero time per model.Effect's
// Indefinite contract.
func endsAt(now time.Time, duration float64) time.Time {
	if duration == -1 {
		return time.Time{}
	}
	return now.Add(time.Duration(duration * float64(time.Second)))
}

// Apply runs the single consolidated entry point for every buff, debuff,
// and DoT an ability or spell can inflict (spec.md section 4.5). Invalid
// effect data (no duration, no stat, no amount) is silently dropped, same
// as a dissipating effect that never takes hold.
func Apply(w *world.World, caster, target combat.Combatant, sourceKey string, details map[string]any, out OutputSink) {
	name, _ := details["name"].(string)
	if name == "" {
		return
	}

	duration := asFloat(details["duration"])
	statName, _ := details["stat_affected"].(string)
	_, hasAmount := details["amount"]
	_, hasPotency := details["potency"]

	if !(duration > 0 || duration == -1) || statName == "" || (!hasAmount && !hasPotency) {
		return
	}
	stat, _ := model.ParseStatChannel(statName)
	amount := asAmount(details)

	if asBool(details["is_shapechange"]) {
		expirePriorShapechange(w, target, out)
	}

	now := time.Now()
	e := newEffect(caster, name, typeOf(details), stat, amount, sourceKey, now, duration)
	target.EffectsMap()[name] = e

	applySecondary(target, stat, amount, details, out)
	applyMessages(w, caster, target, sourceKey, details, out)

	if children := childSpecs(details); len(children) > 0 {
		for _, spec := range children {
			child := applyChildEffect(caster, target, sourceKey, spec, now)
			if child != nil {
				e.Children = append(e.Children, child)
			}
		}
	}
}

func newEffect(caster combat.Combatant, name, kindStr string, stat model.StatChannel, amount int, sourceKey string, now time.Time, duration float64) *model.Effect {
	var casterID int64
	if ch, ok := caster.Underlying().(*model.Character); ok {
		casterID = int64(ch.ID)
	} else if m, ok := caster.Underlying().(*model.Mob); ok {
		casterID = int64(m.ID)
	}
	return &model.Effect{
		Name:      name,
		Kind:      kindFromType(kindStr),
		Affected:  stat,
		Amount:    amount,
		AppliedAt: now,
		EndsAt:    endsAt(now, duration),
		SourceKey: sourceKey,
		CasterID:  casterID,
	}
}

// applyChildEffect applies one entry of a compound effects_to_apply list
// as its own independently-keyed effect, sharing the parent's source key so
// a by-source removal takes every child with it.
func applyChildEffect(caster, target combat.Combatant, sourceKey string, spec map[string]any, now time.Time) *model.Effect {
	name, _ := spec["name"].(string)
	if name == "" {
		return nil
	}
	duration := asFloat(spec["duration"])
	statName, _ := spec["stat_affected"].(string)
	if !(duration > 0 || duration == -1) {
		return nil
	}
	stat, _ := model.ParseStatChannel(statName)
	amount := asAmount(spec)

	e := newEffect(caster, name, typeOf(spec), stat, amount, sourceKey, now, duration)
	target.EffectsMap()[name] = e
	applySecondary(target, stat, amount, spec, nil)
	return e
}

func childSpecs(details map[string]any) []map[string]any {
	raw, ok := details["effects_to_apply"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// applySecondary applies the immediate, non-reverting-on-apply mutations a
// newly stored effect can carry: a max_hp delta raises both max_hp and hp, a
// stun adds to the target's roundtime, set_stance writes the target's stance.
func applySecondary(target combat.Combatant, stat model.StatChannel, amount int, details map[string]any, out OutputSink) {
	if stat == model.StatMaxHP {
		target.SetMaxHP(target.MaxHP() + float64(amount))
		target.SetHP(target.CurrentHP() + float64(amount))
	}

	if typeOf(details) == "stun" {
		target.SetRoundtime(target.Roundtime() + asFloat(details["potency"]))
		if ch, ok := target.Underlying().(*model.Character); ok && out != nil {
			out.Tell(ch.ID, "You are stunned!")
		}
	}

	if stanceName, ok := details["set_stance"].(string); ok && stanceName != "" {
		if ch, ok := target.Underlying().(*model.Character); ok {
			if s, ok := parseStance(stanceName); ok {
				ch.Stance = s
			}
		}
	}
}

func parseStance(s string) (model.Stance, bool) {
	switch s {
	case "standing":
		return model.StanceStanding, true
	case "sitting":
		return model.StanceSitting, true
	case "lying":
		return model.StanceLying, true
	}
	return 0, false
}

// applyMessages delivers the apply_msg_self / apply_msg_target / apply_msg_room
// trio the originating ability's Messages map declares, falling back to a
// generic line when the ability carries none for a given audience.
func applyMessages(w *world.World, caster, target combat.Combatant, sourceKey string, details map[string]any, out OutputSink) {
	if out == nil {
		return
	}
	msgs := abilityMessages(w, sourceKey)
	casterCh, casterIsChar := caster.Underlying().(*model.Character)
	targetCh, targetIsChar := target.Underlying().(*model.Character)

	if caster == target {
		if casterIsChar {
			out.Tell(casterCh.ID, firstNonEmpty(msgs["apply_msg_self"], "You feel the effect settle over you."))
		}
		return
	}
	if targetIsChar {
		out.Tell(targetCh.ID, firstNonEmpty(msgs["apply_msg_target"], "You feel an effect take hold."))
	}
	if casterIsChar {
		out.Tell(casterCh.ID, firstNonEmpty(msgs["apply_msg_room"], "You apply an effect to "+target.Name()+"."))
	}
}

func abilityMessages(w *world.World, sourceKey string) map[string]string {
	if w == nil || w.Catalogs == nil || w.Catalogs.Abilities == nil {
		return nil
	}
	if ab := w.Catalogs.Abilities.Get(sourceKey); ab != nil {
		return ab.Messages
	}
	return nil
}

func firstNonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// expirePriorShapechange removes any effect on the target whose kind is
// shapechange before a new one takes hold (spec.md section 4.5).
func expirePriorShapechange(w *world.World, target combat.Combatant, out OutputSink) {
	for key, e := range target.EffectsMap() {
		if e.Kind == model.EffectShapechange {
			Expire(w, target, key, out)
		}
	}
}
