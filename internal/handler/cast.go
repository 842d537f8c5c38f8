package handler

import (
	"strings"

	"github.com/chrozal/mudcore/internal/combat"
	"github.com/chrozal/mudcore/internal/effect"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleCast resolves "cast <spell> [at <target>]": validates class, level,
// essence cost, then dispatches on the ability's EffectType to the combat
// or effect engine (spec.md section 4.5/4.6).
func (d *Deps) handleCast(c *model.Character, w *world.World, args string) bool {
	return d.invokeAbility(c, w, args, true)
}

// handleUseAbility is the non-spell counterpart of handleCast for
// class/skill-based abilities; the same class, level and essence checks
// apply, and the essence cost is spent the same way.
func (d *Deps) handleUseAbility(c *model.Character, w *world.World, args string) bool {
	return d.invokeAbility(c, w, args, false)
}

func (d *Deps) invokeAbility(c *model.Character, w *world.World, args string, spell bool) bool {
	if c.Roundtime > 0 {
		d.tell(c.ID, "You are still recovering.")
		return true
	}
	name, targetName := splitCastArgs(args)
	if name == "" {
		d.tell(c.ID, "Cast what?")
		return true
	}

	var ab *model.AbilityTemplate
	for key := range c.KnownSpells {
		if strings.EqualFold(key, name) {
			ab = d.Catalogs.Abilities.Get(key)
			break
		}
	}
	if ab == nil {
		for key := range c.KnownAbilities {
			if strings.EqualFold(key, name) {
				ab = d.Catalogs.Abilities.Get(key)
				break
			}
		}
	}
	if ab == nil || ab.IsSpell != spell {
		d.tell(c.ID, "You don't know that.")
		return true
	}
	if len(ab.ClassReq) > 0 {
		allowed := false
		for _, id := range ab.ClassReq {
			if id == c.ClassID {
				allowed = true
				break
			}
		}
		if !allowed {
			d.tell(c.ID, "You don't know that.")
			return true
		}
	}
	if c.Level < ab.LevelReq {
		d.tell(c.ID, "You aren't experienced enough.")
		return true
	}
	if c.Essence < float64(ab.Cost) {
		d.tell(c.ID, "You don't have enough essence.")
		return true
	}

	caster := &combat.CharCombatant{C: c, W: w}
	target, ok := d.resolveAbilityTarget(w, c, ab, targetName)
	if !ok {
		d.tell(c.ID, "Cast it on whom?")
		return true
	}

	c.Essence -= float64(ab.Cost)

	switch ab.EffectType {
	case model.EffectTypeBuff, model.EffectTypeDebuff:
		effect.Apply(w, caster, target, ab.InternalName, ab.EffectDetails, d.Out)
	case model.EffectTypeDamage, model.EffectTypeModifiedAttack, model.EffectTypeStunAttempt:
		d.resolveOffensiveAbility(w, caster, target, ab)
	case model.EffectTypeHeal:
		d.resolveHealAbility(target, ab)
	}

	c.Roundtime = ab.Roundtime
	return true
}

func splitCastArgs(args string) (name, target string) {
	args = strings.TrimSpace(args)
	if idx := strings.Index(strings.ToLower(args), " at "); idx >= 0 {
		return strings.TrimSpace(args[:idx]), strings.TrimSpace(args[idx+4:])
	}
	return args, ""
}

// resolveAbilityTarget applies an ability's TargetType rule against the
// caster, a named room occupant, or a named mob.
func (d *Deps) resolveAbilityTarget(w *world.World, c *model.Character, ab *model.AbilityTemplate, targetName string) (combat.Combatant, bool) {
	switch ab.TargetType {
	case model.TargetSelf, model.TargetNone:
		return &combat.CharCombatant{C: c, W: w}, true
	case model.TargetChar:
		if targetName == "" {
			return &combat.CharCombatant{C: c, W: w}, true
		}
		for _, occ := range w.CharactersInRoom(c.RoomID) {
			if strings.Contains(strings.ToLower(occ.FullName()), strings.ToLower(targetName)) {
				return &combat.CharCombatant{C: occ, W: w}, true
			}
		}
		return nil, false
	case model.TargetMob:
		if m := d.findMobTarget(w, c, strings.ToLower(targetName)); m != nil {
			return m, true
		}
		return nil, false
	default: // char_or_mob, area
		if m := d.findMobTarget(w, c, strings.ToLower(targetName)); m != nil {
			return m, true
		}
		for _, occ := range w.CharactersInRoom(c.RoomID) {
			if strings.Contains(strings.ToLower(occ.FullName()), strings.ToLower(targetName)) {
				return &combat.CharCombatant{C: occ, W: w}, true
			}
		}
		if targetName == "" {
			return &combat.CharCombatant{C: c, W: w}, true
		}
		return nil, false
	}
}

// resolveOffensiveAbility routes a damage/modified-attack/stun-attempt
// ability through the same magical-damage pipeline a spell attack uses.
func (d *Deps) resolveOffensiveAbility(w *world.World, caster combat.Combatant, target combat.Combatant, ab *model.AbilityTemplate) {
	baseDmg, _ := ab.EffectDetails["base_damage"].(int)
	rngDmg, _ := ab.EffectDetails["damage_range"].(int)
	dtStr, _ := ab.EffectDetails["damage_type"].(string)
	dt := model.DamageType(dtStr)
	if dt == "" {
		dt = model.DamageArcane
	}
	school := "Arcane"
	if s, ok := ab.EffectDetails["school"].(string); ok && s != "" {
		school = s
	}

	req := combat.AttackRequest{
		Attacker:   caster,
		Defender:   target,
		Kind:       combat.RatingAPR,
		Source:     combat.AttackSource{BaseDamage: baseDmg, RngDamage: rngDmg, DamageType: dt, Speed: ab.CastTime},
		School:     school,
		AlwaysHits: ab.AlwaysHits,
	}
	combat.ResolveAttack(w, d.Out, d.Bus, req)
}

func (d *Deps) resolveHealAbility(target combat.Combatant, ab *model.AbilityTemplate) {
	amount, _ := ab.EffectDetails["amount"].(int)
	newHP := target.CurrentHP() + float64(amount)
	if newHP > target.MaxHP() {
		newHP = target.MaxHP()
	}
	target.SetHP(newHP)
	if ch, ok := target.Underlying().(*model.Character); ok {
		d.tell(ch.ID, "You feel restored.")
	}
}
