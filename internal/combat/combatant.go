// Package combat resolves discrete attack acts: the hit check, block/parry,
// and damage phases of spec.md section 4.4, plus the post-damage outcome
// (death, roundtime, durability, group XP split).
package combat

import (
	"time"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// Combatant is the attacker/defender seam the hit and damage resolvers work
// against, so one code path serves both Character and Mob the way the
// original engine's duck-typed attacker/target arguments did.
type Combatant interface {
	Name() string

	MightMod() int
	VitalityMod() int
	AgilityMod() int
	IntellectMod() int
	AuraMod() int
	PersonaMod() int

	MAR() int
	RAR() int
	APR() int
	DPR() int
	DV() int
	TotalAV() int
	BarrierValue() int
	PDS() int
	SDS() int
	Resistance(dt model.DamageType) float64

	// WeaponSkillBonus is floor(rank/25) for the skill matching dt (or
	// martial arts when unarmed); mobs have no trained skills and always
	// return 0.
	WeaponSkillBonus(dt model.DamageType, unarmed bool) int

	IsCharacter() bool
	CurrentHP() float64
	MaxHP() float64
	SetHP(v float64)
	SetMaxHP(v float64)

	// EffectsMap exposes the live by-name effect store so the effect engine
	// can apply/expire entries without this package depending on it.
	EffectsMap() map[string]*model.Effect

	Hidden() bool
	SetHidden(v bool)
	Roundtime() float64
	SetRoundtime(v float64)

	// Underlying returns the concrete *model.Character or *model.Mob, for
	// the outcome handler's identity-specific bookkeeping (XP, loot, group
	// membership) that has no natural place on the shared interface.
	Underlying() any
}

func effectAmount(effects map[string]*model.Effect, ch model.StatChannel, now time.Time) int {
	total := 0
	for _, e := range effects {
		if e.Expired(now) {
			continue
		}
		if e.Affected == ch {
			total += e.Amount
		}
		for _, child := range e.Children {
			if !child.Expired(now) && child.Affected == ch {
				total += child.Amount
			}
		}
	}
	return total
}

// CharCombatant adapts a player character and the world it stands in (for
// equipment bonus lookups) to Combatant.
type CharCombatant struct {
	C *model.Character
	W *world.World
}

func (cc *CharCombatant) Name() string { return cc.C.FullName() }

func (cc *CharCombatant) equipmentBonus(ch model.StatChannel) int {
	total := 0
	for _, slot := range model.AllSlots() {
		id := cc.C.Equipment[slot]
		if id == 0 {
			continue
		}
		tmpl := cc.W.ItemTemplate(id)
		if tmpl == nil {
			continue
		}
		total += tmpl.BonusStats[ch]
	}
	return total
}

func (cc *CharCombatant) mod(raw int, ch model.StatChannel) int {
	return model.StatMod(raw) + cc.equipmentBonus(ch) + effectAmount(cc.C.Effects, ch, time.Now())
}

func (cc *CharCombatant) MightMod() int     { return cc.mod(cc.C.Stats.Might, model.StatMight) }
func (cc *CharCombatant) VitalityMod() int  { return cc.mod(cc.C.Stats.Vitality, model.StatVitality) }
func (cc *CharCombatant) AgilityMod() int   { return cc.mod(cc.C.Stats.Agility, model.StatAgility) }
func (cc *CharCombatant) IntellectMod() int { return cc.mod(cc.C.Stats.Intellect, model.StatIntellect) }
func (cc *CharCombatant) AuraMod() int      { return cc.mod(cc.C.Stats.Aura, model.StatAura) }
func (cc *CharCombatant) PersonaMod() int   { return cc.mod(cc.C.Stats.Persona, model.StatPersona) }

func (cc *CharCombatant) MAR() int { return cc.MightMod() + cc.AgilityMod()/2 }
func (cc *CharCombatant) RAR() int { return cc.AgilityMod() + cc.MightMod()/2 }
func (cc *CharCombatant) APR() int { return cc.IntellectMod() + cc.AuraMod()/2 }
func (cc *CharCombatant) DPR() int { return cc.AuraMod() + cc.PersonaMod()/2 }

func (cc *CharCombatant) DV() int {
	base := cc.AgilityMod()*2 + cc.equipmentBonus(model.StatDodgeValue) + effectAmount(cc.C.Effects, model.StatDodgeValue, time.Now())
	return base - cc.TotalAV()
}

func (cc *CharCombatant) TotalAV() int {
	total := 0
	for _, slot := range model.AllSlots() {
		id := cc.C.Equipment[slot]
		if id == 0 {
			continue
		}
		if tmpl := cc.W.ItemTemplate(id); tmpl != nil {
			total += tmpl.ArmorValue
		}
	}
	return total + cc.equipmentBonus(model.StatArmorValue) + effectAmount(cc.C.Effects, model.StatArmorValue, time.Now())
}

func (cc *CharCombatant) BarrierValue() int {
	return cc.equipmentBonus(model.StatBarrierValue) + effectAmount(cc.C.Effects, model.StatBarrierValue, time.Now())
}

func (cc *CharCombatant) PDS() int { return cc.VitalityMod() }
func (cc *CharCombatant) SDS() int { return cc.AuraMod() }

func (cc *CharCombatant) Resistance(dt model.DamageType) float64 { return cc.C.Resistances[dt] }

var weaponSkillByDamageType = map[model.DamageType]string{
	model.DamageSlash:    "bladed weapons",
	model.DamagePierce:   "bladed weapons",
	model.DamageBludgeon: "bludgeon weapons",
}

func (cc *CharCombatant) WeaponSkillBonus(dt model.DamageType, unarmed bool) int {
	skill := "martial arts"
	if !unarmed {
		if s, ok := weaponSkillByDamageType[dt]; ok {
			skill = s
		}
	}
	return cc.C.Skills[skill] / 25
}

func (cc *CharCombatant) IsCharacter() bool  { return true }
func (cc *CharCombatant) CurrentHP() float64 { return cc.C.HP }
func (cc *CharCombatant) MaxHP() float64     { return cc.C.MaxHP }
func (cc *CharCombatant) SetHP(v float64)    { cc.C.HP = v }

func (cc *CharCombatant) Underlying() any { return cc.C }

func (cc *CharCombatant) SetMaxHP(v float64)                     { cc.C.MaxHP = v }
func (cc *CharCombatant) EffectsMap() map[string]*model.Effect { return cc.C.Effects }

func (cc *CharCombatant) Hidden() bool         { return cc.C.Hidden }
func (cc *CharCombatant) SetHidden(v bool)     { cc.C.Hidden = v }
func (cc *CharCombatant) Roundtime() float64   { return cc.C.Roundtime }
func (cc *CharCombatant) SetRoundtime(v float64) { cc.C.Roundtime = v }

// MobCombatant adapts a live mob instance to Combatant. Mobs carry no
// equipment and no trained skills, so every bonus collapses to the base
// template field plus active effects.
type MobCombatant struct {
	M *model.Mob
}

func (mc *MobCombatant) Name() string { return mc.M.Name }

func (mc *MobCombatant) mod(raw int, ch model.StatChannel) int {
	return model.StatMod(raw) + effectAmount(mc.M.Effects, ch, time.Now())
}

func (mc *MobCombatant) MightMod() int     { return mc.mod(mc.M.Stats.Might, model.StatMight) }
func (mc *MobCombatant) VitalityMod() int  { return mc.mod(mc.M.Stats.Vitality, model.StatVitality) }
func (mc *MobCombatant) AgilityMod() int   { return mc.mod(mc.M.Stats.Agility, model.StatAgility) }
func (mc *MobCombatant) IntellectMod() int { return mc.mod(mc.M.Stats.Intellect, model.StatIntellect) }
func (mc *MobCombatant) AuraMod() int      { return mc.mod(mc.M.Stats.Aura, model.StatAura) }
func (mc *MobCombatant) PersonaMod() int   { return mc.mod(mc.M.Stats.Persona, model.StatPersona) }

func (mc *MobCombatant) MAR() int { return mc.MightMod() + mc.AgilityMod()/2 }
func (mc *MobCombatant) RAR() int { return mc.AgilityMod() + mc.MightMod()/2 }
func (mc *MobCombatant) APR() int { return mc.IntellectMod() + mc.AuraMod()/2 }
func (mc *MobCombatant) DPR() int { return mc.AuraMod() + mc.PersonaMod()/2 }

// DV for a mob defender does not subtract armor value; spec.md section 4.4
// singles out character defenders for that penalty.
func (mc *MobCombatant) DV() int {
	return mc.AgilityMod()*2 + effectAmount(mc.M.Effects, model.StatDodgeValue, time.Now())
}

func (mc *MobCombatant) TotalAV() int {
	return mc.M.ArmorValue + effectAmount(mc.M.Effects, model.StatArmorValue, time.Now())
}

func (mc *MobCombatant) BarrierValue() int {
	return mc.M.BarrierValue + effectAmount(mc.M.Effects, model.StatBarrierValue, time.Now())
}

func (mc *MobCombatant) PDS() int { return mc.VitalityMod() }
func (mc *MobCombatant) SDS() int { return mc.AuraMod() }

func (mc *MobCombatant) Resistance(dt model.DamageType) float64 { return mc.M.Resistances[dt] }

func (mc *MobCombatant) WeaponSkillBonus(model.DamageType, bool) int { return 0 }

func (mc *MobCombatant) IsCharacter() bool  { return false }
func (mc *MobCombatant) CurrentHP() float64 { return float64(mc.M.HP) }
func (mc *MobCombatant) MaxHP() float64     { return float64(mc.M.MaxHP) }
func (mc *MobCombatant) SetHP(v float64)    { mc.M.HP = int(v) }

func (mc *MobCombatant) Underlying() any { return mc.M }

func (mc *MobCombatant) SetMaxHP(v float64)                     { mc.M.MaxHP = int(v) }
func (mc *MobCombatant) EffectsMap() map[string]*model.Effect { return mc.M.Effects }

func (mc *MobCombatant) Hidden() bool           { return mc.M.Hidden }
func (mc *MobCombatant) SetHidden(v bool)       { mc.M.Hidden = v }
func (mc *MobCombatant) Roundtime() float64     { return mc.M.Roundtime }
func (mc *MobCombatant) SetRoundtime(v float64) { mc.M.Roundtime = v }
