package combat

import (
	"math/rand"

	"github.com/chrozal/mudcore/internal/model"
)

// AttackSource carries the weapon (or unarmed) profile an attack rolls
// damage from. Built by the caller from an equipped weapon's template, or
// the unarmed fallback, or a mob's chosen attack entry.
type AttackSource struct {
	BaseDamage int
	RngDamage  int
	DamageType model.DamageType
	Speed      float64
	Unarmed    bool
}

// UnarmedAttack is the fallback source for any attacker wielding nothing.
var UnarmedAttack = AttackSource{BaseDamage: 1, RngDamage: 2, DamageType: model.DamageBludgeon, Speed: 1.0, Unarmed: true}

// AbilityMods carries the bonus damage, multiplier, and display name an
// ability-driven attack layers onto the base formula (spec.md section 4.4's
// ability_mods payload).
type AbilityMods struct {
	Name             string
	BonusDamage      int
	BonusHitRating   int
	DamageMultiplier float64
}

// DamageInfo is the pre-mitigation result of Phase C's damage roll.
type DamageInfo struct {
	PreMitigation int
	DamageType    model.DamageType
	Crit          bool
	AttackName    string
}

// explodingDie rolls 1..max, adding another roll (up to 10 total) each time
// the die lands on its maximum face.
func explodingDie(max int) int {
	if max <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < 10; i++ {
		roll := rand.Intn(max) + 1
		total += roll
		if roll < max {
			break
		}
	}
	return total
}

// CalculatePhysicalDamage resolves Phase C's pre-mitigation physical damage.
func CalculatePhysicalDamage(attacker Combatant, source AttackSource, crit bool, mods AbilityMods) DamageInfo {
	rngRoll := 0
	if crit {
		rngRoll = explodingDie(source.RngDamage)
	} else if source.RngDamage > 0 {
		rngRoll = rand.Intn(source.RngDamage) + 1
	}

	pre := source.BaseDamage + rngRoll + attacker.MightMod() + mods.BonusDamage
	if mods.DamageMultiplier > 0 {
		pre = int(float64(pre) * mods.DamageMultiplier)
	}
	if pre < 0 {
		pre = 0
	}

	name := mods.Name
	if name == "" {
		name = "an attack"
	}
	return DamageInfo{PreMitigation: pre, DamageType: source.DamageType, Crit: crit, AttackName: name}
}

// CalculateMagicalDamage resolves Phase C's pre-mitigation magical damage.
// The school's power rating contributes max(1, floor(power/4)), except a
// non-positive rating contributes its own floor (a penalty, not a floor of 1).
func CalculateMagicalDamage(caster Combatant, school string, baseDmg, rngDmg int, damageType model.DamageType, crit bool) DamageInfo {
	power := caster.APR()
	if school != "Arcane" {
		power = caster.DPR()
	}
	statMod := power / 4
	if power > 0 && statMod < 1 {
		statMod = 1
	}

	rngRoll := 0
	if crit {
		rngRoll = explodingDie(rngDmg)
	} else if rngDmg > 0 {
		rngRoll = rand.Intn(rngDmg) + 1
	}

	pre := baseDmg + rngRoll + statMod
	if pre < 0 {
		pre = 0
	}
	return DamageInfo{PreMitigation: pre, DamageType: damageType, Crit: crit}
}

// WeatherMultiplier looks up the elemental multiplier a room's weather flags
// apply to a given damage type (spec.md section 4.4 Phase C).
func WeatherMultiplier(flags model.RoomFlag, dt model.DamageType) float64 {
	mult := 1.0
	if flags.Has(model.RoomFlagWet) {
		switch dt {
		case model.DamageFire:
			mult *= 0.75
		case model.DamageLightning:
			mult *= 1.25
		}
	}
	if flags.Has(model.RoomFlagStormy) && dt == model.DamageLightning {
		mult *= 1.5
	}
	if flags.Has(model.RoomFlagFreezing) {
		switch dt {
		case model.DamageCold:
			mult *= 1.25
		case model.DamageFire:
			mult *= 0.9
		}
	}
	if flags.Has(model.RoomFlagBlazing) {
		switch dt {
		case model.DamageCold:
			mult *= 0.9
		case model.DamageFire:
			mult *= 1.25
		}
	}
	if flags.Has(model.RoomFlagSandstorm) {
		switch dt {
		case model.DamageFire, model.DamageCold, model.DamageLightning, model.DamageArcane, model.DamageDivine:
			mult *= 0.85
		}
	}
	return mult
}

func applyWeather(info DamageInfo, flags model.RoomFlag) DamageInfo {
	mult := WeatherMultiplier(flags, info.DamageType)
	if mult != 1.0 {
		info.PreMitigation = int(float64(info.PreMitigation) * mult)
	}
	return info
}

// MitigatePhysical applies Phase C's physical mitigation chain: flat PDS,
// then the better of armor value or half barrier value, then resistance.
func MitigatePhysical(target Combatant, info DamageInfo, weatherFlags model.RoomFlag) int {
	info = applyWeather(info, weatherFlags)

	dmg := info.PreMitigation - target.PDS()
	if dmg < 0 {
		dmg = 0
	}

	defense := target.TotalAV()
	if bv := target.BarrierValue() / 2; bv > defense {
		defense = bv
	}
	dmg -= defense
	if dmg < 0 {
		dmg = 0
	}

	if res := target.Resistance(info.DamageType); res != 0 {
		dmg = int(float64(dmg) * (1.0 - res/100.0))
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// MitigateMagical mirrors MitigatePhysical with SDS and barrier value taking
// the primary role, armor only half as effective.
func MitigateMagical(target Combatant, info DamageInfo, weatherFlags model.RoomFlag) int {
	info = applyWeather(info, weatherFlags)

	dmg := info.PreMitigation - target.SDS()
	if dmg < 0 {
		dmg = 0
	}

	defense := target.BarrierValue()
	if av := target.TotalAV() / 2; av > defense {
		defense = av
	}
	dmg -= defense
	if dmg < 0 {
		dmg = 0
	}

	if res := target.Resistance(info.DamageType); res != 0 {
		dmg = int(float64(dmg) * (1.0 - res/100.0))
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}
