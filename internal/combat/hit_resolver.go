package combat

import "math/rand"

// RatingKind selects which attack rating governs a hit check.
type RatingKind int

const (
	RatingMAR RatingKind = iota
	RatingRAR
	RatingAPR
	RatingDPR
)

// HitResult is the structured outcome of Phase A (spec.md section 4.4).
type HitResult struct {
	Hit        bool
	Crit       bool
	Fumble     bool
	Roll       int
	Rating     int
	DefenderDV int
}

// ResolveHit runs the unified hit check: a natural 1 always misses (and
// fumbles), a natural 20 always hits as a crit, otherwise the modified roll
// plus the attacker's rating must exceed the defender's dodge value.
// AlwaysHits spells (and abilities that declare it) skip straight to a hit.
func ResolveHit(attacker, defender Combatant, kind RatingKind, source AttackSource, blindAttacker, blindDefender bool, abilityHitMod int, alwaysHits bool) HitResult {
	if alwaysHits {
		return HitResult{Hit: true}
	}

	rating := rating(attacker, kind)
	if kind == RatingMAR || kind == RatingRAR {
		rating += attacker.WeaponSkillBonus(source.DamageType, source.Unarmed)
	}

	dv := defender.DV()
	roll := rand.Intn(20) + 1

	visMod := 0
	if blindAttacker {
		visMod -= 4
	}
	if blindDefender {
		visMod += 4
	}

	switch roll {
	case 1:
		return HitResult{Fumble: true, Roll: roll, Rating: rating, DefenderDV: dv}
	case 20:
		return HitResult{Hit: true, Crit: true, Roll: roll, Rating: rating, DefenderDV: dv}
	}

	modifiedRoll := roll + visMod
	hit := modifiedRoll+rating+abilityHitMod > dv
	return HitResult{Hit: hit, Roll: roll, Rating: rating, DefenderDV: dv}
}

func rating(c Combatant, kind RatingKind) int {
	switch kind {
	case RatingMAR:
		return c.MAR()
	case RatingRAR:
		return c.RAR()
	case RatingAPR:
		return c.APR()
	case RatingDPR:
		return c.DPR()
	}
	return 0
}

// ResolveParry checks the defender's parrying skill against their main-hand
// weapon, capped at 0.5 (spec.md section 4.4 Phase B).
func ResolveParry(parryRank int) bool {
	chance := float64(parryRank) * 0.005
	if chance > 0.5 {
		chance = 0.5
	}
	return chance > 0 && rand.Float64() < chance
}

// ResolveBlock checks a shield's base block chance plus trained shield usage.
func ResolveBlock(baseChance float64, shieldUsageRank int) bool {
	chance := baseChance + float64(shieldUsageRank/10)*0.01
	return chance > 0 && rand.Float64() < chance
}
