package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chrozal/mudcore/internal/model"
)

// fakeCombatant is a minimal Combatant stand-in so damage/mitigation math
// can be tested without building a full Character or Mob.
type fakeCombatant struct {
	might, apr, dpr int
	pds, sds        int
	totalAV, bv     int
	resist          map[model.DamageType]float64
	hp, maxHP       float64
}

func (f *fakeCombatant) Name() string { return "dummy" }

func (f *fakeCombatant) MightMod() int     { return f.might }
func (f *fakeCombatant) VitalityMod() int  { return f.pds }
func (f *fakeCombatant) AgilityMod() int   { return 0 }
func (f *fakeCombatant) IntellectMod() int { return 0 }
func (f *fakeCombatant) AuraMod() int      { return f.sds }
func (f *fakeCombatant) PersonaMod() int   { return 0 }

func (f *fakeCombatant) MAR() int { return 0 }
func (f *fakeCombatant) RAR() int { return 0 }
func (f *fakeCombatant) APR() int { return f.apr }
func (f *fakeCombatant) DPR() int { return f.dpr }
func (f *fakeCombatant) DV() int  { return 0 }

func (f *fakeCombatant) TotalAV() int      { return f.totalAV }
func (f *fakeCombatant) BarrierValue() int { return f.bv }
func (f *fakeCombatant) PDS() int          { return f.pds }
func (f *fakeCombatant) SDS() int          { return f.sds }

func (f *fakeCombatant) Resistance(dt model.DamageType) float64 { return f.resist[dt] }

func (f *fakeCombatant) WeaponSkillBonus(model.DamageType, bool) int { return 0 }

func (f *fakeCombatant) IsCharacter() bool  { return true }
func (f *fakeCombatant) CurrentHP() float64 { return f.hp }
func (f *fakeCombatant) MaxHP() float64     { return f.maxHP }
func (f *fakeCombatant) SetHP(v float64)    { f.hp = v }
func (f *fakeCombatant) SetMaxHP(v float64) { f.maxHP = v }

func (f *fakeCombatant) EffectsMap() map[string]*model.Effect { return nil }

func (f *fakeCombatant) Hidden() bool             { return false }
func (f *fakeCombatant) SetHidden(bool)           {}
func (f *fakeCombatant) Roundtime() float64       { return 0 }
func (f *fakeCombatant) SetRoundtime(float64)     {}
func (f *fakeCombatant) Underlying() any          { return f }

// explodingDie(1) is fully deterministic: rand.Intn(1) is always 0, so every
// roll lands on the die's only face (its max), forcing all ten re-rolls.
func TestExplodingDieSingleFaceAlwaysExhaustsRerolls(t *testing.T) {
	require.Equal(t, 10, explodingDie(1))
}

func TestExplodingDieZeroMaxIsZero(t *testing.T) {
	require.Equal(t, 0, explodingDie(0))
}

// A crit replaces the base roll with the exploding die; it must not also add
// a separately-rolled base die on top (the bug this test guards against
// would have scored 11 here: 1 base roll + 10 exploding).
func TestCalculatePhysicalDamageCritDoesNotDoubleRollDamage(t *testing.T) {
	attacker := &fakeCombatant{might: 0}
	source := AttackSource{BaseDamage: 5, RngDamage: 1, DamageType: model.DamageSlash}

	critInfo := CalculatePhysicalDamage(attacker, source, true, AbilityMods{})
	require.Equal(t, 5+10, critInfo.PreMitigation)
	require.True(t, critInfo.Crit)

	nonCritInfo := CalculatePhysicalDamage(attacker, source, false, AbilityMods{})
	require.Equal(t, 5+1, nonCritInfo.PreMitigation)
}

func TestCalculateMagicalDamageCritDoesNotDoubleRollDamage(t *testing.T) {
	caster := &fakeCombatant{apr: 0, dpr: 0}

	critInfo := CalculateMagicalDamage(caster, "Arcane", 10, 1, model.DamageArcane, true)
	require.Equal(t, 10+10, critInfo.PreMitigation)

	nonCritInfo := CalculateMagicalDamage(caster, "Arcane", 10, 1, model.DamageArcane, false)
	require.Equal(t, 10+1, nonCritInfo.PreMitigation)
}

func TestCalculateMagicalDamageNonPositivePowerIsAPenaltyNotAFloor(t *testing.T) {
	caster := &fakeCombatant{apr: -8}
	info := CalculateMagicalDamage(caster, "Arcane", 10, 0, model.DamageArcane, false)
	// statMod = -8/4 = -2, not floored to 1 since power <= 0.
	require.Equal(t, 8, info.PreMitigation)
}

func TestWeatherMultiplierStacksIndependentFlags(t *testing.T) {
	flags := model.RoomFlagWet | model.RoomFlagStormy
	require.InDelta(t, 1.875, WeatherMultiplier(flags, model.DamageLightning), 0.001)
	require.InDelta(t, 0.75, WeatherMultiplier(model.RoomFlagWet, model.DamageFire), 0.001)
	require.Equal(t, 1.0, WeatherMultiplier(0, model.DamageSlash))
}

func TestMitigatePhysicalPrefersLargerOfArmorOrHalfBarrier(t *testing.T) {
	target := &fakeCombatant{pds: 2, totalAV: 10, bv: 30} // half barrier (15) beats armor (10)
	info := DamageInfo{PreMitigation: 50, DamageType: model.DamageSlash}
	got := MitigatePhysical(target, info, 0)
	require.Equal(t, 50-2-15, got)
}

func TestMitigateMagicalAppliesResistanceAfterDefense(t *testing.T) {
	target := &fakeCombatant{
		sds: 0, totalAV: 0, bv: 20,
		resist: map[model.DamageType]float64{model.DamageArcane: 50},
	}
	info := DamageInfo{PreMitigation: 100, DamageType: model.DamageArcane}
	got := MitigateMagical(target, info, 0)
	// 100 - sds(0) - barrier(20) = 80, then 50% resistance = 40.
	require.Equal(t, 40, got)
}

func TestMitigationNeverGoesNegative(t *testing.T) {
	target := &fakeCombatant{pds: 1000}
	got := MitigatePhysical(target, DamageInfo{PreMitigation: 5}, 0)
	require.Equal(t, 0, got)
}
