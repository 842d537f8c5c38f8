package model

// TargetType is the closed set of targeting rules an ability/spell declares.
type TargetType string

const (
	TargetSelf      TargetType = "self"
	TargetChar      TargetType = "char"
	TargetMob       TargetType = "mob"
	TargetCharOrMob TargetType = "char_or_mob"
	TargetArea      TargetType = "area"
	TargetNone      TargetType = "none"
)

// EffectType is the closed set of ability outcome shapes.
type EffectType string

const (
	EffectTypeDamage          EffectType = "damage"
	EffectTypeHeal            EffectType = "heal"
	EffectTypeBuff            EffectType = "buff"
	EffectTypeDebuff          EffectType = "debuff"
	EffectTypeModifiedAttack  EffectType = "modified_attack"
	EffectTypeStunAttempt     EffectType = "stun_attempt"
)

// AbilityTemplate is the immutable, content-authored descriptor for a spell
// or ability. EffectDetails stays a loosely-typed bag (mirroring the
// content-editor's JSON blob) because its shape varies by EffectType: a buff
// carries stat_affected/amount/duration, a modified attack carries
// damage_multiplier or cleave/cone parameters, a compound effect carries
// effects_to_apply. Handlers type-assert the keys they need.
type AbilityTemplate struct {
	InternalName string
	Name         string
	IsSpell      bool
	ClassReq     []int32 // empty = usable by any class
	LevelReq     int
	Cost         int // essence cost
	TargetType   TargetType
	EffectType   EffectType
	EffectDetails map[string]any
	CastTime     float64
	Roundtime    float64
	AlwaysHits   bool
	Messages     map[string]string
	Description  string
}
