package model

import "time"

// EffectKind is the closed set of effect behaviors. Stacking semantics are
// by-name (a second application of the same name overwrites the first) per
// spec.md section 9's explicit preservation of the source's by-name stacking.
type EffectKind int

const (
	EffectBuff EffectKind = iota
	EffectDebuff
	EffectStun
	EffectBleed
	EffectPoison
	EffectSilence
	EffectShapechange
	EffectStanceLock
)

// Effect is a named, time-bounded modifier on a Character or Mob.
type Effect struct {
	Name      string
	Kind      EffectKind
	Affected  StatChannel
	Amount    int
	AppliedAt time.Time
	EndsAt    time.Time // duration -1 is encoded as a zero EndsAt (until removed)
	SourceKey string    // ability key that created this effect
	CasterID  int64     // CharacterID or MobInstanceID, interpreted by caller

	// Sub-effects sharing this effect's source identity, applied atomically
	// and expired together (e.g. rage = might bonus + DV penalty).
	Children []*Effect
}

// Indefinite reports whether the effect only ends when explicitly removed.
func (e *Effect) Indefinite() bool { return e.EndsAt.IsZero() }

func (e *Effect) Expired(now time.Time) bool {
	if e.Indefinite() {
		return false
	}
	return !e.EndsAt.After(now)
}
