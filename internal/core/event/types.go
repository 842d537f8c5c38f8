package event

import "github.com/chrozal/mudcore/internal/model"

// PlayerLoggedIn fires once a session attaches its character to the world
// index and completes the PLAYING entry sequence (spec.md section 4.1).
type PlayerLoggedIn struct {
	CharacterID model.CharacterID
	AccountName string
}

// PlayerDisconnected fires when a session's cleanup path runs, regardless
// of which exit path triggered it.
type PlayerDisconnected struct {
	CharacterID model.CharacterID
	SessionID   uint64
}

// MobKilled fires after resolveMobDeath finishes awarding XP/loot and
// starting the respawn timer.
type MobKilled struct {
	KillerID      model.CharacterID
	MobInstanceID model.MobInstanceID
	MobTemplateID int32
	ExpGained     int64
	RoomID        model.RoomID
}

// CharacterDied fires when a character transitions ALIVE -> DYING.
type CharacterDied struct {
	CharacterID model.CharacterID
	RoomID      model.RoomID
	KillerID    int64 // 0 when no attacker (DoT/environmental)
}

// CharacterReleased fires when a DEAD character issues `release` and
// respawns.
type CharacterReleased struct {
	CharacterID model.CharacterID
	RoomID      model.RoomID
}

// EffectExpired fires when the effect engine removes an entry on tick.
type EffectExpired struct {
	TargetID   int64 // CharacterID or MobInstanceID
	EffectName string
}

// CharacterLeveledUp fires once per level gained inside a single XP award.
type CharacterLeveledUp struct {
	CharacterID model.CharacterID
	NewLevel    int
}
