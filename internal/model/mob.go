package model

import "time"

// MobFlag is a closed bitset of template-level behavior flags.
type MobFlag uint32

const (
	MobFlagNone       MobFlag = 0
	MobFlagAggressive MobFlag = 1 << iota
	MobFlagSentinel
)

func (f MobFlag) Has(bit MobFlag) bool { return f&bit != 0 }

// MobAttack is one entry in a mob template's attack list.
type MobAttack struct {
	Name       string
	DamageBase int
	DamageRng  int
	Speed      float64
	DamageType DamageType
}

// LootRule is one entry in a mob template's loot table.
type LootRule struct {
	ItemTemplateID int32
	Chance         float64 // 0..1
	MinCount       int
	MaxCount       int
}

// MobTemplate is the immutable, content-authored NPC descriptor.
type MobTemplate struct {
	ID           int32
	Name         string
	Level        int
	MaxHP        int
	Stats        BaseStats
	StatVariance int // +/- per-instance variance applied at spawn
	Attacks      []MobAttack
	CoinMin      int64
	CoinMax      int64
	Loot         []LootRule
	Flags        MobFlag
	RespawnDelay time.Duration
	ArmorValue   int
	BarrierValue int
	Resistances  map[DamageType]float64
	Size         string
}

// Mob is one spawned, live NPC instance.
type Mob struct {
	ID         MobInstanceID
	TemplateID int32
	Name       string
	RoomID     RoomID
	Level      int
	MaxHP      int
	HP         int
	Stats      BaseStats
	ArmorValue int
	BarrierValue int
	Resistances map[DamageType]float64

	Attacks []MobAttack
	Loot    []LootRule
	CoinMin int64
	CoinMax int64
	Flags   MobFlag

	// Runtime-only.
	TargetID     int64
	IsFighting   bool
	Roundtime    float64
	TimeOfDeath  time.Time
	Dead         bool
	Effects      map[string]*Effect
	Hidden       bool
	RespawnDelay time.Duration

	// HateList tracks per-attacker cumulative damage for group-split XP
	// (spec.md section 4.4's hate-weighted reward split).
	HateList map[CharacterID]int64
}

func NewMob(id MobInstanceID, tmpl *MobTemplate, roomID RoomID) *Mob {
	return &Mob{
		ID:           id,
		TemplateID:   tmpl.ID,
		Name:         tmpl.Name,
		RoomID:       roomID,
		Level:        tmpl.Level,
		MaxHP:        tmpl.MaxHP,
		HP:           tmpl.MaxHP,
		Stats:        tmpl.Stats,
		ArmorValue:   tmpl.ArmorValue,
		BarrierValue: tmpl.BarrierValue,
		Resistances:  tmpl.Resistances,
		Attacks:      tmpl.Attacks,
		Loot:         tmpl.Loot,
		CoinMin:      tmpl.CoinMin,
		CoinMax:      tmpl.CoinMax,
		Flags:        tmpl.Flags,
		RespawnDelay: tmpl.RespawnDelay,
		Effects:      make(map[string]*Effect),
		HateList:     make(map[CharacterID]int64),
	}
}

// Respawn resets the mob in place to full state, per spec.md section 3's
// Mob lifecycle ("the Room resets it in place to full state").
func (m *Mob) Respawn() {
	m.HP = m.MaxHP
	m.Dead = false
	m.TargetID = 0
	m.IsFighting = false
	m.Roundtime = 0
	m.Hidden = false
	m.Effects = make(map[string]*Effect)
	m.HateList = make(map[CharacterID]int64)
}

func (m *Mob) TotalHate() int64 {
	var total int64
	for _, h := range m.HateList {
		total += h
	}
	return total
}
