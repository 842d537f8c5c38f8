package model

import "time"

// Status is the closed character life-cycle state.
type Status int

const (
	StatusAlive Status = iota
	StatusMeditating
	StatusDying
	StatusDead
)

// Stance is the closed character posture state.
type Stance int

const (
	StanceStanding Stance = iota
	StanceSitting
	StanceLying
)

// Sex is the closed character sex enumeration used by the creation flow
// and descriptive text assembly.
type Sex int

const (
	SexMale Sex = iota
	SexFemale
)

// CastingDescriptor tracks an in-progress spell cast so a Spellcraft check
// against incoming damage can cancel it.
type CastingDescriptor struct {
	AbilityKey string
	TargetID   int64
	StartedAt  time.Time
	CastTime   time.Duration
}

// GiveOffer is a pending "give <item> to <player>" proposal awaiting the
// target's accept/decline.
type GiveOffer struct {
	FromID     CharacterID
	ItemID     ItemInstanceID
	OfferedAt  time.Time
}

// Character is the full durable + runtime player-character record.
type Character struct {
	ID        CharacterID
	AccountID AccountID

	FirstName string
	LastName  string
	Sex       Sex
	RaceID    int32
	ClassID   int32

	Level       int
	XPPool      int64 // unabsorbed pool (spec.md section 4.8 NODE absorption target)
	XPTotal     int64
	UnspentSkillPoints int
	UnspentAttrPoints  int
	Tether      int // spiritual tether, >= 0

	HP        float64
	MaxHP     float64
	Essence   float64
	MaxEssence float64
	Hunger    float64 // 0..100, restored to cap by food
	Thirst    float64 // 0..100, restored to cap by drink

	Status Status
	Stance Stance

	Stats  BaseStats
	Skills map[string]int // skill name -> rank
	KnownSpells    map[string]struct{}
	KnownAbilities map[string]struct{}

	Inventory []ItemInstanceID // ordered, hard-capped at 2 top-level "hand" slots
	Equipment [11]ItemInstanceID // indexed by Slot; zero value means empty

	RoomID       RoomID
	PersistedRoomID RoomID

	// Runtime-only fields below. None of these round-trip through Save/Load
	// except PlaytimeSeconds.
	TargetID        int64
	IsFighting      bool
	Casting         *CastingDescriptor
	Effects         map[string]*Effect
	Roundtime       float64 // seconds, >= 0
	DeathTimerEndsAt time.Time
	PendingGive     *GiveOffer
	DetectedTraps   map[RoomID]struct{} // not persisted: every load starts with an empty set
	Resistances     map[DamageType]float64 // 0..100, percent reduction per damage type
	Hidden          bool
	IsAdmin         bool // copied from the owning Account at login, never persisted here
	PlaytimeSeconds int64
	LoginAt         time.Time
	Dirty           bool

	Coinage int64

	Description string // composed at creation from trait choices

	BankTalon      int64
	BankedItems    []ItemInstanceID

	GroupID int64 // 0 = not grouped
}

func NewCharacter(id CharacterID) *Character {
	return &Character{
		ID:             id,
		Hunger:         100,
		Thirst:         100,
		Skills:         make(map[string]int),
		KnownSpells:    make(map[string]struct{}),
		KnownAbilities: make(map[string]struct{}),
		Effects:        make(map[string]*Effect),
		DetectedTraps:  make(map[RoomID]struct{}),
		Resistances:    make(map[DamageType]float64),
	}
}

// FullName is the name used in broadcasts and lookups.
func (c *Character) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// EquippedTwoHanded reports whether the given instance occupies both hand
// slots (same reference in each), per the two-handed-weapon invariant.
func (c *Character) EquippedTwoHanded(id ItemInstanceID) bool {
	return c.Equipment[SlotMainHand] == id && c.Equipment[SlotOffHand] == id && id != 0
}

// ClampVitals enforces 0 <= hp <= max_hp and 0 <= essence <= max_essence,
// and the status==DEAD => hp==0 invariant from spec.md section 3/8.
func (c *Character) ClampVitals() {
	if c.HP < 0 {
		c.HP = 0
	}
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	if c.Essence < 0 {
		c.Essence = 0
	}
	if c.Essence > c.MaxEssence {
		c.Essence = c.MaxEssence
	}
	if c.Hunger < 0 {
		c.Hunger = 0
	}
	if c.Hunger > 100 {
		c.Hunger = 100
	}
	if c.Thirst < 0 {
		c.Thirst = 0
	}
	if c.Thirst > 100 {
		c.Thirst = 100
	}
	if c.Status == StatusDead {
		c.HP = 0
	}
}

// XPLevelFloor is set by the leveling curve (internal/system or a leveling
// package); exposed here as a function value so model stays free of config.
var XPLevelFloorFunc func(level int) int64

func (c *Character) XPLevelFloor() int64 {
	if XPLevelFloorFunc == nil {
		return 0
	}
	return XPLevelFloorFunc(c.Level)
}

// XPPoolCap is exactly intellect * 100 per spec.md section 4.4.
func (c *Character) XPPoolCap() int64 {
	return int64(c.Stats.Intellect) * 100
}
