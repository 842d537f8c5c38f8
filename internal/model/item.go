package model

// ItemType is the closed set of item template categories.
type ItemType int

const (
	ItemWeapon ItemType = iota
	ItemTwoHandedWeapon
	ItemRanged
	ItemAmmo
	ItemArmor
	ItemShield
	ItemContainer
	ItemQuiver
	ItemFood
	ItemDrink
	ItemKey
	ItemLight
	ItemGeneral
	ItemQuest
)

// DamageType is the closed set of physical/magical damage schools used for
// weather modifiers, resistances, and loot/combat rules.
type DamageType string

const (
	DamageSlash     DamageType = "slash"
	DamagePierce    DamageType = "pierce"
	DamageBludgeon  DamageType = "bludgeon"
	DamageFire      DamageType = "fire"
	DamageCold      DamageType = "cold"
	DamageLightning DamageType = "lightning"
	DamageArcane    DamageType = "arcane"
	DamageDivine    DamageType = "divine"
)

// ItemFlag is a closed bitset of item template flags.
type ItemFlag uint32

const (
	ItemFlagNone ItemFlag = 0
	ItemFlagLore ItemFlag = 1 << iota
	ItemFlagNoDrop
	ItemFlagTwoHanded
	ItemFlagStackable
)

// ItemTemplate is the immutable, content-authored item descriptor. Loaded
// once at boot by internal/catalog and never mutated at runtime.
type ItemTemplate struct {
	ID           int32
	Name         string
	Type         ItemType
	DamageBase   int
	DamageRng    int
	DamageType   DamageType
	Speed        float64
	ArmorValue   int
	Weight       int
	Value        int64
	WearSlot     Slot
	Capacity     int
	BlockChance  float64
	EffectKey    string // consumable effect, e.g. "heal_hp"
	EffectAmount int
	BonusStats   map[StatChannel]int
	Flags        ItemFlag

	// Unlocks lists the lock ids a key template opens (spec.md section 4.7).
	Unlocks []string

	// Loot is a container template's first-open contents roll. Unused by
	// any non-container template.
	Loot []LootRule
}

func (t *ItemTemplate) HasFlag(f ItemFlag) bool { return t.Flags&f != 0 }

// ItemInstanceStats is the mutable per-instance overlay: lit/locked/trap
// state, container-open flag, loot-generation flag. Stored as a fixed-shape
// record (not a loose map) per the re-architecture notes in spec.md section 9,
// but still round-trips to JSON for the content-editor-compatible DB column.
type ItemInstanceStats struct {
	Lit             bool   `json:"lit,omitempty"`
	Locked          bool   `json:"locked,omitempty"`
	LockID          string `json:"lock_id,omitempty"`
	ContainerOpen   bool   `json:"container_open,omitempty"`
	LootGenerated   bool   `json:"loot_generated,omitempty"`
	TrapActive      bool   `json:"trap_active,omitempty"`
	TrapPerceptionDC int   `json:"trap_perception_dc,omitempty"`
	TrapDisarmDC     int   `json:"trap_disarm_dc,omitempty"`
	TrapDamage       int   `json:"trap_damage,omitempty"`
}

// OwnerKind is the closed set of places an item instance may live. Exactly
// one of {character inventory, equipment slot, container, room, bank} per
// spec.md's forest-ownership invariant.
type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerCharacterInventory
	OwnerEquipment
	OwnerContainer
	OwnerRoom
	OwnerBank
)

// Owner identifies the current holder of an item instance. OwnerID is
// interpreted according to Kind: a CharacterID, a RoomID, or another
// ItemInstanceID (container).
type Owner struct {
	Kind OwnerKind
	ID   int64
	Slot Slot // only meaningful when Kind == OwnerEquipment
}

// ItemInstance is one concrete, mutable item in the world.
type ItemInstance struct {
	ID         ItemInstanceID
	TemplateID int32
	Condition  int // 0..100
	Stats      ItemInstanceStats
	Owner      Owner

	// ContainerContents holds child instance ids when this instance is
	// itself a container. The forest invariant requires every id here to
	// have Owner{Kind: OwnerContainer, ID: this.ID}.
	ContainerContents []ItemInstanceID
}

func (i *ItemInstance) Destroyed() bool { return i.Condition <= 0 }
