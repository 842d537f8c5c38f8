package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chrozal/mudcore/internal/model"
)

// itemYAML is the wire shape of one item_templates row, matching the
// content editor's JSON-shaped authoring format (spec.md section 9: "the
// wire/DB format stays JSON-shaped for compatibility with the content
// editor").
type itemYAML struct {
	ID           int32          `yaml:"id"`
	Name         string         `yaml:"name"`
	Type         string         `yaml:"type"`
	DamageBase   int            `yaml:"damage_base"`
	DamageRng    int            `yaml:"damage_rng"`
	DamageType   string         `yaml:"damage_type"`
	Speed        float64        `yaml:"speed"`
	ArmorValue   int            `yaml:"armor_value"`
	Weight       int            `yaml:"weight"`
	Value        int64          `yaml:"value"`
	WearSlot     string         `yaml:"wear_slot"`
	Capacity     int            `yaml:"capacity"`
	BlockChance  float64        `yaml:"block_chance"`
	EffectKey    string         `yaml:"effect_key"`
	EffectAmount int            `yaml:"effect_amount"`
	BonusStats   map[string]int `yaml:"bonus_stats"`
	Flags        []string       `yaml:"flags"`
	Unlocks      []string       `yaml:"unlocks"`
	Loot         []lootRuleYAML `yaml:"loot"`
}

var itemTypeNames = map[string]model.ItemType{
	"weapon":     model.ItemWeapon,
	"2h_weapon":  model.ItemTwoHandedWeapon,
	"ranged":     model.ItemRanged,
	"ammo":       model.ItemAmmo,
	"armor":      model.ItemArmor,
	"shield":     model.ItemShield,
	"container":  model.ItemContainer,
	"quiver":     model.ItemQuiver,
	"food":       model.ItemFood,
	"drink":      model.ItemDrink,
	"key":        model.ItemKey,
	"light":      model.ItemLight,
	"general":    model.ItemGeneral,
	"quest":      model.ItemQuest,
}

var slotNames = map[string]model.Slot{
	"main_hand": model.SlotMainHand,
	"off_hand":  model.SlotOffHand,
	"head":      model.SlotHead,
	"body":      model.SlotBody,
	"hands":     model.SlotHands,
	"legs":      model.SlotLegs,
	"feet":      model.SlotFeet,
	"neck":      model.SlotNeck,
	"ring1":     model.SlotRing1,
	"ring2":     model.SlotRing2,
	"back":      model.SlotBack,
}

var itemFlagNames = map[string]model.ItemFlag{
	"lore":       model.ItemFlagLore,
	"no_drop":    model.ItemFlagNoDrop,
	"two_handed": model.ItemFlagTwoHanded,
	"stackable":  model.ItemFlagStackable,
}

func (y itemYAML) toModel() *model.ItemTemplate {
	bonus := make(map[model.StatChannel]int, len(y.BonusStats))
	for k, v := range y.BonusStats {
		if ch, ok := model.ParseStatChannel(k); ok {
			bonus[ch] = v
		}
	}
	var flags model.ItemFlag
	for _, f := range y.Flags {
		flags |= itemFlagNames[f]
	}
	loot := make([]model.LootRule, 0, len(y.Loot))
	for _, l := range y.Loot {
		loot = append(loot, model.LootRule{
			ItemTemplateID: l.ItemTemplateID,
			Chance:         l.Chance,
			MinCount:       l.MinCount,
			MaxCount:       l.MaxCount,
		})
	}
	return &model.ItemTemplate{
		ID:           y.ID,
		Name:         y.Name,
		Type:         itemTypeNames[y.Type],
		DamageBase:   y.DamageBase,
		DamageRng:    y.DamageRng,
		DamageType:   model.DamageType(y.DamageType),
		Speed:        y.Speed,
		ArmorValue:   y.ArmorValue,
		Weight:       y.Weight,
		Value:        y.Value,
		WearSlot:     slotNames[y.WearSlot],
		Capacity:     y.Capacity,
		BlockChance:  y.BlockChance,
		EffectKey:    y.EffectKey,
		EffectAmount: y.EffectAmount,
		BonusStats:   bonus,
		Flags:        flags,
		Unlocks:      y.Unlocks,
		Loot:         loot,
	}
}

type ItemCatalog struct {
	byID map[int32]*model.ItemTemplate
}

func (c *ItemCatalog) Get(id int32) *model.ItemTemplate { return c.byID[id] }
func (c *ItemCatalog) Count() int                       { return len(c.byID) }

func LoadItemCatalog(paths ...string) (*ItemCatalog, error) {
	byID := make(map[int32]*model.ItemTemplate)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read item catalog %s: %w", path, err)
		}
		var rows []itemYAML
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parse item catalog %s: %w", path, err)
		}
		for _, row := range rows {
			byID[row.ID] = row.toModel()
		}
	}
	return &ItemCatalog{byID: byID}, nil
}
