package catalog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chrozal/mudcore/internal/model"
)

type mobAttackYAML struct {
	Name       string  `yaml:"name"`
	DamageBase int     `yaml:"damage_base"`
	DamageRng  int     `yaml:"damage_rng"`
	Speed      float64 `yaml:"speed"`
	DamageType string  `yaml:"damage_type"`
}

type lootRuleYAML struct {
	ItemTemplateID int32   `yaml:"item_template_id"`
	Chance         float64 `yaml:"chance"`
	MinCount       int     `yaml:"min_count"`
	MaxCount       int     `yaml:"max_count"`
}

type mobYAML struct {
	ID              int32           `yaml:"id"`
	Name            string          `yaml:"name"`
	Level           int             `yaml:"level"`
	MaxHP           int             `yaml:"max_hp"`
	Stats           map[string]int  `yaml:"stats"`
	StatVariance    int             `yaml:"stat_variance"`
	Attacks         []mobAttackYAML `yaml:"attacks"`
	CoinMin         int64           `yaml:"coin_min"`
	CoinMax         int64           `yaml:"coin_max"`
	Loot            []lootRuleYAML  `yaml:"loot"`
	Flags           []string        `yaml:"flags"`
	RespawnDelaySec int             `yaml:"respawn_delay_seconds"`
	ArmorValue      int             `yaml:"armor_value"`
	BarrierValue    int             `yaml:"barrier_value"`
	Size            string          `yaml:"size"`
}

var mobFlagNames = map[string]model.MobFlag{
	"aggressive": model.MobFlagAggressive,
	"sentinel":   model.MobFlagSentinel,
}

func statsFromYAML(in map[string]int) model.BaseStats {
	var st model.BaseStats
	for k, v := range in {
		if ch, ok := model.ParseStatChannel(k); ok {
			st.Set(ch, v)
		}
	}
	return st
}

func (y mobYAML) toModel() *model.MobTemplate {
	attacks := make([]model.MobAttack, 0, len(y.Attacks))
	for _, a := range y.Attacks {
		attacks = append(attacks, model.MobAttack{
			Name:       a.Name,
			DamageBase: a.DamageBase,
			DamageRng:  a.DamageRng,
			Speed:      a.Speed,
			DamageType: model.DamageType(a.DamageType),
		})
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
	var flags model.MobFlag
	for _, f := range y.Flags {
		flags |= mobFlagNames[f]
	}
	return &model.MobTemplate{
		ID:           y.ID,
		Name:         y.Name,
		Level:        y.Level,
		MaxHP:        y.MaxHP,
		Stats:        statsFromYAML(y.Stats),
		StatVariance: y.StatVariance,
		Attacks:      attacks,
		CoinMin:      y.CoinMin,
		CoinMax:      y.CoinMax,
		Loot:         loot,
		Flags:        flags,
		RespawnDelay: time.Duration(y.RespawnDelaySec) * time.Second,
		ArmorValue:   y.ArmorValue,
		BarrierValue: y.BarrierValue,
		Size:         y.Size,
	}
}

type MobCatalog struct {
	byID map[int32]*model.MobTemplate
}

func (c *MobCatalog) Get(id int32) *model.MobTemplate { return c.byID[id] }
func (c *MobCatalog) Count() int                       { return len(c.byID) }

func LoadMobCatalog(path string) (*MobCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mob catalog %s: %w", path, err)
	}
	var rows []mobYAML
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse mob catalog %s: %w", path, err)
	}
	byID := make(map[int32]*model.MobTemplate, len(rows))
	for _, row := range rows {
		byID[row.ID] = row.toModel()
	}
	return &MobCatalog{byID: byID}, nil
}
