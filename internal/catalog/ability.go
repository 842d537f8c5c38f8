package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chrozal/mudcore/internal/model"
)

// abilityYAML mirrors the admin portal's AbilityBase shape (internal_name,
// name, ability_type, class_req, level_req, cost, target_type, effect_type,
// effect_details, cast_time, roundtime, messages, description) so content
// exported from there loads unmodified.
type abilityYAML struct {
	InternalName  string         `yaml:"internal_name"`
	Name          string         `yaml:"name"`
	AbilityType   string         `yaml:"ability_type"` // "SPELL" | "ABILITY"
	ClassReq      []int32        `yaml:"class_req"`
	LevelReq      int            `yaml:"level_req"`
	Cost          int            `yaml:"cost"`
	TargetType    string         `yaml:"target_type"`
	EffectType    string         `yaml:"effect_type"`
	EffectDetails map[string]any `yaml:"effect_details"`
	CastTime      float64        `yaml:"cast_time"`
	Roundtime     float64        `yaml:"roundtime"`
	AlwaysHits    bool           `yaml:"always_hits"`
	Messages      map[string]string `yaml:"messages"`
	Description   string         `yaml:"description"`
}

func (y abilityYAML) toModel() *model.AbilityTemplate {
	return &model.AbilityTemplate{
		InternalName:  y.InternalName,
		Name:          y.Name,
		IsSpell:       y.AbilityType == "SPELL",
		ClassReq:      y.ClassReq,
		LevelReq:      y.LevelReq,
		Cost:          y.Cost,
		TargetType:    model.TargetType(y.TargetType),
		EffectType:    model.EffectType(y.EffectType),
		EffectDetails: y.EffectDetails,
		CastTime:      y.CastTime,
		Roundtime:     y.Roundtime,
		AlwaysHits:    y.AlwaysHits,
		Messages:      y.Messages,
		Description:   y.Description,
	}
}

// AbilityCatalog indexes templates by internal name, the identifier used in
// commands, persisted known-ability/spell sets, and effect source keys.
type AbilityCatalog struct {
	byName map[string]*model.AbilityTemplate
}

func (c *AbilityCatalog) Get(internalName string) *model.AbilityTemplate {
	return c.byName[internalName]
}

func (c *AbilityCatalog) Count() int { return len(c.byName) }

func (c *AbilityCatalog) All() []*model.AbilityTemplate {
	out := make([]*model.AbilityTemplate, 0, len(c.byName))
	for _, a := range c.byName {
		out = append(out, a)
	}
	return out
}

func LoadAbilityCatalog(path string) (*AbilityCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ability catalog %s: %w", path, err)
	}
	var rows []abilityYAML
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse ability catalog %s: %w", path, err)
	}
	byName := make(map[string]*model.AbilityTemplate, len(rows))
	for _, row := range rows {
		byName[row.InternalName] = row.toModel()
	}
	return &AbilityCatalog{byName: byName}, nil
}
