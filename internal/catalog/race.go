package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chrozal/mudcore/internal/model"
)

// TraitQuestion is one ordered prompt in the race-specific description
// walk during character creation (spec.md section 4.2's fixed order:
// Height, Build, Skin Tone, ... Beard Style).
type TraitQuestion struct {
	Key     string   `yaml:"key"`
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
}

// Race is an immutable content-authored race descriptor.
type Race struct {
	ID         int32                     `yaml:"id"`
	Name       string                    `yaml:"name"`
	Modifiers  map[string]int            `yaml:"modifiers"` // stat name -> delta, clamped to >= 1 after apply
	Traits     []TraitQuestion           `yaml:"traits"`
}

// AllowedTraitOrder is the fixed question order from spec.md section 4.2.
// Race.Traits keeps the YAML order; OrderedTraits returns the entries in
// this order, so content authors can list them in any order.
var AllowedTraitOrder = []string{
	"height", "build", "skin_tone", "skin_pattern", "shell_color",
	"head_shape", "hair_style", "hair_color", "eye_color", "ear_shape",
	"nose_type", "beard_style",
}

// RaceCatalog is the immutable, boot-time-loaded set of playable races.
type RaceCatalog struct {
	byID map[int32]*Race
}

func (c *RaceCatalog) Get(id int32) *Race { return c.byID[id] }
func (c *RaceCatalog) Count() int         { return len(c.byID) }

func (c *RaceCatalog) All() []*Race {
	out := make([]*Race, 0, len(c.byID))
	for _, r := range c.byID {
		out = append(out, r)
	}
	return out
}

// ApplyModifiers applies the race's attribute deltas to base stats, clamped
// to a floor of 1 per spec.md section 4.2.
func (r *Race) ApplyModifiers(stats model.BaseStats) model.BaseStats {
	apply := func(name string, cur int) int {
		v := cur + r.Modifiers[name]
		if v < 1 {
			v = 1
		}
		return v
	}
	stats.Might = apply("might", stats.Might)
	stats.Vitality = apply("vitality", stats.Vitality)
	stats.Agility = apply("agility", stats.Agility)
	stats.Intellect = apply("intellect", stats.Intellect)
	stats.Aura = apply("aura", stats.Aura)
	stats.Persona = apply("persona", stats.Persona)
	return stats
}

// OrderedTraits returns the race's trait questions sorted into the fixed
// creation order, skipping any keys the race doesn't define.
func (r *Race) OrderedTraits() []TraitQuestion {
	byKey := make(map[string]TraitQuestion, len(r.Traits))
	for _, t := range r.Traits {
		byKey[t.Key] = t
	}
	out := make([]TraitQuestion, 0, len(r.Traits))
	for _, key := range AllowedTraitOrder {
		if t, ok := byKey[key]; ok {
			out = append(out, t)
		}
	}
	return out
}

func LoadRaceCatalog(path string) (*RaceCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read race catalog %s: %w", path, err)
	}
	var races []*Race
	if err := yaml.Unmarshal(data, &races); err != nil {
		return nil, fmt.Errorf("parse race catalog %s: %w", path, err)
	}
	byID := make(map[int32]*Race, len(races))
	for _, r := range races {
		byID[r.ID] = r
	}
	return &RaceCatalog{byID: byID}, nil
}
