package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Class is an immutable content-authored class descriptor.
type Class struct {
	ID             int32    `yaml:"id"`
	Name           string   `yaml:"name"`
	HPDie          int      `yaml:"hp_die"`
	EssenceDie     int      `yaml:"essence_die"`
	StartingSkills map[string]int `yaml:"starting_skills"`
	StartingSpells []string `yaml:"starting_spells"`
	StartingAbilities []string `yaml:"starting_abilities"`
}

type ClassCatalog struct {
	byID map[int32]*Class
}

func (c *ClassCatalog) Get(id int32) *Class { return c.byID[id] }
func (c *ClassCatalog) Count() int          { return len(c.byID) }

func (c *ClassCatalog) All() []*Class {
	out := make([]*Class, 0, len(c.byID))
	for _, cl := range c.byID {
		out = append(out, cl)
	}
	return out
}

func LoadClassCatalog(path string) (*ClassCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read class catalog %s: %w", path, err)
	}
	var classes []*Class
	if err := yaml.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("parse class catalog %s: %w", path, err)
	}
	byID := make(map[int32]*Class, len(classes))
	for _, cl := range classes {
		byID[cl.ID] = cl
	}
	return &ClassCatalog{byID: byID}, nil
}
