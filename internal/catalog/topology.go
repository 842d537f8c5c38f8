package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chrozal/mudcore/internal/model"
)

type exitYAML struct {
	Direction    string              `yaml:"direction"`
	Name         string              `yaml:"name"`
	DestRoomID   int32               `yaml:"dest_room_id"`
	Locked       bool                `yaml:"locked"`
	KeyItemID    int32               `yaml:"key_item_id"`
	LockpickDC   int                 `yaml:"lockpick_dc"`
	SkillCheck   *skillCheckYAML     `yaml:"skill_check"`
	Trap         *trapYAML           `yaml:"trap"`
}

type skillCheckYAML struct {
	Skill      string `yaml:"skill"`
	DC         int    `yaml:"dc"`
	FailMsg    string `yaml:"fail_msg"`
	SuccessMsg string `yaml:"success_msg"`
	FailDamage int    `yaml:"fail_damage"`
}

type trapYAML struct {
	Active       bool `yaml:"active"`
	PerceptionDC int  `yaml:"perception_dc"`
	DisarmDC     int  `yaml:"disarm_dc"`
	Damage       int  `yaml:"damage"`
}

type spawnerYAML struct {
	TemplateID int32 `yaml:"template_id"`
	Max        int   `yaml:"max"`
}

type roomObjectYAML struct {
	Keyword     string `yaml:"keyword"`
	Description string `yaml:"description"`
}

type roomYAML struct {
	ID             int32            `yaml:"id"`
	AreaID         int32            `yaml:"area_id"`
	Name           string           `yaml:"name"`
	Description    string           `yaml:"description"`
	Flags          []string         `yaml:"flags"`
	Exits          []exitYAML       `yaml:"exits"`
	Spawners       []spawnerYAML    `yaml:"spawners"`
	Objects        []roomObjectYAML `yaml:"objects"`
	ShopBuyFilter  []string         `yaml:"shop_buy_filter"`
	ShopSellMod    float64          `yaml:"shop_sell_mod"`
	ShopBuyMod     float64          `yaml:"shop_buy_mod"`
}

var roomFlagNames = map[string]model.RoomFlag{
	"node":       model.RoomFlagNode,
	"shop":       model.RoomFlagShop,
	"bank":       model.RoomFlagBank,
	"dark":       model.RoomFlagDark,
	"indoors":    model.RoomFlagIndoors,
	"outdoors":   model.RoomFlagOutdoors,
	"repairer":   model.RoomFlagRepairer,
	"wet":        model.RoomFlagWet,
	"stormy":     model.RoomFlagStormy,
	"freezing":   model.RoomFlagFreezing,
	"blazing":    model.RoomFlagBlazing,
	"sandstorm":  model.RoomFlagSandstorm,
}

func (y exitYAML) toModel() *model.Exit {
	e := &model.Exit{
		Name:       y.Name,
		DestRoomID: model.RoomID(y.DestRoomID),
		Locked:     y.Locked,
		KeyItemID:  y.KeyItemID,
		LockpickDC: y.LockpickDC,
	}
	if d, ok := model.ParseDirection(y.Direction); ok {
		e.Direction = d
	} else {
		e.Direction = model.DirNamed
		if e.Name == "" {
			e.Name = y.Direction
		}
	}
	if y.SkillCheck != nil {
		e.SkillCheck = &model.SkillCheckDetail{
			Skill:      y.SkillCheck.Skill,
			DC:         y.SkillCheck.DC,
			FailMsg:    y.SkillCheck.FailMsg,
			SuccessMsg: y.SkillCheck.SuccessMsg,
			FailDamage: y.SkillCheck.FailDamage,
		}
	}
	if y.Trap != nil {
		e.Trap = &model.TrapDetail{
			Active:       y.Trap.Active,
			PerceptionDC: y.Trap.PerceptionDC,
			DisarmDC:     y.Trap.DisarmDC,
			Damage:       y.Trap.Damage,
		}
	}
	return e
}

func (y roomYAML) toModel() *model.Room {
	r := model.NewRoom(model.RoomID(y.ID))
	r.AreaID = y.AreaID
	r.Name = y.Name
	r.Description = y.Description
	r.ShopSellMod = y.ShopSellMod
	r.ShopBuyMod = y.ShopBuyMod

	for _, f := range y.Flags {
		r.Flags |= roomFlagNames[f]
	}
	for _, ex := range y.Exits {
		exit := ex.toModel()
		if exit.Direction == model.DirNamed {
			r.NamedExits[exit.Name] = exit
		} else {
			r.Exits[exit.Direction] = exit
		}
	}
	for _, s := range y.Spawners {
		r.Spawners = append(r.Spawners, model.SpawnerRule{TemplateID: s.TemplateID, Max: s.Max})
	}
	for _, o := range y.Objects {
		r.Objects = append(r.Objects, model.RoomObject{Keyword: o.Keyword, Description: o.Description})
	}
	for _, t := range y.ShopBuyFilter {
		if it, ok := itemTypeNames[t]; ok {
			r.ShopBuyFilter = append(r.ShopBuyFilter, it)
		}
	}
	return r
}

// RoomCatalog is the boot-loaded world topology: every Room, indexed by id.
// Rooms mutate at runtime (occupancy, ground items, weather) so the world
// package copies these into its own live registry rather than sharing them.
type RoomCatalog struct {
	byID map[model.RoomID]*model.Room
}

func (c *RoomCatalog) Get(id model.RoomID) *model.Room { return c.byID[id] }
func (c *RoomCatalog) Count() int                      { return len(c.byID) }

func (c *RoomCatalog) All() []*model.Room {
	out := make([]*model.Room, 0, len(c.byID))
	for _, r := range c.byID {
		out = append(out, r)
	}
	return out
}

func LoadRoomCatalog(path string) (*RoomCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read room catalog %s: %w", path, err)
	}
	var rows []roomYAML
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse room catalog %s: %w", path, err)
	}
	byID := make(map[model.RoomID]*model.Room, len(rows))
	for _, row := range rows {
		byID[model.RoomID(row.ID)] = row.toModel()
	}
	return &RoomCatalog{byID: byID}, nil
}
