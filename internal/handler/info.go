package handler

import (
	"strconv"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleScore reports a character's vitals, level, and primary attributes.
func (d *Deps) handleScore(c *model.Character, w *world.World, args string) bool {
	d.tell(c.ID, c.FullName()+", level "+strconv.Itoa(c.Level))
	d.tell(c.ID, "HP: "+floatStr(c.HP)+"/"+floatStr(c.MaxHP)+"  Essence: "+floatStr(c.Essence)+"/"+floatStr(c.MaxEssence))
	d.tell(c.ID, "Might "+strconv.Itoa(c.Stats.Might)+
		"  Vitality "+strconv.Itoa(c.Stats.Vitality)+
		"  Agility "+strconv.Itoa(c.Stats.Agility)+
		"  Intellect "+strconv.Itoa(c.Stats.Intellect)+
		"  Aura "+strconv.Itoa(c.Stats.Aura)+
		"  Persona "+strconv.Itoa(c.Stats.Persona))
	d.tell(c.ID, "Experience: "+strconv.FormatInt(c.XPTotal, 10)+" (pool "+strconv.FormatInt(c.XPPool, 10)+"/"+strconv.FormatInt(c.XPPoolCap(), 10)+")")
	d.tell(c.ID, "Coinage: "+strconv.FormatInt(c.Coinage, 10))
	return true
}

// handleSkills lists every trained skill and its current rank.
func (d *Deps) handleSkills(c *model.Character, w *world.World, args string) bool {
	if len(c.Skills) == 0 {
		d.tell(c.ID, "You have no trained skills.")
		return true
	}
	d.tell(c.ID, "Skills:")
	for name, rank := range c.Skills {
		d.tell(c.ID, "  "+name+": "+strconv.Itoa(rank))
	}
	return true
}

func floatStr(v float64) string {
	return strconv.Itoa(int(v))
}
