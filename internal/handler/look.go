package handler

import (
	"strconv"
	"strings"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// describeRoom renders a room's name, description, exits, ground contents,
// and occupants — shared by the move and look handlers.
func (d *Deps) describeRoom(c *model.Character, room *model.Room) {
	d.tell(c.ID, room.Name)
	d.tell(c.ID, room.Description)

	var exits []string
	for dir := range room.Exits {
		exits = append(exits, dir.String())
	}
	for name := range room.NamedExits {
		exits = append(exits, name)
	}
	if len(exits) == 0 {
		d.tell(c.ID, "There are no obvious exits.")
	} else {
		d.tell(c.ID, "Obvious exits: "+strings.Join(exits, ", "))
	}

	if room.GroundCoin > 0 {
		d.tell(c.ID, "A pile of coins lies here.")
	}
	for _, id := range room.GroundItems {
		if inst := d.World.Item(id); inst != nil {
			if tmpl := d.World.ItemTemplate(id); tmpl != nil {
				d.tell(c.ID, tmpl.Name+" is here.")
			}
		}
	}

	for _, occ := range d.World.CharactersInRoom(room.ID) {
		if occ.ID != c.ID && !occ.Hidden {
			d.tell(c.ID, occ.FullName()+" is here.")
		}
	}
	for _, mob := range d.World.MobsInRoom(room.ID) {
		if !mob.Dead && !mob.Hidden {
			d.tell(c.ID, mob.Name+" is here.")
		}
	}
}

func (d *Deps) handleLook(c *model.Character, w *world.World, args string) bool {
	args = strings.TrimSpace(args)
	if args == "" {
		room := w.Room(c.RoomID)
		if room == nil {
			d.tell(c.ID, "You are nowhere.")
			return true
		}
		d.describeRoom(c, room)
		return true
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(args), "in "); ok {
		return d.handleLookIn(c, w, args[len(args)-len(rest):])
	}
	return d.handleExamine(c, w, args)
}

// handleExamine looks up a keyword against room occupants, mobs, scenery
// objects, and inventory/equipped items, in that priority order.
func (d *Deps) handleExamine(c *model.Character, w *world.World, args string) bool {
	keyword := strings.ToLower(strings.TrimSpace(args))
	if keyword == "" {
		d.tell(c.ID, "Examine what?")
		return true
	}

	for _, occ := range w.CharactersInRoom(c.RoomID) {
		if strings.Contains(strings.ToLower(occ.FullName()), keyword) {
			d.tell(c.ID, "You see "+occ.FullName()+".")
			return true
		}
	}
	for _, mob := range w.MobsInRoom(c.RoomID) {
		if !mob.Dead && strings.Contains(strings.ToLower(mob.Name), keyword) {
			d.tell(c.ID, "You see "+mob.Name+", a level "+strconv.Itoa(mob.Level)+" creature.")
			if angriest := topHater(mob); angriest != 0 {
				if target := w.Character(angriest); target != nil {
					d.tell(c.ID, "It seems angriest at "+target.FullName()+".")
				}
			}
			return true
		}
	}
	if room := w.Room(c.RoomID); room != nil {
		for _, obj := range room.Objects {
			if strings.ToLower(obj.Keyword) == keyword {
				d.tell(c.ID, obj.Description)
				return true
			}
		}
		for _, id := range room.GroundItems {
			if tmpl := w.ItemTemplate(id); tmpl != nil && strings.Contains(strings.ToLower(tmpl.Name), keyword) {
				d.tell(c.ID, tmpl.Name+": "+itemBlurb(tmpl))
				return true
			}
		}
	}
	for _, id := range c.Inventory {
		if tmpl := w.ItemTemplate(id); tmpl != nil && strings.Contains(strings.ToLower(tmpl.Name), keyword) {
			d.tell(c.ID, tmpl.Name+": "+itemBlurb(tmpl))
			return true
		}
	}
	for _, slot := range model.AllSlots() {
		id := c.Equipment[slot]
		if id == 0 {
			continue
		}
		if tmpl := w.ItemTemplate(id); tmpl != nil && strings.Contains(strings.ToLower(tmpl.Name), keyword) {
			d.tell(c.ID, tmpl.Name+" (worn): "+itemBlurb(tmpl))
			return true
		}
	}

	d.tell(c.ID, "You don't see that here.")
	return true
}

// topHater returns the character with the highest accumulated hate on m, or
// 0 if the hate list is empty (the same computation as
// internal/system.TopHater).
func topHater(m *model.Mob) model.CharacterID {
	var top model.CharacterID
	var best int64
	for id, h := range m.HateList {
		if h > best {
			best = h
			top = id
		}
	}
	return top
}

func itemBlurb(tmpl *model.ItemTemplate) string {
	if tmpl.ArmorValue > 0 {
		return "armor value " + strconv.Itoa(tmpl.ArmorValue) + "."
	}
	if tmpl.DamageBase > 0 {
		return "deals " + strconv.Itoa(tmpl.DamageBase) + "-" + strconv.Itoa(tmpl.DamageBase+tmpl.DamageRng) + " " + string(tmpl.DamageType) + " damage."
	}
	return "nothing remarkable."
}
