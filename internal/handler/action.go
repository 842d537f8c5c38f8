package handler

import (
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleEmote broadcasts a free-form gesture line to every other occupant
// of the character's room.
func (d *Deps) handleEmote(c *model.Character, w *world.World, args string) bool {
	if args == "" {
		d.tell(c.ID, "Emote what?")
		return true
	}
	line := c.FullName() + " " + args
	for _, occ := range w.CharactersInRoom(c.RoomID) {
		d.tell(occ.ID, line)
	}
	return true
}

// handleMeditate enters the MEDITATING status (spec.md section 4.3 gate 3);
// any verb outside the small allowlist breaks it again.
func (d *Deps) handleMeditate(c *model.Character, w *world.World, args string) bool {
	if c.Status != model.StatusAlive {
		d.tell(c.ID, "You can't do that right now.")
		return true
	}
	c.Status = model.StatusMeditating
	d.tell(c.ID, "You begin meditating.")
	return true
}

func (d *Deps) handleSit(c *model.Character, w *world.World, args string) bool {
	c.Stance = model.StanceSitting
	d.tell(c.ID, "You sit down.")
	return true
}

func (d *Deps) handleStand(c *model.Character, w *world.World, args string) bool {
	c.Stance = model.StanceStanding
	d.tell(c.ID, "You stand up.")
	return true
}
