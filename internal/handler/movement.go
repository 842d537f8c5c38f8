package handler

import (
	"strings"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleMove resolves a directional token (or a named exit's keyword)
// against the character's current room and, if passable, relocates them
// (spec.md section 4.3 move gate).
func (d *Deps) handleMove(c *model.Character, w *world.World, args string) bool {
	room := w.Room(c.RoomID)
	if room == nil {
		d.tell(c.ID, "You are nowhere.")
		return true
	}

	var exit *model.Exit
	if dir, ok := model.ParseDirection(args); ok {
		exit = room.Exits[dir]
	} else {
		exit = room.NamedExits[strings.ToLower(args)]
	}
	if exit == nil || exit.DestRoomID == 0 {
		d.tell(c.ID, "You can't go that way.")
		return true
	}
	if exit.Locked {
		d.tell(c.ID, "That way is locked.")
		return true
	}
	if exit.SkillCheck != nil {
		rank := c.Skills[exit.SkillCheck.Skill]
		if rank < exit.SkillCheck.DC {
			if exit.SkillCheck.FailMsg != "" {
				d.tell(c.ID, exit.SkillCheck.FailMsg)
			} else {
				d.tell(c.ID, "You fail to pass.")
			}
			if exit.SkillCheck.FailDamage > 0 {
				c.HP -= float64(exit.SkillCheck.FailDamage)
				c.ClampVitals()
			}
			return true
		}
		if exit.SkillCheck.SuccessMsg != "" {
			d.tell(c.ID, exit.SkillCheck.SuccessMsg)
		}
	}

	dest := w.Room(exit.DestRoomID)
	if dest == nil {
		d.tell(c.ID, "That way leads nowhere.")
		return true
	}

	for _, occ := range w.CharactersInRoom(c.RoomID) {
		if occ.ID != c.ID {
			d.tell(occ.ID, c.FullName()+" leaves "+exit.Direction.String()+".")
		}
	}
	w.MoveCharacter(c, exit.DestRoomID)
	for _, occ := range w.CharactersInRoom(c.RoomID) {
		if occ.ID != c.ID {
			d.tell(occ.ID, c.FullName()+" arrives.")
		}
	}

	d.describeRoom(c, dest)
	return true
}
