package handler

import (
	"strings"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleSay broadcasts a line to every character sharing the speaker's room.
func (d *Deps) handleSay(c *model.Character, w *world.World, args string) bool {
	if args == "" {
		d.tell(c.ID, "Say what?")
		return true
	}
	for _, occ := range w.CharactersInRoom(c.RoomID) {
		if occ.ID == c.ID {
			d.tell(occ.ID, "You say, \""+args+"\"")
		} else {
			d.tell(occ.ID, c.FullName()+" says, \""+args+"\"")
		}
	}
	return true
}

// handleTell delivers a private line to a named character anywhere in the
// world, independent of room adjacency.
func (d *Deps) handleTell(c *model.Character, w *world.World, args string) bool {
	name, msg := splitTellArgs(args)
	if name == "" || msg == "" {
		d.tell(c.ID, "Tell whom what?")
		return true
	}
	target := w.CharacterByName(name)
	if target == nil {
		d.tell(c.ID, "No one by that name is here.")
		return true
	}
	d.tell(c.ID, "You tell "+target.FullName()+", \""+msg+"\"")
	d.tell(target.ID, c.FullName()+" tells you, \""+msg+"\"")
	return true
}

func splitTellArgs(args string) (name, msg string) {
	args = strings.TrimSpace(args)
	idx := strings.IndexByte(args, ' ')
	if idx < 0 {
		return args, ""
	}
	return args[:idx], strings.TrimSpace(args[idx+1:])
}
