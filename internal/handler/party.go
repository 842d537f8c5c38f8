package handler

import (
	"strings"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleGroup forms a group with a named, present character (or adds them
// to the caller's existing group), capped at model.MaxGroupSize.
func (d *Deps) handleGroup(c *model.Character, w *world.World, args string) bool {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.reportGroup(c, w)
		return true
	}
	var target *model.Character
	for _, occ := range w.CharactersInRoom(c.RoomID) {
		if occ.ID != c.ID && strings.Contains(strings.ToLower(occ.FullName()), name) {
			target = occ
			break
		}
	}
	if target == nil {
		d.tell(c.ID, "They aren't here.")
		return true
	}
	if target.GroupID != 0 {
		d.tell(c.ID, target.FullName()+" is already in a group.")
		return true
	}

	var g *model.Group
	if c.GroupID == 0 {
		g = w.NewGroup(c.ID)
	} else {
		g = w.Group(c.GroupID)
		if g == nil || g.Leader != c.ID {
			d.tell(c.ID, "Only the group leader can invite.")
			return true
		}
	}
	if !g.Add(target.ID) {
		d.tell(c.ID, "The group is full.")
		return true
	}
	target.GroupID = g.ID
	d.tell(c.ID, target.FullName()+" joins your group.")
	d.tell(target.ID, "You join "+c.FullName()+"'s group.")
	return true
}

func (d *Deps) reportGroup(c *model.Character, w *world.World) {
	if c.GroupID == 0 {
		d.tell(c.ID, "You are not in a group.")
		return
	}
	g := w.Group(c.GroupID)
	if g == nil {
		return
	}
	d.tell(c.ID, "Your group:")
	for id := range g.Members {
		if member := w.Character(id); member != nil {
			d.tell(c.ID, "  "+member.FullName())
		}
	}
}

// handleDisband removes the caller from their group, dissolving it
// entirely if they are the leader.
func (d *Deps) handleDisband(c *model.Character, w *world.World, args string) bool {
	if c.GroupID == 0 {
		d.tell(c.ID, "You are not in a group.")
		return true
	}
	g := w.Group(c.GroupID)
	if g == nil {
		c.GroupID = 0
		return true
	}
	if g.Leader == c.ID {
		for id := range g.Members {
			if member := w.Character(id); member != nil {
				member.GroupID = 0
				d.tell(member.ID, "Your group has disbanded.")
			}
		}
		w.DisbandGroup(g.ID)
	} else {
		w.LeaveGroup(c.ID)
		c.GroupID = 0
		d.tell(c.ID, "You leave the group.")
	}
	return true
}
