package world

import "github.com/chrozal/mudcore/internal/model"

// NewGroup forms a transient party led by the given character. Groups are
// never persisted — re-formed each session per the character model's
// runtime-only GroupID field.
func (w *World) NewGroup(leader model.CharacterID) *model.Group {
	w.nextGroupID++
	g := model.NewGroup(w.nextGroupID, leader)
	w.groups[g.ID] = g
	if c := w.characters[leader]; c != nil {
		c.GroupID = g.ID
	}
	return g
}

func (w *World) Group(id int64) *model.Group { return w.groups[id] }

// DisbandGroup removes a group entirely, clearing every member's GroupID.
func (w *World) DisbandGroup(id int64) {
	g, ok := w.groups[id]
	if !ok {
		return
	}
	for memberID := range g.Members {
		if c := w.characters[memberID]; c != nil {
			c.GroupID = 0
		}
	}
	delete(w.groups, id)
}

// LeaveGroup removes one member; if the group drops to a single member, the
// group disbands entirely rather than leaving a "group of one".
func (w *World) LeaveGroup(id model.CharacterID) {
	c := w.characters[id]
	if c == nil || c.GroupID == 0 {
		return
	}
	g := w.groups[c.GroupID]
	if g == nil {
		c.GroupID = 0
		return
	}
	g.Remove(id)
	c.GroupID = 0
	if len(g.Members) <= 1 {
		w.DisbandGroup(g.ID)
	}
}
