package world

import "github.com/chrozal/mudcore/internal/model"

// Room returns the live room for an id, or nil if the id has no room — a
// template-integrity gap handled by the caller (e.g. entering play falls
// back to DefaultRoomID, and movement refuses the exit) rather than a panic.
func (w *World) Room(id model.RoomID) *model.Room { return w.rooms[id] }

func (w *World) AllRooms() []*model.Room {
	out := make([]*model.Room, 0, len(w.rooms))
	for _, r := range w.rooms {
		out = append(out, r)
	}
	return out
}

// ShopStock returns the live, mutable shop inventory for a room.
func (w *World) ShopStock(id model.RoomID) []*model.ShopStock { return w.shopStock[id] }

// FindShopStock locates the stock row for a template in a room, if any.
func (w *World) FindShopStock(roomID model.RoomID, templateID int32) *model.ShopStock {
	for _, s := range w.shopStock[roomID] {
		if s.ItemTemplateID == templateID {
			return s
		}
	}
	return nil
}

// MoveCharacter transfers a character between two rooms' occupant sets and
// updates its RoomID. Callers are responsible for emitting any look/arrival
// messaging; this only maintains registry consistency.
func (w *World) MoveCharacter(c *model.Character, dest model.RoomID) {
	if from := w.rooms[c.RoomID]; from != nil {
		from.RemoveOccupant(c.ID)
	}
	c.RoomID = dest
	if to := w.rooms[dest]; to != nil {
		to.AddOccupant(c.ID)
	}
}

// MoveMob transfers a mob between rooms' occupant sets.
func (w *World) MoveMob(m *model.Mob, dest model.RoomID) {
	if from := w.rooms[m.RoomID]; from != nil {
		from.RemoveMob(m.ID)
	}
	m.RoomID = dest
	if to := w.rooms[dest]; to != nil {
		to.AddMob(m.ID)
	}
}
