package world

import "github.com/chrozal/mudcore/internal/model"

// SpawnMob materializes a new live Mob from a template into a room.
func (w *World) SpawnMob(templateID int32, roomID model.RoomID) *model.Mob {
	tmpl := w.Catalogs.Mobs.Get(templateID)
	if tmpl == nil {
		return nil
	}
	w.nextMobInstance++
	id := model.MobInstanceID(w.nextMobInstance)
	m := model.NewMob(id, tmpl, roomID)
	w.mobs[id] = m
	if room := w.rooms[roomID]; room != nil {
		room.AddMob(id)
	}
	return m
}

func (w *World) Mob(id model.MobInstanceID) *model.Mob { return w.mobs[id] }

// RemoveMob takes a mob instance out of the live registry entirely (used by
// corpse cleanup after loot/respawn-timer bookkeeping is done; a dead mob
// awaiting respawn stays in the registry with Dead=true instead).
func (w *World) RemoveMob(id model.MobInstanceID) {
	m, ok := w.mobs[id]
	if !ok {
		return
	}
	if room := w.rooms[m.RoomID]; room != nil {
		room.RemoveMob(id)
	}
	delete(w.mobs, id)
}

func (w *World) AllMobs() []*model.Mob {
	out := make([]*model.Mob, 0, len(w.mobs))
	for _, m := range w.mobs {
		out = append(out, m)
	}
	return out
}

// MobsInRoom returns the live mobs currently occupying a room.
func (w *World) MobsInRoom(roomID model.RoomID) []*model.Mob {
	room := w.rooms[roomID]
	if room == nil {
		return nil
	}
	out := make([]*model.Mob, 0, len(room.Mobs))
	for id := range room.Mobs {
		if m := w.mobs[id]; m != nil {
			out = append(out, m)
		}
	}
	return out
}

// CharactersInRoom returns the live characters currently occupying a room.
func (w *World) CharactersInRoom(roomID model.RoomID) []*model.Character {
	room := w.rooms[roomID]
	if room == nil {
		return nil
	}
	out := make([]*model.Character, 0, len(room.Occupants))
	for id := range room.Occupants {
		if c := w.characters[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}
