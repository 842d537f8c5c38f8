package world

import "github.com/chrozal/mudcore/internal/model"

// AddCharacter registers a logged-in character and places it in its room's
// occupant set. Called once per successful login/character-creation.
func (w *World) AddCharacter(c *model.Character) {
	w.characters[c.ID] = c
	w.byName[lower(c.FullName())] = c.ID
	if room := w.rooms[c.RoomID]; room != nil {
		room.AddOccupant(c.ID)
	}
}

// RemoveCharacter takes a character out of the live registry (disconnect,
// not death — a dead character stays in the world until release).
func (w *World) RemoveCharacter(id model.CharacterID) *model.Character {
	c, ok := w.characters[id]
	if !ok {
		return nil
	}
	if room := w.rooms[c.RoomID]; room != nil {
		room.RemoveOccupant(id)
	}
	delete(w.characters, id)
	delete(w.byName, lower(c.FullName()))
	return c
}

func (w *World) Character(id model.CharacterID) *model.Character { return w.characters[id] }

func (w *World) CharacterByName(name string) *model.Character {
	id, ok := w.byName[lower(name)]
	if !ok {
		return nil
	}
	return w.characters[id]
}

func (w *World) AllCharacters() []*model.Character {
	out := make([]*model.Character, 0, len(w.characters))
	for _, c := range w.characters {
		out = append(out, c)
	}
	return out
}

func (w *World) CharacterCount() int { return len(w.characters) }

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
