package system

import "github.com/chrozal/mudcore/internal/model"

// TopHater returns the character with the highest accumulated hate on m, or
// 0 if the hate list is empty. The combat pipeline accumulates m.HateList
// directly on any landed hit. Nothing in this package calls TopHater:
// NpcAiSystem drops a fighting mob's target as soon as the target leaves
// the room and leaves the mob idle, without consulting hate.
func TopHater(m *model.Mob) model.CharacterID {
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
