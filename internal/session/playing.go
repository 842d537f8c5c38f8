package session

import (
	"fmt"
	"strings"

	"github.com/chrozal/mudcore/internal/model"
)

// lookRoom renders a room's description, exits, and occupants. The full
// "look" verb (examine targets, ground items) lives in internal/handler and
// calls through the same rendering helpers; this copy covers only what the
// login sequence needs to show immediately on entering PLAYING.
func (m *Manager) lookRoom(c *Conn, ch *model.Character) {
	room := m.deps.World.Room(ch.RoomID)
	if room == nil {
		return
	}
	c.send(room.Name)
	c.send(room.Description)

	var exits []string
	for dir := range room.Exits {
		exits = append(exits, dir.String())
	}
	for name := range room.NamedExits {
		exits = append(exits, name)
	}
	if len(exits) == 0 {
		c.send("There are no obvious exits.")
	} else {
		c.send("Obvious exits: " + strings.Join(exits, ", "))
	}

	for _, occ := range m.deps.World.CharactersInRoom(ch.RoomID) {
		if occ.ID != ch.ID {
			c.send(occ.FullName() + " is here.")
		}
	}
	for _, mob := range m.deps.World.MobsInRoom(ch.RoomID) {
		if !mob.Dead {
			c.send(mob.Name + " is here.")
		}
	}
}

// sendPrompt emits the status prompt before every PLAYING input read
// (spec.md section 4.1): <hp/maxhp essence/maxessence|stance>.
func (m *Manager) sendPrompt(c *Conn) {
	ch := c.Character
	stance := strings.ToLower(stanceName(ch.Stance))
	c.send(fmt.Sprintf("<%d/%d %d/%d|%s>", int(ch.HP), int(ch.MaxHP), int(ch.Essence), int(ch.MaxEssence), stance))
}

func stanceName(s model.Stance) string {
	switch s {
	case model.StanceSitting:
		return "Sitting"
	case model.StanceLying:
		return "Lying"
	default:
		return "Standing"
	}
}

// handlePlaying hands a line to the command dispatcher, then re-teaches the
// prompt unless the dispatcher signaled the session should end (e.g. quit).
func (m *Manager) handlePlaying(c *Conn, line string) {
	if line == "" {
		m.sendPrompt(c)
		return
	}

	keepAlive := true
	if m.deps.Dispatch != nil {
		keepAlive = m.deps.Dispatch.Dispatch(c.Character, line)
	}

	if !keepAlive {
		m.teardown(c.Sess.ID, "quit")
		return
	}
	m.sendPrompt(c)
}
