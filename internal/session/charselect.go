package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
)

func (m *Manager) enterCharacterSelect(c *Conn) {
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	if err := m.deps.Accounts.UpdateLastLogin(ctx, c.AcctRow.ID); err != nil {
		m.deps.Log.Error("update last login", zap.Error(err))
	}

	chars, err := m.deps.Characters.LoadByAccount(ctx, c.AcctRow.ID)
	if err != nil {
		m.deps.Log.Error("load characters", zap.Error(err))
		c.send("Internal error loading characters.")
	}
	c.characters = chars
	m.sendCharacterMenu(c)
	c.setState(StateSelectingCharacter)
}

func (m *Manager) sendCharacterMenu(c *Conn) {
	c.send("")
	if len(c.characters) == 0 {
		c.send("You have no characters.")
	} else {
		for i, ch := range c.characters {
			c.send(fmt.Sprintf("%d) %s, level %d", i+1, ch.FullName(), ch.Level))
		}
	}
	c.send("Enter a number to play, 'new' to create a character, or 'quit': ")
}

func (m *Manager) handleSelectCharacter(c *Conn, line string) {
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "new") {
		m.beginCreation(c)
		return
	}

	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(c.characters) {
		c.send("Invalid choice.")
		m.sendCharacterMenu(c)
		return
	}

	m.enterPlaying(c, c.characters[idx-1])
}

// enterPlaying attaches a loaded Character to the world's active index,
// places it in its persisted room (falling back to the default room), sends
// the MOTD + room look, broadcasts arrival, and records the login timestamp
// (spec.md section 4.1).
func (m *Manager) enterPlaying(c *Conn, ch *model.Character) {
	w := m.deps.World

	roomID := ch.PersistedRoomID
	if w.Room(roomID) == nil {
		roomID = model.DefaultRoomID
	}
	if w.Room(roomID) == nil {
		m.deps.Log.Error("default room missing, cannot seat character", zap.Int32("char_id", int32(ch.ID)))
		c.send("The world is not ready. Try again later.")
		m.teardown(c.Sess.ID, "default room missing")
		return
	}
	ch.RoomID = roomID
	ch.LoginAt = m.deps.now()
	ch.IsAdmin = c.AcctRow.IsAdmin

	w.AddCharacter(ch)
	c.Character = ch
	c.setState(StatePlaying)

	c.send(m.deps.Config.Server.MOTD)
	m.lookRoom(c, ch)

	for _, occ := range w.CharactersInRoom(roomID) {
		if occ.ID != ch.ID {
			m.tell(occ, fmt.Sprintf("%s arrives.", ch.FullName()))
		}
	}

	if m.deps.Bus != nil {
		event.Emit(m.deps.Bus, event.PlayerLoggedIn{CharacterID: ch.ID, AccountName: c.pendingUsername})
	}
	m.sendPrompt(c)
}
