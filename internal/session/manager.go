package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/model"
	gonet "github.com/chrozal/mudcore/internal/net"
)

// dbTimeout bounds every login/creation-flow database round-trip so a
// stalled connection pool degrades one connecting client, not the whole
// accept path.
const dbTimeout = 5 * time.Second

// Manager owns every live Conn and is the PhaseInput tick.System that
// drains each one's input queue. Exactly one goroutine (the game loop)
// ever calls Update, so Conn/Character mutation here needs no locking.
type Manager struct {
	deps  *Deps
	server *gonet.Server
	conns map[uint64]*Conn
}

func NewManager(deps *Deps, server *gonet.Server) *Manager {
	return &Manager{deps: deps, server: server, conns: make(map[uint64]*Conn)}
}

func (m *Manager) Phase() tick.Phase { return tick.PhaseInput }

// Update drains newly accepted connections, dead-session notifications, and
// up to one buffered input line per connection.
func (m *Manager) Update(dt time.Duration) {
	for {
		select {
		case sess := <-m.server.NewSessions():
			m.accept(sess)
		default:
			goto drainDead
		}
	}
drainDead:
	for {
		select {
		case id := <-m.server.DeadSessions():
			m.teardown(id, "connection reset")
		default:
			goto drainInput
		}
	}
drainInput:
	for id, c := range m.conns {
		select {
		case line, ok := <-c.Sess.InQueue:
			if !ok || c.Sess.IsClosed() {
				m.teardown(id, "socket closed")
				continue
			}
			m.handleLine(c, line)
		default:
		}
	}
}

func (m *Manager) accept(sess *gonet.Session) {
	c := NewConn(sess)
	m.conns[sess.ID] = c
	c.send(m.deps.Config.Server.MOTD)
	c.send("")
	c.send("Username: ")
}

// teardown runs the cleanup path common to every exit: remove from the
// active index, broadcast departure, remove from room occupancy, persist,
// close the socket. Idempotent, and must run on every path including
// unexpected I/O failure (spec.md section 4.1).
func (m *Manager) teardown(id uint64, reason string) {
	c, ok := m.conns[id]
	if !ok {
		return
	}
	delete(m.conns, id)

	if c.Character != nil {
		m.leaveWorld(c.Character, reason)
	}
	c.Sess.Close()
}

func (m *Manager) leaveWorld(ch *model.Character, reason string) {
	w := m.deps.World
	if room := w.Room(ch.RoomID); room != nil {
		for _, occ := range w.CharactersInRoom(ch.RoomID) {
			if occ.ID != ch.ID {
				m.tell(occ, fmt.Sprintf("%s leaves.", ch.FullName()))
			}
		}
	}
	w.RemoveCharacter(ch.ID)
	w.LeaveGroup(ch.ID)

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	if err := m.deps.Characters.Save(ctx, ch); err != nil {
		m.deps.Log.Error("save character on disconnect", zap.Error(err), zap.Int32("char_id", int32(ch.ID)))
	}

	if m.deps.Bus != nil {
		event.Emit(m.deps.Bus, event.PlayerDisconnected{CharacterID: ch.ID, SessionID: 0})
	}
	m.deps.Log.Info("player disconnected", zap.String("name", ch.FullName()), zap.String("reason", reason))
}

// Tell implements dispatch.OutputSink, letting command handlers deliver
// text to a character's connection without importing internal/net.
func (m *Manager) Tell(id model.CharacterID, line string) {
	for _, c := range m.conns {
		if c.Character != nil && c.Character.ID == id {
			c.send(line)
			return
		}
	}
}

func (m *Manager) tell(ch *model.Character, line string) { m.Tell(ch.ID, line) }

// handleLine is the top-level state dispatch. A bare "quit" at any pre-play
// state tears the connection down without side effects beyond teardown
// (spec.md section 4.1).
func (m *Manager) handleLine(c *Conn, line string) {
	line = strings.TrimSpace(line)

	if c.State != StatePlaying && strings.EqualFold(line, "quit") {
		m.teardown(c.Sess.ID, "quit")
		return
	}

	switch c.State {
	case StateGettingUsername:
		m.handleUsername(c, line)
	case StateGettingPassword:
		m.handlePassword(c, line)
	case StateAskCreateAccount:
		m.handleAskCreateAccount(c, line)
	case StateGettingNewEmail:
		m.handleNewEmail(c, line)
	case StateGettingNewPassword:
		m.handleNewPassword(c, line)
	case StateConfirmNewPassword:
		m.handleConfirmNewPassword(c, line)
	case StateSelectingCharacter:
		m.handleSelectCharacter(c, line)
	case StateCreatingCharacter:
		m.handleCreationStep(c, line)
	case StatePlaying:
		m.handlePlaying(c, line)
	}
}
