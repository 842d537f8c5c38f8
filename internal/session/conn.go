package session

import (
	"time"

	"github.com/chrozal/mudcore/internal/model"
	gonet "github.com/chrozal/mudcore/internal/net"
	"github.com/chrozal/mudcore/internal/persist"
)

// creationStep is the CREATING_CHARACTER sub-state, walked linearly per
// spec.md section 4.2.
type creationStep int

const (
	stepFirstName creationStep = iota
	stepLastName
	stepSex
	stepRace
	stepClass
	stepRollAccept
	stepAssignStat
	stepTrait
	stepDescription
)

// creationScratch accumulates character-creation answers across the
// CREATING_CHARACTER sub-flow (spec.md section 4.2) before a Character is
// actually constructed.
type creationScratch struct {
	step creationStep

	firstName string
	lastName  string
	sex       model.Sex
	raceID    int32
	classID   int32

	rolled      model.BaseStats // the 6 rolled values, unassigned
	assignOrder []string        // channel names still needing an assignment
	assigned    model.BaseStats

	traitAnswers map[string]string
	traitIdx     int

	descBuilder string
}

// Conn is one client connection's state-machine driver. It owns the
// pre-play flow end to end; once it reaches PLAYING, per-line input is
// handed to the dispatcher and Conn only tracks bookkeeping (password
// attempts no longer matter, roundtime/status gates live on the Character).
type Conn struct {
	Sess  *gonet.Session
	State State

	AcctRow *persist.AccountRow

	PasswordAttempts int

	pendingUsername string
	pendingEmail    string
	pendingPassword string

	characters []*model.Character
	charChoice *model.Character

	creation *creationScratch

	Character *model.Character

	ConnectedAt time.Time
}

func NewConn(sess *gonet.Session) *Conn {
	return &Conn{
		Sess:        sess,
		State:       StateGettingUsername,
		ConnectedAt: time.Now(),
	}
}

func (c *Conn) send(line string)  { c.Sess.Send(line) }
func (c *Conn) sendf(lines ...string) {
	for _, l := range lines {
		c.Sess.Send(l)
	}
}
