// Package dispatch parses a line of player input into a verb and argument
// string, applies the ordered pre-dispatch gates, and routes to a
// registered handler (spec.md section 4.3).
package dispatch

import (
	"strings"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// Handler processes one command. The bool return indicates "keep the
// session alive". The verb "quit" is handled by Dispatch itself, which
// returns false for it; no registered handler is involved.
type Handler func(c *model.Character, w *world.World, args string) bool

// meditationAllowlist is the small set of verbs that don't break
// meditation (spec.md section 4.3 gate 3).
var meditationAllowlist = map[string]bool{
	"look": true, "score": true, "skills": true, "quit": true,
	"help": true, "who": true, "tell": true,
}

// directionVerbs is the closed set of movement tokens bound to a single
// move(direction) handler.
var directionVerbs = map[string]model.Direction{
	"n": model.DirNorth, "north": model.DirNorth,
	"s": model.DirSouth, "south": model.DirSouth,
	"e": model.DirEast, "east": model.DirEast,
	"w": model.DirWest, "west": model.DirWest,
	"u": model.DirUp, "up": model.DirUp,
	"d": model.DirDown, "down": model.DirDown,
	"ne": model.DirNortheast, "northeast": model.DirNortheast,
	"nw": model.DirNorthwest, "northwest": model.DirNorthwest,
	"se": model.DirSoutheast, "southeast": model.DirSoutheast,
	"sw": model.DirSouthwest, "southwest": model.DirSouthwest,
}

// Registry holds every non-directional verb handler.
type Registry struct {
	handlers map[string]Handler
	move     Handler
	w        *world.World
	out      OutputSink
}

// OutputSink delivers text to a character's session. The dispatcher never
// touches net.Session directly so internal/world stays free of transport
// concerns.
type OutputSink interface {
	Tell(id model.CharacterID, line string)
}

func NewRegistry(w *world.World, out OutputSink) *Registry {
	return &Registry{handlers: make(map[string]Handler), w: w, out: out}
}

func (r *Registry) Register(verb string, h Handler) { r.handlers[verb] = h }

// RegisterMove sets the handler every directional token is bound to; it
// receives the parsed direction word as args.
func (r *Registry) RegisterMove(h Handler) { r.move = h }

func (r *Registry) tell(id model.CharacterID, line string) {
	if r.out != nil {
		r.out.Tell(id, line)
	}
}

// Dispatch parses and gates one input line for a single character. Returns
// false only when the command should end the session (quit).
func (r *Registry) Dispatch(c *model.Character, line string) bool {
	verb, args := parse(line)
	if verb == "" {
		return true
	}

	// Gate 1: DYING rejects every verb except quit.
	if c.Status == model.StatusDying && verb != "quit" {
		r.tell(c.ID, "You are dying and can do nothing but quit.")
		return true
	}
	// Gate 2: DEAD rejects every verb except quit/release.
	if c.Status == model.StatusDead && verb != "quit" && verb != "release" {
		r.tell(c.ID, "You are dead. Type 'release' or 'quit'.")
		return true
	}
	// Gate 3: MEDITATING breaks on anything outside the allowlist.
	if c.Status == model.StatusMeditating && !meditationAllowlist[verb] {
		c.Status = model.StatusAlive
		r.tell(c.ID, "You stop meditating.")
	}
	// Gate 4: roundtime rejects non-admin commands; admin @verbs bypass for
	// admins, and fail as "unknown command" for everyone else.
	isAdminVerb := strings.HasPrefix(verb, "@")
	if isAdminVerb && !c.IsAdmin {
		r.tell(c.ID, "Unknown command.")
		return true
	}
	if c.Roundtime > 0 && !(isAdminVerb && c.IsAdmin) {
		r.tell(c.ID, "You are still recovering.")
		return true
	}

	if verb == "quit" {
		return false
	}

	if dir, ok := directionVerbs[verb]; ok {
		if r.move != nil {
			r.move(c, r.w, dir.String())
		}
		return true
	}

	h, ok := r.handlers[verb]
	if !ok {
		// Gate 5: unknown verbs get a generic hint.
		r.tell(c.ID, "Unknown command. Type 'help' for a list.")
		return true
	}
	return h(c, r.w, args)
}

// parse splits an input line into (verb_lowercase, args_string).
func parse(line string) (verb, args string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	idx := strings.IndexByte(line, ' ')
	if idx < 0 {
		return strings.ToLower(line), ""
	}
	return strings.ToLower(line[:idx]), strings.TrimSpace(line[idx+1:])
}
