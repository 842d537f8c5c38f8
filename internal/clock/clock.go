// Package clock implements the process-wide game-time singleton: a
// read-mostly clock advanced by the tick scheduler's ClockSystem. Its hour
// and phase accessors have no caller outside this package; nothing that
// needs wall-clock precision reads it (roundtime, death timers and respawn
// delay all use time.Now directly).
package clock

import (
	"sync/atomic"
	"time"
)

// Phase is the closed day/night cycle enumeration exposed to room text and
// content.
type Phase int

const (
	PhaseDawn Phase = iota
	PhaseDay
	PhaseDusk
	PhaseNight
)

func (p Phase) String() string {
	switch p {
	case PhaseDawn:
		return "dawn"
	case PhaseDay:
		return "day"
	case PhaseDusk:
		return "dusk"
	default:
		return "night"
	}
}

// dayLength is the wall-clock duration of one full in-game day.
const dayLength = 24 * time.Minute

// Clock is a single atomically-updated counter of elapsed in-game minutes
// since boot. Safe for concurrent reads from any handler; only the tick
// scheduler's Advance call ever mutates it.
type Clock struct {
	minutes int64 // atomic
}

func New() *Clock { return &Clock{} }

// Advance adds dt to the game clock at one game minute per dayLength/1440
// of wall-clock time (one real second with the 24-minute dayLength above).
// Whole game minutes only: a dt shorter than one real second adds nothing.
func (c *Clock) Advance(dt time.Duration) {
	gameMinutes := int64(dt / (dayLength / (24 * 60)))
	if gameMinutes == 0 {
		return
	}
	atomic.AddInt64(&c.minutes, gameMinutes)
}

// MinuteOfDay returns the current in-game minute, 0..1439.
func (c *Clock) MinuteOfDay() int {
	return int(atomic.LoadInt64(&c.minutes) % (24 * 60))
}

// HourOfDay returns the current in-game hour, 0..23.
func (c *Clock) HourOfDay() int { return c.MinuteOfDay() / 60 }

// CurrentPhase buckets HourOfDay into the four-phase day/night cycle content
// and room descriptions key off of.
func (c *Clock) CurrentPhase() Phase {
	switch h := c.HourOfDay(); {
	case h >= 5 && h < 7:
		return PhaseDawn
	case h >= 7 && h < 18:
		return PhaseDay
	case h >= 18 && h < 20:
		return PhaseDusk
	default:
		return PhaseNight
	}
}
