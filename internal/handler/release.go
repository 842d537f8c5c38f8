package handler

import (
	"time"

	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleRelease respawns a DEAD character to the default room at full HP
// and decrements their spiritual tether a second time (spec.md section 8
// scenario 6: the death timer already took the first decrement).
func (d *Deps) handleRelease(c *model.Character, w *world.World, args string) bool {
	if c.Status != model.StatusDead {
		d.tell(c.ID, "You aren't dead.")
		return true
	}
	w.MoveCharacter(c, model.DefaultRoomID)
	c.Status = model.StatusAlive
	c.HP = c.MaxHP
	c.Essence = c.MaxEssence
	c.DeathTimerEndsAt = time.Time{}
	if c.Tether > 0 {
		c.Tether--
	}
	c.Dirty = true
	d.tell(c.ID, "Your spirit returns to your body.")
	if d.Bus != nil {
		event.Emit(d.Bus, event.CharacterReleased{CharacterID: c.ID, RoomID: c.RoomID})
	}
	d.describeRoom(c, w.Room(c.RoomID))
	return true
}
