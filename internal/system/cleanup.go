package system

import (
	"time"

	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/world"
)

// CleanupSystem flushes the deferred item-destruction queue at tick end.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.World
}

func NewCleanupSystem(w *world.World) *CleanupSystem {
	return &CleanupSystem{world: w}
}

func (s *CleanupSystem) Phase() tick.Phase { return tick.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.world.FlushDestroyedItems()
}
