package system

import (
	"context"
	"time"

	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/persist"
	"github.com/chrozal/mudcore/internal/world"
	"go.uber.org/zap"
)

// PersistenceSystem periodically batch-saves every dirty character and
// every live item instance. Phase 5 (Persist).
type PersistenceSystem struct {
	world    *world.World
	charRepo *persist.CharacterRepo
	itemRepo *persist.ItemRepo
	log      *zap.Logger
}

func NewPersistenceSystem(w *world.World, charRepo *persist.CharacterRepo, itemRepo *persist.ItemRepo, log *zap.Logger) *PersistenceSystem {
	return &PersistenceSystem{world: w, charRepo: charRepo, itemRepo: itemRepo, log: log}
}

func (s *PersistenceSystem) Phase() tick.Phase { return tick.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.SaveDirty()
}

// SaveDirty persists every character whose Dirty flag is set, resetting the
// flag on success, then every live item instance. Update calls it each
// persist phase; the shutdown path calls SaveAll instead.
func (s *PersistenceSystem) SaveDirty() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	saved := 0
	for _, c := range s.world.AllCharacters() {
		if !c.Dirty {
			continue
		}
		if err := s.charRepo.Save(ctx, c); err != nil {
			s.log.Error("auto-save character failed", zap.Int32("character_id", int32(c.ID)), zap.Error(err))
			continue
		}
		c.Dirty = false
		saved++
	}
	if saved > 0 {
		s.log.Info("auto-save complete", zap.Int("characters", saved))
	}

	itemCount := 0
	for _, inst := range s.world.AllItems() {
		if err := s.itemRepo.Save(ctx, inst); err != nil {
			s.log.Error("auto-save item failed", zap.Uint64("item_id", uint64(inst.ID)), zap.Error(err))
			continue
		}
		itemCount++
	}
	if itemCount > 0 {
		s.log.Info("auto-save complete", zap.Int("items", itemCount))
	}
}

// SaveAll force-saves every online character regardless of dirty state.
// Called on graceful shutdown.
func (s *PersistenceSystem) SaveAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, c := range s.world.AllCharacters() {
		if err := s.charRepo.Save(ctx, c); err != nil {
			s.log.Error("shutdown save failed", zap.Int32("character_id", int32(c.ID)), zap.Error(err))
			continue
		}
		c.Dirty = false
	}
}
