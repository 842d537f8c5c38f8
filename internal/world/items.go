package world

import (
	"github.com/chrozal/mudcore/internal/core/ecs"
	"github.com/chrozal/mudcore/internal/model"
)

// CreateItem materializes a new item instance from a template, owned by
// whatever Owner the caller supplies (room ground, a character's inventory,
// an equipment slot, a container, or the bank). Backed by the ecs entity
// pool so a destroyed item's id is never reissued while a stale reference
// survives (internal/core/ecs.World's generational EntityID).
func (w *World) CreateItem(templateID int32, owner model.Owner) *model.ItemInstance {
	entID := w.items.CreateEntity()
	id := model.ItemInstanceID(entID)
	inst := &model.ItemInstance{
		ID:         id,
		TemplateID: templateID,
		Condition:  100,
		Owner:      owner,
	}
	w.itemData.Set(entID, inst)
	return inst
}

// RestoreItem re-inserts an item instance loaded from persistence under its
// original id, reserving that id in the entity pool so it can never be
// reissued to a freshly created item in this process.
func (w *World) RestoreItem(inst *model.ItemInstance) {
	entID := ecs.EntityID(inst.ID)
	w.items.Pool().Reserve(entID)
	w.itemData.Set(entID, inst)
}

func (w *World) Item(id model.ItemInstanceID) *model.ItemInstance {
	inst, ok := w.itemData.Get(ecs.EntityID(id))
	if !ok {
		return nil
	}
	return inst
}

func (w *World) ItemTemplate(id model.ItemInstanceID) *model.ItemTemplate {
	inst := w.Item(id)
	if inst == nil {
		return nil
	}
	return w.Catalogs.Items.Get(inst.TemplateID)
}

// DestroyItem queues an item instance for removal at the next tick cleanup
// phase (condition reached 0, or consumable fully used).
func (w *World) DestroyItem(id model.ItemInstanceID) {
	entID := ecs.EntityID(id)
	w.items.MarkForDestruction(entID)
	w.itemData.Remove(entID)
}

// FlushDestroyedItems runs at the tick scheduler's cleanup phase.
func (w *World) FlushDestroyedItems() { w.items.FlushDestroyQueue() }

// AllItems returns every live item instance, for the persist phase's batch
// save sweep.
func (w *World) AllItems() []*model.ItemInstance {
	out := make([]*model.ItemInstance, 0)
	w.itemData.Each(func(_ ecs.EntityID, inst *model.ItemInstance) {
		out = append(out, inst)
	})
	return out
}
