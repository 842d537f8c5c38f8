// Package world holds the single shared, mutable game-state registry the
// tick scheduler and every command handler operate on. Exactly one goroutine
// (the game loop) ever touches a World — no internal locking, same
// single-writer discipline the teacher's world.State follows.
package world

import (
	"github.com/chrozal/mudcore/internal/catalog"
	"github.com/chrozal/mudcore/internal/core/ecs"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
)

// World is the live registry: every Room, every logged-in Character, every
// spawned Mob, every Item instance, plus the immutable catalogs that seed
// them. Characters/Mobs/Rooms are addressed through id-keyed maps directly
// (not ECS components) per the scoping decision recorded on ecs.World;
// the item instance store (items/itemData, exposed through ItemsRegistry)
// is the one place that backing store is exercised.
type World struct {
	Catalogs *catalog.Catalogs
	Bus      *event.Bus

	rooms      map[model.RoomID]*model.Room
	characters map[model.CharacterID]*model.Character
	byName     map[string]model.CharacterID
	mobs       map[model.MobInstanceID]*model.Mob
	groups     map[int64]*model.Group

	items *ecs.World
	itemData *ecs.Store[model.ItemInstance]

	shopStock map[model.RoomID][]*model.ShopStock

	nextMobInstance int64
	nextGroupID     int64
}

func New(cat *catalog.Catalogs, bus *event.Bus) *World {
	w := &World{
		Catalogs:   cat,
		Bus:        bus,
		rooms:      make(map[model.RoomID]*model.Room),
		characters: make(map[model.CharacterID]*model.Character),
		byName:     make(map[string]model.CharacterID),
		mobs:       make(map[model.MobInstanceID]*model.Mob),
		groups:     make(map[int64]*model.Group),
		items:      ecs.NewWorld(),
		itemData:   ecs.NewStore[model.ItemInstance](),
		shopStock:  make(map[model.RoomID][]*model.ShopStock),
	}
	for _, r := range cat.Rooms.All() {
		w.rooms[r.ID] = r
	}
	for _, room := range cat.Rooms.All() {
		for _, stock := range cat.Shops.ForRoom(room.ID) {
			s := stock
			w.shopStock[room.ID] = append(w.shopStock[room.ID], &s)
		}
	}
	return w
}

func (w *World) ItemsRegistry() *ecs.World { return w.items }
