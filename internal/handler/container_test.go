package handler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/catalog"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// recordingSink captures every line told to a character, for assertions.
type recordingSink struct {
	lines map[model.CharacterID][]string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{lines: make(map[model.CharacterID][]string)}
}

func (s *recordingSink) Tell(id model.CharacterID, line string) {
	s.lines[id] = append(s.lines[id], line)
}

func (s *recordingSink) last(id model.CharacterID) string {
	lines := s.lines[id]
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const (
	templateChest   int32 = 1
	templateKey     int32 = 2
	templateTrinket int32 = 3
)

// newTestWorld builds a minimal World backed by real catalog.LoadItemCatalog/
// LoadRoomCatalog/LoadShopCatalog calls against temp YAML fixtures, the same
// file-driven loading path production boots through.
func newTestWorld(t *testing.T) (*world.World, *model.Room) {
	t.Helper()
	dir := t.TempDir()

	itemsYAML := `
- id: 1
  name: a wooden chest
  type: container
  capacity: 50
- id: 2
  name: a brass key
  type: key
  unlocks: ["chest-1"]
- id: 3
  name: a silver trinket
  type: general
  value: 40
  weight: 1
`
	roomsYAML := `
- id: 1
  name: a quiet room
  description: dust and stone.
`
	shopsYAML := `[]`

	itemsPath := writeFixture(t, dir, "items.yaml", itemsYAML)
	roomsPath := writeFixture(t, dir, "rooms.yaml", roomsYAML)
	shopsPath := writeFixture(t, dir, "shops.yaml", shopsYAML)

	items, err := catalog.LoadItemCatalog(itemsPath)
	require.NoError(t, err)
	rooms, err := catalog.LoadRoomCatalog(roomsPath)
	require.NoError(t, err)
	shops, err := catalog.LoadShopCatalog(shopsPath)
	require.NoError(t, err)

	cat := &catalog.Catalogs{Items: items, Rooms: rooms, Shops: shops}
	w := world.New(cat, event.NewBus())
	return w, w.Room(model.RoomID(1))
}

func newTestDeps(w *world.World, sink *recordingSink) *Deps {
	return &Deps{
		World: w,
		Bus:   w.Bus,
		Out:   sink,
		Log:   zap.NewNop(),
	}
}

func TestHandleOpenSpringsTrapAndGeneratesLootOnce(t *testing.T) {
	w, room := newTestWorld(t)
	sink := newRecordingSink()
	d := newTestDeps(w, sink)

	c := model.NewCharacter(model.CharacterID(1))
	c.RoomID = room.ID
	c.MaxHP = 100
	c.HP = 100

	chest := w.CreateItem(templateChest, model.Owner{Kind: model.OwnerBank, ID: 0})
	chest.Stats.TrapActive = true
	chest.Stats.TrapDamage = 5
	chestTmpl := w.Catalogs.Items.Get(templateChest)
	chestTmpl.Loot = []model.LootRule{{ItemTemplateID: templateTrinket, Chance: 1.0, MinCount: 1, MaxCount: 1}}
	c.Inventory = append(c.Inventory, chest.ID)

	ok := d.handleOpen(c, w, chestTmpl.Name)
	require.True(t, ok)

	require.True(t, chest.Stats.ContainerOpen)
	require.False(t, chest.Stats.TrapActive, "trap should be consumed")
	require.Less(t, c.HP, 100.0, "trap damage should have been applied")
	require.True(t, chest.Stats.LootGenerated)
	require.Len(t, chest.ContainerContents, 1)

	// Closing and re-opening the container does not re-roll loot.
	chest.Stats.ContainerOpen = false
	ok = d.handleOpen(c, w, chestTmpl.Name)
	require.True(t, ok)
	require.Len(t, chest.ContainerContents, 1)
}

func TestHandleOpenRefusesLockedContainer(t *testing.T) {
	w, room := newTestWorld(t)
	sink := newRecordingSink()
	d := newTestDeps(w, sink)

	c := model.NewCharacter(model.CharacterID(1))
	c.RoomID = room.ID

	chest := w.CreateItem(templateChest, model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)})
	chest.Stats.Locked = true
	chest.Stats.LockID = "chest-1"
	c.Inventory = append(c.Inventory, chest.ID)

	ok := d.handleOpen(c, w, "wooden chest")
	require.True(t, ok)
	require.False(t, chest.Stats.ContainerOpen)
	require.Equal(t, "It's locked.", sink.last(c.ID))
}

func TestUnlockRequiresMatchingKey(t *testing.T) {
	w, room := newTestWorld(t)
	sink := newRecordingSink()
	d := newTestDeps(w, sink)

	c := model.NewCharacter(model.CharacterID(1))
	c.RoomID = room.ID

	chest := w.CreateItem(templateChest, model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)})
	chest.Stats.Locked = true
	chest.Stats.LockID = "chest-1"
	c.Inventory = append(c.Inventory, chest.ID)

	ok := d.handleUnlock(c, w, "wooden chest")
	require.True(t, ok)
	require.True(t, chest.Stats.Locked, "no key carried, should remain locked")

	key := w.CreateItem(templateKey, model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)})
	c.Inventory = append(c.Inventory, key.ID)

	ok = d.handleUnlock(c, w, "wooden chest")
	require.True(t, ok)
	require.False(t, chest.Stats.Locked)
}

func TestPutRespectsContainerCapacity(t *testing.T) {
	w, room := newTestWorld(t)
	sink := newRecordingSink()
	d := newTestDeps(w, sink)

	c := model.NewCharacter(model.CharacterID(1))
	c.RoomID = room.ID

	chest := w.CreateItem(templateChest, model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)})
	chest.Stats.ContainerOpen = true
	w.Catalogs.Items.Get(templateChest).Capacity = 0
	c.Inventory = append(c.Inventory, chest.ID)

	trinket := w.CreateItem(templateTrinket, model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)})
	c.Inventory = append(c.Inventory, trinket.ID)

	ok := d.handlePut(c, w, "trinket in chest")
	require.True(t, ok)
	require.Equal(t, "It won't fit.", sink.last(c.ID))
	require.Empty(t, chest.ContainerContents)
}
