package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/chrozal/mudcore/internal/model"
)

// Catalogs bundles every immutable content-authored table loaded at boot.
// Assembled once in cmd/mudcore/main.go and handed to the world package,
// mirroring the teacher's pattern of loading each *Table independently and
// passing the bundle down rather than re-reading files per subsystem.
type Catalogs struct {
	Races     *RaceCatalog
	Classes   *ClassCatalog
	Items     *ItemCatalog
	Mobs      *MobCatalog
	Abilities *AbilityCatalog
	Rooms     *RoomCatalog
	Shops     *ShopCatalog
}

// LoadAll loads every catalog from the content directory's conventional
// filenames. A missing optional file (shops) is tolerated; everything else
// is required for the world to boot.
func LoadAll(dir string) (*Catalogs, error) {
	races, err := LoadRaceCatalog(filepath.Join(dir, "races.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load races: %w", err)
	}
	classes, err := LoadClassCatalog(filepath.Join(dir, "classes.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	items, err := LoadItemCatalog(filepath.Join(dir, "items.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	mobs, err := LoadMobCatalog(filepath.Join(dir, "mobs.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load mobs: %w", err)
	}
	abilities, err := LoadAbilityCatalog(filepath.Join(dir, "abilities.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load abilities: %w", err)
	}
	rooms, err := LoadRoomCatalog(filepath.Join(dir, "rooms.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	shops, err := LoadShopCatalog(filepath.Join(dir, "shops.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		shops, err = &ShopCatalog{byRoom: make(map[model.RoomID][]model.ShopStock)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load shops: %w", err)
	}

	return &Catalogs{
		Races:     races,
		Classes:   classes,
		Items:     items,
		Mobs:      mobs,
		Abilities: abilities,
		Rooms:     rooms,
		Shops:     shops,
	}, nil
}
