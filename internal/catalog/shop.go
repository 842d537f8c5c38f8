package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chrozal/mudcore/internal/model"
)

type shopStockYAML struct {
	RoomID         int32   `yaml:"room_id"`
	ItemTemplateID int32   `yaml:"item_template_id"`
	Quantity       int     `yaml:"quantity"`
	BuyModifier    float64 `yaml:"buy_modifier"`
	SellModifier   float64 `yaml:"sell_modifier"`
}

func (y shopStockYAML) toModel() model.ShopStock {
	return model.ShopStock{
		RoomID:         model.RoomID(y.RoomID),
		ItemTemplateID: y.ItemTemplateID,
		Quantity:       y.Quantity,
		BuyModifier:    y.BuyModifier,
		SellModifier:   y.SellModifier,
	}
}

// ShopCatalog holds the seed shop inventory loaded from content at boot. The
// world keeps its own mutable copy once running; this is the bootstrap
// source for a fresh database only.
type ShopCatalog struct {
	byRoom map[model.RoomID][]model.ShopStock
}

func (c *ShopCatalog) ForRoom(id model.RoomID) []model.ShopStock { return c.byRoom[id] }

func LoadShopCatalog(path string) (*ShopCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shop catalog %s: %w", path, err)
	}
	var rows []shopStockYAML
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse shop catalog %s: %w", path, err)
	}
	byRoom := make(map[model.RoomID][]model.ShopStock)
	for _, row := range rows {
		stock := row.toModel()
		byRoom[stock.RoomID] = append(byRoom[stock.RoomID], stock)
	}
	return &ShopCatalog{byRoom: byRoom}, nil
}
