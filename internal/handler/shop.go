package handler

import (
	"strconv"
	"strings"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleBuy purchases a unit of a room's shop stock (spec.md section 4.7).
// Only items the room's stock table explicitly carries can be bought;
// "out of stock" and "not sold here" are distinguished by the lookup.
func (d *Deps) handleBuy(c *model.Character, w *world.World, args string) bool {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.tell(c.ID, "Buy what?")
		return true
	}
	stock := w.ShopStock(c.RoomID)
	if len(stock) == 0 {
		d.tell(c.ID, "There's no shop here.")
		return true
	}
	for _, s := range stock {
		tmpl := w.Catalogs.Items.Get(s.ItemTemplateID)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		if s.Quantity == 0 {
			d.tell(c.ID, "That's out of stock.")
			return true
		}
		if len(c.Inventory) >= maxHandItems {
			d.tell(c.ID, "Your hands are full.")
			return true
		}
		price := s.BuyPrice(tmpl.Value, c.Skills["bartering"])
		if c.Coinage < price {
			d.tell(c.ID, "You can't afford that.")
			return true
		}
		c.Coinage -= price
		if s.Quantity > 0 {
			s.Quantity--
		}
		inst := w.CreateItem(tmpl.ID, model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)})
		c.Inventory = append(c.Inventory, inst.ID)
		d.tell(c.ID, "You buy "+tmpl.Name+" for "+strconv.FormatInt(price, 10)+" coin.")
		return true
	}
	d.tell(c.ID, "That's not sold here.")
	return true
}

// handleSell sells a carried item to the room's shop, accepting it only
// when the room's stock table or buy filter covers its template/type.
func (d *Deps) handleSell(c *model.Character, w *world.World, args string) bool {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.tell(c.ID, "Sell what?")
		return true
	}
	room := w.Room(c.RoomID)
	if room == nil || !room.Flags.Has(model.RoomFlagShop) {
		d.tell(c.ID, "There's no shop here.")
		return true
	}
	for i, id := range c.Inventory {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		price, ok := sellPriceFor(w, room, tmpl, c.Skills["bartering"])
		if !ok {
			d.tell(c.ID, "The shop won't buy that.")
			return true
		}
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		w.DestroyItem(id)
		c.Coinage += price
		d.tell(c.ID, "You sell "+tmpl.Name+" for "+strconv.FormatInt(price, 10)+" coin.")
		return true
	}
	d.tell(c.ID, "You don't have that.")
	return true
}

// sellPriceFor resolves the sell price for an item in a shop room: a
// stocked template uses its own stock row's modifier, otherwise the room's
// generic buy filter and sell modifier apply.
func sellPriceFor(w *world.World, room *model.Room, tmpl *model.ItemTemplate, barteringRank int) (int64, bool) {
	if stock := w.FindShopStock(room.ID, tmpl.ID); stock != nil {
		return stock.SellPrice(tmpl.Value, barteringRank), true
	}
	for _, t := range room.ShopBuyFilter {
		if t == tmpl.Type {
			generic := model.ShopStock{SellModifier: room.ShopSellMod}
			return generic.SellPrice(tmpl.Value, barteringRank), true
		}
	}
	return 0, false
}
