package handler

import (
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleAccept resolves a pending "give" offer in the recipient's favor,
// transferring the item instance into their inventory.
func (d *Deps) handleAccept(c *model.Character, w *world.World, args string) bool {
	offer := c.PendingGive
	if offer == nil {
		d.tell(c.ID, "You have nothing to accept.")
		return true
	}
	c.PendingGive = nil
	giver := w.Character(offer.FromID)
	if giver == nil {
		d.tell(c.ID, "The offer is no longer valid.")
		return true
	}
	for i, id := range giver.Inventory {
		if id == offer.ItemID {
			giver.Inventory = append(giver.Inventory[:i], giver.Inventory[i+1:]...)
			break
		}
	}
	if inst := w.Item(offer.ItemID); inst != nil {
		inst.Owner = model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)}
	}
	c.Inventory = append(c.Inventory, offer.ItemID)
	d.tell(c.ID, "You accept the item from "+giver.FullName()+".")
	d.tell(giver.ID, c.FullName()+" accepts your offer.")
	return true
}

// handleDecline rejects a pending "give" offer, leaving the item with the
// original holder.
func (d *Deps) handleDecline(c *model.Character, w *world.World, args string) bool {
	offer := c.PendingGive
	if offer == nil {
		d.tell(c.ID, "You have nothing to decline.")
		return true
	}
	c.PendingGive = nil
	if giver := w.Character(offer.FromID); giver != nil {
		d.tell(giver.ID, c.FullName()+" declines your offer.")
	}
	d.tell(c.ID, "You decline the offer.")
	return true
}
