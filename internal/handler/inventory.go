package handler

import (
	"strings"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

const maxHandItems = 2

func (d *Deps) handleInventory(c *model.Character, w *world.World, args string) bool {
	if len(c.Inventory) == 0 {
		d.tell(c.ID, "You are carrying nothing.")
	} else {
		d.tell(c.ID, "You are carrying:")
		for _, id := range c.Inventory {
			if tmpl := w.ItemTemplate(id); tmpl != nil {
				d.tell(c.ID, "  "+tmpl.Name)
			}
		}
	}
	d.tell(c.ID, "You are wearing:")
	for _, slot := range model.AllSlots() {
		id := c.Equipment[slot]
		if id == 0 {
			continue
		}
		if tmpl := w.ItemTemplate(id); tmpl != nil {
			d.tell(c.ID, "  "+tmpl.Name+" ("+slot.String()+")")
		}
	}
	return true
}

// handleGet picks a named item up off the ground, enforcing the
// two-hand-slot inventory cap (spec.md section 3). "get <item> from
// <container>" (spec.md section 4.7) retrieves it from an open container
// instead.
func (d *Deps) handleGet(c *model.Character, w *world.World, args string) bool {
	if itemName, containerName, ok := splitFromArgs(args); ok {
		return d.getFromContainer(c, w, itemName, containerName)
	}

	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.tell(c.ID, "Get what?")
		return true
	}
	room := w.Room(c.RoomID)
	if room == nil {
		return true
	}
	if len(c.Inventory) >= maxHandItems {
		d.tell(c.ID, "Your hands are full.")
		return true
	}
	for i, id := range room.GroundItems {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		room.GroundItems = append(room.GroundItems[:i], room.GroundItems[i+1:]...)
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)}
		}
		c.Inventory = append(c.Inventory, id)
		d.tell(c.ID, "You pick up "+tmpl.Name+".")
		return true
	}
	d.tell(c.ID, "You don't see that here.")
	return true
}

// handleDrop places a named carried item on the ground.
func (d *Deps) handleDrop(c *model.Character, w *world.World, args string) bool {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.tell(c.ID, "Drop what?")
		return true
	}
	room := w.Room(c.RoomID)
	if room == nil {
		return true
	}
	for i, id := range c.Inventory {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerRoom, ID: int64(c.RoomID)}
		}
		room.GroundItems = append(room.GroundItems, id)
		d.tell(c.ID, "You drop "+tmpl.Name+".")
		return true
	}
	d.tell(c.ID, "You don't have that.")
	return true
}

// handleGive stages a GiveOffer awaiting the recipient's accept/decline
// (spec.md's trade-by-offer model), rather than transferring immediately.
func (d *Deps) handleGive(c *model.Character, w *world.World, args string) bool {
	itemName, targetName := splitGiveArgs(args)
	if itemName == "" || targetName == "" {
		d.tell(c.ID, "Give what to whom?")
		return true
	}
	var itemID model.ItemInstanceID
	for _, id := range c.Inventory {
		if tmpl := w.ItemTemplate(id); tmpl != nil && strings.Contains(strings.ToLower(tmpl.Name), itemName) {
			itemID = id
			break
		}
	}
	if itemID == 0 {
		d.tell(c.ID, "You don't have that.")
		return true
	}
	var recipient *model.Character
	for _, occ := range w.CharactersInRoom(c.RoomID) {
		if occ.ID != c.ID && strings.Contains(strings.ToLower(occ.FullName()), targetName) {
			recipient = occ
			break
		}
	}
	if recipient == nil {
		d.tell(c.ID, "They aren't here.")
		return true
	}
	recipient.PendingGive = &model.GiveOffer{FromID: c.ID, ItemID: itemID}
	d.tell(c.ID, "You offer it to "+recipient.FullName()+".")
	d.tell(recipient.ID, c.FullName()+" offers you an item. Type 'accept' or 'decline'.")
	return true
}

func splitGiveArgs(args string) (item, target string) {
	args = strings.TrimSpace(args)
	if idx := strings.Index(strings.ToLower(args), " to "); idx >= 0 {
		return strings.ToLower(strings.TrimSpace(args[:idx])), strings.ToLower(strings.TrimSpace(args[idx+4:]))
	}
	return "", ""
}

// handleEquip moves a carried item into its WearSlot, rejecting an
// occupied slot and honoring the two-handed-weapon invariant.
func (d *Deps) handleEquip(c *model.Character, w *world.World, args string) bool {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.tell(c.ID, "Wear/wield what?")
		return true
	}
	for i, id := range c.Inventory {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		slot := tmpl.WearSlot
		if c.Equipment[slot] != 0 || (tmpl.Type == model.ItemTwoHandedWeapon && c.Equipment[model.SlotOffHand] != 0) {
			d.tell(c.ID, "You're already wearing something there.")
			return true
		}
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerEquipment, ID: int64(c.ID), Slot: slot}
		}
		c.Equipment[slot] = id
		if tmpl.Type == model.ItemTwoHandedWeapon {
			c.Equipment[model.SlotOffHand] = id
		}
		d.tell(c.ID, "You put on "+tmpl.Name+".")
		return true
	}
	d.tell(c.ID, "You don't have that.")
	return true
}

// handleUnequip moves a worn item back into inventory, rejecting the move
// when both hands are already full.
func (d *Deps) handleUnequip(c *model.Character, w *world.World, args string) bool {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.tell(c.ID, "Remove what?")
		return true
	}
	for _, slot := range model.AllSlots() {
		id := c.Equipment[slot]
		if id == 0 {
			continue
		}
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		if len(c.Inventory) >= maxHandItems {
			d.tell(c.ID, "Your hands are full.")
			return true
		}
		c.Equipment[slot] = 0
		if tmpl.Type == model.ItemTwoHandedWeapon && c.Equipment[model.SlotOffHand] == id {
			c.Equipment[model.SlotOffHand] = 0
		}
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)}
		}
		c.Inventory = append(c.Inventory, id)
		d.tell(c.ID, "You remove "+tmpl.Name+".")
		return true
	}
	d.tell(c.ID, "You aren't wearing that.")
	return true
}

// handleConsume eats/drinks/quaffs a carried item (spec.md section 4.7):
// food restores hunger to cap, drink restores thirst to cap, and any
// EffectKey the template carries (potions included) applies on top. Any
// consumable is destroyed after use regardless of which case fired.
func (d *Deps) handleConsume(c *model.Character, w *world.World, args string) bool {
	name := strings.ToLower(strings.TrimSpace(args))
	if name == "" {
		d.tell(c.ID, "Consume what?")
		return true
	}
	for i, id := range c.Inventory {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		if !isConsumable(tmpl) {
			d.tell(c.ID, "You can't consume that.")
			return true
		}
		applyConsumableEffect(c, tmpl)
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		w.DestroyItem(id)
		d.tell(c.ID, "You consume "+tmpl.Name+".")
		return true
	}
	d.tell(c.ID, "You don't have that.")
	return true
}

func isConsumable(tmpl *model.ItemTemplate) bool {
	return tmpl.Type == model.ItemFood || tmpl.Type == model.ItemDrink || tmpl.EffectKey != ""
}

func applyConsumableEffect(c *model.Character, tmpl *model.ItemTemplate) {
	if tmpl.Type == model.ItemFood {
		c.Hunger = 100
	}
	if tmpl.Type == model.ItemDrink {
		c.Thirst = 100
	}
	switch tmpl.EffectKey {
	case "heal_hp":
		c.HP += float64(tmpl.EffectAmount)
	case "heal_essence":
		c.Essence += float64(tmpl.EffectAmount)
	}
	c.ClampVitals()
}
