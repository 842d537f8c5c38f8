package handler

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/chrozal/mudcore/internal/combat"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// itemLocation marks where findItemByName located an instance, so a caller
// can remove it from the right slice on a successful move.
type itemLocation int

const (
	locNone itemLocation = iota
	locInventory
	locGround
)

// findItemByName searches a character's carried inventory, then the room's
// ground items, for a name substring match.
func findItemByName(c *model.Character, w *world.World, name string) (*model.ItemInstance, *model.ItemTemplate, itemLocation) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, id := range c.Inventory {
		if tmpl := w.ItemTemplate(id); tmpl != nil && strings.Contains(strings.ToLower(tmpl.Name), name) {
			return w.Item(id), tmpl, locInventory
		}
	}
	if room := w.Room(c.RoomID); room != nil {
		for _, id := range room.GroundItems {
			if tmpl := w.ItemTemplate(id); tmpl != nil && strings.Contains(strings.ToLower(tmpl.Name), name) {
				return w.Item(id), tmpl, locGround
			}
		}
	}
	return nil, nil, locNone
}

// splitFromArgs splits "<item> from <container>" into its two names. ok is
// false when the input has no " from " separator.
func splitFromArgs(args string) (item, container string, ok bool) {
	lower := strings.ToLower(args)
	idx := strings.Index(lower, " from ")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(args[:idx]), strings.TrimSpace(args[idx+6:]), true
}

// splitInArgs splits "<item> in <container>" (also accepting "into").
func splitInArgs(args string) (item, container string, ok bool) {
	lower := strings.ToLower(args)
	for _, sep := range []string{" into ", " in "} {
		if idx := strings.Index(lower, sep); idx >= 0 {
			return strings.TrimSpace(args[:idx]), strings.TrimSpace(args[idx+len(sep):]), true
		}
	}
	return "", "", false
}

// handleOpen opens a container, springing any trap and rolling its first-
// open loot table (spec.md section 4.7).
func (d *Deps) handleOpen(c *model.Character, w *world.World, args string) bool {
	name := strings.TrimSpace(args)
	if name == "" {
		d.tell(c.ID, "Open what?")
		return true
	}
	inst, tmpl, _ := findItemByName(c, w, name)
	if inst == nil || tmpl.Type != model.ItemContainer {
		d.tell(c.ID, "You don't see that here.")
		return true
	}
	if inst.Stats.ContainerOpen {
		d.tell(c.ID, "It's already open.")
		return true
	}
	if inst.Stats.Locked {
		d.tell(c.ID, "It's locked.")
		return true
	}
	if inst.Stats.TrapActive {
		d.triggerTrap(c, w, inst)
	}
	inst.Stats.ContainerOpen = true
	if !inst.Stats.LootGenerated {
		d.generateContainerLoot(w, inst, tmpl)
		inst.Stats.LootGenerated = true
	}
	d.tell(c.ID, "You open "+tmpl.Name+".")
	return true
}

// handleClose closes a previously opened container.
func (d *Deps) handleClose(c *model.Character, w *world.World, args string) bool {
	name := strings.TrimSpace(args)
	if name == "" {
		d.tell(c.ID, "Close what?")
		return true
	}
	inst, tmpl, _ := findItemByName(c, w, name)
	if inst == nil || tmpl.Type != model.ItemContainer {
		d.tell(c.ID, "You don't see that here.")
		return true
	}
	if !inst.Stats.ContainerOpen {
		d.tell(c.ID, "It's already closed.")
		return true
	}
	inst.Stats.ContainerOpen = false
	d.tell(c.ID, "You close "+tmpl.Name+".")
	return true
}

// handlePut moves a carried item into an open container, enforcing the
// container's weight capacity.
func (d *Deps) handlePut(c *model.Character, w *world.World, args string) bool {
	itemName, containerName, ok := splitInArgs(args)
	if !ok {
		d.tell(c.ID, "Put what in what?")
		return true
	}
	containerInst, containerTmpl, _ := findItemByName(c, w, containerName)
	if containerInst == nil || containerTmpl.Type != model.ItemContainer {
		d.tell(c.ID, "You don't see that here.")
		return true
	}
	if !containerInst.Stats.ContainerOpen {
		d.tell(c.ID, "It isn't open.")
		return true
	}

	itemName = strings.ToLower(strings.TrimSpace(itemName))
	for i, id := range c.Inventory {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), itemName) {
			continue
		}
		if containerWeight(w, containerInst)+tmpl.Weight > containerTmpl.Capacity {
			d.tell(c.ID, "It won't fit.")
			return true
		}
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerContainer, ID: int64(containerInst.ID)}
		}
		containerInst.ContainerContents = append(containerInst.ContainerContents, id)
		d.tell(c.ID, "You put "+tmpl.Name+" in "+containerTmpl.Name+".")
		return true
	}
	d.tell(c.ID, "You don't have that.")
	return true
}

// getFromContainer implements "get <item> from <container>", the
// container-retrieval form of the get/take verb.
func (d *Deps) getFromContainer(c *model.Character, w *world.World, itemName, containerName string) bool {
	containerInst, containerTmpl, _ := findItemByName(c, w, containerName)
	if containerInst == nil || containerTmpl.Type != model.ItemContainer {
		d.tell(c.ID, "You don't see that here.")
		return true
	}
	if !containerInst.Stats.ContainerOpen {
		d.tell(c.ID, "It isn't open.")
		return true
	}
	if len(c.Inventory) >= maxHandItems {
		d.tell(c.ID, "Your hands are full.")
		return true
	}

	itemName = strings.ToLower(strings.TrimSpace(itemName))
	for i, id := range containerInst.ContainerContents {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), itemName) {
			continue
		}
		containerInst.ContainerContents = append(containerInst.ContainerContents[:i], containerInst.ContainerContents[i+1:]...)
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)}
		}
		c.Inventory = append(c.Inventory, id)
		d.tell(c.ID, "You get "+tmpl.Name+" from "+containerTmpl.Name+".")
		return true
	}
	d.tell(c.ID, "You don't see that in there.")
	return true
}

// handleLookIn lists an open container's contents.
func (d *Deps) handleLookIn(c *model.Character, w *world.World, args string) bool {
	name := strings.TrimSpace(args)
	if name == "" {
		d.tell(c.ID, "Look in what?")
		return true
	}
	inst, tmpl, _ := findItemByName(c, w, name)
	if inst == nil || tmpl.Type != model.ItemContainer {
		d.tell(c.ID, "You don't see that here.")
		return true
	}
	if !inst.Stats.ContainerOpen {
		d.tell(c.ID, "It isn't open.")
		return true
	}
	if len(inst.ContainerContents) == 0 {
		d.tell(c.ID, tmpl.Name+" is empty.")
		return true
	}
	d.tell(c.ID, "Inside "+tmpl.Name+":")
	for _, id := range inst.ContainerContents {
		if childTmpl := w.ItemTemplate(id); childTmpl != nil {
			d.tell(c.ID, "  "+childTmpl.Name)
		}
	}
	return true
}

// handleLock locks a container with a carried key whose Unlocks list
// includes the container's lock id.
func (d *Deps) handleLock(c *model.Character, w *world.World, args string) bool {
	return d.toggleLock(c, w, args, true)
}

// handleUnlock unlocks a container the same way.
func (d *Deps) handleUnlock(c *model.Character, w *world.World, args string) bool {
	return d.toggleLock(c, w, args, false)
}

func (d *Deps) toggleLock(c *model.Character, w *world.World, args string, lock bool) bool {
	name := strings.TrimSpace(args)
	if name == "" {
		d.tell(c.ID, "Lock/unlock what?")
		return true
	}
	inst, tmpl, _ := findItemByName(c, w, name)
	if inst == nil || tmpl.Type != model.ItemContainer {
		d.tell(c.ID, "You don't see that here.")
		return true
	}
	if inst.Stats.LockID == "" {
		d.tell(c.ID, "That has no lock.")
		return true
	}
	if inst.Stats.Locked == lock {
		if lock {
			d.tell(c.ID, "It's already locked.")
		} else {
			d.tell(c.ID, "It's already unlocked.")
		}
		return true
	}
	if !d.carriesKeyFor(c, w, inst.Stats.LockID) {
		d.tell(c.ID, "You don't have the key.")
		return true
	}
	inst.Stats.Locked = lock
	if lock {
		d.tell(c.ID, "You lock "+tmpl.Name+".")
	} else {
		d.tell(c.ID, "You unlock "+tmpl.Name+".")
	}
	return true
}

func (d *Deps) carriesKeyFor(c *model.Character, w *world.World, lockID string) bool {
	for _, id := range c.Inventory {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || tmpl.Type != model.ItemKey {
			continue
		}
		for _, unlock := range tmpl.Unlocks {
			if unlock == lockID {
				return true
			}
		}
	}
	return false
}

func containerWeight(w *world.World, containerInst *model.ItemInstance) int {
	total := 0
	for _, id := range containerInst.ContainerContents {
		if tmpl := w.ItemTemplate(id); tmpl != nil {
			total += tmpl.Weight
		}
	}
	return total
}

// generateContainerLoot materializes a container's first-open contents as
// real item instances, owned by the container.
func (d *Deps) generateContainerLoot(w *world.World, containerInst *model.ItemInstance, tmpl *model.ItemTemplate) {
	for _, rule := range tmpl.Loot {
		if rand.Float64() > rule.Chance {
			continue
		}
		count := rule.MinCount
		if rule.MaxCount > rule.MinCount {
			count += rand.Intn(rule.MaxCount-rule.MinCount+1)
		}
		for i := 0; i < count; i++ {
			child := w.CreateItem(rule.ItemTemplateID, model.Owner{Kind: model.OwnerContainer, ID: int64(containerInst.ID)})
			containerInst.ContainerContents = append(containerInst.ContainerContents, child.ID)
		}
	}
}

// triggerTrap springs a container's trap, consuming it and routing its
// damage through the magical mitigation pipeline (spec.md section 4.7).
func (d *Deps) triggerTrap(c *model.Character, w *world.World, inst *model.ItemInstance) {
	dmg := inst.Stats.TrapDamage
	inst.Stats.TrapActive = false
	if dmg <= 0 {
		return
	}
	info := combat.DamageInfo{PreMitigation: dmg, DamageType: model.DamageArcane}
	var weatherFlags model.RoomFlag
	if room := w.Room(c.RoomID); room != nil {
		weatherFlags = room.Flags
	}
	target := &combat.CharCombatant{C: c, W: w}
	mitigated := combat.MitigateMagical(target, info, weatherFlags)
	c.HP -= float64(mitigated)
	c.ClampVitals()
	d.tell(c.ID, fmt.Sprintf("A trap springs! You take %d damage.", mitigated))
	if c.HP <= 0 && c.Status == model.StatusAlive {
		combat.ResolveEnvironmentalDeath(w, d.Out, d.Bus, target, "a trap")
	}
}
