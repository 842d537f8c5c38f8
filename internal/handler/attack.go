package handler

import (
	"strings"

	"github.com/chrozal/mudcore/internal/combat"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// handleAttack resolves one round of melee (or ranged, if the main hand
// holds a bow) combat against a named target in the character's room,
// building an AttackSource from the equipped weapon or bare fists and
// running it through the combat pipeline (spec.md section 4.4).
func (d *Deps) handleAttack(c *model.Character, w *world.World, args string) bool {
	if c.Roundtime > 0 {
		d.tell(c.ID, "You are still recovering.")
		return true
	}
	name := strings.ToLower(strings.TrimSpace(args))

	target := d.findMobTarget(w, c, name)
	if target == nil {
		d.tell(c.ID, "They aren't here.")
		return true
	}
	c.TargetID = int64(target.M.ID)
	c.IsFighting = true
	target.M.IsFighting = true
	target.M.TargetID = int64(c.ID)

	source, hitWeapon := d.weaponAttackSource(w, c)
	kind := combat.RatingMAR
	if source.DamageType == "" {
		source.DamageType = model.DamageBludgeon
	}
	if isRangedWeapon(w, c) {
		kind = combat.RatingRAR
	}

	req := combat.AttackRequest{
		Attacker:  &combat.CharCombatant{C: c, W: w},
		Defender:  target,
		Kind:      kind,
		Source:    source,
		HitWeapon: hitWeapon,
	}
	combat.ResolveAttack(w, d.Out, d.Bus, req)
	return true
}

// weaponAttackSource reads the character's main-hand weapon template (or
// falls back to bare-fisted combat.UnarmedAttack) and returns both the
// resolved AttackSource and the weapon instance for durability rolls.
func (d *Deps) weaponAttackSource(w *world.World, c *model.Character) (combat.AttackSource, *model.ItemInstance) {
	id := c.Equipment[model.SlotMainHand]
	if id == 0 {
		return combat.UnarmedAttack, nil
	}
	inst := w.Item(id)
	tmpl := w.ItemTemplate(id)
	if inst == nil || tmpl == nil {
		return combat.UnarmedAttack, nil
	}
	return combat.AttackSource{
		BaseDamage: tmpl.DamageBase,
		RngDamage:  tmpl.DamageRng,
		DamageType: tmpl.DamageType,
		Speed:      tmpl.Speed,
	}, inst
}

func isRangedWeapon(w *world.World, c *model.Character) bool {
	id := c.Equipment[model.SlotMainHand]
	if id == 0 {
		return false
	}
	tmpl := w.ItemTemplate(id)
	return tmpl != nil && tmpl.Type == model.ItemRanged
}

// findMobTarget resolves an attack target: a named, living mob in the
// room, or (when name is empty) whatever the character is already fighting.
func (d *Deps) findMobTarget(w *world.World, c *model.Character, name string) *combat.MobCombatant {
	if name == "" {
		if m := w.Mob(model.MobInstanceID(c.TargetID)); m != nil && !m.Dead && m.RoomID == c.RoomID {
			return &combat.MobCombatant{M: m}
		}
		return nil
	}
	for _, m := range w.MobsInRoom(c.RoomID) {
		if !m.Dead && strings.Contains(strings.ToLower(m.Name), name) {
			return &combat.MobCombatant{M: m}
		}
	}
	return nil
}
