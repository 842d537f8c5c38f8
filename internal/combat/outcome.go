package combat

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// OutputSink delivers a line of text to one character's connection. The
// seam that lets this package avoid importing internal/net or internal/session.
type OutputSink interface {
	Tell(id model.CharacterID, line string)
}

// Outcome is everything a caller needs after a landed or missed attack: the
// final damage dealt and whatever terminal transition resulted from it.
type Outcome struct {
	Damage      int
	TargetDied  bool
	Roundtime   float64
}

// spellcraftDC is the difficulty a cast-interrupting hit must beat, never
// below 10 regardless of how little damage landed (spec.md section 4.4).
func spellcraftDC(damage int) int {
	dc := damage / 2
	if dc < 10 {
		dc = 10
	}
	return dc
}

// ApplyDamage runs every post-damage step common to physical and magical
// hits: HP reduction, casting interruption, meditation break, durability,
// hidden-flag clearing, roundtime, and the death/dying transition. weaponSpeed
// is the attacking weapon's speed (or the ability's cast time); missed
// attacks should call ApplyMiss instead.
func ApplyDamage(w *world.World, out OutputSink, bus *event.Bus, attacker, target Combatant, dmg int, weaponSpeed float64, hitWeapon *model.ItemInstance) Outcome {
	newHP := target.CurrentHP() - float64(dmg)
	if newHP < 0 {
		newHP = 0
	}
	target.SetHP(newHP)

	if ch, ok := target.Underlying().(*model.Character); ok {
		if ch.Casting != nil && dmg > 0 {
			dc := spellcraftDC(dmg)
			roll := rand.Intn(20) + 1
			if roll+ch.Skills["spellcraft"] < dc {
				ch.Casting = nil
				ch.Roundtime = 0
				out.Tell(ch.ID, "Your concentration is broken!")
			}
		}
		if ch.Status == model.StatusMeditating && dmg > 0 {
			ch.Status = model.StatusAlive
			out.Tell(ch.ID, "You are shaken from your meditation.")
		}
	}

	rollDurability(w, attacker, target, hitWeapon)

	if attacker.Hidden() {
		attacker.SetHidden(false)
	}

	attacker.SetRoundtime(weaponSpeed + float64(attacker.TotalAV())*0.05 + slowPenalty(attacker))

	if m, ok := target.Underlying().(*model.Mob); ok && dmg > 0 {
		if atkCh, ok := attacker.Underlying().(*model.Character); ok {
			if m.HateList == nil {
				m.HateList = make(map[model.CharacterID]int64)
			}
			m.HateList[atkCh.ID] += int64(dmg)
		}
	}

	outcome := Outcome{Damage: dmg, Roundtime: attacker.Roundtime()}
	if newHP <= 0 {
		outcome.TargetDied = true
		resolveDeath(w, out, bus, attacker, target)
	}
	return outcome
}

// ApplyMiss applies the shortened 1.0s roundtime a missed attack costs its
// attacker.
func ApplyMiss(attacker Combatant) {
	attacker.SetRoundtime(1.0 + float64(attacker.TotalAV())*0.05 + slowPenalty(attacker))
}

func slowPenalty(c Combatant) float64 {
	if ch, ok := c.Underlying().(*model.Character); ok {
		if e, ok := ch.Effects["slow"]; ok && !e.Expired(time.Now()) {
			return float64(e.Amount)
		}
	}
	return 0
}

// rollDurability independently rolls the 10% attacker-weapon and 10%
// defender-armor condition decrements spec.md section 4.4 describes.
func rollDurability(w *world.World, attacker, target Combatant, hitWeapon *model.ItemInstance) {
	if hitWeapon != nil && rand.Float64() < 0.10 {
		decrementCondition(w, hitWeapon)
	}
	if target.IsCharacter() && rand.Float64() < 0.10 {
		if ch, ok := target.Underlying().(*model.Character); ok {
			if piece := randomArmorPiece(w, ch); piece != nil {
				decrementCondition(w, piece)
			}
		}
	}
}

func decrementCondition(w *world.World, inst *model.ItemInstance) {
	inst.Condition--
	if inst.Condition <= 0 {
		if inst.Owner.Kind == model.OwnerEquipment {
			if ch := w.Character(model.CharacterID(inst.Owner.ID)); ch != nil {
				ch.Equipment[inst.Owner.Slot] = 0
			}
		}
		w.DestroyItem(inst.ID)
	}
}

func randomArmorPiece(w *world.World, ch *model.Character) *model.ItemInstance {
	var candidates []*model.ItemInstance
	for _, slot := range model.AllSlots() {
		if slot == model.SlotMainHand || slot == model.SlotOffHand {
			continue
		}
		if id := ch.Equipment[slot]; id != 0 {
			if inst := w.Item(id); inst != nil {
				candidates = append(candidates, inst)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rand.Intn(len(candidates))]
}

// resolveDeath handles the mob-death and character-dying branches of the
// post-damage step (spec.md section 4.4).
func resolveDeath(w *world.World, out OutputSink, bus *event.Bus, attacker, target Combatant) {
	switch t := target.Underlying().(type) {
	case *model.Mob:
		resolveMobDeath(w, out, bus, attacker, t)
	case *model.Character:
		if t.Status == model.StatusAlive {
			resolveCharacterDying(w, out, bus, t, killerID(attacker))
		}
	}
}

func killerID(attacker Combatant) int64 {
	if ch, ok := attacker.Underlying().(*model.Character); ok {
		return int64(ch.ID)
	}
	return 0
}

func resolveMobDeath(w *world.World, out OutputSink, bus *event.Bus, attacker Combatant, m *model.Mob) {
	m.Dead = true
	m.IsFighting = false
	m.TimeOfDeath = time.Now()

	killerChar, _ := attacker.Underlying().(*model.Character)
	xp := int64(m.Level * 50)
	coin := m.CoinMin
	if m.CoinMax > m.CoinMin {
		coin += int64(rand.Intn(int(m.CoinMax - m.CoinMin + 1)))
	}

	recipients := groupRecipients(w, killerChar, m.RoomID)
	if len(recipients) > 1 {
		xp = int64(float64(xp) * 0.80)
	}
	awardXP(out, recipients, xp)
	awardCoin(w, recipients, coin)

	dropLoot(w, m)
	announceMobDeath(w, out, m)
	m.HateList = nil

	if bus != nil && killerChar != nil {
		event.Emit(bus, event.MobKilled{
			KillerID:      killerChar.ID,
			MobInstanceID: m.ID,
			MobTemplateID: m.TemplateID,
			ExpGained:     xp,
			RoomID:        m.RoomID,
		})
	}
}

// ResolveEnvironmentalDeath handles a target's defeat with no real attacker
// to attribute it to (a DoT tick, a trap, a fall): spec.md section 4.5 calls
// for this to behave like an ordinary defeat except no XP or coin changes
// hands. cause names the source for flavor text ("the poison").
func ResolveEnvironmentalDeath(w *world.World, out OutputSink, bus *event.Bus, target Combatant, cause string) {
	switch t := target.Underlying().(type) {
	case *model.Mob:
		t.Dead = true
		t.IsFighting = false
		t.TimeOfDeath = time.Now()
		dropLoot(w, t)
		for _, c := range w.CharactersInRoom(t.RoomID) {
			out.Tell(c.ID, fmt.Sprintf("%s is killed by %s.", t.Name, cause))
		}
	case *model.Character:
		if t.Status == model.StatusAlive {
			resolveCharacterDying(w, out, bus, t, 0)
		}
	}
}

func dropLoot(w *world.World, m *model.Mob) {
	room := w.Room(m.RoomID)
	if room == nil {
		return
	}
	for _, rule := range m.Loot {
		if rand.Float64() > rule.Chance {
			continue
		}
		count := rule.MinCount
		if rule.MaxCount > rule.MinCount {
			count += rand.Intn(rule.MaxCount - rule.MinCount + 1)
		}
		for i := 0; i < count; i++ {
			inst := w.CreateItem(rule.ItemTemplateID, model.Owner{Kind: model.OwnerRoom, ID: int64(m.RoomID)})
			room.GroundItems = append(room.GroundItems, inst.ID)
		}
	}
}

func announceMobDeath(w *world.World, out OutputSink, m *model.Mob) {
	for _, c := range w.CharactersInRoom(m.RoomID) {
		out.Tell(c.ID, fmt.Sprintf("%s dies.", m.Name))
	}
}

func resolveCharacterDying(w *world.World, out OutputSink, bus *event.Bus, ch *model.Character, killerID int64) {
	ch.Status = model.StatusDying
	ch.XPPool = 0

	floor := ch.XPLevelFloor()
	progress := ch.XPTotal - floor
	penalty := progress / 10
	ch.XPTotal -= penalty
	if ch.XPTotal < floor {
		ch.XPTotal = floor
	}

	ch.Stance = model.StanceLying

	lostCoin := ch.Coinage / 10
	ch.Coinage -= lostCoin
	if room := w.Room(ch.RoomID); room != nil {
		room.GroundCoin += lostCoin
	}

	ch.DeathTimerEndsAt = time.Now().Add(time.Duration(ch.Stats.Vitality) * time.Second)
	out.Tell(ch.ID, "The world grows dark and you collapse.")

	if bus != nil {
		event.Emit(bus, event.CharacterDied{CharacterID: ch.ID, RoomID: ch.RoomID, KillerID: killerID})
	}
}

// groupRecipients applies the group-split rule: present, alive groupmates
// in the same room share the reward; a solo kill rewards only the killer.
func groupRecipients(w *world.World, killer *model.Character, roomID model.RoomID) []*model.Character {
	if killer == nil {
		return nil
	}
	if killer.GroupID == 0 {
		return []*model.Character{killer}
	}
	g := w.Group(killer.GroupID)
	if g == nil {
		return []*model.Character{killer}
	}
	var present []*model.Character
	for _, c := range w.CharactersInRoom(roomID) {
		if _, ok := g.Members[c.ID]; ok && c.Status != model.StatusDead && c.Status != model.StatusDying {
			present = append(present, c)
		}
	}
	if len(present) == 0 {
		return []*model.Character{killer}
	}
	return present
}

func awardXP(out OutputSink, recipients []*model.Character, total int64) {
	if len(recipients) == 0 {
		return
	}
	share := total / int64(len(recipients))
	for _, c := range recipients {
		poolCap := c.XPPoolCap()
		c.XPPool += share
		if c.XPPool > poolCap {
			c.XPPool = poolCap
		}
		out.Tell(c.ID, fmt.Sprintf("You gain %d experience.", share))
	}
}

func awardCoin(w *world.World, recipients []*model.Character, total int64) {
	if len(recipients) == 0 {
		return
	}
	share := total / int64(len(recipients))
	remainder := total - share*int64(len(recipients))
	leaderID := recipients[0].ID
	if gid := recipients[0].GroupID; gid != 0 {
		if g := w.Group(gid); g != nil {
			for _, c := range recipients {
				if c.ID == g.Leader {
					leaderID = g.Leader
				}
			}
		}
	}
	for _, c := range recipients {
		c.Coinage += share
		if c.ID == leaderID {
			c.Coinage += remainder
		}
	}
}
