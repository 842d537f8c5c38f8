package combat

import (
	"fmt"

	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// AttackRequest bundles everything a single discrete attack act needs,
// independent of whether the attacker/defender are a Character or a Mob.
type AttackRequest struct {
	Attacker       Combatant
	Defender       Combatant
	Kind           RatingKind
	Source         AttackSource
	Mods           AbilityMods
	School         string // only consulted when Kind is APR/DPR
	AlwaysHits     bool
	BlindAttacker  bool
	BlindDefender  bool
	HitWeapon      *model.ItemInstance // the wielded weapon instance, for durability rolls
}

// ResolveAttack runs all three combat pipeline phases in order for one
// discrete attack act (spec.md section 4.4): hit check, parry/block, then
// damage and its post-damage outcome.
func ResolveAttack(w *world.World, out OutputSink, bus *event.Bus, req AttackRequest) Outcome {
	hit := ResolveHit(req.Attacker, req.Defender, req.Kind, req.Source, req.BlindAttacker, req.BlindDefender, req.Mods.BonusHitRating, req.AlwaysHits)
	if !hit.Hit {
		ApplyMiss(req.Attacker)
		announceMiss(out, req.Attacker, req.Defender, hit.Fumble)
		return Outcome{}
	}

	if defCh, ok := req.Defender.Underlying().(*model.Character); ok {
		if parryRank := defCh.Skills["parrying"]; defCh.Equipment[model.SlotMainHand] != 0 && ResolveParry(parryRank) {
			req.Attacker.SetRoundtime(1.0 + float64(req.Attacker.TotalAV())*0.05)
			out.Tell(defCh.ID, fmt.Sprintf("You parry %s's attack.", req.Attacker.Name()))
			return Outcome{}
		}
		if shieldID := defCh.Equipment[model.SlotOffHand]; shieldID != 0 {
			if tmpl := w.ItemTemplate(shieldID); tmpl != nil && tmpl.Type == model.ItemShield {
				if ResolveBlock(tmpl.BlockChance, defCh.Skills["shield usage"]) {
					req.Attacker.SetRoundtime(1.0 + float64(req.Attacker.TotalAV())*0.05)
					out.Tell(defCh.ID, fmt.Sprintf("You block %s's attack with your shield.", req.Attacker.Name()))
					return Outcome{}
				}
			}
		}
	}

	var info DamageInfo
	switch req.Kind {
	case RatingAPR, RatingDPR:
		info = CalculateMagicalDamage(req.Attacker, req.School, req.Source.BaseDamage, req.Source.RngDamage, req.Source.DamageType, hit.Crit)
	default:
		info = CalculatePhysicalDamage(req.Attacker, req.Source, hit.Crit, req.Mods)
	}

	weatherFlags := model.RoomFlagNone
	if room := roomOf(w, req.Defender); room != nil {
		weatherFlags = room.Flags
	}

	var dmg int
	if req.Kind == RatingAPR || req.Kind == RatingDPR {
		dmg = MitigateMagical(req.Defender, info, weatherFlags)
	} else {
		dmg = MitigatePhysical(req.Defender, info, weatherFlags)
	}

	speed := req.Source.Speed
	if speed <= 0 {
		speed = 1.0
	}
	announceHit(out, req.Attacker, req.Defender, dmg, hit.Crit)
	return ApplyDamage(w, out, bus, req.Attacker, req.Defender, dmg, speed, req.HitWeapon)
}

func roomOf(w *world.World, c Combatant) *model.Room {
	switch v := c.Underlying().(type) {
	case *model.Character:
		return w.Room(v.RoomID)
	case *model.Mob:
		return w.Room(v.RoomID)
	}
	return nil
}

func announceMiss(out OutputSink, attacker, defender Combatant, fumble bool) {
	verb := "misses"
	if fumble {
		verb = "fumbles the attack on"
	}
	line := fmt.Sprintf("%s %s %s.", attacker.Name(), verb, defender.Name())
	if ch, ok := attacker.Underlying().(*model.Character); ok {
		out.Tell(ch.ID, line)
	}
	if ch, ok := defender.Underlying().(*model.Character); ok {
		out.Tell(ch.ID, line)
	}
}

func announceHit(out OutputSink, attacker, defender Combatant, dmg int, crit bool) {
	line := fmt.Sprintf("%s hits %s for %d damage.", attacker.Name(), defender.Name(), dmg)
	if crit {
		line = fmt.Sprintf("%s critically hits %s for %d damage!", attacker.Name(), defender.Name(), dmg)
	}
	if ch, ok := attacker.Underlying().(*model.Character); ok {
		out.Tell(ch.ID, line)
	}
	if ch, ok := defender.Underlying().(*model.Character); ok {
		out.Tell(ch.ID, line)
	}
}
