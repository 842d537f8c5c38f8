// Package handler implements the verb handlers the command dispatcher
// routes into (spec.md section 4.3): movement, inspection, combat
// initiation, casting, inventory manipulation, and social commands. Every
// handler has the signature dispatch.Handler expects and is registered
// through RegisterAll.
package handler

import (
	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/catalog"
	"github.com/chrozal/mudcore/internal/combat"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/dispatch"
	"github.com/chrozal/mudcore/internal/effect"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/persist"
	"github.com/chrozal/mudcore/internal/world"
)

// OutputSink is the same seam internal/combat and internal/dispatch use to
// reach a character's connection.
type OutputSink = combat.OutputSink

// Deps bundles everything a verb handler needs. Built once in
// cmd/mudcore/main.go and shared by every registered handler closure.
type Deps struct {
	World    *world.World
	Catalogs *catalog.Catalogs
	Bus      *event.Bus
	Out      OutputSink
	Log      *zap.Logger
	Boards   *persist.BoardRepo
	Bank     *persist.BankRepo
}

func (d *Deps) tell(id model.CharacterID, line string) {
	if d.Out != nil {
		d.Out.Tell(id, line)
	}
}

// RegisterAll binds every handler this package implements to its verb(s)
// on reg, mirroring the teacher's handler.RegisterAll boot-time wiring.
func RegisterAll(reg *dispatch.Registry, d *Deps) {
	reg.RegisterMove(d.handleMove)

	reg.Register("look", d.handleLook)
	reg.Register("l", d.handleLook)
	reg.Register("examine", d.handleExamine)
	reg.Register("ex", d.handleExamine)

	reg.Register("score", d.handleScore)
	reg.Register("skills", d.handleSkills)
	reg.Register("inventory", d.handleInventory)
	reg.Register("i", d.handleInventory)
	reg.Register("inv", d.handleInventory)

	reg.Register("attack", d.handleAttack)
	reg.Register("kill", d.handleAttack)
	reg.Register("cast", d.handleCast)
	reg.Register("use", d.handleUseAbility)

	reg.Register("get", d.handleGet)
	reg.Register("take", d.handleGet)
	reg.Register("drop", d.handleDrop)
	reg.Register("give", d.handleGive)
	reg.Register("wear", d.handleEquip)
	reg.Register("wield", d.handleEquip)
	reg.Register("remove", d.handleUnequip)
	reg.Register("unwield", d.handleUnequip)
	reg.Register("drink", d.handleConsume)
	reg.Register("eat", d.handleConsume)

	reg.Register("say", d.handleSay)
	reg.Register("'", d.handleSay)
	reg.Register("emote", d.handleEmote)
	reg.Register("tell", d.handleTell)

	reg.Register("meditate", d.handleMeditate)
	reg.Register("sit", d.handleSit)
	reg.Register("stand", d.handleStand)
	reg.Register("rest", d.handleSit)

	reg.Register("group", d.handleGroup)
	reg.Register("disband", d.handleDisband)
	reg.Register("accept", d.handleAccept)
	reg.Register("decline", d.handleDecline)
	reg.Register("release", d.handleRelease)
	reg.Register("board", d.handleBoard)

	reg.Register("buy", d.handleBuy)
	reg.Register("sell", d.handleSell)
	reg.Register("open", d.handleOpen)
	reg.Register("close", d.handleClose)
	reg.Register("put", d.handlePut)
	reg.Register("lock", d.handleLock)
	reg.Register("unlock", d.handleUnlock)
	reg.Register("deposit", d.handleDeposit)
	reg.Register("withdraw", d.handleWithdraw)

	effect.SetBus(d.Bus)
}
