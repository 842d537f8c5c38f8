package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// bankItemFeeRate is the item-deposit fee spec.md section 4.7 charges
// against the item's base value.
const bankItemFeeRate = 0.10

// handleDeposit deposits coinage or a carried item into the bank (spec.md
// section 4.7). "deposit <n> coin" deposits talon; anything else is
// looked up as a carried item.
func (d *Deps) handleDeposit(c *model.Character, w *world.World, args string) bool {
	if d.Bank == nil {
		d.tell(c.ID, "There is no bank here.")
		return true
	}
	args = strings.TrimSpace(args)
	if amount, ok := parseCoinArgs(args); ok {
		if amount <= 0 || c.Coinage < amount {
			d.tell(c.ID, "You don't have that much.")
			return true
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		talon, err := d.Bank.Deposit(ctx, c.ID, amount)
		if err != nil {
			d.Log.Error("bank deposit failed", zap.Error(err))
			d.tell(c.ID, "The bank can't take that right now.")
			return true
		}
		c.Coinage -= amount
		c.BankTalon = talon
		d.tell(c.ID, "You deposit "+strconv.FormatInt(amount, 10)+" coin. Balance: "+strconv.FormatInt(talon, 10)+".")
		return true
	}

	name := strings.ToLower(args)
	if name == "" {
		d.tell(c.ID, "Deposit what?")
		return true
	}
	for i, id := range c.Inventory {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		fee := int64(float64(tmpl.Value) * bankItemFeeRate)
		if c.Coinage < fee {
			d.tell(c.ID, "You can't afford the deposit fee.")
			return true
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := d.Bank.DepositItem(ctx, c.ID, id); err != nil {
			d.Log.Error("bank deposit item failed", zap.Error(err))
			d.tell(c.ID, "The bank can't take that right now.")
			return true
		}
		c.Coinage -= fee
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		c.BankedItems = append(c.BankedItems, id)
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerBank, ID: int64(c.ID)}
		}
		d.tell(c.ID, "You deposit "+tmpl.Name+" for a "+strconv.FormatInt(fee, 10)+" coin fee.")
		return true
	}
	d.tell(c.ID, "You don't have that.")
	return true
}

// handleWithdraw withdraws coinage or a banked item back to the character.
func (d *Deps) handleWithdraw(c *model.Character, w *world.World, args string) bool {
	if d.Bank == nil {
		d.tell(c.ID, "There is no bank here.")
		return true
	}
	args = strings.TrimSpace(args)
	if amount, ok := parseCoinArgs(args); ok {
		if amount <= 0 || c.BankTalon < amount {
			d.tell(c.ID, "The bank doesn't hold that much of yours.")
			return true
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		talon, err := d.Bank.Withdraw(ctx, c.ID, amount)
		if err != nil {
			d.Log.Error("bank withdraw failed", zap.Error(err))
			d.tell(c.ID, "The bank can't do that right now.")
			return true
		}
		c.BankTalon = talon
		c.Coinage += amount
		d.tell(c.ID, "You withdraw "+strconv.FormatInt(amount, 10)+" coin. Balance: "+strconv.FormatInt(talon, 10)+".")
		return true
	}

	name := strings.ToLower(args)
	if name == "" {
		d.tell(c.ID, "Withdraw what?")
		return true
	}
	if len(c.Inventory) >= maxHandItems {
		d.tell(c.ID, "Your hands are full.")
		return true
	}
	for i, id := range c.BankedItems {
		tmpl := w.ItemTemplate(id)
		if tmpl == nil || !strings.Contains(strings.ToLower(tmpl.Name), name) {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := d.Bank.WithdrawItem(ctx, c.ID, id); err != nil {
			d.Log.Error("bank withdraw item failed", zap.Error(err))
			d.tell(c.ID, "The bank can't do that right now.")
			return true
		}
		c.BankedItems = append(c.BankedItems[:i], c.BankedItems[i+1:]...)
		c.Inventory = append(c.Inventory, id)
		if inst := w.Item(id); inst != nil {
			inst.Owner = model.Owner{Kind: model.OwnerCharacterInventory, ID: int64(c.ID)}
		}
		d.tell(c.ID, "You withdraw "+tmpl.Name+".")
		return true
	}
	d.tell(c.ID, "The bank doesn't hold that.")
	return true
}

// parseCoinArgs recognizes "<n> coin"/"<n> coins"/a bare integer as a talon
// amount; ok is false for anything else (an item name lookup follows).
func parseCoinArgs(args string) (int64, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, false
	}
	if len(fields) >= 2 {
		last := strings.ToLower(fields[len(fields)-1])
		if last != "coin" && last != "coins" && last != "talon" {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
