package model

// ShopStock is one per-room shop inventory row: what a shop room will sell,
// at what markup, and what it will buy back, at what discount. Stock is
// mutable at runtime (decremented on purchase) and persisted, so this is the
// seed shape loaded from content at boot, not an immutable template.
type ShopStock struct {
	RoomID         RoomID
	ItemTemplateID int32
	Quantity       int // -1 = infinite
	BuyModifier    float64
	SellModifier   float64
}

// BuyPrice applies the shop's buy modifier and a bartering-skill discount
// (spec.md section 4.6: price reduced by floor(rank/25) percent).
func (s ShopStock) BuyPrice(baseValue int64, barteringRank int) int64 {
	price := float64(baseValue) * s.BuyModifier
	discount := float64(barteringRank/25) / 100.0
	price -= price * discount
	if price < 0 {
		price = 0
	}
	return int64(price)
}

// SellPrice applies the shop's sell modifier and the same bartering bonus,
// this time as an increase to what the shop pays out.
func (s ShopStock) SellPrice(baseValue int64, barteringRank int) int64 {
	price := float64(baseValue) * s.SellModifier
	bonus := float64(barteringRank/25) / 100.0
	price += price * bonus
	if price < 0 {
		price = 0
	}
	return int64(price)
}
