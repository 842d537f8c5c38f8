package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShopStockBuyPriceAppliesBarteringDiscount(t *testing.T) {
	s := ShopStock{BuyModifier: 1.0}
	// floor(50/25) = 2% discount.
	require.Equal(t, int64(980), s.BuyPrice(1000, 50))
}

func TestShopStockBuyPriceDiscountFloorsByRank(t *testing.T) {
	s := ShopStock{BuyModifier: 1.0}
	// rank 49 floors to the same 1% bracket as rank 25.
	require.Equal(t, s.BuyPrice(1000, 25), s.BuyPrice(1000, 49))
}

func TestShopStockSellPriceAppliesBarteringBonus(t *testing.T) {
	s := ShopStock{SellModifier: 0.5}
	// base = 500, bonus = floor(75/25)=3% => +15
	require.Equal(t, int64(515), s.SellPrice(1000, 75))
}

func TestShopStockPricesNeverNegative(t *testing.T) {
	s := ShopStock{BuyModifier: -1.0}
	require.Equal(t, int64(0), s.BuyPrice(100, 0))
}
