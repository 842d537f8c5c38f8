package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCharacterStartsAtFullHungerAndThirst(t *testing.T) {
	c := NewCharacter(CharacterID(1))
	require.Equal(t, 100.0, c.Hunger)
	require.Equal(t, 100.0, c.Thirst)
}

func TestClampVitalsBoundsHPEssenceHungerThirst(t *testing.T) {
	c := NewCharacter(CharacterID(1))
	c.MaxHP = 50
	c.MaxEssence = 20
	c.HP = 9999
	c.Essence = -5
	c.Hunger = 150
	c.Thirst = -10

	c.ClampVitals()

	require.Equal(t, 50.0, c.HP)
	require.Equal(t, 0.0, c.Essence)
	require.Equal(t, 100.0, c.Hunger)
	require.Equal(t, 0.0, c.Thirst)
}

func TestClampVitalsForcesZeroHPWhenDead(t *testing.T) {
	c := NewCharacter(CharacterID(1))
	c.MaxHP = 50
	c.HP = 30
	c.Status = StatusDead

	c.ClampVitals()

	require.Equal(t, 0.0, c.HP)
}

func TestXPPoolCapIsIntellectTimesHundred(t *testing.T) {
	c := NewCharacter(CharacterID(1))
	c.Stats.Intellect = 12
	require.Equal(t, int64(1200), c.XPPoolCap())
}

func TestEquippedTwoHandedRequiresSameInstanceInBothSlots(t *testing.T) {
	c := NewCharacter(CharacterID(1))
	c.Equipment[SlotMainHand] = ItemInstanceID(7)
	c.Equipment[SlotOffHand] = ItemInstanceID(7)
	require.True(t, c.EquippedTwoHanded(ItemInstanceID(7)))

	c.Equipment[SlotOffHand] = ItemInstanceID(8)
	require.False(t, c.EquippedTwoHanded(ItemInstanceID(7)))
}
