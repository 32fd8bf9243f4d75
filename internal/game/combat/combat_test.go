package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/armorsim/internal/game/combat"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

func TestCombatant_Alive(t *testing.T) {
	c := combat.Combatant{Name: "X", MaxHP: 10, CurrentHP: 0}
	assert.False(t, c.Alive())
	c.CurrentHP = 1
	assert.True(t, c.Alive())
}

func TestCombatant_TakeDamage(t *testing.T) {
	c := combat.Combatant{Name: "G", MaxHP: 18, CurrentHP: 18}
	c.TakeDamage(5)
	assert.Equal(t, 13, c.CurrentHP)
	c.TakeDamage(20)
	assert.Equal(t, 0, c.CurrentHP) // floors at 0
}

func TestCombatant_FullyArmored(t *testing.T) {
	assert.True(t, (&combat.Combatant{Class: combat.ClassMechanoid}).FullyArmored())
	assert.False(t, (&combat.Combatant{Class: combat.ClassFlesh}).FullyArmored())
}

func TestCombatant_NoEquipment(t *testing.T) {
	c := &combat.Combatant{}
	assert.Empty(t, c.Apparel())
	_, ok := c.Shield()
	assert.False(t, ok)
	assert.Zero(t, c.Stat(damage.StatDensitySharp))
}

func TestCombatant_ApparelOutermostFirst(t *testing.T) {
	reg := inventory.NewRegistry(damage.DefaultRegistry(), nil)
	for _, a := range []*inventory.ApparelDef{
		{ID: "shirt", Name: "Shirt", Class: inventory.ClassApparel, Layer: inventory.LayerSkin, Covers: []string{"torso"}, MaxHP: 10},
		{ID: "duster", Name: "Duster", Class: inventory.ClassApparel, Layer: inventory.LayerShell, Covers: []string{"torso"}, MaxHP: 10},
		{ID: "buckler", Name: "Buckler", Class: inventory.ClassShield, MaxHP: 10,
			Shield: &inventory.ShieldCoverage{Groups: []string{"arms"}}},
	} {
		require.NoError(t, reg.RegisterApparel(a))
	}
	eq := inventory.NewEquipment()
	for _, id := range []string{"shirt", "buckler", "duster"} {
		w, err := reg.NewWorn(id)
		require.NoError(t, err)
		require.NoError(t, eq.Wear(w))
	}
	c := &combat.Combatant{Equipment: eq}

	layers := c.Apparel()
	require.Len(t, layers, 2)
	assert.Equal(t, "duster", layers[0].DefID())
	assert.Equal(t, "shirt", layers[1].DefID())

	shield, ok := c.Shield()
	require.True(t, ok)
	assert.Equal(t, "buckler", shield.DefID())

	shield.TakeDamage(10)
	_, ok = c.Shield()
	assert.False(t, ok)
}

func TestAttack_DamageRoundsUp(t *testing.T) {
	assert.Equal(t, 3, combat.Attack{Amount: 2.1}.Damage())
	assert.Equal(t, 2, combat.Attack{Amount: 2}.Damage())
	assert.Equal(t, 0, combat.Attack{Amount: -4}.Damage())
}

func TestNewAttack_CarriesWeaponDamage(t *testing.T) {
	cut, _ := damage.DefaultRegistry().Def("cut")
	w := &inventory.WeaponDef{ID: "sword", Melee: true, Def: cut, Amount: 12, Penetration: 0.6}

	a := combat.NewAttack(w, "raider", nil)

	assert.Same(t, cut, a.Def)
	assert.Equal(t, 12.0, a.Amount)
	assert.Equal(t, 0.6, a.Penetration)
	assert.True(t, a.IsMelee())
	assert.True(t, a.Propagate)
	assert.False(t, combat.Attack{}.IsMelee())
}

func TestCombatant_Property_DamageNeverBelowZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 200).Draw(rt, "max_hp")
		dmg := rapid.IntRange(0, 500).Draw(rt, "dmg")
		c := combat.Combatant{Name: "X", MaxHP: maxHP, CurrentHP: maxHP}
		c.TakeDamage(dmg)
		assert.GreaterOrEqual(rt, c.CurrentHP, 0)
	})
}
