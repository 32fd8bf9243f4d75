package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

const testBodyYAML = `id: human
name: Human
parts:
  - id: torso
    depth: outside
    groups: [torso]
  - id: heart
    parent: torso
    depth: inside
    groups: [torso]
  - id: left_arm
    parent: torso
    depth: outside
    groups: [arms, vulnerable_arm]
  - id: left_leg
    parent: torso
    depth: outside
    groups: [legs]
`

func testBody(t *testing.T) *body.Body {
	t.Helper()
	b, err := body.LoadBodyFromBytes([]byte(testBodyYAML))
	require.NoError(t, err)
	return b
}

func testPart(t *testing.T, id string) *body.Part {
	t.Helper()
	p, ok := testBody(t).Part(id)
	require.True(t, ok)
	return p
}

func testRegistry(t *testing.T) *inventory.Registry {
	t.Helper()
	reg := inventory.NewRegistry(damage.DefaultRegistry(), map[string]inventory.MaterialClass{
		"steel": inventory.MaterialHard,
		"cloth": inventory.MaterialSoft,
	})
	for _, a := range []*inventory.ApparelDef{
		{ID: "shirt", Name: "Shirt", Class: inventory.ClassApparel, Layer: inventory.LayerSkin, Material: "cloth",
			Covers: []string{"torso", "arms"}, MaxHP: 20,
			Stats: map[damage.StatID]float64{damage.StatArmorSharp: 0.1}},
		{ID: "plate", Name: "Plate", Class: inventory.ClassApparel, Layer: inventory.LayerShell, Material: "steel",
			Covers: []string{"torso"}, MaxHP: 100,
			Stats: map[damage.StatID]float64{damage.StatArmorSharp: 0.8, damage.StatArmorBlunt: 0.3}},
		{ID: "vest", Name: "Vest", Class: inventory.ClassApparel, Layer: inventory.LayerMiddle,
			Covers: []string{"torso"}, MaxHP: 50},
		{ID: "buckler", Name: "Buckler", Class: inventory.ClassShield, Material: "steel", MaxHP: 60,
			Stats:  map[damage.StatID]float64{damage.StatArmorSharp: 1.2},
			Shield: &inventory.ShieldCoverage{Groups: []string{"arms", "torso"}, CrouchGroups: []string{"legs"}}},
		{ID: "plank", Name: "Plank", Class: inventory.ClassShield, MaxHP: 10},
	} {
		require.NoError(t, reg.RegisterApparel(a))
	}
	return reg
}
