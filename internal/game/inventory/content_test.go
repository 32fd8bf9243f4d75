// Package inventory_test contains completeness tests for the shipped apparel,
// weapon and material content.
package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

const contentRoot = "../../../content"

func loadShippedRegistry(t *testing.T) (*inventory.Registry, []*inventory.ApparelDef, []*inventory.WeaponDef) {
	t.Helper()
	dmg, err := damage.LoadRegistry(contentRoot + "/damage.yaml")
	require.NoError(t, err)
	materials, err := inventory.LoadMaterials(contentRoot + "/materials.yaml")
	require.NoError(t, err)

	reg := inventory.NewRegistry(dmg, materials)
	apparel, err := inventory.LoadApparel(contentRoot + "/apparel")
	require.NoError(t, err)
	require.NotEmpty(t, apparel)
	for _, a := range apparel {
		require.NoError(t, reg.RegisterApparel(a), "apparel %q", a.ID)
	}
	weapons, err := inventory.LoadWeapons(contentRoot + "/weapons")
	require.NoError(t, err)
	require.NotEmpty(t, weapons)
	for _, w := range weapons {
		require.NoError(t, reg.RegisterWeapon(w), "weapon %q", w.ID)
	}
	return reg, apparel, weapons
}

func TestContent_AllDefinitionsRegister(t *testing.T) {
	loadShippedRegistry(t)
}

func TestContent_ApparelCoversSomeBodyPart(t *testing.T) {
	_, apparel, _ := loadShippedRegistry(t)
	bodies, err := body.LoadBodies(contentRoot + "/bodies")
	require.NoError(t, err)
	require.NotEmpty(t, bodies)

	for _, a := range apparel {
		if a.IsShield() {
			continue
		}
		covered := false
		for _, b := range bodies {
			for _, p := range b.Parts() {
				if a.CoversPart(p) {
					covered = true
				}
			}
		}
		assert.True(t, covered, "apparel %q covers no part of any shipped body", a.ID)
	}
}

func TestContent_ShieldsResolveCoverage(t *testing.T) {
	reg, apparel, _ := loadShippedRegistry(t)
	withCoverage := 0
	for _, a := range apparel {
		if !a.IsShield() {
			continue
		}
		if _, ok := reg.ShieldCoverage(a.ID); ok {
			withCoverage++
		}
	}
	assert.Positive(t, withCoverage, "at least one shipped shield should carry coverage")
}

func TestContent_WeaponsResolveDamage(t *testing.T) {
	_, _, weapons := loadShippedRegistry(t)
	for _, w := range weapons {
		require.NotNil(t, w.Def, "weapon %q", w.ID)
		assert.True(t, w.Def.Categorized(), "weapon %q primary damage %q is uncategorized", w.ID, w.DamageID)
		for _, s := range w.Secondary {
			assert.NotNil(t, s.Def, "weapon %q secondary %q", w.ID, s.DamageID)
		}
	}
}
