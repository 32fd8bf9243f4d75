package damage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

const damageYAML = `armor_categories:
  - id: sharp
    rating_stat: armor_rating_sharp
    density_stat: body_density_sharp
  - id: blunt
    rating_stat: armor_rating_blunt
    density_stat: body_density_blunt
  - id: heat
    rating_stat: armor_rating_heat
    ambient: true
damage_defs:
  - id: blunt
    name: Blunt
    armor_category: blunt
  - id: stab
    name: Stab
    armor_category: sharp
  - id: dart
    name: Dart
    armor_category: sharp
    no_damage_on_deflect: true
  - id: burn
    name: Burn
    armor_category: heat
  - id: rot
    name: Rot
`

func TestLoadRegistryFromBytes(t *testing.T) {
	reg, err := damage.LoadRegistryFromBytes([]byte(damageYAML))
	require.NoError(t, err)

	stab, ok := reg.Def("stab")
	require.True(t, ok)
	assert.True(t, stab.IsSharp())
	assert.False(t, stab.IsAmbient())
	assert.Equal(t, damage.StatArmorSharp, stab.RatingStat())
	assert.Equal(t, damage.StatDensitySharp, stab.DensityStat())

	dart, _ := reg.Def("dart")
	assert.True(t, dart.NoDamageOnDeflect)

	burn, _ := reg.Def("burn")
	assert.True(t, burn.IsAmbient())
	assert.Equal(t, damage.StatID(""), burn.DensityStat())

	rot, _ := reg.Def("rot")
	assert.False(t, rot.Categorized())
	assert.Equal(t, damage.StatID(""), rot.RatingStat())

	require.NotNil(t, reg.Blunt())
	assert.True(t, reg.Blunt().IsBlunt())
	assert.Len(t, reg.AllDefs(), 5)
}

func TestLoadRegistry_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "damage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(damageYAML), 0644))
	reg, err := damage.LoadRegistry(path)
	require.NoError(t, err)
	_, ok := reg.Category("heat")
	assert.True(t, ok)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := damage.LoadRegistry("/nonexistent/damage.yaml")
	assert.ErrorContains(t, err, "reading damage file")
}

func TestLoadRegistryFromBytes_InvalidYAML(t *testing.T) {
	_, err := damage.LoadRegistryFromBytes([]byte(":::invalid"))
	assert.ErrorContains(t, err, "parsing damage YAML")
}

func TestNewRegistry_RequiresBlunt(t *testing.T) {
	cats := []*damage.ArmorCategory{{ID: "sharp", RatingStat: "a", DensityStat: "b"}}
	defs := []*damage.Def{{ID: "stab", Name: "Stab", ArmorCategoryID: "sharp"}}
	_, err := damage.NewRegistry(cats, defs)
	assert.ErrorContains(t, err, "blunt")
}

func TestNewRegistry_UnknownCategory(t *testing.T) {
	defs := []*damage.Def{{ID: "stab", Name: "Stab", ArmorCategoryID: "pierce"}}
	_, err := damage.NewRegistry(nil, defs)
	assert.ErrorContains(t, err, "unknown armor category")
}

func TestNewRegistry_DuplicateDef(t *testing.T) {
	cats := []*damage.ArmorCategory{
		{ID: "sharp", RatingStat: "a", DensityStat: "b"},
		{ID: "blunt", RatingStat: "c", DensityStat: "d"},
	}
	defs := []*damage.Def{
		{ID: "blunt", Name: "Blunt", ArmorCategoryID: "blunt"},
		{ID: "blunt", Name: "Blunt again", ArmorCategoryID: "blunt"},
	}
	_, err := damage.NewRegistry(cats, defs)
	assert.ErrorContains(t, err, "already registered")
}

func TestArmorCategory_Validate(t *testing.T) {
	assert.ErrorContains(t, (&damage.ArmorCategory{RatingStat: "x", DensityStat: "y"}).Validate(), "id")
	assert.ErrorContains(t, (&damage.ArmorCategory{ID: "x", DensityStat: "y"}).Validate(), "rating_stat")
	assert.ErrorContains(t, (&damage.ArmorCategory{ID: "x", RatingStat: "y"}).Validate(), "density_stat")
	assert.NoError(t, (&damage.ArmorCategory{ID: "x", RatingStat: "y", Ambient: true}).Validate())
}

func TestDefaultRegistry(t *testing.T) {
	reg := damage.DefaultRegistry()
	for _, id := range []string{"cut", "stab", "bullet", "arrow", "bite"} {
		d, ok := reg.Def(id)
		require.True(t, ok, id)
		assert.True(t, d.IsSharp(), id)
	}
	shock, ok := reg.Def("shock")
	require.True(t, ok)
	assert.True(t, shock.IsAmbient())
	assert.Equal(t, damage.StatArmorElectric, shock.RatingStat())
}

func TestNilDefIsUncategorized(t *testing.T) {
	var d *damage.Def
	assert.False(t, d.Categorized())
	assert.False(t, d.IsSharp())
	assert.False(t, d.IsAmbient())
}

func TestProperty_SharpBluntAmbientAreExclusive(t *testing.T) {
	reg := damage.DefaultRegistry()
	defs := reg.AllDefs()
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.SampledFrom(defs).Draw(rt, "def")
		n := 0
		for _, b := range []bool{d.IsSharp(), d.IsBlunt(), d.IsAmbient()} {
			if b {
				n++
			}
		}
		assert.LessOrEqual(rt, n, 1)
	})
}
