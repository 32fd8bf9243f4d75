package combat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

// fixedSrc always returns f from Float64 and 0 from Intn. With f = 0.5 every
// deflection roll lands on the attack's penetration value.
type fixedSrc struct{ f float64 }

func (s fixedSrc) Intn(int) int     { return 0 }
func (s fixedSrc) Float64() float64 { return s.f }

// stubLayer is an ApparelLayer that records the structural damage it takes.
type stubLayer struct {
	id       string
	stats    map[damage.StatID]float64
	hp       int
	material inventory.MaterialClass
	hits     []int
	// covers is nil for a layer covering every part.
	covers func(*body.Part) bool
}

func (l *stubLayer) Stat(id damage.StatID) float64 { return l.stats[id] }
func (l *stubLayer) DefID() string                 { return l.id }
func (l *stubLayer) Destroyed() bool               { return l.hp <= 0 }

func (l *stubLayer) Material() inventory.MaterialClass {
	if l.material == "" {
		return inventory.MaterialHard
	}
	return l.material
}

func (l *stubLayer) TakeDamage(n int) {
	l.hits = append(l.hits, n)
	l.hp -= n
}

func (l *stubLayer) Covers(p *body.Part) bool {
	return l.covers == nil || l.covers(p)
}

// stubTarget is a Target with directly settable protection.
type stubTarget struct {
	stats   map[damage.StatID]float64
	apparel []ApparelLayer
	shield  Layer
	fully   bool
	stance  Stance
}

func (t *stubTarget) Stat(id damage.StatID) float64 { return t.stats[id] }
func (t *stubTarget) Apparel() []ApparelLayer       { return t.apparel }
func (t *stubTarget) FullyArmored() bool            { return t.fully }
func (t *stubTarget) Stance() Stance                { return t.stance }

func (t *stubTarget) Shield() (Layer, bool) {
	if t.shield == nil || t.shield.Destroyed() {
		return nil, false
	}
	return t.shield, true
}

// shieldMap is a ShieldTable backed by a plain map.
type shieldMap map[string]*inventory.ShieldCoverage

func (m shieldMap) ShieldCoverage(id string) (*inventory.ShieldCoverage, bool) {
	c, ok := m[id]
	return c, ok
}

const testBodyYAML = `id: human
name: Human
parts:
  - id: torso
    depth: outside
    groups: [torso]
  - id: ribcage
    parent: torso
    depth: inside
    groups: [torso]
  - id: heart
    parent: ribcage
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
  - id: carapace
    parent: torso
    depth: outside
    groups: [torso, covered_by_natural_armor]
`

func testPart(t testing.TB, id string) *body.Part {
	t.Helper()
	b, err := body.LoadBodyFromBytes([]byte(testBodyYAML))
	require.NoError(t, err)
	p, ok := b.Part(id)
	require.True(t, ok, "part %q", id)
	return p
}

func testDef(t testing.TB, id string) *damage.Def {
	t.Helper()
	d, ok := damage.DefaultRegistry().Def(id)
	require.True(t, ok, "damage %q", id)
	return d
}

// exactSettings disables the deflection window so every roll equals the
// attack's penetration.
func exactSettings() Settings {
	s := DefaultSettings()
	s.DeflectEpsilon = 0
	return s
}

func newTestResolver(shields ShieldTable, logger *zap.Logger, settings Settings) *Resolver {
	if shields == nil {
		shields = shieldMap{}
	}
	return NewResolver(damage.DefaultRegistry(), shields, fixedSrc{0.5}, logger, settings)
}

func sharpAttack(t testing.TB, amount, pen float64, part *body.Part) Attack {
	t.Helper()
	return Attack{
		Def:         testDef(t, "cut"),
		Amount:      amount,
		Penetration: pen,
		Instigator:  "raider",
		Part:        part,
		Depth:       body.DepthOutside,
		Propagate:   true,
	}
}
