package inventory

import (
	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

// Worn is a live instance of an ApparelDef with its own durability.
type Worn struct {
	InstanceID string
	Def        *ApparelDef
	// HP is the remaining structural durability; the piece is destroyed at 0.
	HP       int
	material MaterialClass
}

// DefID returns the ID of the instance's definition.
func (w *Worn) DefID() string { return w.Def.ID }

// Covers reports whether the instance protects part.
func (w *Worn) Covers(part *body.Part) bool { return w.Def.CoversPart(part) }

// Stat returns the definition's value for id.
func (w *Worn) Stat(id damage.StatID) float64 { return w.Def.Stat(id) }

// Material returns the resolved material class; hard when unset.
func (w *Worn) Material() MaterialClass {
	if w.material == "" {
		return MaterialHard
	}
	return w.material
}

// TakeDamage reduces HP by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: HP >= 0.
func (w *Worn) TakeDamage(amount int) {
	w.HP -= amount
	if w.HP < 0 {
		w.HP = 0
	}
}

// Destroyed reports whether the instance has no durability left.
func (w *Worn) Destroyed() bool { return w.HP <= 0 }
