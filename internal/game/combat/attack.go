package combat

import (
	"math"

	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

// Attack describes a single incoming hit. It is a value: every stage of
// resolution returns an adjusted copy.
type Attack struct {
	Def         *damage.Def
	Amount      float64
	Penetration float64
	Angle       float64
	// Weapon is the source weapon; nil for unarmed or unknown sources.
	Weapon     *inventory.WeaponDef
	Instigator string
	Part       *body.Part
	Height     body.Height
	Depth      body.Depth
	// PartGroup restricts the hit to a body-part group when non-empty.
	PartGroup    string
	StatusEffect string
	// InstantPermanentInjury forces the resulting injury to be permanent.
	InstantPermanentInjury bool
	// Propagate lets leftover damage spread to neighbouring parts.
	Propagate bool
}

// NewAttack builds an attack from a registered weapon's primary damage.
//
// Precondition: w must be registered (w.Def non-nil).
// Postcondition: Returns an attack carrying w's damage, amount and penetration.
func NewAttack(w *inventory.WeaponDef, instigator string, part *body.Part) Attack {
	return Attack{
		Def:         w.Def,
		Amount:      w.Amount,
		Penetration: w.Penetration,
		Weapon:      w,
		Instigator:  instigator,
		Part:        part,
		Depth:       body.DepthOutside,
		Propagate:   true,
	}
}

// IsMelee reports whether the attack comes from a melee weapon.
func (a Attack) IsMelee() bool { return a.Weapon.IsMelee() }

// Damage returns the amount rounded up to a whole number.
//
// Postcondition: Returns >= 0.
func (a Attack) Damage() int {
	if a.Amount <= 0 {
		return 0
	}
	return int(math.Ceil(a.Amount))
}

// Result is the outcome of resolving an attack against a target's armor.
type Result struct {
	// Attack is the adjusted attack; Amount is a whole number.
	Attack Attack
	// Deflected is true when no damage gets through.
	Deflected bool
	// ArmorReduced is true when any layer lowered the amount.
	ArmorReduced bool
	// ShieldAbsorbed is true when a shield deflected the attack outright.
	ShieldAbsorbed bool
}

// Damage returns the whole-number damage that got through.
func (r Result) Damage() int { return r.Attack.Damage() }

// PenetrationState is the running amount and penetration threaded through the
// layers of one resolution.
//
// Invariant: both fields are >= 0 after every layer.
type PenetrationState struct {
	Amount      float64
	Penetration float64
}
