// Package combat implements armor penetration for the armorsim engine: how much
// of an attack gets through a target's shield, worn apparel, and natural armor,
// and what a parry transmits to whatever blocked it.
package combat

import (
	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

// Parrier is anything an attack can strike: it exposes stats and takes damage.
type Parrier interface {
	Stat(id damage.StatID) float64
	TakeDamage(amount int)
}

// Layer is an armor-bearing entity that loses durability when struck.
type Layer interface {
	Parrier
	DefID() string
	Destroyed() bool
	Material() inventory.MaterialClass
}

// ApparelLayer is a Layer that protects a subset of body parts.
type ApparelLayer interface {
	Layer
	Covers(part *body.Part) bool
}

// Stance is the defender's current posture, consulted for shield coverage.
type Stance struct {
	// Busy is true while the defender is mid-action (attacking, aiming, working).
	Busy bool
	// Crouching extends shield coverage to its crouch groups.
	Crouching bool
}

// Target is the defender an attack is resolved against.
type Target interface {
	// Stat returns a combatant stat such as body density or natural armor.
	Stat(id damage.StatID) float64
	// Apparel returns intact worn layers, outermost first.
	Apparel() []ApparelLayer
	// Shield returns the carried shield-class layer, if any.
	Shield() (Layer, bool)
	// FullyArmored reports whether a natural-armor deflection is always converted to blunt.
	FullyArmored() bool
	Stance() Stance
}

// Victim is a living combatant that runs its own damage pipeline for attacks
// transmitted through a parry.
type Victim interface {
	Parrier
	Alive() bool
	TakeAttack(a Attack)
}

// ShieldTable resolves the coverage descriptor of a shield definition.
// *inventory.Registry satisfies ShieldTable.
type ShieldTable interface {
	ShieldCoverage(defID string) (*inventory.ShieldCoverage, bool)
}

// Class distinguishes ordinary creatures from fully armored ones.
type Class string

const (
	ClassFlesh     Class = "flesh"
	ClassMechanoid Class = "mechanoid"
)

// Combatant is the in-process Target and Victim implementation.
type Combatant struct {
	ID        string
	Name      string
	Class     Class
	Body      *body.Body
	MaxHP     int
	CurrentHP int
	// Stats holds body density and natural armor ratings.
	Stats     map[damage.StatID]float64
	Equipment *inventory.Equipment
	Posture   Stance
	// OnAttack, when set, replaces the default handling of attacks transmitted
	// through a parry, which applies the rounded amount directly.
	OnAttack func(a Attack)
}

// Stat returns the combatant's value for id, or 0 when unset.
func (c *Combatant) Stat(id damage.StatID) float64 { return c.Stats[id] }

// Apparel returns the intact worn apparel, outermost first.
//
// Postcondition: Returns an empty slice when Equipment is nil.
func (c *Combatant) Apparel() []ApparelLayer {
	if c.Equipment == nil {
		return nil
	}
	worn := c.Equipment.Apparel()
	out := make([]ApparelLayer, len(worn))
	for i, w := range worn {
		out[i] = w
	}
	return out
}

// Shield returns the carried shield if it is intact.
func (c *Combatant) Shield() (Layer, bool) {
	if c.Equipment == nil {
		return nil, false
	}
	s, ok := c.Equipment.Shield()
	if !ok {
		return nil, false
	}
	return s, true
}

// FullyArmored reports whether the combatant is a mechanoid.
func (c *Combatant) FullyArmored() bool { return c.Class == ClassMechanoid }

// Stance returns the combatant's current posture.
func (c *Combatant) Stance() Stance { return c.Posture }

// Alive reports whether the combatant has hit points left.
func (c *Combatant) Alive() bool { return c.CurrentHP > 0 }

// TakeDamage reduces CurrentHP by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: CurrentHP >= 0.
func (c *Combatant) TakeDamage(amount int) {
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// TakeAttack hands a to OnAttack, or applies its rounded amount when no
// pipeline is installed.
func (c *Combatant) TakeAttack(a Attack) {
	if c.OnAttack != nil {
		c.OnAttack(a)
		return
	}
	c.TakeDamage(a.Damage())
}
