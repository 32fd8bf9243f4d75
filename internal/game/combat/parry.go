package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armorsim/internal/game/dice"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

// objectLayer presents a plain Parrier as a hard armor layer.
type objectLayer struct {
	Parrier
}

func (objectLayer) DefID() string                     { return "" }
func (objectLayer) Destroyed() bool                   { return false }
func (objectLayer) Material() inventory.MaterialClass { return inventory.MaterialHard }

// ApplyParry transmits a parried attack to whatever blocked it.
//
// A living Victim receives a random fraction of the amount through its own
// TakeAttack. Any other defender takes the damage directly: ambient damage is
// scaled by the defender's own rating, and kinetic damage is cut to a fixed
// fraction and run once through the defender as a layer. A defender that is
// already a Layer keeps its own material; any other counts as hard.
//
// Precondition: a.Def must be non-nil; defender must be non-nil.
func (r *Resolver) ApplyParry(a Attack, defender Parrier) {
	if v, ok := defender.(Victim); ok && v.Alive() {
		a.Amount *= dice.Range(r.src, 0, r.settings.ParryCombatantMax)
		r.logger.Debug("parry transmitted to combatant", zap.Float64("amount", a.Amount))
		v.TakeAttack(a)
		return
	}

	if a.Def.IsAmbient() {
		n := int(math.Ceil(a.Amount * clamp01(defender.Stat(a.Def.RatingStat()))))
		r.logger.Debug("ambient parry", zap.Int("amount", n))
		if n > 0 {
			defender.TakeDamage(n)
		}
		return
	}
	if !a.Def.Categorized() {
		return
	}

	st := PenetrationState{Amount: a.Amount * r.settings.ParryObjectFactor, Penetration: a.Penetration}
	layer, ok := defender.(Layer)
	if !ok {
		layer = objectLayer{defender}
	}
	r.Penetrate(a.Def, defender.Stat(a.Def.RatingStat()), st, layer)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
