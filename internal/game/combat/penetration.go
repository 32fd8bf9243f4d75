package combat

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/dice"
	"github.com/cory-johannsen/armorsim/internal/game/inventory"
)

// curvePoint is one knot of a piecewise-linear curve.
type curvePoint struct{ x, y float64 }

// penetrationCurve maps the penetration/armor ratio to the fraction of damage
// and penetration that survives a layer.
var penetrationCurve = []curvePoint{{0.5, 0}, {1, 0.5}, {2, 1}}

// evaluate interpolates linearly between knots and clamps to the end values
// outside them.
func evaluate(curve []curvePoint, x float64) float64 {
	if x <= curve[0].x {
		return curve[0].y
	}
	for i := 1; i < len(curve); i++ {
		if x <= curve[i].x {
			a, b := curve[i-1], curve[i]
			return a.y + (x-a.x)/(b.x-a.x)*(b.y-a.y)
		}
	}
	return curve[len(curve)-1].y
}

// penetrationMultiplier returns the surviving fraction for a layer with the
// given armor value. Armor <= 0 lets everything through.
func penetrationMultiplier(penetration, armor float64) float64 {
	if armor <= 0 {
		return 1
	}
	return evaluate(penetrationCurve, penetration/armor)
}

// Penetrate runs one attack of kind def through a single layer with the given
// armor value. When layer is non-nil it receives structural damage.
//
// Precondition: def must be categorized; st fields must be >= 0.
// Postcondition: Returns the state after the layer, both fields >= 0, and
// false iff the attack was deflected. Only sharp damage can be deflected, and
// never by a layer with no armor.
func (r *Resolver) Penetrate(def *damage.Def, armor float64, st PenetrationState, layer Layer) (PenetrationState, bool) {
	eps := r.settings.DeflectEpsilon
	roll := dice.Range(r.src, st.Penetration-eps, st.Penetration+eps)
	deflected := def.IsSharp() && armor > 0 && armor > roll

	mult := penetrationMultiplier(st.Penetration, armor)
	zeroed := deflected && def.NoDamageOnDeflect
	if zeroed {
		mult = 0
	}

	next := PenetrationState{
		Amount:      math.Max(0, st.Amount*mult),
		Penetration: st.Penetration,
	}
	if !deflected || zeroed {
		next.Penetration = math.Max(0, st.Penetration*mult)
	}

	if layer != nil {
		applyStructuralDamage(def, layer, st.Amount, next.Amount)
	}

	r.logger.Debug("layer check",
		zap.String("damage", def.ID),
		zap.Float64("armor", armor),
		zap.Float64("roll", roll),
		zap.Float64("multiplier", mult),
		zap.Float64("amount", next.Amount),
		zap.Float64("penetration", next.Penetration),
		zap.Bool("deflected", deflected),
	)
	return next, !deflected
}

// applyStructuralDamage wears layer down. Hard layers always lose at least one
// point; soft layers only lose durability to sharp damage.
func applyStructuralDamage(def *damage.Def, layer Layer, before, after float64) {
	switch layer.Material() {
	case inventory.MaterialSoft:
		if !def.IsSharp() {
			return
		}
		if n := int(math.Ceil(math.Max(0.2*before, before-after))); n > 0 {
			layer.TakeDamage(n)
		}
	default:
		layer.TakeDamage(int(math.Ceil(math.Max(1, after))))
	}
}
