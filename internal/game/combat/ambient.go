package combat

import (
	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

// AmbientDamage attenuates an ambient attack by flat percentages: the target's
// own rating for stat, then each worn layer covering part.
//
// Precondition: target and part must be non-nil.
// Postcondition: Returns a value in [0, amount] for amount >= 0; the result is
// not rounded.
func AmbientDamage(amount float64, stat damage.StatID, target Target, part *body.Part) float64 {
	mult := 1 - target.Stat(stat)
	if mult <= 0 {
		return 0
	}
	for _, layer := range target.Apparel() {
		if !layer.Covers(part) {
			continue
		}
		mult -= layer.Stat(stat)
		if mult <= 0 {
			return 0
		}
	}
	return amount * mult
}
