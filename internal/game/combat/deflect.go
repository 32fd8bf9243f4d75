package combat

import (
	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

// Deflect converts a deflected attack into blunt force aimed at the outermost
// part enclosing part. Amount, angle, weapon, instigator and every other field
// carry over unchanged.
//
// Precondition: blunt must be non-nil.
// Postcondition: result.Def == blunt; result.Penetration == 0; result.Part is
// part.OutermostParent(), or a.Part when part is nil.
func Deflect(a Attack, part *body.Part, blunt *damage.Def) Attack {
	out := a
	out.Def = blunt
	out.Penetration = 0
	if part != nil {
		out.Part = part.OutermostParent()
	}
	return out
}
