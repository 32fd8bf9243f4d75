package combat

import (
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
	"github.com/cory-johannsen/armorsim/internal/game/dice"
	"github.com/cory-johannsen/armorsim/internal/observability"
)

// Settings holds the engine tunables.
type Settings struct {
	// DeflectEpsilon is the half-width of the deflection roll around the penetration value.
	DeflectEpsilon float64
	// ParryCombatantMax bounds the random fraction a parrying combatant receives.
	ParryCombatantMax float64
	// ParryObjectFactor is the fraction of a kinetic attack an object parry receives.
	ParryObjectFactor float64
}

// DefaultSettings returns the standard engine tunables.
func DefaultSettings() Settings {
	return Settings{DeflectEpsilon: 0.05, ParryCombatantMax: 0.5, ParryObjectFactor: 0.1}
}

// Resolver runs attacks through shields, apparel, and natural armor.
//
// A Resolver may be shared by goroutines resolving attacks against distinct
// targets. Attacks against the same target must be serialized by the caller.
type Resolver struct {
	damage   *damage.Registry
	shields  ShieldTable
	src      dice.Source
	logger   *zap.Logger
	settings Settings

	mu sync.Mutex
	// warned holds shield def IDs already reported as missing coverage.
	warned map[string]struct{}
}

// NewResolver returns a Resolver.
//
// Precondition: dmg, shields and src must be non-nil. A nil logger disables logging.
// Postcondition: Returns a ready Resolver.
func NewResolver(dmg *damage.Registry, shields ShieldTable, src dice.Source, logger *zap.Logger, settings Settings) *Resolver {
	return &Resolver{
		damage:   dmg,
		shields:  shields,
		src:      src,
		logger:   observability.Component(logger, "resolver"),
		settings: settings,
		warned:   make(map[string]struct{}),
	}
}

// Resolve computes what remains of a after the target's protection around part.
//
// Precondition: target and part must be non-nil.
// Postcondition: Result.Attack.Amount is a whole number >= 0. Uncategorized
// damage is returned unchanged with every flag false.
func (r *Resolver) Resolve(a Attack, target Target, part *body.Part) Result {
	if !a.Def.Categorized() {
		return Result{Attack: a}
	}
	if a.Def.IsAmbient() {
		out := a
		out.Amount = math.Max(0, math.Ceil(AmbientDamage(a.Amount, a.Def.RatingStat(), target, part)))
		return Result{Attack: out, Deflected: out.Amount <= 0}
	}

	res := Result{Attack: a}
	st := PenetrationState{Amount: a.Amount, Penetration: a.Penetration}

	if shield, ok := target.Shield(); ok && r.shieldCovers(shield, a, target, part) {
		var penetrated bool
		before := st.Amount
		st, penetrated = r.Penetrate(a.Def, shield.Stat(a.Def.RatingStat()), st, shield)
		if !penetrated {
			r.replaySecondary(a, shield)
			r.logger.Debug("shield absorbed attack", zap.String("shield", shield.DefID()))
			res.ShieldAbsorbed = true
			return stopped(res, a)
		}
		if st.Amount < before {
			res.ArmorReduced = true
		}
		if st.Amount <= 0 {
			return stopped(res, a)
		}
	}

	cur := a
	var done bool
	if cur, st, done = r.resolveApparel(&res, cur, st, target, part); done {
		return stopped(res, cur)
	}
	if cur, st, done = r.resolveNatural(&res, cur, st, target, part); done {
		return stopped(res, cur)
	}

	cur.Amount = math.Ceil(st.Amount)
	res.Attack = cur
	return res
}

// resolveApparel runs the attack through every worn layer covering part,
// outermost first. It reports true when the attack was fully absorbed.
func (r *Resolver) resolveApparel(res *Result, a Attack, st PenetrationState, target Target, part *body.Part) (Attack, PenetrationState, bool) {
	// Snapshot once: layers destroyed during the pass stay in the sequence.
	var covering []ApparelLayer
	for _, layer := range target.Apparel() {
		if layer.Covers(part) {
			covering = append(covering, layer)
		}
	}

	for _, layer := range covering {
		before := st.Amount
		var penetrated bool
		st, penetrated = r.Penetrate(a.Def, layer.Stat(a.Def.RatingStat()), st, layer)
		if !penetrated && st.Amount > 0 {
			a = Deflect(a, part, r.damage.Blunt())
			st.Penetration = a.Penetration
			r.logger.Debug("deflected to blunt",
				zap.String("layer", layer.DefID()),
				zap.String("part", a.Part.ID),
			)
			// The converted attack still has to get through the layer that deflected it.
			if !layer.Destroyed() {
				st, _ = r.Penetrate(a.Def, layer.Stat(a.Def.RatingStat()), st, layer)
			}
		}
		if st.Amount < before {
			res.ArmorReduced = true
		}
		if st.Amount <= 0 {
			return a, st, true
		}
	}
	return a, st, false
}

// resolveNatural runs the attack through the target's own tissue, starting at
// part and moving out through each enclosing Inside part. It reports true when
// the attack was fully absorbed.
func (r *Resolver) resolveNatural(res *Result, a Attack, st PenetrationState, target Target, part *body.Part) (Attack, PenetrationState, bool) {
	for _, region := range part.InsideChain() {
		density := target.Stat(a.Def.DensityStat())

		if !region.InGroup(body.GroupNaturalArmor) {
			// Unarmored tissue can stop an attack but never absorbs any of it.
			tissue, penetrated := r.Penetrate(a.Def, density, st, nil)
			st.Penetration = tissue.Penetration
			if !penetrated {
				r.logger.Debug("stopped by tissue", zap.String("part", region.ID))
				break
			}
			continue
		}

		before := st.Amount
		var penetrated bool
		st, penetrated = r.Penetrate(a.Def, density+target.Stat(a.Def.RatingStat()), st, nil)
		if !penetrated && st.Amount > 0 {
			a.Part = region
			if target.FullyArmored() {
				a = Deflect(a, region, r.damage.Blunt())
				st.Penetration = a.Penetration
				armor := target.Stat(a.Def.DensityStat()) + target.Stat(a.Def.RatingStat())
				st, _ = r.Penetrate(a.Def, armor, st, nil)
			}
			r.logger.Debug("deflected by natural armor",
				zap.String("part", region.ID),
				zap.Bool("fully_armored", target.FullyArmored()),
			)
		}
		if st.Amount < before {
			res.ArmorReduced = true
		}
		if st.Amount <= 0 {
			return a, st, true
		}
		if !penetrated {
			break
		}
	}
	return a, st, false
}

// replaySecondary runs each of the weapon's secondary sub-attacks against the
// shield that absorbed the primary hit, until the shield breaks.
func (r *Resolver) replaySecondary(a Attack, shield Layer) {
	if a.Weapon == nil {
		return
	}
	for _, sec := range a.Weapon.Secondary {
		if shield.Destroyed() {
			return
		}
		if !sec.Def.Categorized() {
			continue
		}
		st := PenetrationState{Amount: sec.Amount, Penetration: a.Penetration}
		r.Penetrate(sec.Def, shield.Stat(sec.Def.RatingStat()), st, shield)
	}
}

// shieldCovers reports whether shield protects part against a. A shield
// definition without a coverage descriptor covers nothing and is reported once.
func (r *Resolver) shieldCovers(shield Layer, a Attack, target Target, part *body.Part) bool {
	cov, ok := r.shields.ShieldCoverage(shield.DefID())
	if !ok {
		r.warnMissingCoverage(shield.DefID())
		return false
	}
	stance := target.Stance()
	if !cov.Covers(part, stance.Crouching) {
		return false
	}
	if a.IsMelee() && stance.Busy && part.InGroup(body.GroupVulnerableArm) {
		return false
	}
	return true
}

func (r *Resolver) warnMissingCoverage(defID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.warned[defID]; seen {
		return
	}
	r.warned[defID] = struct{}{}
	r.logger.Warn("shield has no coverage descriptor; treating as uncovered",
		zap.String("shield", defID),
	)
}

// stopped marks res as fully absorbed with a as its zero-damage attack.
func stopped(res Result, a Attack) Result {
	a.Amount = 0
	res.Attack = a
	res.Deflected = true
	return res
}
