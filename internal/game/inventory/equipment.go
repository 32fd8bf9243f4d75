package inventory

import (
	"fmt"
	"sort"
)

// Equipment holds the apparel a combatant wears and the shield it carries.
type Equipment struct {
	apparel []*Worn
	shield  *Worn
}

// NewEquipment returns an empty Equipment.
func NewEquipment() *Equipment {
	return &Equipment{}
}

// Wear puts w on, or takes it up as the shield when w is shield-class.
//
// Precondition: w must not be nil.
// Postcondition: Returns error if w is already worn or a shield is already carried.
func (e *Equipment) Wear(w *Worn) error {
	if w.Def.IsShield() {
		if e.shield != nil {
			return fmt.Errorf("inventory: Equipment.Wear: already carrying shield %q", e.shield.DefID())
		}
		e.shield = w
		return nil
	}
	for _, cur := range e.apparel {
		if cur.InstanceID == w.InstanceID {
			return fmt.Errorf("inventory: Equipment.Wear: instance %q already worn", w.InstanceID)
		}
	}
	e.apparel = append(e.apparel, w)
	return nil
}

// Apparel returns the intact worn apparel ordered outermost layer first. Pieces on
// the same layer keep the order in which they were put on.
//
// Postcondition: the returned slice is a fresh copy; destroyed pieces are excluded.
func (e *Equipment) Apparel() []*Worn {
	out := make([]*Worn, 0, len(e.apparel))
	for _, w := range e.apparel {
		if !w.Destroyed() {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Def.Layer.Rank() > out[j].Def.Layer.Rank()
	})
	return out
}

// Shield returns the carried shield, if any and still intact.
func (e *Equipment) Shield() (*Worn, bool) {
	if e.shield == nil || e.shield.Destroyed() {
		return nil, false
	}
	return e.shield, true
}

// PruneDestroyed drops every destroyed piece and returns them.
func (e *Equipment) PruneDestroyed() []*Worn {
	var gone []*Worn
	kept := e.apparel[:0]
	for _, w := range e.apparel {
		if w.Destroyed() {
			gone = append(gone, w)
			continue
		}
		kept = append(kept, w)
	}
	e.apparel = kept
	if e.shield != nil && e.shield.Destroyed() {
		gone = append(gone, e.shield)
		e.shield = nil
	}
	return gone
}
