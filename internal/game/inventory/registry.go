package inventory

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

// Registry holds all loaded apparel, shield, and weapon definitions indexed by ID,
// together with the material table and the shield coverage side-table.
type Registry struct {
	damage    *damage.Registry
	materials map[string]MaterialClass
	apparel   map[string]*ApparelDef
	weapons   map[string]*WeaponDef
	// shields maps every shield-class def ID that carries a coverage descriptor
	// to that descriptor. Resolved once at registration.
	shields map[string]*ShieldCoverage
}

// NewRegistry returns an empty Registry that resolves damage IDs against dmg and
// material IDs against materials.
//
// Precondition: dmg must be non-nil; materials may be nil.
// Postcondition: all internal maps are initialised.
func NewRegistry(dmg *damage.Registry, materials map[string]MaterialClass) *Registry {
	if materials == nil {
		materials = map[string]MaterialClass{}
	}
	return &Registry{
		damage:    dmg,
		materials: materials,
		apparel:   make(map[string]*ApparelDef),
		weapons:   make(map[string]*WeaponDef),
		shields:   make(map[string]*ShieldCoverage),
	}
}

// RegisterApparel adds a to the registry.
//
// Precondition:  a must not be nil and must pass Validate.
// Postcondition: Apparel(a.ID) returns a; returns error if a.ID already registered.
func (r *Registry) RegisterApparel(a *ApparelDef) error {
	if _, exists := r.apparel[a.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterApparel: apparel ID %q already registered", a.ID)
	}
	if a.Material != "" {
		if _, ok := r.materials[a.Material]; !ok {
			return fmt.Errorf("inventory: Registry.RegisterApparel: apparel %q references unknown material %q", a.ID, a.Material)
		}
	}
	r.apparel[a.ID] = a
	if a.IsShield() && a.Shield != nil {
		r.shields[a.ID] = a.Shield
	}
	return nil
}

// RegisterWeapon adds w to the registry, resolving its damage defs.
//
// Precondition:  w must not be nil and must pass Validate.
// Postcondition: Weapon(w.ID) returns w with Def and every Secondary[i].Def set;
// returns error if w.ID already registered or a damage ID is unknown.
func (r *Registry) RegisterWeapon(w *WeaponDef) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	def, ok := r.damage.Def(w.DamageID)
	if !ok {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon %q references unknown damage %q", w.ID, w.DamageID)
	}
	for i := range w.Secondary {
		sd, ok := r.damage.Def(w.Secondary[i].DamageID)
		if !ok {
			return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon %q secondary references unknown damage %q", w.ID, w.Secondary[i].DamageID)
		}
		w.Secondary[i].Def = sd
	}
	w.Def = def
	r.weapons[w.ID] = w
	return nil
}

// Apparel returns the ApparelDef for id and whether it was found.
func (r *Registry) Apparel(id string) (*ApparelDef, bool) {
	a, ok := r.apparel[id]
	return a, ok
}

// Weapon returns the WeaponDef for the given id, or nil if not found.
func (r *Registry) Weapon(id string) *WeaponDef {
	return r.weapons[id]
}

// ShieldCoverage returns the coverage descriptor registered for a shield def ID.
//
// Postcondition: ok is false for non-shield defs and for shields registered without a descriptor.
func (r *Registry) ShieldCoverage(defID string) (*ShieldCoverage, bool) {
	s, ok := r.shields[defID]
	return s, ok
}

// MaterialClass returns the class of the material with the given ID. Unknown or
// empty IDs are hard.
func (r *Registry) MaterialClass(materialID string) MaterialClass {
	if c, ok := r.materials[materialID]; ok {
		return c
	}
	return MaterialHard
}

// NewWorn creates a fresh, undamaged instance of the apparel def with the given id.
//
// Postcondition: Returns a Worn at full durability with a unique InstanceID, or an error
// if id is not registered.
func (r *Registry) NewWorn(id string) (*Worn, error) {
	def, ok := r.apparel[id]
	if !ok {
		return nil, fmt.Errorf("inventory: Registry.NewWorn: unknown apparel %q", id)
	}
	return &Worn{
		InstanceID: uuid.New().String(),
		Def:        def,
		HP:         def.MaxHP,
		material:   r.MaterialClass(def.Material),
	}, nil
}

// AllApparel returns all registered ApparelDefs sorted by ID.
func (r *Registry) AllApparel() []*ApparelDef {
	out := make([]*ApparelDef, 0, len(r.apparel))
	for _, a := range r.apparel {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
