package damage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry is the immutable set of armor categories and damage defs.
//
// Invariant: every registered Def with a non-empty ArmorCategoryID has Armor set,
// and Blunt() is non-nil.
type Registry struct {
	categories map[string]*ArmorCategory
	defs       map[string]*Def
	blunt      *Def
}

// File is the YAML layout of a damage definition file.
type File struct {
	ArmorCategories []*ArmorCategory `yaml:"armor_categories"`
	Defs            []*Def           `yaml:"damage_defs"`
}

// NewRegistry validates cats and defs, resolves each def's armor category, and
// returns the resulting Registry.
//
// Precondition: none of cats or defs is nil.
// Postcondition: Returns a Registry satisfying its invariant, or an error naming
// the first violation. Inputs are owned by the Registry afterwards.
func NewRegistry(cats []*ArmorCategory, defs []*Def) (*Registry, error) {
	r := &Registry{
		categories: make(map[string]*ArmorCategory, len(cats)),
		defs:       make(map[string]*Def, len(defs)),
	}
	for _, c := range cats {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.categories[c.ID]; exists {
			return nil, fmt.Errorf("damage: armor category %q already registered", c.ID)
		}
		r.categories[c.ID] = c
	}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := r.defs[d.ID]; exists {
			return nil, fmt.Errorf("damage: def %q already registered", d.ID)
		}
		if d.ArmorCategoryID != "" {
			cat, ok := r.categories[d.ArmorCategoryID]
			if !ok {
				return nil, fmt.Errorf("damage: def %q references unknown armor category %q", d.ID, d.ArmorCategoryID)
			}
			d.Armor = cat
		}
		r.defs[d.ID] = d
	}
	blunt, ok := r.defs[BluntDefID]
	if !ok || !blunt.IsBlunt() {
		return nil, fmt.Errorf("damage: def %q with armor category %q is required", BluntDefID, CategoryBlunt)
	}
	if _, ok := r.categories[CategorySharp]; !ok {
		return nil, fmt.Errorf("damage: armor category %q is required", CategorySharp)
	}
	r.blunt = blunt
	return r, nil
}

// LoadRegistryFromBytes parses a damage definition file from raw YAML bytes.
//
// Postcondition: Returns a valid Registry or a non-nil error.
func LoadRegistryFromBytes(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing damage YAML: %w", err)
	}
	return NewRegistry(f.ArmorCategories, f.Defs)
}

// LoadRegistry reads and parses the damage definition file at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid Registry or a non-nil error.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading damage file %q: %w", path, err)
	}
	r, err := LoadRegistryFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return r, nil
}

// Def returns the damage def for id and whether it was found.
func (r *Registry) Def(id string) (*Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Category returns the armor category for id and whether it was found.
func (r *Registry) Category(id string) (*ArmorCategory, bool) {
	c, ok := r.categories[id]
	return c, ok
}

// Blunt returns the def deflected attacks are converted to.
//
// Postcondition: Returns a non-nil blunt def.
func (r *Registry) Blunt() *Def { return r.blunt }

// AllDefs returns all registered defs in unspecified order.
func (r *Registry) AllDefs() []*Def {
	out := make([]*Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// DefaultRegistry returns the built-in damage table.
//
// Postcondition: Returns a non-nil Registry; panics only if the built-in table is malformed.
func DefaultRegistry() *Registry {
	cats := []*ArmorCategory{
		{ID: CategorySharp, RatingStat: StatArmorSharp, DensityStat: StatDensitySharp},
		{ID: CategoryBlunt, RatingStat: StatArmorBlunt, DensityStat: StatDensityBlunt},
		{ID: "heat", RatingStat: StatArmorHeat, Ambient: true},
		{ID: "electric", RatingStat: StatArmorElectric, Ambient: true},
	}
	defs := []*Def{
		{ID: "cut", Name: "Cut", ArmorCategoryID: CategorySharp},
		{ID: "stab", Name: "Stab", ArmorCategoryID: CategorySharp},
		{ID: "bullet", Name: "Bullet", ArmorCategoryID: CategorySharp},
		{ID: "arrow", Name: "Arrow", ArmorCategoryID: CategorySharp},
		{ID: "bite", Name: "Bite", ArmorCategoryID: CategorySharp},
		{ID: "tranq_dart", Name: "Tranquilizer Dart", ArmorCategoryID: CategorySharp, NoDamageOnDeflect: true},
		{ID: BluntDefID, Name: "Blunt", ArmorCategoryID: CategoryBlunt},
		{ID: "crush", Name: "Crush", ArmorCategoryID: CategoryBlunt},
		{ID: "burn", Name: "Burn", ArmorCategoryID: "heat"},
		{ID: "flame", Name: "Flame", ArmorCategoryID: "heat"},
		{ID: "shock", Name: "Shock", ArmorCategoryID: "electric"},
		{ID: "deterioration", Name: "Deterioration"},
	}
	r, err := NewRegistry(cats, defs)
	if err != nil {
		panic("damage: DefaultRegistry: " + err.Error())
	}
	return r
}
