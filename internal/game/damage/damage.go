// Package damage holds the immutable damage-category metadata consulted by the
// armor engine: which armor-rating stat resists a damage type, whether it is
// resolved as ambient attenuation, and how it behaves when deflected.
package damage

import (
	"errors"
	"fmt"
)

// StatID names a numeric stat exposed by an armor-bearing entity or combatant.
type StatID string

const (
	StatArmorSharp    StatID = "armor_rating_sharp"
	StatArmorBlunt    StatID = "armor_rating_blunt"
	StatArmorHeat     StatID = "armor_rating_heat"
	StatArmorElectric StatID = "armor_rating_electric"
	StatDensitySharp  StatID = "body_density_sharp"
	StatDensityBlunt  StatID = "body_density_blunt"
)

// Armor category identities with engine-level meaning.
const (
	CategorySharp = "sharp"
	CategoryBlunt = "blunt"
)

// BluntDefID is the damage def every deflected attack is converted to.
const BluntDefID = "blunt"

// ArmorCategory groups damage defs resisted by the same armor-rating stat.
type ArmorCategory struct {
	ID string `yaml:"id"`
	// RatingStat is the stat read from apparel, shields and combatants.
	RatingStat StatID `yaml:"rating_stat"`
	// DensityStat is the body-density stat used for natural tissue; empty for ambient categories.
	DensityStat StatID `yaml:"density_stat"`
	// Ambient categories are attenuated by flat percentages instead of per-layer checks.
	Ambient bool `yaml:"ambient"`
}

// Validate reports an error if the category is missing required fields.
//
// Precondition: c is non-nil.
// Postcondition: Returns nil iff the category is well-formed.
func (c *ArmorCategory) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if c.RatingStat == "" {
		errs = append(errs, errors.New("rating_stat must not be empty"))
	}
	if !c.Ambient && c.DensityStat == "" {
		errs = append(errs, errors.New("density_stat is required for non-ambient categories"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor category %q validation failed: %v", c.ID, errs)
	}
	return nil
}

// Def is a single damage type.
type Def struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// ArmorCategoryID references an ArmorCategory; empty means armor never applies.
	ArmorCategoryID string `yaml:"armor_category"`
	// NoDamageOnDeflect zeroes both damage and penetration when the attack is deflected.
	NoDamageOnDeflect bool `yaml:"no_damage_on_deflect"`

	// Armor is resolved by the Registry from ArmorCategoryID.
	Armor *ArmorCategory `yaml:"-"`
}

// Validate reports an error if the def is missing required fields.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("damage def %q validation failed: %v", d.ID, errs)
	}
	return nil
}

// Categorized reports whether armor applies to this damage at all.
func (d *Def) Categorized() bool { return d != nil && d.Armor != nil }

// IsSharp reports whether the def belongs to the sharp armor category.
func (d *Def) IsSharp() bool { return d.Categorized() && d.Armor.ID == CategorySharp }

// IsBlunt reports whether the def belongs to the blunt armor category.
func (d *Def) IsBlunt() bool { return d.Categorized() && d.Armor.ID == CategoryBlunt }

// IsAmbient reports whether the def is resolved by ambient attenuation.
func (d *Def) IsAmbient() bool { return d.Categorized() && d.Armor.Ambient }

// RatingStat returns the armor-rating stat for the def, or "" when uncategorized.
func (d *Def) RatingStat() StatID {
	if !d.Categorized() {
		return ""
	}
	return d.Armor.RatingStat
}

// DensityStat returns the body-density stat for the def, or "" when not applicable.
func (d *Def) DensityStat() StatID {
	if !d.Categorized() {
		return ""
	}
	return d.Armor.DensityStat
}
