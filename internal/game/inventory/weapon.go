package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

// SecondaryDamage is an extra sub-attack a weapon delivers alongside its primary hit.
type SecondaryDamage struct {
	DamageID string  `yaml:"damage"`
	Amount   float64 `yaml:"amount"`

	// Def is resolved by the Registry from DamageID.
	Def *damage.Def `yaml:"-"`
}

// WeaponDef defines the static properties of a weapon loaded from YAML.
type WeaponDef struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Melee       bool              `yaml:"melee"`
	DamageID    string            `yaml:"damage"`
	Amount      float64           `yaml:"amount"`
	Penetration float64           `yaml:"penetration"`
	Secondary   []SecondaryDamage `yaml:"secondary"`

	// Def is resolved by the Registry from DamageID.
	Def *damage.Def `yaml:"-"`
}

// IsMelee reports whether the weapon is a melee weapon. A nil weapon is not.
func (w *WeaponDef) IsMelee() bool {
	return w != nil && w.Melee
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if w.DamageID == "" {
		errs = append(errs, errors.New("Damage must not be empty"))
	}
	if w.Amount < 0 {
		errs = append(errs, errors.New("Amount must be >= 0"))
	}
	if w.Penetration < 0 {
		errs = append(errs, errors.New("Penetration must be >= 0"))
	}
	for i, s := range w.Secondary {
		if s.DamageID == "" {
			errs = append(errs, fmt.Errorf("Secondary[%d].Damage must not be empty", i))
		}
		if s.Amount < 0 {
			errs = append(errs, fmt.Errorf("Secondary[%d].Amount must be >= 0", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %v", errs)
	}
	return nil
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	var weapons []*WeaponDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var w WeaponDef
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	return weapons, nil
}
