// Package inventory provides the definitions and live instances of the gear the
// armor engine evaluates: worn apparel, shields, and attacking weapons.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/armorsim/internal/game/body"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

// ApparelClass distinguishes ordinary worn apparel from handheld shields.
type ApparelClass string

const (
	ClassApparel ApparelClass = "apparel"
	ClassShield  ApparelClass = "shield"
)

// ApparelLayer orders worn apparel from the skin outward.
type ApparelLayer string

const (
	LayerSkin     ApparelLayer = "skin"
	LayerMiddle   ApparelLayer = "middle"
	LayerShell    ApparelLayer = "shell"
	LayerBelt     ApparelLayer = "belt"
	LayerOverhead ApparelLayer = "overhead"
)

// layerRank maps every legal ApparelLayer to its distance from the skin.
var layerRank = map[ApparelLayer]int{
	LayerSkin:     0,
	LayerMiddle:   1,
	LayerShell:    2,
	LayerBelt:     3,
	LayerOverhead: 4,
}

// Rank returns the layer's distance from the skin; unknown layers rank as skin.
func (l ApparelLayer) Rank() int { return layerRank[l] }

// ShieldCoverage describes which body-part groups a shield protects.
type ShieldCoverage struct {
	// Groups are covered whenever the shield is carried.
	Groups []string `yaml:"groups"`
	// CrouchGroups are additionally covered while the bearer is crouching.
	CrouchGroups []string `yaml:"crouch_groups"`
}

// Covers reports whether part belongs to a covered group for the given posture.
//
// Precondition: part is non-nil.
func (s *ShieldCoverage) Covers(part *body.Part, crouching bool) bool {
	if inAnyGroup(part, s.Groups) {
		return true
	}
	return crouching && inAnyGroup(part, s.CrouchGroups)
}

// ApparelDef defines the static properties of a wearable or carried armor piece loaded from YAML.
type ApparelDef struct {
	ID          string                    `yaml:"id"`
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description"`
	Class       ApparelClass              `yaml:"class"`
	Layer       ApparelLayer              `yaml:"layer"`
	Material    string                    `yaml:"material"` // material ID; class resolved by the Registry
	Covers      []string                  `yaml:"covers"`   // body-part groups
	Stats       map[damage.StatID]float64 `yaml:"stats"`
	MaxHP       int                       `yaml:"max_hp"`
	// Shield is the coverage descriptor required by shield-class defs.
	Shield *ShieldCoverage `yaml:"shield"`
}

// IsShield reports whether the def is a shield-class layer.
func (a *ApparelDef) IsShield() bool { return a.Class == ClassShield }

// Stat returns the def's value for id, or 0 when the def does not define it.
func (a *ApparelDef) Stat(id damage.StatID) float64 { return a.Stats[id] }

// CoversPart reports whether the def's covered groups include part.
//
// Precondition: part is non-nil.
func (a *ApparelDef) CoversPart(part *body.Part) bool { return inAnyGroup(part, a.Covers) }

// Validate reports an error if the ApparelDef is missing required fields or contains illegal values.
// A shield-class def without a coverage descriptor is accepted here; the engine treats it as
// covering nothing and reports it once.
//
// Precondition: a is non-nil.
// Postcondition: Returns nil iff the def is well-formed.
func (a *ApparelDef) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if a.Class != ClassApparel && a.Class != ClassShield {
		errs = append(errs, fmt.Errorf("class %q must be %q or %q", a.Class, ClassApparel, ClassShield))
	}
	if _, ok := layerRank[a.Layer]; !ok && a.Class == ClassApparel {
		errs = append(errs, fmt.Errorf("layer %q is not a valid apparel layer", a.Layer))
	}
	if a.MaxHP < 1 {
		errs = append(errs, errors.New("max_hp must be >= 1"))
	}
	for id, v := range a.Stats {
		if v < 0 {
			errs = append(errs, fmt.Errorf("stat %q must be >= 0", id))
		}
	}
	if a.Class == ClassApparel && len(a.Covers) == 0 {
		errs = append(errs, errors.New("covers must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("apparel validation failed: %v", errs)
	}
	return nil
}

// LoadApparelFromBytes parses and validates a single ApparelDef from raw YAML bytes.
//
// Postcondition: Returns a validated *ApparelDef, or an error.
func LoadApparelFromBytes(data []byte) (*ApparelDef, error) {
	var a ApparelDef
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing apparel YAML: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadApparel reads all .yaml files in dir and returns parsed ApparelDef slice.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns non-nil slice and nil error on success; all returned defs pass Validate.
func LoadApparel(dir string) ([]*ApparelDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadApparel: cannot read directory %q: %w", dir, err)
	}

	apparel := []*ApparelDef{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadApparel: cannot read file %q: %w", path, err)
		}
		a, err := LoadApparelFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("LoadApparel: invalid apparel in %q: %w", path, err)
		}
		apparel = append(apparel, a)
	}
	return apparel, nil
}

func inAnyGroup(part *body.Part, groups []string) bool {
	for _, g := range groups {
		if part.InGroup(g) {
			return true
		}
	}
	return false
}
