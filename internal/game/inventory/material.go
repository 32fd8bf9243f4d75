package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaterialClass classifies how a material sheds structural damage.
type MaterialClass string

const (
	// MaterialHard materials lose durability on every hit. Unclassified materials are hard.
	MaterialHard MaterialClass = "hard"
	// MaterialSoft materials are only worn down by sharp attacks.
	MaterialSoft MaterialClass = "soft"
)

// yamlMaterials is the YAML layout of a materials file.
type yamlMaterials struct {
	Materials []struct {
		ID    string        `yaml:"id"`
		Class MaterialClass `yaml:"class"`
	} `yaml:"materials"`
}

// LoadMaterialsFromBytes parses a materials table from raw YAML bytes.
//
// Postcondition: Returns a map of material ID to class, or an error naming the
// first invalid entry.
func LoadMaterialsFromBytes(data []byte) (map[string]MaterialClass, error) {
	var ym yamlMaterials
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("parsing materials YAML: %w", err)
	}
	out := make(map[string]MaterialClass, len(ym.Materials))
	for i, m := range ym.Materials {
		if m.ID == "" {
			return nil, fmt.Errorf("materials[%d]: id must not be empty", i)
		}
		if m.Class != MaterialHard && m.Class != MaterialSoft {
			return nil, fmt.Errorf("material %q: class must be %q or %q, got %q", m.ID, MaterialHard, MaterialSoft, m.Class)
		}
		if _, exists := out[m.ID]; exists {
			return nil, fmt.Errorf("material %q: already defined", m.ID)
		}
		out[m.ID] = m.Class
	}
	return out, nil
}

// LoadMaterials reads and parses the materials file at path.
//
// Precondition: path must be a readable YAML file.
func LoadMaterials(path string) (map[string]MaterialClass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading materials file %q: %w", path, err)
	}
	return LoadMaterialsFromBytes(data)
}
