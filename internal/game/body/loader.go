package body

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlBody is the YAML representation of a body.
type yamlBody struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Parts []yamlPart `yaml:"parts"`
}

// yamlPart is the YAML representation of a body part.
type yamlPart struct {
	ID     string   `yaml:"id"`
	Parent string   `yaml:"parent"`
	Depth  Depth    `yaml:"depth"`
	Groups []string `yaml:"groups"`
}

// LoadBodyFromBytes parses and validates a body from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the body schema.
// Postcondition: Returns a Body satisfying its invariant or a non-nil error.
func LoadBodyFromBytes(data []byte) (*Body, error) {
	var yb yamlBody
	if err := yaml.Unmarshal(data, &yb); err != nil {
		return nil, fmt.Errorf("parsing body YAML: %w", err)
	}
	return build(yb)
}

// LoadBodies reads all *.yaml files in dir and returns the parsed bodies keyed by ID.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all bodies or an error on the first parse or validate failure.
func LoadBodies(dir string) (map[string]*Body, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading body dir %q: %w", dir, err)
	}

	bodies := make(map[string]*Body)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		b, err := LoadBodyFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, exists := bodies[b.ID]; exists {
			return nil, fmt.Errorf("loading %q: body %q already defined", path, b.ID)
		}
		bodies[b.ID] = b
	}
	return bodies, nil
}

// build converts the YAML form into a linked tree. Parents must be declared
// before their children, which rules out cycles.
func build(yb yamlBody) (*Body, error) {
	if yb.ID == "" {
		return nil, fmt.Errorf("body: id must not be empty")
	}
	if len(yb.Parts) == 0 {
		return nil, fmt.Errorf("body %q: must declare at least one part", yb.ID)
	}

	b := &Body{ID: yb.ID, Name: yb.Name, parts: make(map[string]*Part, len(yb.Parts))}
	for _, yp := range yb.Parts {
		if yp.ID == "" {
			return nil, fmt.Errorf("body %q: part id must not be empty", yb.ID)
		}
		if _, exists := b.parts[yp.ID]; exists {
			return nil, fmt.Errorf("body %q: duplicate part %q", yb.ID, yp.ID)
		}
		if yp.Depth != DepthOutside && yp.Depth != DepthInside {
			return nil, fmt.Errorf("body %q: part %q depth must be %q or %q, got %q",
				yb.ID, yp.ID, DepthOutside, DepthInside, yp.Depth)
		}
		p := &Part{ID: yp.ID, Depth: yp.Depth, Groups: yp.Groups}
		if yp.Parent == "" {
			if b.root != nil {
				return nil, fmt.Errorf("body %q: parts %q and %q both lack a parent", yb.ID, b.root.ID, yp.ID)
			}
			b.root = p
		} else {
			parent, ok := b.parts[yp.Parent]
			if !ok {
				return nil, fmt.Errorf("body %q: parent %q of part %q must be declared before it", yb.ID, yp.Parent, yp.ID)
			}
			p.Parent = parent
		}
		b.parts[p.ID] = p
		b.order = append(b.order, p)
	}
	if b.root == nil {
		return nil, fmt.Errorf("body %q: no root part", yb.ID)
	}
	return b, nil
}
