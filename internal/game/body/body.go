// Package body provides the hierarchical body-region model consulted when an
// attack is traced inward through natural tissue.
package body

// Depth classifies a body part as directly exposed or protected by its parent.
type Depth string

const (
	// DepthUndefined is used by attacks that do not target a particular depth.
	DepthUndefined Depth = ""
	// DepthOutside parts are directly exposed.
	DepthOutside Depth = "outside"
	// DepthInside parts are protected by their parent.
	DepthInside Depth = "inside"
)

// Height classifies the vertical band an attack lands in.
type Height string

const (
	HeightUndefined Height = ""
	HeightBottom    Height = "bottom"
	HeightMiddle    Height = "middle"
	HeightTop       Height = "top"
)

// Group identifiers with engine-level meaning.
const (
	// GroupNaturalArmor marks parts covered by the creature's natural armor.
	GroupNaturalArmor = "covered_by_natural_armor"
	// GroupVulnerableArm marks the shield arm, exposed while its owner is mid-action.
	GroupVulnerableArm = "vulnerable_arm"
)

// Part is one node in a body tree.
type Part struct {
	// ID is unique within the owning Body.
	ID string
	// Parent is nil only for the root part.
	Parent *Part
	Depth  Depth
	Groups []string
}

// InGroup reports whether the part belongs to group.
func (p *Part) InGroup(group string) bool {
	for _, g := range p.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// IsRoot reports whether p has no parent.
func (p *Part) IsRoot() bool { return p.Parent == nil }

// OutermostParent walks from p toward the root and returns the first part with
// Outside depth, or the root when none is found.
//
// Precondition: p is non-nil.
// Postcondition: Returns p when p is Outside or has no parent.
func (p *Part) OutermostParent() *Part {
	cur := p
	for cur.Parent != nil && cur.Depth != DepthOutside {
		cur = cur.Parent
	}
	return cur
}

// InsideChain returns p followed by each ancestor reached while the current
// part is Inside, ordered from p outward.
//
// Precondition: p is non-nil.
// Postcondition: result[0] == p; every result[i] except possibly the last is Inside.
func (p *Part) InsideChain() []*Part {
	chain := []*Part{p}
	for cur := p; cur.Depth == DepthInside && cur.Parent != nil; {
		cur = cur.Parent
		chain = append(chain, cur)
	}
	return chain
}

// Body is a validated tree of parts.
//
// Invariant: exactly one part has no parent; every parent is a part of the same Body.
type Body struct {
	ID    string
	Name  string
	root  *Part
	parts map[string]*Part
	order []*Part
}

// Root returns the part with no parent.
func (b *Body) Root() *Part { return b.root }

// Part returns the part with the given id and whether it was found.
func (b *Body) Part(id string) (*Part, bool) {
	p, ok := b.parts[id]
	return p, ok
}

// Parts returns all parts in declaration order.
func (b *Body) Parts() []*Part {
	out := make([]*Part, len(b.order))
	copy(out, b.order)
	return out
}

// PartsInGroup returns every part belonging to group, in declaration order.
func (b *Body) PartsInGroup(group string) []*Part {
	var out []*Part
	for _, p := range b.order {
		if p.InGroup(group) {
			out = append(out, p)
		}
	}
	return out
}
