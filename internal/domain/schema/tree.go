package schema

// NodeKind discriminates the three shapes a schema node can take. The
// original loose is-this-an-object-or-array inference is replaced by an
// explicit tagged variant built once per integration+action and reused.
type NodeKind int

const (
	// KindLeaf is a terminal field carrying a placeholder value.
	KindLeaf NodeKind = iota
	// KindObject is a nested object with named children.
	KindObject
	// KindArrayTemplate is a single child template repeated per source
	// array element.
	KindArrayTemplate
)

// Node is one node of a schema tree. Exactly one of Placeholder, Children,
// or Elem is meaningful depending on Kind; an unknown Kind is treated as a
// Leaf everywhere so malformed schemas never raise.
type Node struct {
	Kind NodeKind
	// Placeholder is the declared placeholder/default for a Leaf.
	Placeholder any
	// Children holds the named children of an Object.
	Children map[string]*Node
	// Elem is the per-element template of an ArrayTemplate.
	Elem *Node
	// Explicit records that the node's own dot path was declared as a
	// target in the flat schema, which keeps an otherwise-empty object in
	// the projected output.
	Explicit bool
}

// Tree is a built schema tree. The root is always an Object.
type Tree struct {
	Root *Node
}

// DefaultArrayKeys are the path segments treated as array-of-object
// templates when no explicit set is configured. These are the literal
// segment names the integration schemas use for repeating groups.
var DefaultArrayKeys = []string{"line_items", "boxes", "packages", "lots", "shipping_lines"}

// Builder builds schema trees from flat dot-path descriptions.
type Builder struct {
	arrayKeys map[string]struct{}
}

// NewBuilder creates a Builder. With no arguments the default array segment
// names are used; passing explicit keys replaces the default set.
func NewBuilder(arrayKeys ...string) *Builder {
	keys := arrayKeys
	if len(keys) == 0 {
		keys = DefaultArrayKeys
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &Builder{arrayKeys: set}
}

// Build converts a flat mapping of dot-separated field paths to placeholder
// values into a schema tree. Intermediate segments become Object nodes (or
// ArrayTemplate nodes for configured array segments); the terminal segment
// becomes a Leaf unless a deeper path already declared an Object there —
// objects win over leaves, which makes building order-independent.
func (b *Builder) Build(flat map[string]any) *Tree {
	root := newObject()
	for path, placeholder := range flat {
		b.insert(root, SplitPath(path), placeholder)
	}
	return &Tree{Root: root}
}

func (b *Builder) insert(root *Node, segs []string, placeholder any) {
	cur := root
	for i, seg := range segs {
		terminal := i == len(segs)-1
		_, isArray := b.arrayKeys[seg]

		child := cur.Children[seg]
		switch {
		case terminal:
			if child == nil {
				if isArray {
					// A terminal array segment still projects
					// per-element; the template is a bare leaf.
					child = &Node{Kind: KindArrayTemplate, Elem: &Node{Kind: KindLeaf, Placeholder: placeholder}, Explicit: true}
				} else {
					child = &Node{Kind: KindLeaf, Placeholder: placeholder}
				}
				cur.Children[seg] = child
				return
			}
			// Existing object or array template wins over the leaf,
			// but the explicit declaration is remembered.
			child.Explicit = true
			if child.Kind == KindLeaf {
				child.Placeholder = placeholder
			}
			return

		case isArray:
			if child == nil || child.Kind != KindArrayTemplate {
				n := &Node{Kind: KindArrayTemplate, Elem: newObject()}
				// A leaf previously declared at exactly this path stays
				// remembered as an explicit target.
				n.Explicit = child != nil
				cur.Children[seg] = n
				child = n
			}
			if child.Elem == nil || child.Elem.Kind != KindObject {
				child.Elem = newObject()
			}
			cur = child.Elem

		default:
			if child == nil || child.Kind != KindObject {
				n := &Node{Kind: KindObject, Children: make(map[string]*Node)}
				n.Explicit = child != nil
				cur.Children[seg] = n
				child = n
			}
			cur = child
		}
	}
}

func newObject() *Node {
	return &Node{Kind: KindObject, Children: make(map[string]*Node)}
}
