package schema

// ProjectOptions tunes the inclusion rules of Project.
type ProjectOptions struct {
	// AllowEmptyKeys are leaf keys included as an empty string even when
	// the source never provided them. Some target-system APIs reject these
	// fields when omitted but accept them explicitly blank.
	AllowEmptyKeys []string
}

// DefaultAllowEmptyKeys is the standing exception list: address line 2 is
// legitimately blank for most addresses.
var DefaultAllowEmptyKeys = []string{"address2", "addressLine2"}

// Project walks the schema tree against a populated source object and
// produces the nested output body using the default options.
func Project(tree *Tree, source map[string]any) map[string]any {
	return ProjectWithOptions(tree, source, ProjectOptions{AllowEmptyKeys: DefaultAllowEmptyKeys})
}

// ProjectWithOptions is Project with explicit options.
//
// Inclusion rules, depth-first:
//   - A leaf value is included only if present (not nil, not empty string,
//     not an empty array). A value the source holds blank was provided
//     blank by the caller and is kept; a key strictly absent from the
//     source is omitted unless it is on the allow-empty exception list.
//   - An array template emits one projected element per source element;
//     empty or absent source arrays omit the key entirely.
//   - A nested object is included only when non-empty, unless its exact
//     dot path was explicitly declared in the flat schema.
//
// Neither Project nor Build ever raises for malformed schemas; an unknown
// node shape is treated as a leaf.
func ProjectWithOptions(tree *Tree, source map[string]any, opts ProjectOptions) map[string]any {
	if tree == nil || tree.Root == nil {
		return map[string]any{}
	}
	allowEmpty := make(map[string]struct{}, len(opts.AllowEmptyKeys))
	for _, k := range opts.AllowEmptyKeys {
		allowEmpty[k] = struct{}{}
	}
	return projectObject(tree.Root, source, allowEmpty)
}

func projectObject(node *Node, src map[string]any, allowEmpty map[string]struct{}) map[string]any {
	out := make(map[string]any)
	for name, child := range node.Children {
		v, ok := lookupKey(src, name)

		switch child.Kind {
		case KindArrayTemplate:
			elems := sourceElements(v)
			if len(elems) == 0 {
				continue
			}
			projected := make([]any, 0, len(elems))
			for _, elem := range elems {
				if child.Elem != nil && child.Elem.Kind == KindObject {
					m, isMap := elem.(map[string]any)
					if !isMap {
						continue
					}
					projected = append(projected, projectObject(child.Elem, m, allowEmpty))
					continue
				}
				// Bare array of scalars: keep present elements as-is.
				if isPresent(elem) {
					projected = append(projected, elem)
				}
			}
			if len(projected) > 0 {
				out[name] = projected
			}

		case KindObject:
			m, isMap := v.(map[string]any)
			if !isMap {
				m = nil
			}
			obj := projectObject(child, m, allowEmpty)
			if len(obj) > 0 || child.Explicit {
				out[name] = obj
			}

		default: // KindLeaf and anything unrecognized
			if !ok {
				if _, allowed := allowEmpty[name]; allowed {
					out[name] = ""
				}
				continue
			}
			if v == nil {
				continue
			}
			if isPresent(v) || isExplicitBlank(v) {
				out[name] = v
			}
		}
	}
	return out
}

func lookupKey(src map[string]any, key string) (any, bool) {
	if src == nil {
		return nil, false
	}
	v, ok := src[key]
	return v, ok
}

// sourceElements normalizes the two array shapes decoded JSON can carry.
func sourceElements(v any) []any {
	switch arr := v.(type) {
	case []any:
		return arr
	case []map[string]any:
		out := make([]any, len(arr))
		for i, m := range arr {
			out[i] = m
		}
		return out
	default:
		return nil
	}
}

// isPresent reports whether a source value counts as provided: not nil, not
// an empty string, not an empty array.
func isPresent(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// isExplicitBlank reports values the caller set blank on purpose. A nil is
// never explicit; an empty string or empty array present in the source map
// distinguishes "provided blank" from "never provided".
func isExplicitBlank(v any) bool {
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	default:
		return false
	}
}
