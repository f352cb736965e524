package schema

import "strings"

// SplitPath splits a dot-separated field path into its segments.
// Empty segments produced by doubled or trailing dots are dropped.
func SplitPath(path string) []string {
	raw := strings.Split(path, ".")
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Lookup reads a value from a nested object by dot path. Missing segments or
// intermediate non-object values yield (nil, false) rather than an error,
// because partially-populated upstream records are a normal input.
func Lookup(src map[string]any, path string) (any, bool) {
	segs := SplitPath(path)
	if len(segs) == 0 || src == nil {
		return nil, false
	}

	cur := src
	for i, seg := range segs {
		v, ok := cur[seg]
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// Set writes a value into a nested object by dot path, creating intermediate
// objects as needed. An intermediate segment holding a non-object value is
// replaced by an object; overrides are a last-write-wins layer.
func Set(dst map[string]any, path string, value any) {
	segs := SplitPath(path)
	if len(segs) == 0 || dst == nil {
		return
	}

	cur := dst
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = value
}
