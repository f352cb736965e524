package shared

import (
	"reflect"
	"sort"
)

// ChangedPaths compares two versions of the same record shape and returns the
// sorted set of dot-separated field paths whose values differ. Nested objects
// are descended into; arrays and scalar values are compared as a whole, so a
// changed array element reports the array's own path.
//
// A key present on only one side counts as changed. The result is independent
// of any serialization mechanism: both inputs are already-decoded objects.
func ChangedPaths(before, after map[string]any) []string {
	paths := make(map[string]struct{})
	diffInto(before, after, "", paths)

	out := make([]string, 0, len(paths))
	for p := range paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func diffInto(before, after map[string]any, prefix string, paths map[string]struct{}) {
	seen := make(map[string]struct{}, len(before)+len(after))
	for k := range before {
		seen[k] = struct{}{}
	}
	for k := range after {
		seen[k] = struct{}{}
	}

	for k := range seen {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		bv, bok := before[k]
		av, aok := after[k]
		if bok != aok {
			paths[path] = struct{}{}
			continue
		}

		bm, bIsMap := bv.(map[string]any)
		am, aIsMap := av.(map[string]any)
		if bIsMap && aIsMap {
			diffInto(bm, am, path, paths)
			continue
		}

		if !reflect.DeepEqual(bv, av) {
			paths[path] = struct{}{}
		}
	}
}
