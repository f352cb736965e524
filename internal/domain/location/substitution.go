package location

// Substitute looks up a value in the named substitution list and returns
// the substituted value, or the input unchanged when the list or entry is
// absent or the value is empty. Keys match the source value's exact casing:
// the tables are tenant-authored and no normalization is applied.
//
// Lists are scanned in array order; the first list with a matching name is
// consulted and a miss there is final.
func Substitute(lists []SubstitutionList, listName, value string) string {
	if listName == "" || value == "" {
		return value
	}
	for _, l := range lists {
		if l.ListName != listName {
			continue
		}
		if mapped, ok := l.Mapping[value]; ok {
			return mapped
		}
		return value
	}
	return value
}
