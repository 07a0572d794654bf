package recgo

// Deduplicate returns the values occurring two or more times in items, each
// reported once, in order of first duplicate detection.
//
// Single pass: O(n) time, O(n) auxiliary space. An empty input yields an
// empty result. Hashability is enforced at compile time by the comparable
// constraint.
func Deduplicate[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	reported := make(map[T]struct{})

	var dups []T
	for _, item := range items {
		if _, ok := seen[item]; ok {
			if _, done := reported[item]; !done {
				reported[item] = struct{}{}
				dups = append(dups, item)
			}
			continue
		}
		seen[item] = struct{}{}
	}
	return dups
}

// Merge concatenates two sequences and drops duplicate values, keeping the
// first occurrence and the combined order.
func Merge[T comparable](a, b []T) []T {
	seen := make(map[T]struct{}, len(a)+len(b))
	out := make([]T, 0, len(a)+len(b))
	for _, set := range [2][]T{a, b} {
		for _, item := range set {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
