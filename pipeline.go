package recgo

import "slices"

// FilterTransform returns the squares of all elements strictly greater than
// threshold, sorted ascending. Duplicate squared values are permitted in the
// output.
//
// One pass builds the filtered, squared sequence; the sort is a single
// O(n log n) step on the survivors. Empty input, or no element passing the
// threshold, yields an empty result.
func FilterTransform(data []float64, threshold float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, x := range data {
		if x > threshold {
			out = append(out, x*x)
		}
	}
	slices.Sort(out)
	return out
}
