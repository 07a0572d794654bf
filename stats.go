package recgo

import "math"

// Summary holds the basic statistics of a numeric sequence.
type Summary struct {
	Mean     float64
	Variance float64
	StdDev   float64
}

// Statistics computes mean, population variance (dividing by n, not n-1) and
// standard deviation in two passes, with every intermediate value computed
// exactly once.
//
// An empty input is rejected with an EmptyInputError rather than letting a
// division by zero surface as NaN.
func Statistics(numbers []float64) (Summary, error) {
	if len(numbers) == 0 {
		return Summary{}, &EmptyInputError{Op: "statistics"}
	}

	n := float64(len(numbers))

	var total float64
	for _, x := range numbers {
		total += x
	}
	mean := total / n

	var sq float64
	for _, x := range numbers {
		d := x - mean
		sq += d * d
	}
	variance := sq / n

	return Summary{
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}, nil
}
