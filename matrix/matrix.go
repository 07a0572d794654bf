// Package matrix provides dense float64 matrix multiplication with explicit
// dimension validation.
package matrix

import "fmt"

// ErrDimensionMismatch indicates matrices whose shapes cannot be multiplied
// or a matrix with ragged rows.
type ErrDimensionMismatch struct {
	LeftCols  int
	RightRows int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("matrix: dimension mismatch: left has %d columns, right has %d rows", e.LeftCols, e.RightRows)
}

// Multiply returns the product a×b.
//
// a must be m×k and b k×n; the result is m×n. Empty or ragged inputs and
// incompatible shapes are rejected.
func Multiply(a, b [][]float64) ([][]float64, error) {
	if len(a) == 0 || len(a[0]) == 0 || len(b) == 0 || len(b[0]) == 0 {
		return nil, &ErrDimensionMismatch{}
	}

	rows, cols := len(a), len(a[0])
	innerRows, innerCols := len(b), len(b[0])
	if cols != innerRows {
		return nil, &ErrDimensionMismatch{LeftCols: cols, RightRows: innerRows}
	}

	for _, row := range a {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix: ragged left matrix: row has %d columns, want %d", len(row), cols)
		}
	}
	for _, row := range b {
		if len(row) != innerCols {
			return nil, fmt.Errorf("matrix: ragged right matrix: row has %d columns, want %d", len(row), innerCols)
		}
	}

	out := make([][]float64, rows)
	for i := range out {
		row := make([]float64, innerCols)
		for k := 0; k < cols; k++ {
			aik := a[i][k]
			if aik == 0 {
				continue
			}
			for j := 0; j < innerCols; j++ {
				row[j] += aik * b[k][j]
			}
		}
		out[i] = row
	}
	return out, nil
}
