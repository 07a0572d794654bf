package recgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/recgo/matrix"
	"github.com/hupe1980/recgo/memo"
)

var (
	// ErrInvalidInput is the kind sentinel for inputs that are rejected
	// outright: empty sequences where a value must be computed, negative
	// arguments to the evaluator. Match with errors.Is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTypeMismatch is the kind sentinel for values whose type is
	// incompatible with the requested operation. Match with errors.Is.
	ErrTypeMismatch = errors.New("type mismatch")
)

// EmptyInputError indicates an empty sequence passed to an operation that
// requires at least one element.
type EmptyInputError struct {
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: input sequence is empty", e.Op)
}

func (e *EmptyInputError) Unwrap() error { return ErrInvalidInput }

// NegativeInputError indicates a negative argument to the evaluator.
type NegativeInputError struct {
	N int
}

func (e *NegativeInputError) Error() string {
	return fmt.Sprintf("fib: negative input: %d", e.N)
}

func (e *NegativeInputError) Unwrap() error { return ErrInvalidInput }

// OutOfRangeError indicates an evaluator argument whose result would
// overflow the result type.
type OutOfRangeError struct {
	N   int
	Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("fib: input %d exceeds maximum %d", e.N, e.Max)
}

func (e *OutOfRangeError) Unwrap() error { return ErrInvalidInput }

// translateError maps internal package errors to the public taxonomy.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var negErr *memo.NegativeInputError
	if errors.As(err, &negErr) {
		return &NegativeInputError{N: negErr.N}
	}

	var ovErr *memo.OverflowError
	if errors.As(err, &ovErr) {
		return &OutOfRangeError{N: ovErr.N, Max: memo.MaxFib}
	}

	var dimErr *matrix.ErrDimensionMismatch
	if errors.As(err, &dimErr) {
		return &DimensionMismatchError{LeftCols: dimErr.LeftCols, RightRows: dimErr.RightRows}
	}

	return err
}

// DimensionMismatchError indicates matrix operands whose shapes are
// incompatible.
type DimensionMismatchError struct {
	LeftCols  int
	RightRows int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("matrix multiply: left has %d columns, right has %d rows", e.LeftCols, e.RightRows)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrTypeMismatch }
