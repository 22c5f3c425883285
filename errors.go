package kdgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kdgo/index"
)

// ErrDimensionMismatch indicates a query/index dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates an invalid configured dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrInvalidLeafSize indicates a non-positive leaf size.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidLeafSize struct {
	LeafSize int
	cause    error
}

func (e *ErrInvalidLeafSize) Error() string {
	return fmt.Sprintf("invalid leaf size: %d", e.LeafSize)
}

func (e *ErrInvalidLeafSize) Unwrap() error { return e.cause }

// translateError normalizes index-layer errors into the root API's
// error types.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var id *index.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}
	var ls *index.ErrInvalidLeafSize
	if errors.As(err, &ls) {
		return &ErrInvalidLeafSize{LeafSize: ls.LeafSize, cause: err}
	}

	return err
}
