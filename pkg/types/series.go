package types

import (
	"errors"
	"fmt"
	"iter"
)

// ErrIndexOutOfRange is returned by Series.At for a position outside the
// series.
var ErrIndexOutOfRange = errors.New("series index out of range")

// Series is an ordered, position-indexed container. Positions are the only
// identity a record has.
type Series[T any] struct {
	values []T
}

// NewSeries returns a series holding values in the given order.
func NewSeries[T any](values ...T) Series[T] {
	return Series[T]{values: values}
}

// Collect drains seq into a new series, preserving iteration order.
func Collect[T any](seq iter.Seq[T]) Series[T] {
	var s Series[T]
	for v := range seq {
		s.values = append(s.values, v)
	}
	return s
}

// Len returns the number of records.
func (s Series[T]) Len() int { return len(s.values) }

// At returns the record at position i.
func (s Series[T]) At(i int) (T, error) {
	if i < 0 || i >= len(s.values) {
		var zero T
		return zero, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.values))
	}
	return s.values[i], nil
}

// Values returns a copy of the records in order.
func (s Series[T]) Values() []T {
	out := make([]T, len(s.values))
	copy(out, s.values)
	return out
}

// All yields position/record pairs in order.
func (s Series[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.values {
			if !yield(i, v) {
				return
			}
		}
	}
}
