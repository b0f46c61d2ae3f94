package types

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_PreservesOrder(t *testing.T) {
	s := NewSeries("a", "b", "c")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"a", "b", "c"}, s.Values())

	got, err := s.At(1)
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestSeries_AtOutOfRange(t *testing.T) {
	s := NewSeries(1, 2)
	for _, i := range []int{-1, 2, 10} {
		_, err := s.At(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
	}
}

func TestSeries_ValuesIsACopy(t *testing.T) {
	s := NewSeries(1, 2, 3)
	v := s.Values()
	v[0] = 99

	got, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestCollect(t *testing.T) {
	s := Collect(slices.Values([]int{3, 1, 2}))
	assert.Equal(t, []int{3, 1, 2}, s.Values())

	empty := Collect(slices.Values([]int(nil)))
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Values())
}

func TestSeries_All(t *testing.T) {
	s := NewSeries("x", "y", "z")

	var positions []int
	var values []string
	for i, v := range s.All() {
		positions = append(positions, i)
		values = append(values, v)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, positions)
	assert.Equal(t, []string{"x", "y"}, values)
}
