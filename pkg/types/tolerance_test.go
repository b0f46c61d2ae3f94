package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTolerances_AlmostEqual(t *testing.T) {
	tol := DefaultTolerances()
	assert.Equal(t, 1e-5, tol.RTOL)
	assert.Equal(t, 1e-7, tol.ATOL)

	tests := []struct {
		name string
		a, b float64
		want bool
	}{
		{"identical", 1.5, 1.5, true},
		{"within absolute tolerance near zero", 0, 5e-8, true},
		{"outside absolute tolerance near zero", 0, 1e-6, false},
		{"within relative tolerance", 1000, 1000.001, true},
		{"outside relative tolerance", 1000, 1000.1, false},
		{"relative tolerance scales with magnitude", 1e9, 1e9 + 1000, true},
		{"symmetric", 1000.001, 1000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tol.AlmostEqual(tt.a, tt.b))
		})
	}
}
