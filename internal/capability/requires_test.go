package capability

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/geocap/pkg/types"
)

// f is the operation wrapped in the end-to-end scenario.
func f(a, b int) int { return a + b }

func g(args ...any) (string, error) { return "ran", nil }

func sameFunc(a, b any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func TestRequires_AllAvailableReturnsSameOperation(t *testing.T) {
	reg := newTestRegistry(t, types.Config{})
	var buf bytes.Buffer

	wrapped := Requires[func(int, int) int](reg, []string{"fake.module"}, WithLogger(log.New(&buf)))(f)

	assert.True(t, sameFunc(f, wrapped))
	assert.Equal(t, 5, wrapped(2, 3))
	assert.Empty(t, buf.String())
}

func TestRequires_MissingReturnsNoOp(t *testing.T) {
	reg := newTestRegistry(t, types.Config{})
	var buf bytes.Buffer

	wrapped := Requires[func(...any) (string, error)](reg,
		[]string{"fake.module", "broken"}, WithLogger(log.New(&buf)))(g)

	assert.False(t, sameFunc(g, wrapped))
	var (
		out string
		err error
	)
	assert.NotPanics(t, func() {
		out, err = wrapped(1, "two", nil, []int{3})
	})
	assert.Empty(t, out)
	assert.NoError(t, err)

	out, err = wrapped()
	assert.Empty(t, out)
	assert.NoError(t, err)
}

func TestRequires_EndToEnd(t *testing.T) {
	reg := NewRegistry(types.Config{})

	ok, handle := reg.Probe("definitely_not_a_real_module_xyz")
	assert.False(t, ok)
	assert.Nil(t, handle)

	var buf bytes.Buffer
	wrapped := Requires[func(int, int) int](reg,
		[]string{"definitely_not_a_real_module_xyz"},
		WithVerbose(true), WithLogger(log.New(&buf)))(f)

	assert.Equal(t, 0, wrapped(2, 3))
	out := buf.String()
	assert.Contains(t, out, "missing dependencies: [definitely_not_a_real_module_xyz]")
	assert.Contains(t, out, "not running f")
}

func TestRequires_VerbosityToggle(t *testing.T) {
	reg := newTestRegistry(t, types.Config{})

	tests := []struct {
		name    string
		verbose bool
	}{
		{"verbose emits diagnostics", true},
		{"quiet emits nothing", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			wrapped := Requires[func(int, int) int](reg,
				[]string{"broken", "fake.module", "missing_a"},
				WithVerbose(tt.verbose), WithLogger(log.New(&buf)))(f)

			assert.Equal(t, 0, wrapped(1, 1))
			if !tt.verbose {
				assert.Empty(t, buf.String())
				return
			}
			out := buf.String()
			assert.Contains(t, out, "missing dependencies: [broken missing_a]")
			assert.NotContains(t, out, "fake.module")
			assert.Contains(t, out, "not running f")
		})
	}
}

func TestRequires_ProbesOnceAtWrapTime(t *testing.T) {
	reg := NewRegistry(types.Config{})
	var buf bytes.Buffer

	wrapped := Requires[func(int, int) int](reg, []string{"late"}, WithLogger(log.New(&buf)))(f)

	// Registering after wrapping must not upgrade the wrapper.
	require.NoError(t, reg.Register(types.Capability{Name: "late"}, func() (any, error) {
		return "here", nil
	}))
	ok, _ := reg.Probe("late")
	require.True(t, ok)

	assert.Equal(t, 0, wrapped(2, 3))
}

func TestRequires_WithName(t *testing.T) {
	reg := NewRegistry(types.Config{})
	var buf bytes.Buffer

	wrapped := Requires[func(int, int) int](reg, []string{"absent"},
		WithLogger(log.New(&buf)), WithName("weights.from_raster"))(f)
	wrapped(1, 2)

	assert.Contains(t, buf.String(), "not running weights.from_raster")
}

func TestWrap_NonFunctionPanics(t *testing.T) {
	reg := NewRegistry(types.Config{})
	req := Require(reg, []string{"absent"}, WithVerbose(false))

	assert.Panics(t, func() { Wrap(req, 42) })
}

func TestRequirement_Run(t *testing.T) {
	reg := newTestRegistry(t, types.Config{})
	var buf bytes.Buffer

	ok := Require(reg, []string{"fake.module"}, WithLogger(log.New(&buf)))
	assert.True(t, ok.Satisfied())
	assert.Empty(t, ok.Missing())
	ran := false
	assert.True(t, ok.Run("op", func() { ran = true }))
	assert.True(t, ran)

	missing := Require(reg, []string{"broken", "fake.module"}, WithLogger(log.New(&buf)))
	assert.False(t, missing.Satisfied())
	assert.Equal(t, []string{"broken"}, missing.Missing())
	ran = false
	assert.False(t, missing.Run("op", func() { ran = true }))
	assert.False(t, ran)
	assert.Contains(t, buf.String(), "not running op")
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "f", funcName(f))
	assert.Equal(t, "<nil>", funcName((func())(nil)))
	assert.Equal(t, "<nil>", funcName(nil))
}
