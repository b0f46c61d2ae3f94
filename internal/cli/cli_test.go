package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/geocap/internal/shapefile"
	"github.com/mesh-intelligence/geocap/pkg/types"
)

type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
	workDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv("GEOCAP_DISABLED", "")
	t.Setenv("GEOCAP_VERBOSE", "")
	t.Setenv("GEOCAP_DATA_DIR", "")
	return &testEnv{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
		workDir:   root,
	}
}

// run executes geocap with the env's directories and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "geocap %s: %s", strings.Join(args, " "), out)
	return out
}

func (e *testEnv) writeConfig(content string) {
	e.t.Helper()
	require.NoError(e.t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(e.t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte(content), 0o644))
}

func (e *testEnv) writePoints(name string, pts ...shp.Point) string {
	e.t.Helper()
	shapes := make([]shp.Shape, len(pts))
	for i := range pts {
		shapes[i] = &pts[i]
	}
	path := filepath.Join(e.workDir, name)
	require.NoError(e.t, shapefile.SeriesToFile(types.NewSeries(shapes...), path))
	return path
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun("version")
	assert.Contains(t, out, "geocap v")
	assert.Contains(t, out, modulePath)

	_, err := os.Stat(env.configDir)
	assert.True(t, os.IsNotExist(err), "version must not touch the config dir")
}

func TestCaps(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("caps")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "scipy.stats")

	_, err := os.Stat(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err, "default config written on first run")

	out = env.mustRun("--json", "caps")
	var rows []capRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.True(t, r.Available, r.Name)
	}
}

func TestProbe(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("probe", "definitely_not_a_real_module_xyz")
	assert.Contains(t, out, "definitely_not_a_real_module_xyz: unavailable")
	assert.Contains(t, out, "not registered")

	out = env.mustRun("probe", "numpy")
	assert.Contains(t, out, "numpy: available")

	out = env.mustRun("--json", "probe", "numba")
	var row capRow
	require.NoError(t, json.Unmarshal([]byte(out), &row))
	assert.Equal(t, "numba", row.Name)
	assert.False(t, row.Available)
}

func TestCountAndStats(t *testing.T) {
	env := newTestEnv(t)
	path := env.writePoints("pts.shp", shp.Point{X: 0, Y: 0}, shp.Point{X: 2, Y: 4}, shp.Point{X: 4, Y: 8})

	out := env.mustRun("count", path)
	assert.Equal(t, "3\n", out)

	out = env.mustRun("--json", "stats", path)
	var s coordSummary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 3, s.Vertices)
	assert.InDelta(t, 2.0, s.X.Mean, 1e-9)
	assert.InDelta(t, 4.0, s.Y.Mean, 1e-9)
	assert.Equal(t, []float64{2, 4}, s.Central)

	_, err := env.run("count", filepath.Join(env.workDir, "missing.shp"))
	assert.Error(t, err)
}

func TestStats_EmptyFile(t *testing.T) {
	env := newTestEnv(t)
	path := env.writePoints("empty.shp")

	_, err := env.run("stats", path)
	assert.Error(t, err)
}

func TestStoreWorkflow(t *testing.T) {
	env := newTestEnv(t)
	path := env.writePoints("tracts.shp", shp.Point{X: 1, Y: 1}, shp.Point{X: 2, Y: 2})

	out := env.mustRun("import", path)
	assert.Contains(t, out, "imported 2 records as tracts")

	out = env.mustRun("list")
	assert.Equal(t, "tracts\n", out)

	exported := filepath.Join(env.workDir, "out.shp")
	env.mustRun("export", "tracts", exported)
	series, err := shapefile.FileToSeries(exported)
	require.NoError(t, err)
	assert.Equal(t, []shp.Shape{&shp.Point{X: 1, Y: 1}, &shp.Point{X: 2, Y: 2}}, series.Values())

	jsonl := filepath.Join(env.workDir, "tracts.jsonl")
	env.mustRun("dump", "tracts", jsonl)
	env.mustRun("restore", "copy", jsonl)

	out = env.mustRun("--json", "list")
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"copy", "tracts"}, names)

	_, err = env.run("export", "missing", exported)
	assert.Error(t, err)
}

func TestTabularDisabledSkipsStoreCommands(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("disabled: [pandas]\nverbose: true\n")
	path := env.writePoints("tracts.shp", shp.Point{X: 1, Y: 1})

	out, err := env.run("import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "missing dependencies: [pandas]")
	assert.Contains(t, out, "not running import")
	assert.NotContains(t, out, "imported")

	_, err = os.Stat(filepath.Join(env.dataDir, "series.db"))
	assert.True(t, os.IsNotExist(err), "store must not be opened")

	out = env.mustRun("--quiet", "list")
	assert.Empty(t, out)
}

func TestTabularDisabledViaEnv(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("GEOCAP_DISABLED", "pandas")

	out := env.mustRun("probe", "pandas")
	assert.Contains(t, out, "disabled by configuration")
}

func TestMandatoryMissingHalts(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("disabled: [numpy]\n")

	out, err := env.run("caps")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrMandatoryMissing)
	assert.Equal(t, exitSysError, exitCode(err))
	assert.Contains(t, out, "numpy is required")
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig("disabled: [pandas, pandas]\n")

	_, err := env.run("caps")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDisabledDuplicate)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("bad input")))
	assert.Equal(t, exitSysError, exitCode(types.ErrMandatoryMissing))
}
