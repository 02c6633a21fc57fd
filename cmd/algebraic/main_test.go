package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"algebraics/internal/config"
	"algebraics/internal/enumerate"
	"algebraics/internal/export"
)

// run executes the CLI against a config path that does not exist, so only
// defaults, environment and flags apply.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config=" + filepath.Join(t.TempDir(), "absent.yaml")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSolveCmd_Quadratic(t *testing.T) {
	out, err := run(t, "solve", "--format=csv", "--", "-3", "2", "1")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	var reals []float64
	for _, row := range rows[1:] {
		re, err := strconv.ParseFloat(row[0], 64)
		require.NoError(t, err)
		reals = append(reals, re)
		assert.Equal(t, "2", row[3])
	}
	sort.Float64s(reals)
	assert.InEpsilon(t, -3.0, reals[0], 1e-5)
	assert.InEpsilon(t, 1.0, reals[1], 1e-5)
}

func TestSolveCmd_ComplexCoefficients(t *testing.T) {
	out, err := run(t, "solve", "--format=text", "--", "1i", "1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "x + (0+1i)\t"), out)
}

func TestSolveCmd_Errors(t *testing.T) {
	_, err := run(t, "solve", "--", "one", "2")
	assert.ErrorContains(t, err, "invalid coefficient")

	t.Setenv("ALGEBRAICS_MAX_ATTEMPTS_PER_ROOT", "1")
	t.Setenv("ALGEBRAICS_MAX_ROOT_INITIALIZATIONS", "1")
	t.Setenv("ALGEBRAICS_TOLERANCE", "0")
	_, err = run(t, "solve", "--", "-6", "11", "-6", "1")
	assert.ErrorIs(t, err, errNoConvergence)
}

func TestCountCmd(t *testing.T) {
	out, err := run(t, "count", "--strategy=dense", "--max-length=4")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = run(t, "count", "--strategy=composition", "--max-length=3", "--max-degree=3")
	require.NoError(t, err)
	assert.Equal(t, "12\n", out)

	_, err = run(t, "count", "--strategy=spiral")
	assert.ErrorIs(t, err, enumerate.ErrUnknownStrategy)
}

func TestRootsCmd_JSONL(t *testing.T) {
	out, err := run(t, "roots", "--strategy=dense", "--max-length=6", "--workers=2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var rec export.Record
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Len(t, rec.Roots, rec.Degree, "roots of %s", rec.Polynomial)
	}
}

func TestRootsCmd_Viewport(t *testing.T) {
	out, err := run(t, "roots", "--strategy=dense", "--max-length=7", "--format=csv", "--", "0", "0", "1", "1")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, row := range rows[1:] {
		re, _ := strconv.ParseFloat(row[0], 64)
		im, _ := strconv.ParseFloat(row[1], 64)
		assert.True(t, re >= 0 && re <= 1 && im >= 0 && im <= 1, "root %v+%vi outside viewport", re, im)
	}

	_, err = run(t, "roots", "--", "0", "0", "1")
	assert.Error(t, err)

	_, err = run(t, "roots", "--", "1", "1", "0", "0")
	assert.ErrorIs(t, err, export.ErrInvalidViewport)
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "config", "--workers=3")
	require.NoError(t, err)
	assert.Contains(t, out, "strategy: dense")
	assert.Contains(t, out, "workers: 3")

	path := filepath.Join(t.TempDir(), "algebraics.yaml")
	_, err = run(t, "config", "--seed=5", "--write", path)
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), cfg.Polynomial.Seed)
}

func TestInvalidFlagValue(t *testing.T) {
	_, err := run(t, "count", "--workers=0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
