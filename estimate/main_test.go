package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/kshedden/dhmm/hmmfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherModel = `2 2 5
Rainy Sunny
Walk Shop
a:
0.7 0.3
0.4 0.6
b:
0.1 0.9
0.6 0.4
pi:
0.6 0.4
`

const walks = `2
4
Walk Shop Shop Walk
1
Walk
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()

	return out.String(), err
}

func files(t *testing.T) (dir, model, obs string) {
	t.Helper()

	dir = t.TempDir()
	t.Setenv("DHMM_CFG_PATH", dir)
	model = filepath.Join(dir, "weather.hmm")
	obs = filepath.Join(dir, "walks.obs")
	require.NoError(t, os.WriteFile(model, []byte(weatherModel), 0o644))
	require.NoError(t, os.WriteFile(obs, []byte(walks), 0o644))

	return dir, model, obs
}

func parsePair(t *testing.T, s string) (float64, float64) {
	t.Helper()

	fields := strings.Fields(s)
	require.Len(t, fields, 2)
	a, err := strconv.ParseFloat(fields[0], 64)
	require.NoError(t, err)
	b, err := strconv.ParseFloat(fields[1], 64)
	require.NoError(t, err)

	return a, b
}

func TestEstimate(t *testing.T) {

	dir, model, obs := files(t)
	newModel := filepath.Join(dir, "new.hmm")

	out, err := execute(t, "--model", model, "--obs", obs, "--out", newModel, "--log-level", "error")
	require.NoError(t, err)

	before, after := parsePair(t, out)
	assert.Greater(t, before, 0.0)
	assert.Greater(t, after, 0.0)

	m, h, err := hmmfile.LoadModel(newModel)
	require.NoError(t, err)
	assert.Equal(t, 5, h.TimeSteps)
	assert.Equal(t, []string{"Rainy", "Sunny"}, m.States())

	p, err := m.Forward([]int{0, 1, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, after, p, 1e-12)
}

func TestEstimateIterations(t *testing.T) {

	dir, model, obs := files(t)

	one := filepath.Join(dir, "one.yaml")
	_, err := execute(t, "--model", model, "--obs", obs, "--out", one, "--log-level", "error")
	require.NoError(t, err)

	// Three steps from the original model equal two more steps from the
	// result of the first.
	three := filepath.Join(dir, "three.yaml")
	out3, err := execute(t, "--model", model, "--obs", obs,
		"--out", three, "--iterations", "3", "--log-level", "error")
	require.NoError(t, err)
	_, after3 := parsePair(t, out3)

	chained := filepath.Join(dir, "chained.yaml")
	outc, err := execute(t, "--model", one, "--obs", obs,
		"--out", chained, "--iterations", "2", "--log-level", "error")
	require.NoError(t, err)
	_, afterc := parsePair(t, outc)

	assert.InDelta(t, after3, afterc, 1e-12)
}

func TestEstimateSummary(t *testing.T) {

	dir, model, obs := files(t)

	out, err := execute(t, "--model", model, "--obs", obs,
		"--out", filepath.Join(dir, "new.hmm"), "--summary", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Starting values:")
	assert.Contains(t, out, "Estimated parameters:")
}

func TestEstimateErrors(t *testing.T) {

	dir, model, obs := files(t)
	newModel := filepath.Join(dir, "new.hmm")

	_, err := execute(t, "--model", model, "--out", newModel)
	assert.Error(t, err)
	_, err = execute(t, "--model", model, "--obs", obs)
	assert.Error(t, err)
	_, err = execute(t, "--model", model, "--obs", obs, "--out", newModel, "--iterations", "0")
	assert.Error(t, err)
	_, err = execute(t, "--model", model, "--obs", obs, "--out", filepath.Join(dir, "new.json"))
	assert.Error(t, err)
}

// A bad output name is rejected before the model or observations are
// read, so missing inputs do not mask it.
func TestEstimateBadOutputFirst(t *testing.T) {

	dir, _, _ := files(t)
	missing := filepath.Join(dir, "missing.hmm")

	_, err := execute(t, "--model", missing, "--obs", missing, "--out", filepath.Join(dir, "new.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model file type")
	_, statErr := os.Stat(filepath.Join(dir, "new.json"))
	assert.True(t, os.IsNotExist(statErr))
}
