package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kshedden/dhmm/config"
	"github.com/kshedden/dhmm/hmmfile"
	"github.com/kshedden/dhmm/hmmlib"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCmd(t *testing.T, args ...string) *Env {
	t.Helper()

	t.Setenv("DHMM_CFG_PATH", t.TempDir())
	cmd := &cobra.Command{Use: "test"}
	config.AddFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))

	env, err := Setup(cmd, "test")
	require.NoError(t, err)

	return env
}

func TestLoadModel(t *testing.T) {

	m, err := hmmlib.New(hmmlib.Params{
		States:  []string{"a", "b"},
		Symbols: []string{"x"},
		Trans:   [][]float64{{0.5, 0.5}, {0.5, 0.5}},
		Emit:    [][]float64{{1}, {1}},
		Init:    []float64{0.5, 0.5},
	})
	require.NoError(t, err)
	fname := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, hmmfile.SaveModel(fname, m, hmmfile.Header{}))

	env := setupCmd(t, "--model", fname, "--workers", "2")
	m2, _, err := env.LoadModel()
	require.NoError(t, err)
	assert.Equal(t, m.Params(), m2.Params())

	r := env.Runner(m2)
	assert.Equal(t, 2, r.Workers)
	assert.Nil(t, r.Progress)
	require.NoError(t, env.Close())
}

func TestLoadModelMissing(t *testing.T) {

	env := setupCmd(t)
	_, _, err := env.LoadModel()
	assert.Error(t, err)
}

func TestMetricsFile(t *testing.T) {

	fname := filepath.Join(t.TempDir(), "metrics.prom")
	env := setupCmd(t, "--metrics", fname)

	m, err := hmmlib.New(hmmlib.Params{
		States:  []string{"a"},
		Symbols: []string{"x"},
		Trans:   [][]float64{{1}},
		Emit:    [][]float64{{1}},
		Init:    []float64{1},
	})
	require.NoError(t, err)

	r := env.Runner(m)
	require.NotNil(t, r.Metrics)
	_, err = r.Forward(t.Context(), []hmmlib.Sequence{{0}, {0, 0}})
	require.NoError(t, err)
	require.NoError(t, env.Close())

	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(b), `dhmm_batch_sequences_total{op="forward",result="ok"} 2`)
}
