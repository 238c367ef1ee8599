package hmmlib

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGobRoundTrip(t *testing.T) {

	m := weatherModel(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeHMM(&buf, m))

	m2, err := DecodeHMM(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Params(), m2.Params())

	fname := filepath.Join(t.TempDir(), "weather.gob.gz")
	require.NoError(t, WriteHMM(fname, m))
	m3, err := ReadHMM(fname)
	require.NoError(t, err)
	assert.Equal(t, m.Params(), m3.Params())
}

func TestDecodeHMMNotGzip(t *testing.T) {
	_, err := DecodeHMM(strings.NewReader("not a model"))
	assert.Error(t, err)
}

func TestWriteSummary(t *testing.T) {

	m := weatherModel(t)

	var buf bytes.Buffer
	require.NoError(t, m.WriteSummary(&buf, "Weather"))

	s := buf.String()
	assert.True(t, strings.HasPrefix(s, "Weather\n"))
	assert.Contains(t, s, "Transition matrix:")
	assert.Contains(t, s, "Emission matrix:")
	assert.Contains(t, s, "Shop")
	assert.Contains(t, s, "0.7000")
}
