package hmmlib

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const tol = 1e-12

const (
	rainy = 0
	sunny = 1
	walk  = 0
	shop  = 1
)

func weatherParams() Params {
	return Params{
		States:  []string{"Rainy", "Sunny"},
		Symbols: []string{"Walk", "Shop"},
		Trans: [][]float64{
			{0.7, 0.3},
			{0.4, 0.6},
		},
		Emit: [][]float64{
			{0.1, 0.9},
			{0.6, 0.4},
		},
		Init: []float64{0.6, 0.4},
	}
}

func weatherModel(t *testing.T) *Model {
	m, err := New(weatherParams())
	require.NoError(t, err)
	return m
}

// randDist returns n positive values summing to 1.
func randDist(rng *rand.Rand, n int) []float64 {

	v := make([]float64, n)
	var s float64
	for i := range v {
		v[i] = 0.05 + rng.Float64()
		s += v[i]
	}
	for i := range v {
		v[i] /= s
	}

	return v
}

func randModel(t *testing.T, rng *rand.Rand, nst, nsym int) *Model {

	p := Params{
		Init: randDist(rng, nst),
	}
	for i := 0; i < nst; i++ {
		p.States = append(p.States, string(rune('A'+i)))
		p.Trans = append(p.Trans, randDist(rng, nst))
		p.Emit = append(p.Emit, randDist(rng, nsym))
	}
	for k := 0; k < nsym; k++ {
		p.Symbols = append(p.Symbols, string(rune('a'+k)))
	}

	m, err := New(p)
	require.NoError(t, err)
	return m
}

func randSeq(rng *rand.Rand, nt, nsym int) Sequence {
	obs := make(Sequence, nt)
	for t := range obs {
		obs[t] = rng.Intn(nsym)
	}
	return obs
}
