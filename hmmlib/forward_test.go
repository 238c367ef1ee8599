package hmmlib

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardWeather(t *testing.T) {

	m := weatherModel(t)
	obs := Sequence{walk, shop}

	alpha, pr, err := m.ForwardTable(obs)
	require.NoError(t, err)
	require.Len(t, alpha, 2)

	assert.InDelta(t, 0.06, alpha[0][rainy], tol)
	assert.InDelta(t, 0.24, alpha[0][sunny], tol)
	assert.InDelta(t, 0.1242, alpha[1][rainy], tol)
	assert.InDelta(t, 0.0648, alpha[1][sunny], tol)
	assert.InDelta(t, 0.189, pr, tol)

	p2, err := m.Forward(obs)
	require.NoError(t, err)
	assert.InDelta(t, pr, p2, tol)
}

func TestBackwardWeather(t *testing.T) {

	m := weatherModel(t)
	obs := Sequence{walk, shop}

	beta, pr, err := m.BackwardTable(obs)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 1}, beta[1])
	assert.InDelta(t, 0.75, beta[0][rainy], tol)
	assert.InDelta(t, 0.6, beta[0][sunny], tol)
	assert.InDelta(t, 0.189, pr, tol)

	p2, err := m.Backward(obs)
	require.NoError(t, err)
	assert.InDelta(t, pr, p2, tol)
}

func TestSingleObservation(t *testing.T) {

	m := weatherModel(t)

	pf, err := m.Forward(Sequence{shop})
	require.NoError(t, err)
	pb, err := m.Backward(Sequence{shop})
	require.NoError(t, err)

	// 0.6*0.9 + 0.4*0.4
	assert.InDelta(t, 0.7, pf, tol)
	assert.InDelta(t, 0.7, pb, tol)
}

func TestForwardBackwardErrors(t *testing.T) {

	m := weatherModel(t)

	_, err := m.Forward(nil)
	assert.True(t, errors.Is(err, ErrInvalidSequence))
	_, _, err = m.ForwardTable(Sequence{})
	assert.True(t, errors.Is(err, ErrInvalidSequence))
	_, err = m.Backward(Sequence{})
	assert.True(t, errors.Is(err, ErrInvalidSequence))

	_, err = m.Forward(Sequence{walk, 7})
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
	_, _, err = m.BackwardTable(Sequence{-1})
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
}

// At every time point, sum_i alpha[t][i]*beta[t][i] is the probability of
// the whole sequence.
func TestForwardBackwardConsistency(t *testing.T) {

	rng := rand.New(rand.NewSource(1))

	for _, nst := range []int{1, 2, 4, 7} {
		for _, nsym := range []int{1, 3, 5} {
			for _, ntm := range []int{1, 2, 10, 40} {

				m := randModel(t, rng, nst, nsym)
				obs := randSeq(rng, ntm, nsym)

				alpha, pf, err := m.ForwardTable(obs)
				require.NoError(t, err)
				beta, pb, err := m.BackwardTable(obs)
				require.NoError(t, err)

				assert.InEpsilon(t, pf, pb, 1e-9)
				for tt := 0; tt < ntm; tt++ {
					var s float64
					for i := 0; i < nst; i++ {
						s += alpha[tt][i] * beta[tt][i]
					}
					assert.InEpsilon(t, pf, s, 1e-9, "nst=%d nsym=%d ntm=%d t=%d", nst, nsym, ntm, tt)
				}

				// The rolling versions agree with the tables.
				p, err := m.Forward(obs)
				require.NoError(t, err)
				assert.InEpsilon(t, pf, p, 1e-12)
				p, err = m.Backward(obs)
				require.NoError(t, err)
				assert.InEpsilon(t, pb, p, 1e-12)
			}
		}
	}
}

// The forward probability is the sum of the joint probabilities of all
// state paths.
func TestForwardSumsPaths(t *testing.T) {

	rng := rand.New(rand.NewSource(2))

	for _, nst := range []int{2, 3} {
		for _, ntm := range []int{1, 3, 5} {

			m := randModel(t, rng, nst, 3)
			obs := randSeq(rng, ntm, 3)

			var total float64
			for _, path := range allPaths(nst, ntm) {
				v, err := m.Eval(obs, path)
				require.NoError(t, err)
				total += v
			}

			pr, err := m.Forward(obs)
			require.NoError(t, err)
			assert.InEpsilon(t, total, pr, 1e-10)
		}
	}
}

// allPaths enumerates every state sequence of length ntm.
func allPaths(nst, ntm int) [][]int {

	var rv [][]int
	state := make([]int, ntm)
	for {
		rv = append(rv, append([]int(nil), state...))

		// Advance the state
		j := 0
		for ; j < ntm; j++ {
			if state[j] < nst-1 {
				state[j]++
				break
			}
			state[j] = 0
		}
		if j == ntm {
			return rv
		}
	}
}
