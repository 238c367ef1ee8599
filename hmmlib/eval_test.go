package hmmlib

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {

	m := weatherModel(t)

	v, err := m.Eval(Sequence{walk, shop, shop}, []int{sunny, rainy, rainy})
	require.NoError(t, err)
	assert.InDelta(t, 0.4*0.6*0.4*0.9*0.7*0.9, v, tol)

	v, err = m.EvalNames([]string{"Walk", "Shop"}, []string{"Sunny", "Rainy"})
	require.NoError(t, err)
	assert.InDelta(t, 0.0864, v, tol)
}

func TestEvalLengthMismatch(t *testing.T) {

	m := weatherModel(t)

	for _, states := range [][]int{nil, {rainy}, {rainy, sunny, sunny}} {
		v, err := m.Eval(Sequence{walk, shop}, states)
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
	}

	// Even unknown names are not looked at.
	v, err := m.EvalNames([]string{"Walk"}, []string{"Foggy", "Foggy"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEvalErrors(t *testing.T) {

	m := weatherModel(t)

	_, err := m.Eval(Sequence{}, []int{})
	assert.True(t, errors.Is(err, ErrInvalidSequence))
	_, err = m.Eval(Sequence{walk, shop}, []int{rainy, 2})
	assert.True(t, errors.Is(err, ErrUnknownState))
	_, err = m.Eval(Sequence{walk, 3}, []int{rainy, rainy})
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
	_, err = m.EvalNames([]string{"Walk"}, []string{"Foggy"})
	assert.True(t, errors.Is(err, ErrUnknownState))
	_, err = m.EvalNames([]string{"Swim"}, []string{"Rainy"})
	assert.True(t, errors.Is(err, ErrUnknownSymbol))
}
