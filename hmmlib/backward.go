package hmmlib

import (
	"gonum.org/v1/gonum/floats"
)

// BackwardTable fills the table of backward probabilities
//
//	beta[t][i] = P(obs[t+1..T-1] | state at t = i)
//
// from the last time point to the first, and returns it together with the
// total probability of the sequence, sum_i init[i] * P(obs[0] | i) * beta[0][i].
func (m *Model) BackwardTable(obs Sequence) ([][]float64, float64, error) {

	if err := m.validate(obs); err != nil {
		return nil, 0, err
	}

	nt := len(obs)
	beta := makeFloatArray(nt, m.NState)
	wk := make([]float64, m.NState)

	for st := range beta[nt-1] {
		beta[nt-1][st] = 1
	}
	for t := nt - 2; t >= 0; t-- {
		m.backwardStep(obs[t+1], wk, beta[t+1], beta[t])
	}

	return beta, m.backwardTotal(obs[0], wk, beta[0]), nil
}

// Backward returns the probability of the sequence using the backward
// recursion.  Only two rows of the table are kept.
func (m *Model) Backward(obs Sequence) (float64, error) {

	if err := m.validate(obs); err != nil {
		return 0, err
	}

	next := make([]float64, m.NState)
	cur := make([]float64, m.NState)
	wk := make([]float64, m.NState)

	for st := range cur {
		cur[st] = 1
	}
	for t := len(obs) - 2; t >= 0; t-- {
		next, cur = cur, next
		m.backwardStep(obs[t+1], wk, next, cur)
	}

	return m.backwardTotal(obs[0], wk, cur), nil
}

// backwardStep computes beta at time t from beta at time t+1, where k is
// the symbol observed at t+1.  From st1 at t to st2 at t+1.
func (m *Model) backwardStep(k int, wk, next, dst []float64) {

	m.emitCol(k, wk)
	floats.Mul(wk, next)

	for st1 := 0; st1 < m.NState; st1++ {
		dst[st1] = floats.Dot(m.transRow(st1), wk)
	}
}

func (m *Model) backwardTotal(k int, wk, beta0 []float64) float64 {

	m.emitCol(k, wk)
	floats.Mul(wk, m.init)

	return floats.Dot(wk, beta0)
}
