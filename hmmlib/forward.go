package hmmlib

import (
	"gonum.org/v1/gonum/floats"
)

// ForwardTable fills the table of forward probabilities
//
//	alpha[t][i] = P(obs[0..t], state at t = i)
//
// one time point at a time, and returns it together with the total
// probability of the sequence.
func (m *Model) ForwardTable(obs Sequence) ([][]float64, float64, error) {

	if err := m.validate(obs); err != nil {
		return nil, 0, err
	}

	alpha := makeFloatArray(len(obs), m.NState)
	ep := make([]float64, m.NState)

	m.forwardInit(obs[0], ep, alpha[0])
	for t := 1; t < len(obs); t++ {
		m.forwardStep(obs[t], ep, alpha[t-1], alpha[t])
	}

	return alpha, floats.Sum(alpha[len(obs)-1]), nil
}

// Forward returns the probability of the sequence using the forward
// recursion.  Only two rows of the table are kept.
func (m *Model) Forward(obs Sequence) (float64, error) {

	if err := m.validate(obs); err != nil {
		return 0, err
	}

	prev := make([]float64, m.NState)
	cur := make([]float64, m.NState)
	ep := make([]float64, m.NState)

	m.forwardInit(obs[0], ep, cur)
	for t := 1; t < len(obs); t++ {
		prev, cur = cur, prev
		m.forwardStep(obs[t], ep, prev, cur)
	}

	return floats.Sum(cur), nil
}

func (m *Model) forwardInit(k int, ep, dst []float64) {
	m.emitCol(k, ep)
	floats.MulTo(dst, m.init, ep)
}

// forwardStep computes one row of the forward table from the previous
// row.  Transition is from state st2 at time t-1 to state st1 at time t.
func (m *Model) forwardStep(k int, ep, prev, dst []float64) {

	zero(dst)
	for st2 := 0; st2 < m.NState; st2++ {
		floats.AddScaled(dst, prev[st2], m.transRow(st2))
	}

	m.emitCol(k, ep)
	floats.Mul(dst, ep)
}

// Zero the elements of x
func zero(x []float64) {
	for j := range x {
		x[j] = 0
	}
}
