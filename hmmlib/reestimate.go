package hmmlib

import (
	"gonum.org/v1/gonum/floats"
)

// Expectations holds the expected counts computed from one observation
// sequence by the forward-backward algorithm.  All of the sums run over
// t = 0..T-2.
type Expectations struct {

	// The probability of the sequence, used to normalize everything below
	Prob float64

	// Gamma[t][i] is P(state at t = i | obs), for t = 0..T-1
	Gamma [][]float64

	// XiSum[i][j] is the expected number of i -> j transitions
	XiSum [][]float64

	// GammaSum[i] is the expected number of visits to state i
	GammaSum []float64

	// EmitSum[i][k] is the expected number of visits to state i at which
	// symbol k was observed
	EmitSum [][]float64
}

// Expectations runs the forward and backward recursions on obs and
// accumulates the expected transition, visit and emission counts.  If the
// sequence has probability zero all of the counts are zero.
func (m *Model) Expectations(obs Sequence) (*Expectations, error) {

	alpha, pr, err := m.ForwardTable(obs)
	if err != nil {
		return nil, err
	}
	beta, _, err := m.BackwardTable(obs)
	if err != nil {
		return nil, err
	}

	nt := len(obs)
	ex := &Expectations{
		Prob:     pr,
		Gamma:    makeFloatArray(nt, m.NState),
		XiSum:    makeFloatArray(m.NState, m.NState),
		GammaSum: make([]float64, m.NState),
		EmitSum:  makeFloatArray(m.NState, m.NSymbol),
	}

	if pr == 0 {
		return ex, nil
	}

	// Divide by P(obs) rather than multiplying by 1/P(obs), which overflows
	// when P(obs) is subnormal.
	for t := 0; t < nt; t++ {
		floats.MulTo(ex.Gamma[t], alpha[t], beta[t])
		divide(ex.Gamma[t], pr, ex.Gamma[t])
	}

	// lcp[st2] = P(obs[t+1] | st2) * beta[t+1][st2]
	lcp := make([]float64, m.NState)
	for t := 0; t < nt-1; t++ {

		m.emitCol(obs[t+1], lcp)
		floats.Mul(lcp, beta[t+1])

		for st1 := 0; st1 < m.NState; st1++ {
			fp := alpha[t][st1]
			tr := m.transRow(st1)
			xs := ex.XiSum[st1]
			for st2 := 0; st2 < m.NState; st2++ {
				xs[st2] += fp * tr[st2] * lcp[st2] / pr
			}
		}

		floats.Add(ex.GammaSum, ex.Gamma[t])
		for st := 0; st < m.NState; st++ {
			ex.EmitSum[st][obs[t]] += ex.Gamma[t][st]
		}
	}

	return ex, nil
}

// Reestimate performs one Baum-Welch update using obs and returns the
// updated model.  The receiver is not modified.
//
// The emission counts, like the transition counts, do not include the
// final observation.
func (m *Model) Reestimate(obs Sequence) (*Model, error) {

	ex, err := m.Expectations(obs)
	if err != nil {
		return nil, err
	}

	trans := make([]float64, m.NState*m.NState)
	emit := make([]float64, m.NState*m.NSymbol)
	init := make([]float64, m.NState)

	for st := 0; st < m.NState; st++ {
		den := ex.GammaSum[st]
		if den == 0 {
			// Never visited before the last time point
			continue
		}
		divide(trans[st*m.NState:(st+1)*m.NState], den, ex.XiSum[st])
		divide(emit[st*m.NSymbol:(st+1)*m.NSymbol], den, ex.EmitSum[st])
	}
	copy(init, ex.Gamma[0])

	return &Model{
		NState:    m.NState,
		NSymbol:   m.NSymbol,
		states:    m.states,
		symbols:   m.symbols,
		stateIdx:  m.stateIdx,
		symbolIdx: m.symbolIdx,
		trans:     trans,
		emit:      emit,
		init:      init,
	}, nil
}

// divide sets dst[i] = x[i] / den.  dst and x may be the same slice.
func divide(dst []float64, den float64, x []float64) {
	for i, v := range x {
		dst[i] = v / den
	}
}
