package hmmlib

import (
	"github.com/pkg/errors"
)

// Eval returns the joint probability of the observations obs and the
// state sequence states,
//
//	init[s0] P(o0 | s0) prod_t trans[s(t-1), s(t)] P(o(t) | s(t)).
//
// If the two sequences have different lengths the joint event is
// impossible and the result is 0 with no error.
func (m *Model) Eval(obs Sequence, states []int) (float64, error) {

	if len(obs) != len(states) {
		return 0, nil
	}
	if err := m.validate(obs); err != nil {
		return 0, err
	}
	for t, st := range states {
		if err := m.checkState(st); err != nil {
			return 0, errors.Wrapf(err, "position %d", t)
		}
	}

	pr := m.init[states[0]] * m.emit[states[0]*m.NSymbol+obs[0]]
	for t := 1; t < len(obs); t++ {
		st1, st2 := states[t-1], states[t]
		pr *= m.trans[st1*m.NState+st2] * m.emit[st2*m.NSymbol+obs[t]]
	}

	return pr, nil
}

// EvalNames is Eval for symbol and state names.
func (m *Model) EvalNames(obs, states []string) (float64, error) {

	if len(obs) != len(states) {
		return 0, nil
	}

	seq, err := m.Resolve(obs)
	if err != nil {
		return 0, err
	}

	path := make([]int, len(states))
	for t, na := range states {
		if path[t], err = m.StateIndex(na); err != nil {
			return 0, errors.Wrapf(err, "position %d", t)
		}
	}

	return m.Eval(seq, path)
}
