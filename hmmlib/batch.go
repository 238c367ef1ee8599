package hmmlib

import (
	"github.com/pkg/errors"
)

// Forward returns the forward probability of each sequence.
func Forward(m *Model, seqs []Sequence) ([]float64, error) {
	return each(seqs, m.Forward)
}

// Backward returns the backward probability of each sequence.  In exact
// arithmetic these agree with Forward.
func Backward(m *Model, seqs []Sequence) ([]float64, error) {
	return each(seqs, m.Backward)
}

// Decode returns the Viterbi path of each sequence.
func Decode(m *Model, seqs []Sequence) ([]Path, error) {
	return each(seqs, m.Decode)
}

// Reestimate returns the model obtained by one Baum-Welch update using seq.
func Reestimate(m *Model, seq Sequence) (*Model, error) {
	return m.Reestimate(seq)
}

// ResolveAll converts sequences of symbol names to Sequences.
func ResolveAll(m *Model, names [][]string) ([]Sequence, error) {
	return each(names, m.Resolve)
}

// each applies f to every sequence and stops at the first error.
func each[S any, R any](seqs []S, f func(S) (R, error)) ([]R, error) {

	if len(seqs) == 0 {
		return nil, ErrEmptyObservationSet
	}

	rv := make([]R, len(seqs))
	for p, seq := range seqs {
		r, err := f(seq)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence %d", p)
		}
		rv[p] = r
	}

	return rv, nil
}
