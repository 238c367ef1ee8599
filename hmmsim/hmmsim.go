// Package hmmsim simulates state paths and observation sequences from a
// discrete hidden Markov model.
package hmmsim

import (
	"math/rand/v2"

	"github.com/kshedden/dhmm/hmmlib"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrNotDistribution is returned when a row of the model cannot be
// sampled from because it has a negative entry or sums to zero.
var ErrNotDistribution = errors.New("row is not a probability distribution")

// Simulator draws random sequences from a model.  A Simulator is not safe
// for concurrent use.
type Simulator struct {
	model *hmmlib.Model
	init  distuv.Categorical
	trans []distuv.Categorical
	emit  []distuv.Categorical
}

// New returns a Simulator for m using src as the source of randomness.
func New(m *hmmlib.Model, src rand.Source) (*Simulator, error) {

	p := m.Params()

	if err := checkRow(p.Init); err != nil {
		return nil, errors.Wrap(err, "initial")
	}

	sim := &Simulator{
		model: m,
		init:  distuv.NewCategorical(p.Init, src),
		trans: make([]distuv.Categorical, m.NState),
		emit:  make([]distuv.Categorical, m.NState),
	}

	for st := 0; st < m.NState; st++ {
		if err := checkRow(p.Trans[st]); err != nil {
			return nil, errors.Wrapf(err, "transition row %s", p.States[st])
		}
		if err := checkRow(p.Emit[st]); err != nil {
			return nil, errors.Wrapf(err, "emission row %s", p.States[st])
		}
		sim.trans[st] = distuv.NewCategorical(p.Trans[st], src)
		sim.emit[st] = distuv.NewCategorical(p.Emit[st], src)
	}

	return sim, nil
}

func checkRow(x []float64) error {

	for _, v := range x {
		if v < 0 {
			return ErrNotDistribution
		}
	}
	if floats.Sum(x) <= 0 {
		return ErrNotDistribution
	}

	return nil
}

// GenStates draws a state path of length ntime from the Markov chain.
func (sim *Simulator) GenStates(ntime int) []int {

	if ntime <= 0 {
		return nil
	}

	y := make([]int, ntime)
	y[0] = int(sim.init.Rand())
	for t := 1; t < ntime; t++ {
		y[t] = int(sim.trans[y[t-1]].Rand())
	}

	return y
}

// GenObs draws one observation for each state in the path.
func (sim *Simulator) GenObs(states []int) hmmlib.Sequence {

	obs := make(hmmlib.Sequence, len(states))
	for t, st := range states {
		obs[t] = int(sim.emit[st].Rand())
	}

	return obs
}

// Sample draws a state path of length ntime and observations along it.
func (sim *Simulator) Sample(ntime int) ([]int, hmmlib.Sequence) {

	states := sim.GenStates(ntime)

	return states, sim.GenObs(states)
}

// SampleNames draws nseq observation sequences of length ntime, given as
// symbol names.
func (sim *Simulator) SampleNames(nseq, ntime int) [][]string {

	symbols := sim.model.Symbols()

	rv := make([][]string, nseq)
	for p := range rv {
		_, obs := sim.Sample(ntime)
		seq := make([]string, len(obs))
		for t, k := range obs {
			seq[t] = symbols[k]
		}
		rv[p] = seq
	}

	return rv
}
