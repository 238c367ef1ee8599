package hmmlib

// Path is the result of a Viterbi decode: the probability of the single
// most likely state sequence and the sequence itself.  States is empty
// when no state sequence has positive probability.
type Path struct {
	Prob   float64
	States []int
}

// Decode uses the Viterbi algorithm to find the most probable state
// sequence for obs.
func (m *Model) Decode(obs Sequence) (Path, error) {

	if err := m.validate(obs); err != nil {
		return Path{}, err
	}

	lpr := makeFloatArray(len(obs), m.NState)
	lpt := makeIntArray(len(obs), m.NState)

	m.reconstructionProbs(obs, lpr, lpt)

	return m.traceback(lpr, lpt), nil
}

// DecodeNames is Decode for a sequence of symbol names, returning the
// state names along the path.
func (m *Model) DecodeNames(names []string) (float64, []string, error) {

	obs, err := m.Resolve(names)
	if err != nil {
		return 0, nil, err
	}

	pa, err := m.Decode(obs)
	if err != nil {
		return 0, nil, err
	}

	states, err := m.StateNames(pa.States)
	if err != nil {
		return 0, nil, err
	}

	return pa.Prob, states, nil
}

// reconstructionProbs fills lpr with the best path probabilities and lpt
// with the best previous state.  Candidate previous states are scanned in
// declaration order and replace the current best only on a strict increase
// over a running maximum that starts at 0, so ties go to the earliest state
// and a state with no reachable predecessor keeps NullState.
func (m *Model) reconstructionProbs(obs Sequence, lpr [][]float64, lpt [][]int) {

	wk := make([]float64, m.NState)

	// Beginning from initial conditions
	m.emitCol(obs[0], wk)
	for st := 0; st < m.NState; st++ {
		lpr[0][st] = m.init[st] * wk[st]
		lpt[0][st] = NullState
	}

	for t := 1; t < len(obs); t++ {

		// From st1 to st2
		for st2 := 0; st2 < m.NState; st2++ {
			for st1 := 0; st1 < m.NState; st1++ {
				wk[st1] = lpr[t-1][st1] * m.trans[st1*m.NState+st2]
			}

			// The best previous state
			jj, mx := bestIndex(wk)
			lpt[t][st2] = jj
			lpr[t][st2] = mx * m.emit[st2*m.NSymbol+obs[t]]
		}
	}
}

func (m *Model) traceback(lpr [][]float64, lpt [][]int) Path {

	nt := len(lpr)

	st, mx := bestIndex(lpr[nt-1])
	if st == NullState {
		// No state sequence can produce the observations.
		return Path{}
	}

	y := make([]int, nt)
	y[nt-1] = st
	for t := nt - 1; t > 0; t-- {
		y[t-1] = lpt[t][y[t]]
	}

	return Path{Prob: mx, States: y}
}
