package hmmlib

import (
	"github.com/pkg/errors"
)

// Params is the decoded form of a model, as produced by a file reader or
// built by hand.  Trans is NState x NState, Emit is NState x NSymbol and
// Init has length NState.  Rows are expected to be probability
// distributions but this is not checked.
type Params struct {
	States  []string    `yaml:"states"`
	Symbols []string    `yaml:"symbols"`
	Trans   [][]float64 `yaml:"transition"`
	Emit    [][]float64 `yaml:"emission"`
	Init    []float64   `yaml:"initial"`
}

// Model is a discrete hidden Markov model.  A Model is never modified
// after construction, so it can be shared between goroutines.
type Model struct {

	// Number of states
	NState int

	// Number of observation symbols
	NSymbol int

	// State and symbol names in declaration order
	states  []string
	symbols []string

	// Name to index lookup, built once by New
	stateIdx  map[string]int
	symbolIdx map[string]int

	// The transition probability matrix, row-major NState x NState
	trans []float64

	// The emission probability matrix, row-major NState x NSymbol
	emit []float64

	// The initial probability distribution
	init []float64
}

// Sequence is an observation sequence given as symbol indices.
type Sequence []int

// New returns a Model built from the given parameters.  The tables are
// copied, so the caller may reuse p afterwards.
func New(p Params) (*Model, error) {

	ns, nk := len(p.States), len(p.Symbols)
	if ns == 0 {
		return nil, errors.Wrap(ErrShape, "no states")
	}
	if nk == 0 {
		return nil, errors.Wrap(ErrShape, "no symbols")
	}

	stateIdx, err := indexNames(p.States, "state")
	if err != nil {
		return nil, err
	}
	symbolIdx, err := indexNames(p.Symbols, "symbol")
	if err != nil {
		return nil, err
	}

	trans, err := flatten(p.Trans, ns, ns, "transition")
	if err != nil {
		return nil, err
	}
	emit, err := flatten(p.Emit, ns, nk, "emission")
	if err != nil {
		return nil, err
	}
	if len(p.Init) != ns {
		return nil, errors.Wrapf(ErrShape, "initial: %d values for %d states", len(p.Init), ns)
	}

	return &Model{
		NState:    ns,
		NSymbol:   nk,
		states:    append([]string(nil), p.States...),
		symbols:   append([]string(nil), p.Symbols...),
		stateIdx:  stateIdx,
		symbolIdx: symbolIdx,
		trans:     trans,
		emit:      emit,
		init:      append([]float64(nil), p.Init...),
	}, nil
}

func indexNames(names []string, kind string) (map[string]int, error) {

	idx := make(map[string]int, len(names))
	for i, na := range names {
		if _, ok := idx[na]; ok {
			return nil, errors.Wrapf(ErrDuplicateName, "%s %q", kind, na)
		}
		idx[na] = i
	}

	return idx, nil
}

// flatten packs a nrow x ncol table into a row-major slice.
func flatten(x [][]float64, nrow, ncol int, name string) ([]float64, error) {

	if len(x) != nrow {
		return nil, errors.Wrapf(ErrShape, "%s: %d rows, want %d", name, len(x), nrow)
	}

	v := make([]float64, 0, nrow*ncol)
	for i, row := range x {
		if len(row) != ncol {
			return nil, errors.Wrapf(ErrShape, "%s row %d: %d columns, want %d", name, i, len(row), ncol)
		}
		v = append(v, row...)
	}

	return v, nil
}

// Params returns a copy of the model parameters.
func (m *Model) Params() Params {

	return Params{
		States:  m.States(),
		Symbols: m.Symbols(),
		Trans:   unflatten(m.trans, m.NState, m.NState),
		Emit:    unflatten(m.emit, m.NState, m.NSymbol),
		Init:    append([]float64(nil), m.init...),
	}
}

func unflatten(x []float64, nrow, ncol int) [][]float64 {

	v := makeFloatArray(nrow, ncol)
	for i := range v {
		copy(v[i], x[i*ncol:(i+1)*ncol])
	}

	return v
}

// States returns the state names in declaration order.
func (m *Model) States() []string {
	return append([]string(nil), m.states...)
}

// Symbols returns the symbol names in declaration order.
func (m *Model) Symbols() []string {
	return append([]string(nil), m.symbols...)
}

func (m *Model) checkState(i int) error {
	if i < 0 || i >= m.NState {
		return errors.Wrapf(ErrUnknownState, "state index %d (have %d states)", i, m.NState)
	}
	return nil
}

func (m *Model) checkSymbol(k int) error {
	if k < 0 || k >= m.NSymbol {
		return errors.Wrapf(ErrUnknownSymbol, "symbol index %d (have %d symbols)", k, m.NSymbol)
	}
	return nil
}

// Transition returns P(state j at t+1 | state i at t).
func (m *Model) Transition(i, j int) (float64, error) {

	if err := m.checkState(i); err != nil {
		return 0, err
	}
	if err := m.checkState(j); err != nil {
		return 0, err
	}

	return m.trans[i*m.NState+j], nil
}

// Emission returns P(symbol k | state i).
func (m *Model) Emission(i, k int) (float64, error) {

	if err := m.checkState(i); err != nil {
		return 0, err
	}
	if err := m.checkSymbol(k); err != nil {
		return 0, err
	}

	return m.emit[i*m.NSymbol+k], nil
}

// Initial returns P(state i at t=0).
func (m *Model) Initial(i int) (float64, error) {

	if err := m.checkState(i); err != nil {
		return 0, err
	}

	return m.init[i], nil
}

// StateIndex returns the index of the named state.
func (m *Model) StateIndex(name string) (int, error) {

	i, ok := m.stateIdx[name]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownState, "state %q", name)
	}

	return i, nil
}

// SymbolIndex returns the index of the named symbol.
func (m *Model) SymbolIndex(name string) (int, error) {

	k, ok := m.symbolIdx[name]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownSymbol, "symbol %q", name)
	}

	return k, nil
}

// TransitionByName is Transition with state names.
func (m *Model) TransitionByName(from, to string) (float64, error) {

	i, err := m.StateIndex(from)
	if err != nil {
		return 0, err
	}
	j, err := m.StateIndex(to)
	if err != nil {
		return 0, err
	}

	return m.trans[i*m.NState+j], nil
}

// EmissionByName is Emission with a state name and a symbol name.
func (m *Model) EmissionByName(state, symbol string) (float64, error) {

	i, err := m.StateIndex(state)
	if err != nil {
		return 0, err
	}
	k, err := m.SymbolIndex(symbol)
	if err != nil {
		return 0, err
	}

	return m.emit[i*m.NSymbol+k], nil
}

// InitialByName is Initial with a state name.
func (m *Model) InitialByName(state string) (float64, error) {

	i, err := m.StateIndex(state)
	if err != nil {
		return 0, err
	}

	return m.init[i], nil
}

// Resolve converts a sequence of symbol names to a Sequence.
func (m *Model) Resolve(names []string) (Sequence, error) {

	obs := make(Sequence, len(names))
	for t, na := range names {
		k, err := m.SymbolIndex(na)
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", t)
		}
		obs[t] = k
	}

	return obs, nil
}

// StateNames maps state indices to their names.  Indices must be valid.
func (m *Model) StateNames(path []int) ([]string, error) {

	names := make([]string, len(path))
	for t, i := range path {
		if err := m.checkState(i); err != nil {
			return nil, errors.Wrapf(err, "position %d", t)
		}
		names[t] = m.states[i]
	}

	return names, nil
}

// validate checks that obs is non-empty and that every symbol index is in
// range.  The inference routines call this once so that the inner loops
// can index the tables directly.
func (m *Model) validate(obs Sequence) error {

	if len(obs) == 0 {
		return errors.Wrap(ErrInvalidSequence, "no observations")
	}
	for t, k := range obs {
		if err := m.checkSymbol(k); err != nil {
			return errors.Wrapf(err, "position %d", t)
		}
	}

	return nil
}

// emitCol returns P(symbol k | state i) for every state i.
func (m *Model) emitCol(k int, dst []float64) {
	for i := range dst {
		dst[i] = m.emit[i*m.NSymbol+k]
	}
}

// transRow returns the transition probabilities out of state i.
func (m *Model) transRow(i int) []float64 {
	return m.trans[i*m.NState : (i+1)*m.NState]
}
