package hmmfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kshedden/dhmm/hmmlib"
	"github.com/pkg/errors"
)

// ErrFormat is returned for malformed model or observation files.
var ErrFormat = errors.New("malformed file")

// Header holds the values of a model file that are not part of the model.
type Header struct {

	// The nominal length of the observation sequences, carried through
	// from the first line of a text model file
	TimeSteps int `yaml:"time_steps,omitempty"`
}

// lineReader returns the non-blank lines of a file split into fields,
// keeping track of the line number for error messages.
type lineReader struct {
	scan *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &lineReader{scan: scan}
}

func (lr *lineReader) next() ([]string, error) {

	for lr.scan.Scan() {
		lr.line++
		f := strings.Fields(lr.scan.Text())
		if len(f) > 0 {
			return f, nil
		}
	}
	if err := lr.scan.Err(); err != nil {
		return nil, err
	}

	return nil, errors.Wrapf(ErrFormat, "line %d: unexpected end of file", lr.line+1)
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrFormat, "line %d: %s", lr.line, fmt.Sprintf(format, args...))
}

func (lr *lineReader) ints(n int) ([]int, error) {

	f, err := lr.next()
	if err != nil {
		return nil, err
	}
	if len(f) != n {
		return nil, lr.errorf("expected %d integers, found %d fields", n, len(f))
	}

	v := make([]int, n)
	for i, s := range f {
		if v[i], err = strconv.Atoi(s); err != nil {
			return nil, lr.errorf("bad integer %q", s)
		}
	}

	return v, nil
}

func (lr *lineReader) floats(n int) ([]float64, error) {

	f, err := lr.next()
	if err != nil {
		return nil, err
	}
	if len(f) != n {
		return nil, lr.errorf("expected %d values, found %d", n, len(f))
	}

	v := make([]float64, n)
	for i, s := range f {
		if v[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, lr.errorf("bad number %q", s)
		}
	}

	return v, nil
}

func (lr *lineReader) names(n int, kind string) ([]string, error) {

	f, err := lr.next()
	if err != nil {
		return nil, err
	}
	if len(f) != n {
		return nil, lr.errorf("expected %d %s names, found %d", n, kind, len(f))
	}

	return f, nil
}

func (lr *lineReader) marker(want string) error {

	f, err := lr.next()
	if err != nil {
		return err
	}
	if len(f) != 1 || f[0] != want {
		return lr.errorf("expected %q", want)
	}

	return nil
}

func (lr *lineReader) matrix(nrow, ncol int) ([][]float64, error) {

	x := make([][]float64, nrow)
	for i := range x {
		row, err := lr.floats(ncol)
		if err != nil {
			return nil, err
		}
		x[i] = row
	}

	return x, nil
}

// ReadModel reads a model in the text format.
func ReadModel(r io.Reader) (*hmmlib.Model, Header, error) {

	lr := newLineReader(r)

	sizes, err := lr.ints(3)
	if err != nil {
		return nil, Header{}, err
	}
	ns, nk := sizes[0], sizes[1]
	if ns < 1 || nk < 1 {
		return nil, Header{}, lr.errorf("need at least one state and one symbol")
	}

	var p hmmlib.Params
	if p.States, err = lr.names(ns, "state"); err != nil {
		return nil, Header{}, err
	}
	if p.Symbols, err = lr.names(nk, "symbol"); err != nil {
		return nil, Header{}, err
	}

	if err := lr.marker("a:"); err != nil {
		return nil, Header{}, err
	}
	if p.Trans, err = lr.matrix(ns, ns); err != nil {
		return nil, Header{}, err
	}

	if err := lr.marker("b:"); err != nil {
		return nil, Header{}, err
	}
	if p.Emit, err = lr.matrix(ns, nk); err != nil {
		return nil, Header{}, err
	}

	if err := lr.marker("pi:"); err != nil {
		return nil, Header{}, err
	}
	if p.Init, err = lr.floats(ns); err != nil {
		return nil, Header{}, err
	}

	m, err := hmmlib.New(p)
	if err != nil {
		return nil, Header{}, err
	}

	return m, Header{TimeSteps: sizes[2]}, nil
}

// WriteModel writes a model in the text format.
func WriteModel(w io.Writer, m *hmmlib.Model, h Header) error {

	p := m.Params()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d %d %d\n", m.NState, m.NSymbol, h.TimeSteps)
	fmt.Fprintln(bw, strings.Join(p.States, " "))
	fmt.Fprintln(bw, strings.Join(p.Symbols, " "))

	fmt.Fprintln(bw, "a:")
	for _, row := range p.Trans {
		writeRow(bw, row)
	}
	fmt.Fprintln(bw, "b:")
	for _, row := range p.Emit {
		writeRow(bw, row)
	}
	fmt.Fprintln(bw, "pi:")
	writeRow(bw, p.Init)

	return bw.Flush()
}

func writeRow(w io.Writer, row []float64) {

	f := make([]string, len(row))
	for i, v := range row {
		f[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	fmt.Fprintln(w, strings.Join(f, " "))
}

// ReadObservations reads observation sequences given as symbol names.
func ReadObservations(r io.Reader) ([][]string, error) {

	lr := newLineReader(r)

	count, err := lr.ints(1)
	if err != nil {
		return nil, err
	}
	if count[0] < 0 {
		return nil, lr.errorf("negative sequence count")
	}

	// The count is not trusted for allocation; a short file fails below
	// with an end of file error.
	var obs [][]string
	for p := 0; p < count[0]; p++ {
		n, err := lr.ints(1)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence %d", p)
		}
		if n[0] == 0 {
			// Blank lines are skipped, so there is no symbol line to read.
			obs = append(obs, []string{})
			continue
		}
		seq, err := lr.next()
		if err != nil {
			return nil, errors.Wrapf(err, "sequence %d", p)
		}
		if len(seq) != n[0] {
			return nil, lr.errorf("sequence %d: length %d declared, %d symbols found", p, n[0], len(seq))
		}
		obs = append(obs, seq)
	}

	if obs == nil {
		obs = [][]string{}
	}

	return obs, nil
}

// WriteObservations writes observation sequences in the text format.
func WriteObservations(w io.Writer, obs [][]string) error {

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", len(obs))
	for _, seq := range obs {
		fmt.Fprintf(bw, "%d\n", len(seq))
		fmt.Fprintln(bw, strings.Join(seq, " "))
	}

	return bw.Flush()
}
