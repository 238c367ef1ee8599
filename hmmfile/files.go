package hmmfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kshedden/dhmm/hmmlib"
	"github.com/pkg/errors"
)

// Format identifies a model file format.
type Format uint8

// Text, etc. are the available model file formats.
const (
	Text Format = iota
	YAML
	Gob
)

// FormatOf returns the model format implied by the file name.
func FormatOf(fname string) (Format, error) {

	lower := strings.ToLower(fname)
	if strings.HasSuffix(lower, ".gob.gz") {
		return Gob, nil
	}

	switch filepath.Ext(lower) {
	case ".hmm":
		return Text, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, errors.Errorf("unknown model file type %q", fname)
	}
}

// LoadModel reads a model file in the format given by its extension.  Gob
// files carry no header.
func LoadModel(fname string) (*hmmlib.Model, Header, error) {

	ft, err := FormatOf(fname)
	if err != nil {
		return nil, Header{}, err
	}

	if ft == Gob {
		m, err := hmmlib.ReadHMM(fname)
		return m, Header{}, errors.Wrapf(err, "read %s", fname)
	}

	fid, err := os.Open(fname)
	if err != nil {
		return nil, Header{}, err
	}
	defer fid.Close()

	var m *hmmlib.Model
	var h Header
	switch ft {
	case Text:
		m, h, err = ReadModel(fid)
	case YAML:
		m, h, err = ReadModelYAML(fid)
	}
	if err != nil {
		return nil, Header{}, errors.Wrapf(err, "read %s", fname)
	}

	return m, h, nil
}

// SaveModel writes a model file in the format given by its extension.
func SaveModel(fname string, m *hmmlib.Model, h Header) error {

	ft, err := FormatOf(fname)
	if err != nil {
		return err
	}

	if ft == Gob {
		return errors.Wrapf(hmmlib.WriteHMM(fname, m), "write %s", fname)
	}

	fid, err := os.Create(fname)
	if err != nil {
		return err
	}

	switch ft {
	case Text:
		err = WriteModel(fid, m, h)
	case YAML:
		err = WriteModelYAML(fid, m, h)
	}
	if err != nil {
		fid.Close()
		return errors.Wrapf(err, "write %s", fname)
	}

	return fid.Close()
}

// LoadObservations reads an observation file.
func LoadObservations(fname string) ([][]string, error) {

	fid, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fid.Close()

	obs, err := ReadObservations(fid)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", fname)
	}

	return obs, nil
}

// SaveObservations writes an observation file.
func SaveObservations(fname string, obs [][]string) error {

	fid, err := os.Create(fname)
	if err != nil {
		return err
	}

	if err := WriteObservations(fid, obs); err != nil {
		fid.Close()
		return errors.Wrapf(err, "write %s", fname)
	}

	return fid.Close()
}

// LoadSequences reads an observation file and resolves its symbols against
// the vocabulary of m.
func LoadSequences(fname string, m *hmmlib.Model) ([]hmmlib.Sequence, error) {

	names, err := LoadObservations(fname)
	if err != nil {
		return nil, err
	}

	seqs, err := hmmlib.ResolveAll(m, names)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", fname)
	}

	return seqs, nil
}
