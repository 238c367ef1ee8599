package hmmlib

import (
	"compress/gzip"
	"encoding/gob"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ReadHMM reads a model from a gzip-compressed gob file.
func ReadHMM(fname string) (*Model, error) {

	fid, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fid.Close()

	return DecodeHMM(fid)
}

// DecodeHMM reads a gzip-compressed gob encoded model from r.
func DecodeHMM(r io.Reader) (*Model, error) {

	gid, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "gzip")
	}
	defer gid.Close()

	dec := gob.NewDecoder(gid)

	var p Params
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "gob")
	}

	return New(p)
}

// WriteHMM writes the model to a gzip-compressed gob file.
func WriteHMM(fname string, m *Model) error {

	fid, err := os.Create(fname)
	if err != nil {
		return err
	}

	if err := EncodeHMM(fid, m); err != nil {
		fid.Close()
		return err
	}

	return fid.Close()
}

// EncodeHMM writes the model to w as gzip-compressed gob.
func EncodeHMM(w io.Writer, m *Model) error {

	gid := gzip.NewWriter(w)
	enc := gob.NewEncoder(gid)

	p := m.Params()
	if err := enc.Encode(&p); err != nil {
		gid.Close()
		return errors.Wrap(err, "gob")
	}

	return gid.Close()
}
