package hmmfile

import (
	"io"

	"github.com/kshedden/dhmm/hmmlib"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlModel struct {
	hmmlib.Params `yaml:",inline"`
	Header        `yaml:",inline"`
}

// ReadModelYAML reads a model from a YAML document with the keys states,
// symbols, transition, emission, initial and optionally time_steps.
func ReadModelYAML(r io.Reader) (*hmmlib.Model, Header, error) {

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ym yamlModel
	if err := dec.Decode(&ym); err != nil {
		return nil, Header{}, errors.Wrap(err, "yaml")
	}

	m, err := hmmlib.New(ym.Params)
	if err != nil {
		return nil, Header{}, err
	}

	return m, ym.Header, nil
}

// WriteModelYAML writes a model as a YAML document.
func WriteModelYAML(w io.Writer, m *hmmlib.Model, h Header) error {

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(yamlModel{Params: m.Params(), Header: h}); err != nil {
		return errors.Wrap(err, "yaml")
	}

	return enc.Close()
}
