package hmmlib

import "github.com/pkg/errors"

// Errors reported by the model and the inference routines.  They are
// always returned wrapped with the offending index or name, so callers
// should test for them with errors.Is.
var (
	// ErrUnknownState is returned when a state index or name is not part
	// of the model's state vocabulary.
	ErrUnknownState = errors.New("unknown state")

	// ErrUnknownSymbol is returned when a symbol index or name is not part
	// of the model's symbol vocabulary.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrEmptyObservationSet is returned by the batch entry points when
	// no sequences are given.
	ErrEmptyObservationSet = errors.New("empty observation set")

	// ErrInvalidSequence is returned when a sequence has no observations.
	ErrInvalidSequence = errors.New("invalid observation sequence")

	// ErrShape is returned by New when a table does not match the
	// vocabulary sizes.
	ErrShape = errors.New("table shape does not match vocabulary")

	// ErrDuplicateName is returned by New when a vocabulary repeats a name.
	ErrDuplicateName = errors.New("duplicate name in vocabulary")
)
