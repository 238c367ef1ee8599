// Package batch runs the hmmlib inference routines over many observation
// sequences at once.
//
// Sequences are independent, so they are processed concurrently, at most
// Workers at a time.  The first failing sequence cancels the rest and its
// error, wrapped with the sequence position, is returned.  Results are
// always in input order.
package batch

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/kshedden/dhmm/hmmlib"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Runner applies one model to batches of sequences.
type Runner struct {

	// The model shared by all workers
	Model *hmmlib.Model

	// Maximum number of sequences in flight, defaults to the CPU count
	Workers int

	// If not nil, a progress bar is drawn here
	Progress io.Writer

	// Optional, see NewMetrics
	Metrics *Metrics

	log *zap.SugaredLogger
}

// NewRunner returns a Runner for m.  A nil log discards messages.
func NewRunner(m *hmmlib.Model, workers int, log *zap.SugaredLogger) *Runner {

	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{
		Model:   m,
		Workers: workers,
		log:     log,
	}
}

// Forward returns the forward probability of each sequence.
func (r *Runner) Forward(ctx context.Context, seqs []hmmlib.Sequence) ([]float64, error) {
	return run(ctx, r, "forward", seqs, r.Model.Forward)
}

// Backward returns the backward probability of each sequence.
func (r *Runner) Backward(ctx context.Context, seqs []hmmlib.Sequence) ([]float64, error) {
	return run(ctx, r, "backward", seqs, r.Model.Backward)
}

// Decode returns the Viterbi path of each sequence.
func (r *Runner) Decode(ctx context.Context, seqs []hmmlib.Sequence) ([]hmmlib.Path, error) {
	return run(ctx, r, "decode", seqs, r.Model.Decode)
}

// ReestimateEach returns, for every sequence, the model obtained by one
// re-estimation step of r.Model using that sequence alone.
func (r *Runner) ReestimateEach(ctx context.Context, seqs []hmmlib.Sequence) ([]*hmmlib.Model, error) {
	return run(ctx, r, "reestimate", seqs, r.Model.Reestimate)
}

func (r *Runner) newBar(op string, n int) *progressbar.ProgressBar {

	if r.Progress == nil {
		return nil
	}

	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(r.Progress),
		progressbar.OptionSetDescription(op),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(r.Progress, "\n")
		}),
	)
}

func run[R any](ctx context.Context, r *Runner, op string, seqs []hmmlib.Sequence,
	f func(hmmlib.Sequence) (R, error)) ([]R, error) {

	if len(seqs) == 0 {
		return nil, errors.Wrap(hmmlib.ErrEmptyObservationSet, op)
	}

	start := time.Now()
	r.log.Debugf("%s: %d sequences, %d workers", op, len(seqs), r.Workers)

	bar := r.newBar(op, len(seqs))
	rv := make([]R, len(seqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)

	for p, seq := range seqs {

		// Stop scheduling once something has failed.
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			t0 := time.Now()
			v, err := f(seq)
			r.Metrics.observe(op, time.Since(t0), err)
			if err != nil {
				return errors.Wrapf(err, "sequence %d", p)
			}
			rv[p] = v

			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.log.Errorf("%s failed: %v", op, err)
		return nil, err
	}

	// The group context is only cancelled on error, so also check the
	// caller's context for sequences that were never scheduled.
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	r.log.Infof("%s: %d sequences in %v", op, len(seqs), time.Since(start))

	return rv, nil
}
