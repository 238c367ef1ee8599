// Command estimate improves a model by Baum-Welch re-estimation on the
// first sequence of an observation file, writes the new model and prints
// the probability of that sequence before and after.
//
//	estimate --model weather.hmm --obs walks.obs --out weather2.hmm
package main

import (
	"fmt"

	"github.com/kshedden/dhmm/config"
	"github.com/kshedden/dhmm/hmmfile"
	"github.com/kshedden/dhmm/hmmlib"
	"github.com/kshedden/dhmm/internal/app"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "estimate --model file --obs file --out file",
		Short:        "Re-estimate a model from an observation sequence",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	config.AddFlags(cmd)
	cmd.Flags().String("obs", "", "observation file, the first sequence is used")
	cmd.Flags().String("out", "", "file for the re-estimated model")
	cmd.Flags().Int("iterations", 1, "number of re-estimation steps")
	cmd.Flags().Bool("summary", false, "print the parameters before and after")

	return cmd
}

func run(cmd *cobra.Command, _ []string) (err error) {

	env, err := app.Setup(cmd, "estimate")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); err == nil {
			err = cerr
		}
	}()

	cfg := env.Config
	if cfg.Observations == "" {
		return errors.New("no observation file given, use --obs")
	}
	if cfg.Output == "" {
		return errors.New("no output file given, use --out")
	}
	if _, err := hmmfile.FormatOf(cfg.Output); err != nil {
		return err
	}
	niter, err := cmd.Flags().GetInt("iterations")
	if err != nil {
		return err
	}
	if niter < 1 {
		return errors.Errorf("iterations must be positive, got %d", niter)
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}

	m, h, err := env.LoadModel()
	if err != nil {
		return err
	}
	seqs, err := hmmfile.LoadSequences(cfg.Observations, m)
	if err != nil {
		return err
	}
	obs := seqs[0]

	out := cmd.OutOrStdout()
	if summary {
		if err := m.WriteSummary(out, "Starting values:"); err != nil {
			return err
		}
	}

	before, err := m.Forward(obs)
	if err != nil {
		return err
	}

	fit, after := m, before
	for it := 0; it < niter; it++ {
		fit, err = hmmlib.Reestimate(fit, obs)
		if err != nil {
			return errors.Wrapf(err, "iteration %d", it)
		}
		after, err = fit.Forward(obs)
		if err != nil {
			return err
		}
		env.Log.Infof("iteration %d: P(obs) = %g", it+1, after)
	}

	if summary {
		if err := fit.WriteSummary(out, "Estimated parameters:"); err != nil {
			return err
		}
	}

	if err := hmmfile.SaveModel(cfg.Output, fit, h); err != nil {
		return err
	}

	fmt.Fprintf(out, "%g %g\n", before, after)

	return nil
}

func main() {
	app.Main(newCommand())
}
