// Command recognize prints the probability of every observation sequence
// in one or more observation files under a model.
//
//	recognize --model weather.hmm walks.obs more.obs
package main

import (
	"fmt"

	"github.com/kshedden/dhmm/config"
	"github.com/kshedden/dhmm/hmmfile"
	"github.com/kshedden/dhmm/internal/app"
	"github.com/spf13/cobra"
)

func newCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "recognize --model file [--backward] file.obs ...",
		Short:        "Forward probability of each observation sequence",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}
	config.AddFlags(cmd)
	cmd.Flags().Bool("backward", false, "also print the backward probability")

	return cmd
}

func run(cmd *cobra.Command, args []string) (err error) {

	env, err := app.Setup(cmd, "recognize")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); err == nil {
			err = cerr
		}
	}()

	m, _, err := env.LoadModel()
	if err != nil {
		return err
	}
	backward, err := cmd.Flags().GetBool("backward")
	if err != nil {
		return err
	}

	r := env.Runner(m)
	out := cmd.OutOrStdout()

	for _, fname := range args {

		seqs, err := hmmfile.LoadSequences(fname, m)
		if err != nil {
			return err
		}

		fw, err := r.Forward(cmd.Context(), seqs)
		if err != nil {
			return err
		}

		var bw []float64
		if backward {
			bw, err = r.Backward(cmd.Context(), seqs)
			if err != nil {
				return err
			}
		}

		fmt.Fprintf(out, "%s:\n", fname)
		for p := range fw {
			if backward {
				fmt.Fprintf(out, "%g %g\n", fw[p], bw[p])
			} else {
				fmt.Fprintf(out, "%g\n", fw[p])
			}
		}
	}

	return nil
}

func main() {
	app.Main(newCommand())
}
