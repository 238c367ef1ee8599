// Command generate draws random observation sequences from a model.
//
//	generate --model weather.hmm --count 5 --length 20 --seed 1 --out walks.obs
package main

import (
	"math/rand/v2"
	"time"

	"github.com/kshedden/dhmm/config"
	"github.com/kshedden/dhmm/hmmfile"
	"github.com/kshedden/dhmm/hmmsim"
	"github.com/kshedden/dhmm/internal/app"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "generate --model file [--count n] [--length T] [--seed s] [--out file]",
		Short:        "Simulate observation sequences from a model",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}
	config.AddFlags(cmd)
	cmd.Flags().Int("count", 1, "number of sequences")
	cmd.Flags().Int("length", 10, "length of each sequence")
	cmd.Flags().Uint64("seed", 0, "random seed, 0 to seed from the clock")
	cmd.Flags().String("out", "", "observation file, standard output if empty")

	return cmd
}

func run(cmd *cobra.Command, _ []string) (err error) {

	env, err := app.Setup(cmd, "generate")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); err == nil {
			err = cerr
		}
	}()

	gc := env.Config.Generate
	if gc.Count < 1 || gc.Length < 1 {
		return errors.Errorf("count and length must be positive, got %d and %d", gc.Count, gc.Length)
	}

	m, _, err := env.LoadModel()
	if err != nil {
		return err
	}

	seed := gc.Seed
	if seed == 0 {
		seed = uint64(time.Now().UTC().UnixNano())
	}
	env.Log.Debugf("seed %d", seed)

	sim, err := hmmsim.New(m, rand.NewPCG(seed, seed))
	if err != nil {
		return err
	}
	obs := sim.SampleNames(gc.Count, gc.Length)

	if env.Config.Output == "" {
		return hmmfile.WriteObservations(cmd.OutOrStdout(), obs)
	}

	return hmmfile.SaveObservations(env.Config.Output, obs)
}

func main() {
	app.Main(newCommand())
}
