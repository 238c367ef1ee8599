// Command statepath prints the most likely state path of every
// observation sequence in one or more observation files.  Each line holds
// the path probability followed by the state names.  A sequence that no
// path can produce prints as 0 with no states.
package main

import (
	"fmt"
	"strings"

	"github.com/kshedden/dhmm/config"
	"github.com/kshedden/dhmm/hmmfile"
	"github.com/kshedden/dhmm/internal/app"
	"github.com/spf13/cobra"
)

func newCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:          "statepath --model file file.obs ...",
		Short:        "Viterbi state path of each observation sequence",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}
	config.AddFlags(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string) (err error) {

	env, err := app.Setup(cmd, "statepath")
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

	r := env.Runner(m)
	out := cmd.OutOrStdout()

	for _, fname := range args {

		seqs, err := hmmfile.LoadSequences(fname, m)
		if err != nil {
			return err
		}

		paths, err := r.Decode(cmd.Context(), seqs)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s:\n", fname)
		for _, pa := range paths {
			names, err := m.StateNames(pa.States)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintf(out, "%g\n", pa.Prob)
				continue
			}
			fmt.Fprintf(out, "%g %s\n", pa.Prob, strings.Join(names, " "))
		}
	}

	return nil
}

func main() {
	app.Main(newCommand())
}
