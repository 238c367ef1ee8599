// Package app holds the setup shared by the dhmm commands.
package app

import (
	"context"
	"os"
	"os/signal"

	"github.com/kshedden/dhmm/batch"
	"github.com/kshedden/dhmm/config"
	"github.com/kshedden/dhmm/hmmfile"
	"github.com/kshedden/dhmm/hmmlib"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Env is the resolved environment of one command invocation.
type Env struct {
	Config *config.Config
	Log    *zap.SugaredLogger

	cmd      *cobra.Command
	registry *prometheus.Registry
	metrics  *batch.Metrics
}

// Setup loads the configuration of cmd and builds its logger.
func Setup(cmd *cobra.Command, name string) (*Env, error) {

	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, err
	}

	log, err := cfg.Logger(name)
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		log.Debugf("using config file %s", cfg.File)
	}

	env := &Env{
		Config: cfg,
		Log:    log,
		cmd:    cmd,
	}

	if cfg.Metrics != "" {
		env.registry = prometheus.NewRegistry()
		env.metrics, err = batch.NewMetrics(env.registry)
		if err != nil {
			return nil, err
		}
	}

	return env, nil
}

// LoadModel reads the model named by the configuration.
func (env *Env) LoadModel() (*hmmlib.Model, hmmfile.Header, error) {

	if env.Config.Model == "" {
		return nil, hmmfile.Header{}, errors.New("no model file given, use --model")
	}

	m, h, err := hmmfile.LoadModel(env.Config.Model)
	if err != nil {
		return nil, hmmfile.Header{}, err
	}
	env.Log.Debugf("model %s: %d states, %d symbols", env.Config.Model, m.NState, m.NSymbol)

	return m, h, nil
}

// Runner returns a batch runner for m configured from the environment.
func (env *Env) Runner(m *hmmlib.Model) *batch.Runner {

	r := batch.NewRunner(m, env.Config.Workers, env.Log)
	r.Metrics = env.metrics
	if env.Config.Progress {
		r.Progress = env.cmd.ErrOrStderr()
	}

	return r
}

// Close writes the metrics file if one was asked for and flushes the log.
func (env *Env) Close() error {

	var err error
	if env.registry != nil {
		err = prometheus.WriteToTextfile(env.Config.Metrics, env.registry)
		err = errors.Wrap(err, "write metrics")
	}
	_ = env.Log.Sync()

	return err
}

// Main runs cmd until it finishes or the process is interrupted, and exits
// with status 1 on error.
func Main(cmd *cobra.Command) {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
