// Package config gathers command settings from flags, the environment and
// an optional YAML file.
//
// Environment variables take the form DHMM_<KEY> with dots replaced by
// underscores, so log.level is DHMM_LOG_LEVEL.  Without a --config flag,
// dhmm_config.yaml is looked for in $DHMM_CFG_PATH, or in the working
// directory if that is not set.
package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/kshedden/dhmm/logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the settings shared by the commands.
type Config struct {
	Model        string
	Observations string
	Output       string
	Workers      int
	Progress     bool
	Metrics      string
	Log          logging.Config
	Generate     Generate

	// The config file that was read, empty if none.
	File string
}

// Generate holds the settings of the sequence generator.
type Generate struct {
	Count  int
	Length int
	Seed   uint64
}

// Flag names for each configuration key.
var flagNames = map[string]string{
	"model":           "model",
	"observations":    "obs",
	"output":          "out",
	"workers":         "workers",
	"progress":        "progress",
	"metrics":         "metrics",
	"log.level":       "log-level",
	"log.path":        "log-path",
	"generate.count":  "count",
	"generate.length": "length",
	"generate.seed":   "seed",
}

// AddFlags registers the flags every command understands.
func AddFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.String("config", "", "configuration file")
	fs.String("model", "", "model file (.hmm, .yaml or .gob.gz)")
	fs.Int("workers", 0, "concurrent sequences, 0 for one per CPU")
	fs.Bool("progress", false, "show a progress bar")
	fs.String("metrics", "", "write batch metrics to this file on exit")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-path", "", "also log to rotated files with this prefix")
}

// Load resolves the configuration for cmd.  A missing default config file
// is not an error, but a file named with --config must exist.
func Load(cmd *cobra.Command) (*Config, error) {

	v := viper.New()
	v.SetEnvPrefix("dhmm")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("log.level", "info")
	v.SetDefault("generate.count", 1)
	v.SetDefault("generate.length", 10)

	for key, name := range flagNames {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}

	altPath := os.Getenv("DHMM_CFG_PATH")
	if altPath == "" {
		altPath = "."
	}
	v.AddConfigPath(altPath)
	v.SetConfigName("dhmm_config")
	v.SetConfigType("yaml")

	explicit := ""
	if f := cmd.Flags().Lookup("config"); f != nil {
		explicit = f.Value.String()
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	cfg := &Config{
		Model:        v.GetString("model"),
		Observations: v.GetString("observations"),
		Output:       v.GetString("output"),
		Workers:      v.GetInt("workers"),
		Progress:     v.GetBool("progress"),
		Metrics:      v.GetString("metrics"),
		Log: logging.Config{
			Level:        v.GetString("log.level"),
			Path:         v.GetString("log.path"),
			RotationTime: 24,
			MaxAge:       7,
			Console:      true,
		},
		Generate: Generate{
			Count:  v.GetInt("generate.count"),
			Length: v.GetInt("generate.length"),
			Seed:   v.GetUint64("generate.seed"),
		},
		File: v.ConfigFileUsed(),
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Logger returns a logger for the named command using the log settings.
func (c *Config) Logger(name string) (*zap.SugaredLogger, error) {
	return logging.New(name, c.Log)
}
