package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ARTM2000/sole"
	"github.com/ARTM2000/sole/internal/config"
)

type rootFlags struct {
	envFile string
	cfgFile string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "soledemo",
		Short:         "Exercise single-instance holders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.Load(flags.envFile, flags.cfgFile)
		},
	}

	addRootFlags(cmd.PersistentFlags(), &flags)
	cmd.AddCommand(newRunCmd(), newSettingsCmd())
	return cmd
}

func addRootFlags(fs *pflag.FlagSet, flags *rootFlags) {
	fs.StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before the config")
	fs.StringVarP(&flags.cfgFile, "config", "c", "", "optional YAML config file")
}

// newLogger builds the zap logger for the registry from the configured level.
func newLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(config.LogLevel())
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// newRegistry returns a registry that logs through l and is shut down by
// atexit.Exit.
func newRegistry(l *zap.Logger) *sole.Registry {
	return sole.NewRegistry(sole.WithLogger(l), sole.WithExitHandler())
}
