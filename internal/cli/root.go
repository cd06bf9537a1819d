// Package cli implements the dslr command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/internal/config"
	"github.com/YuminosukeSato/dslr/pkg/log"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
}

// NewRootCommand builds the dslr command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dslr",
		Short: "Descriptive statistics and one-vs-all logistic regression",
		Long: `dslr explores a labeled CSV dataset (describe, histogram, scatter,
pairplot), trains a one-vs-all logistic regression by batch gradient descent
and predicts classes for new observations.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultFileName+" when present)")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	f.StringVar(&a.logFormat, "log-format", "", "log format: console or json (overrides config)")

	root.AddCommand(
		a.describeCommand(),
		a.histogramCommand(),
		a.scatterCommand(),
		a.pairPlotCommand(),
		a.trainCommand(),
		a.predictCommand(),
		a.exportCommand(),
		a.importCommand(),
		a.configCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		c.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		c.LogFormat = a.logFormat
	}
	if err := log.SetupLogger(c.LogLevel, c.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}
	a.cfg = c

	if a.cfgFile != "" {
		log.GetLoggerWithName("cli").Debug("Configuration loaded", log.ConfigFileKey, a.cfgFile)
	}
	return nil
}

func (a *app) loadDataset(path string) (*dataset.Dataset, error) {
	return dataset.Load(path, a.cfg.LoadOptions())
}

func (a *app) classes() (*dataset.ClassLabelIndex, error) {
	return dataset.NewClassLabelIndex(a.cfg.Model.Classes...)
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
