// Package config loads dslr settings from a YAML file, DSLR_* environment
// variables and built-in defaults.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// DefaultFileName is looked up in the working directory when no file is given.
const DefaultFileName = "dslr.yaml"

// Config is the full configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	Data  Data  `mapstructure:"data" yaml:"data"`
	Model Model `mapstructure:"model" yaml:"model"`
	Train Train `mapstructure:"train" yaml:"train"`
	Plot  Plot  `mapstructure:"plot" yaml:"plot"`
}

// Data controls dataset loading.
type Data struct {
	LabelColumn string `mapstructure:"label_column" yaml:"label_column"`
	// MaxRows and MaxColumns bound the input; 0 means unlimited.
	MaxRows    int `mapstructure:"max_rows" yaml:"max_rows"`
	MaxColumns int `mapstructure:"max_columns" yaml:"max_columns"`
}

// Model names the model file and what it was trained on.
type Model struct {
	Path             string   `mapstructure:"path" yaml:"path"`
	Classes          []string `mapstructure:"classes" yaml:"classes"`
	SelectedFeatures []int    `mapstructure:"selected_features" yaml:"selected_features"`
	// Lenient reads malformed numbers in the model file instead of failing.
	Lenient bool `mapstructure:"lenient" yaml:"lenient"`
}

// Train holds the gradient descent settings.
type Train struct {
	Epochs       int     `mapstructure:"epochs" yaml:"epochs"`
	LearningRate float64 `mapstructure:"learning_rate" yaml:"learning_rate"`
	// Seed fixes the weight initialization; 0 draws a random seed.
	Seed        uint64 `mapstructure:"seed" yaml:"seed"`
	Parallel    bool   `mapstructure:"parallel" yaml:"parallel"`
	ReportEvery int    `mapstructure:"report_every" yaml:"report_every"`
}

// Plot controls rendered figures. Width and Height are in inches.
type Plot struct {
	OutputDir string  `mapstructure:"output_dir" yaml:"output_dir"`
	Format    string  `mapstructure:"format" yaml:"format"`
	Width     float64 `mapstructure:"width" yaml:"width"`
	Height    float64 `mapstructure:"height" yaml:"height"`
	Bins      int     `mapstructure:"bins" yaml:"bins"`
	LogScale  bool    `mapstructure:"log_scale" yaml:"log_scale"`
}

// Default returns the built-in configuration: the four Hogwarts houses,
// features 3, 4 and 7, 100 epochs at learning rate 0.1.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "console",
		Data: Data{
			LabelColumn: "Hogwarts House",
		},
		Model: Model{
			Path:             "weights.save",
			Classes:          []string{"Slytherin", "Ravenclaw", "Gryffindor", "Hufflepuff"},
			SelectedFeatures: []int{3, 4, 7},
		},
		Train: Train{
			Epochs:       100,
			LearningRate: 0.1,
			ReportEvery:  1,
		},
		Plot: Plot{
			OutputDir: ".",
			Format:    "png",
			Width:     8,
			Height:    6,
			Bins:      20,
			LogScale:  true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("data.label_column", d.Data.LabelColumn)
	v.SetDefault("data.max_rows", d.Data.MaxRows)
	v.SetDefault("data.max_columns", d.Data.MaxColumns)
	v.SetDefault("model.path", d.Model.Path)
	v.SetDefault("model.classes", d.Model.Classes)
	v.SetDefault("model.selected_features", d.Model.SelectedFeatures)
	v.SetDefault("model.lenient", d.Model.Lenient)
	v.SetDefault("train.epochs", d.Train.Epochs)
	v.SetDefault("train.learning_rate", d.Train.LearningRate)
	v.SetDefault("train.seed", d.Train.Seed)
	v.SetDefault("train.parallel", d.Train.Parallel)
	v.SetDefault("train.report_every", d.Train.ReportEvery)
	v.SetDefault("plot.output_dir", d.Plot.OutputDir)
	v.SetDefault("plot.format", d.Plot.Format)
	v.SetDefault("plot.width", d.Plot.Width)
	v.SetDefault("plot.height", d.Plot.Height)
	v.SetDefault("plot.bins", d.Plot.Bins)
	v.SetDefault("plot.log_scale", d.Plot.LogScale)
}

// Load reads configuration with precedence env > config file > defaults.
// Command-line flags are applied on top by the caller. An empty cfgFile
// looks for dslr.yaml in the working directory and ignores its absence; an
// explicit cfgFile must exist.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DSLR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewFileAccessError("open", cfgFile, err)
			}
			return nil, errors.Wrapf(err, "read config %s", cfgFile)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFileName, filepath.Ext(DefaultFileName)))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &c, nil
}

// Save writes c as YAML to path, creating parent directories.
func Save(c *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewFileAccessError("create", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.NewFileAccessError("create", path, err)
	}
	if err := Write(f, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.NewFileAccessError("write", path, err)
	}
	return nil
}

// Write encodes c as YAML.
func Write(w io.Writer, c *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}

// Validate checks the values that would otherwise fail deep inside training.
func (c *Config) Validate() error {
	if len(c.Model.Classes) == 0 {
		return errors.NewValidationError("model.classes", "at least one class is required", c.Model.Classes)
	}
	if len(c.Model.SelectedFeatures) == 0 {
		return errors.NewValidationError("model.selected_features", "at least one feature is required", c.Model.SelectedFeatures)
	}
	for _, f := range c.Model.SelectedFeatures {
		if f < 1 {
			return errors.NewValidationError("model.selected_features", "feature indices are 1-based", f)
		}
	}
	if c.Train.Epochs <= 0 {
		return errors.NewValidationError("train.epochs", "must be positive", c.Train.Epochs)
	}
	if c.Train.LearningRate <= 0 {
		return errors.NewValidationError("train.learning_rate", "must be positive", c.Train.LearningRate)
	}
	if c.Data.MaxRows < 0 {
		return errors.NewValidationError("data.max_rows", "must not be negative", c.Data.MaxRows)
	}
	if c.Data.MaxColumns < 0 {
		return errors.NewValidationError("data.max_columns", "must not be negative", c.Data.MaxColumns)
	}
	if c.Data.LabelColumn == "" {
		return errors.NewValidationError("data.label_column", "must not be empty", c.Data.LabelColumn)
	}
	return nil
}

// LoadOptions returns the dataset size limits.
func (c *Config) LoadOptions() dataset.LoadOptions {
	return dataset.LoadOptions{MaxRows: c.Data.MaxRows, MaxColumns: c.Data.MaxColumns}
}
