package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/dslr/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	require.NoError(t, c.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dslr.yaml")
	content := `
log_level: debug
model:
  path: model.txt
  classes: [A, B]
  selected_features: [1, 2]
train:
  epochs: 50
  seed: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DSLR_TRAIN_LEARNING_RATE", "0.5")
	t.Setenv("DSLR_DATA_LABEL_COLUMN", "House")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "model.txt", c.Model.Path)
	assert.Equal(t, []string{"A", "B"}, c.Model.Classes)
	assert.Equal(t, []int{1, 2}, c.Model.SelectedFeatures)
	assert.Equal(t, 50, c.Train.Epochs)
	assert.Equal(t, uint64(7), c.Train.Seed)
	assert.Equal(t, 0.5, c.Train.LearningRate)
	assert.Equal(t, "House", c.Data.LabelColumn)
	// untouched keys keep their defaults
	assert.Equal(t, "console", c.LogFormat)
	assert.Equal(t, 20, c.Plot.Bins)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var faErr *errors.FileAccessError
	assert.True(t, errors.As(err, &faErr), "got %v", err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dslr.yaml")
	want := Default()
	want.Train.Epochs = 250
	want.Model.Classes = []string{"X", "Y", "Z"}
	want.Plot.LogScale = false

	require.NoError(t, Save(want, path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		param  string
	}{
		{"no classes", func(c *Config) { c.Model.Classes = nil }, "model.classes"},
		{"no features", func(c *Config) { c.Model.SelectedFeatures = nil }, "model.selected_features"},
		{"zero-based feature", func(c *Config) { c.Model.SelectedFeatures = []int{0} }, "model.selected_features"},
		{"zero epochs", func(c *Config) { c.Train.Epochs = 0 }, "train.epochs"},
		{"negative learning rate", func(c *Config) { c.Train.LearningRate = -1 }, "train.learning_rate"},
		{"negative max rows", func(c *Config) { c.Data.MaxRows = -1 }, "data.max_rows"},
		{"empty label column", func(c *Config) { c.Data.LabelColumn = "" }, "data.label_column"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.param, valErr.ParamName)
		})
	}
}

func TestLoadOptions(t *testing.T) {
	c := Default()
	c.Data.MaxRows = 10
	opts := c.LoadOptions()
	assert.Equal(t, 10, opts.MaxRows)
	assert.Equal(t, 0, opts.MaxColumns)
}
