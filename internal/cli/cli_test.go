package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainCSV = `Index,Hogwarts House,First Name,Signal,Noise,Constant
0,Gryffindor,Harry,1,0.3,7
1,Gryffindor,Hermione,2,,7
2,Gryffindor,Ron,3,-0.2,7
3,Gryffindor,Neville,4,0.1,7
4,Slytherin,Draco,-1,0.2,7
5,Slytherin,Vincent,-2,-0.4,7
6,Slytherin,Gregory,-3,0.5,7
7,Slytherin,Pansy,-4,-0.1,7
`

const testCSV = `Index,Hogwarts House,First Name,Signal,Noise,Constant
0,,Luna,3,0.1,7
1,,Blaise,-3,,7
2,,Dean,2,0.2,7
`

const configYAML = `log_level: error
model:
  path: %s
  classes: [Gryffindor, Slytherin]
  selected_features: [1]
train:
  epochs: 100
  learning_rate: 0.1
  seed: 42
  report_every: 50
plot:
  output_dir: %s
  format: png
  width: 4
  height: 3
  bins: 5
`

type fixture struct {
	dir    string
	config string
	train  string
	test   string
	model  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:    dir,
		config: filepath.Join(dir, "dslr.yaml"),
		train:  filepath.Join(dir, "dataset_train.csv"),
		test:   filepath.Join(dir, "dataset_test.csv"),
		model:  filepath.Join(dir, "weights.save"),
	}
	cfg := []byte(fmt.Sprintf(configYAML, f.model, dir))
	require.NoError(t, os.WriteFile(f.config, cfg, 0o644))
	require.NoError(t, os.WriteFile(f.train, []byte(trainCSV), 0o644))
	require.NoError(t, os.WriteFile(f.test, []byte(testCSV), 0o644))
	return f
}

func (f *fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", f.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDescribeCommand(t *testing.T) {
	f := newFixture(t)
	out, err := f.run(t, "describe", f.train)
	require.NoError(t, err)
	assert.Contains(t, out, "Count")
	assert.Contains(t, out, "Feature 3")
	assert.Contains(t, out, "75%")
}

func TestTrainPredictCommands(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "train", f.train)
	require.NoError(t, err)
	assert.Contains(t, out, "Epoch 50")
	assert.Contains(t, out, "Training accuracy: 100.00%")
	assert.Contains(t, out, "Model saved to "+f.model)
	require.FileExists(t, f.model)

	out, err = f.run(t, "predict", f.test)
	require.NoError(t, err)
	assert.Equal(t, "0,Gryffindor\n1,Slytherin\n2,Gryffindor\n", out)

	houses := filepath.Join(f.dir, "houses.csv")
	_, err = f.run(t, "predict", f.test, "--output", houses, "--header", "Hogwarts House")
	require.NoError(t, err)
	b, err := os.ReadFile(houses)
	require.NoError(t, err)
	assert.Equal(t, "Index,Hogwarts House\n0,Gryffindor\n1,Slytherin\n2,Gryffindor\n", string(b))
}

func TestTrainQuietWithFlags(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(f.dir, "other.save")

	out, err := f.run(t, "train", f.train, "--quiet", "--epochs", "10", "--model", other)
	require.NoError(t, err)
	assert.NotContains(t, out, "Epoch")
	assert.FileExists(t, other)
	assert.NoFileExists(t, f.model)

	_, err = f.run(t, "train", f.train, "--learning-rate", "-1")
	require.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "train", f.train, "--quiet")
	require.NoError(t, err)

	jsonPath := filepath.Join(f.dir, "model.json")
	_, err = f.run(t, "export", f.model, "--output", jsonPath)
	require.NoError(t, err)
	b, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"model_type"`)
	assert.Contains(t, string(b), `"Slytherin"`)

	restored := filepath.Join(f.dir, "restored.save")
	out, err := f.run(t, "import", jsonPath, restored)
	require.NoError(t, err)
	assert.Contains(t, out, "Model saved to "+restored)

	want, err := f.run(t, "predict", f.test)
	require.NoError(t, err)
	got, err := f.run(t, "predict", f.test, "--model", restored)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPredictMissingModel(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "predict", f.test)
	require.Error(t, err)
}

func TestAnalysisCommands(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "histogram", f.train, "--no-plot")
	require.NoError(t, err)
	assert.Contains(t, out, "Heterogeneity")
	assert.NoFileExists(t, filepath.Join(f.dir, "histogram.png"))

	_, err = f.run(t, "histogram", f.train, "--feature", "1")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.dir, "histogram.png"))
	assert.FileExists(t, filepath.Join(f.dir, "histogram_feature_1.png"))

	out, err = f.run(t, "scatter", f.train, "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+filepath.Join(f.dir, "scatter.png"))
	assert.FileExists(t, filepath.Join(f.dir, "scatter.png"))

	_, err = f.run(t, "pairplot", f.train, "--features", "1,2")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(f.dir, "pair_plot.png"))
}

func TestScatterArguments(t *testing.T) {
	f := newFixture(t)
	_, err := f.run(t, "scatter", f.train, "1")
	require.Error(t, err)
	_, err = f.run(t, "scatter", f.train, "1", "9")
	require.Error(t, err)
	_, err = f.run(t, "scatter", f.train, "one", "2")
	require.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.dir, "init", "dslr.yaml")

	out, err := f.run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	require.FileExists(t, path)

	_, err = f.run(t, "config", "init", path)
	require.Error(t, err)
	_, err = f.run(t, "config", "init", path, "--force")
	require.NoError(t, err)

	out, err = f.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "learning_rate: 0.1")
	assert.Contains(t, out, "- Slytherin")
}
