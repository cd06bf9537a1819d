package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/dslr/pkg/errors"
)

const trainCSV = `Index,Hogwarts House,First Name,Last Name,Birthday,Best Hand,Arithmancy,Astronomy,Herbology
0,Ravenclaw,Tamara,Hsu,2000-03-30,Left,58384.0,-487.88,5.72
1,Slytherin,Erich,Paredes,1999-10-14,Right,67239.0,-552.06,-5.98
2,Gryffindor,Stephany,Braun,1999-11-03,Left,23702.0,,2.12
3,Hufflepuff,Vesta,Mcmichael,2000-08-19,Left,32667.0,697.74,
`

func loadString(t *testing.T, s string) *Dataset {
	t.Helper()
	ds, err := LoadReader(strings.NewReader(s), "test.csv", LoadOptions{})
	require.NoError(t, err)
	return ds
}

func TestLoadInfersLabelAndFeatureColumns(t *testing.T) {
	ds := loadString(t, trainCSV)

	assert.Equal(t, []string{"Hogwarts House", "First Name", "Last Name", "Birthday", "Best Hand"}, ds.LabelColumns)
	assert.Equal(t, []string{"Arithmancy", "Astronomy", "Herbology"}, ds.FeatureColumns)
	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 3, ds.NumFeatures())
	assert.Equal(t, []int{0, 1, 2, 3}, ds.Indices())

	first := ds.Observations[0]
	assert.Equal(t, "Ravenclaw", first.Labels[0])
	assert.Equal(t, []float64{58384.0, -487.88, 5.72}, first.Features)

	assert.True(t, math.IsNaN(ds.Observations[2].Features[1]))
	assert.True(t, math.IsNaN(ds.Observations[3].Features[2]))
	assert.Equal(t, 2, ds.MissingCount())
}

func TestLoadEmptyLabelColumn(t *testing.T) {
	// Test files leave the class column blank.
	ds := loadString(t, "Index,Hogwarts House,Arithmancy\n0,,1.5\n1,,2.5\n")

	assert.Equal(t, []string{"Hogwarts House"}, ds.LabelColumns)
	assert.Equal(t, []string{"Arithmancy"}, ds.FeatureColumns)
	assert.Equal(t, "", ds.Observations[0].Labels[0])
}

func TestLoadFormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		column string
		value  string
		record int
		line   int
	}{
		{
			name:   "non numeric index",
			input:  "Index,House,A\nx,Gryffindor,1\n",
			column: "Index",
			value:  "x",
			record: -1,
			line:   2,
		},
		{
			name:   "text in feature column",
			input:  "Index,House,A\n0,Gryffindor,1\n7,Slytherin,abc\n",
			column: "A",
			value:  "abc",
			record: 7,
			line:   3,
		},
		{
			name:   "number in label column",
			// Num holds numbers but is still counted into the label prefix
			// because House is the only column without any number.
			input:  "Index,Num,House,A\n4,5,Gryffindor,2\n",
			column: "Num",
			value:  "5",
			record: 4,
			line:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.input), "bad.csv", LoadOptions{})
			require.Error(t, err)

			var fe *errors.FormatError
			require.True(t, errors.As(err, &fe), "expected FormatError, got %v", err)
			assert.Equal(t, tt.column, fe.Column)
			assert.Equal(t, tt.value, fe.Value)
			assert.Equal(t, tt.record, fe.Record)
			assert.Equal(t, tt.line, fe.Line)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestLoadNumberInLabelColumnMakesItAFeature(t *testing.T) {
	// A single number anywhere in a column turns it into a feature column,
	// so the text cell is then reported as a bad feature.
	_, err := LoadReader(strings.NewReader("Index,House,A\n0,Gryffindor,1\n4,5,2\n"), "bad.csv", LoadOptions{})

	var fe *errors.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "House", fe.Column)
	assert.Equal(t, "Gryffindor", fe.Value)
}

func TestLoadLimits(t *testing.T) {
	_, err := LoadReader(strings.NewReader(trainCSV), "big.csv", LoadOptions{MaxRows: 2})
	var ve *errors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "rows", ve.ParamName)

	_, err = LoadReader(strings.NewReader(trainCSV), "wide.csv", LoadOptions{MaxColumns: 4})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "columns", ve.ParamName)
}

func TestLoadEmptyInput(t *testing.T) {
	_, err := LoadReader(strings.NewReader(""), "empty.csv", LoadOptions{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	ds, err := LoadReader(strings.NewReader("Index,House,A\n"), "header.csv", LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestLoadFileAccessError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"), LoadOptions{})

	var fae *errors.FileAccessError
	require.True(t, errors.As(err, &fae))
	assert.Equal(t, "open", fae.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset_train.csv")
	require.NoError(t, os.WriteFile(path, []byte(trainCSV), 0o644))

	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
}

func TestSelect(t *testing.T) {
	ds := loadString(t, trainCSV)

	X, err := ds.Select([]int{3, 1})
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 5.72, X.At(0, 0))
	assert.Equal(t, 58384.0, X.At(0, 1))
	assert.Equal(t, []string{"Herbology", "Arithmancy"}, ds.FeatureNames([]int{3, 1}))

	_, err = ds.Select([]int{0})
	assert.Error(t, err)
	_, err = ds.Select([]int{4})
	assert.Error(t, err)
	_, err = ds.Select(nil)
	assert.Error(t, err)
}

func TestColumnAccessors(t *testing.T) {
	ds := loadString(t, trainCSV)

	col := ds.Column(0)
	assert.Equal(t, []float64{58384.0, 67239.0, 23702.0, 32667.0}, col)
	col[0] = 0
	assert.Equal(t, 58384.0, ds.Observations[0].Features[0], "Column must return a copy")

	assert.Equal(t, []string{"Left", "Right", "Left", "Left"}, ds.Labels(4))

	i, err := ds.LabelColumnIndex("Hogwarts House")
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	_, err = ds.LabelColumnIndex("Wand")
	assert.Error(t, err)

	j, err := ds.FeatureIndex("Astronomy")
	require.NoError(t, err)
	assert.Equal(t, 1, j)
}
