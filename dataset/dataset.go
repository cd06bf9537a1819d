// Package dataset holds the in-memory observation store and the CSV loader
// that produces it.
//
// A dataset file has a header row, an integer index in the first column, a run
// of categorical label columns, and numeric feature columns in which an empty
// cell is a missing value (NaN). Which columns are labels is inferred from the
// data: a column is a label column when no row holds a number in it.
package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// Observation is one parsed row: its index, its labels in column order, and
// its feature vector with NaN for missing values.
type Observation struct {
	Index    int
	Labels   []string
	Features []float64
}

// Dataset is an ordered collection of observations sharing label arity and
// feature count.
type Dataset struct {
	// Header is the full header row, index column included.
	Header         []string
	LabelColumns   []string
	FeatureColumns []string
	Observations   []*Observation
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	return len(d.Observations)
}

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int {
	return len(d.FeatureColumns)
}

// Column returns a copy of feature column j (0-based).
func (d *Dataset) Column(j int) []float64 {
	col := make([]float64, len(d.Observations))
	for i, o := range d.Observations {
		col[i] = o.Features[j]
	}
	return col
}

// Columns returns a copy of every feature column.
func (d *Dataset) Columns() [][]float64 {
	cols := make([][]float64, d.NumFeatures())
	for j := range cols {
		cols[j] = d.Column(j)
	}
	return cols
}

// Labels returns label column c (0-based among the label columns) for every observation.
func (d *Dataset) Labels(c int) []string {
	out := make([]string, len(d.Observations))
	for i, o := range d.Observations {
		out[i] = o.Labels[c]
	}
	return out
}

// Indices returns the index of every observation in order.
func (d *Dataset) Indices() []int {
	out := make([]int, len(d.Observations))
	for i, o := range d.Observations {
		out[i] = o.Index
	}
	return out
}

// LabelColumnIndex returns the position of the named label column.
func (d *Dataset) LabelColumnIndex(name string) (int, error) {
	for i, c := range d.LabelColumns {
		if c == name {
			return i, nil
		}
	}
	return -1, errors.NewValidationError("label_column", "no such label column", name)
}

// FeatureIndex returns the 0-based position of the named feature column.
func (d *Dataset) FeatureIndex(name string) (int, error) {
	for i, c := range d.FeatureColumns {
		if c == name {
			return i, nil
		}
	}
	return -1, errors.NewValidationError("feature", "no such feature column", name)
}

// MissingCount returns the number of NaN feature cells.
func (d *Dataset) MissingCount() int {
	n := 0
	for _, o := range d.Observations {
		for _, v := range o.Features {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// Select builds an n×len(features) matrix from the given 1-based feature
// indices, in the order given.
func (d *Dataset) Select(features []int) (*mat.Dense, error) {
	if d.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset.Select")
	}
	if len(features) == 0 {
		return nil, errors.NewValidationError("features", "at least one feature must be selected", features)
	}
	for _, f := range features {
		if f < 1 || f > d.NumFeatures() {
			return nil, errors.NewValidationError("features", fmt.Sprintf("feature index out of range [1, %d]", d.NumFeatures()), f)
		}
	}

	X := mat.NewDense(d.Len(), len(features), nil)
	for i, o := range d.Observations {
		for j, f := range features {
			X.Set(i, j, o.Features[f-1])
		}
	}
	return X, nil
}

// Matrix returns every feature as an n×NumFeatures matrix.
func (d *Dataset) Matrix() (*mat.Dense, error) {
	features := make([]int, d.NumFeatures())
	for i := range features {
		features[i] = i + 1
	}
	return d.Select(features)
}

// FeatureNames maps 1-based feature indices to column names.
func (d *Dataset) FeatureNames(features []int) []string {
	names := make([]string, len(features))
	for i, f := range features {
		if f >= 1 && f <= d.NumFeatures() {
			names[i] = d.FeatureColumns[f-1]
		}
	}
	return names
}
