package dataset

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// ClassLabelIndex is a fixed bijection between class names and the indices
// 0..K-1 used for weight rows and one-hot targets. Build it once and pass the
// same value to training and prediction.
type ClassLabelIndex struct {
	names []string
	index map[string]int
}

// NewClassLabelIndex assigns indices to names in the order given.
func NewClassLabelIndex(names ...string) (*ClassLabelIndex, error) {
	if len(names) == 0 {
		return nil, errors.NewValidationError("classes", "at least one class is required", names)
	}
	c := &ClassLabelIndex{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, errors.NewValidationError("classes", "class name must not be empty", i)
		}
		if _, dup := c.index[n]; dup {
			return nil, errors.NewValidationError("classes", "duplicate class name", n)
		}
		c.names[i] = n
		c.index[n] = i
	}
	return c, nil
}

// Len returns K.
func (c *ClassLabelIndex) Len() int { return len(c.names) }

// Name returns the name of class i. It panics if i is out of range.
func (c *ClassLabelIndex) Name(i int) string { return c.names[i] }

// Index returns the index of the named class.
func (c *ClassLabelIndex) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}

// Names returns a copy of the class names in index order.
func (c *ClassLabelIndex) Names() []string {
	return append([]string(nil), c.names...)
}

// OneHot builds the n×K target matrix for the given label column: row i has a
// 1 in the column of observation i's class. Observations whose label is not a
// known class get an all-zero row; their count is returned as unknown.
func (c *ClassLabelIndex) OneHot(ds *Dataset, labelColumn int) (targets *mat.Dense, unknown int, err error) {
	if ds.Len() == 0 {
		return nil, 0, errors.Wrap(errors.ErrEmptyData, "ClassLabelIndex.OneHot")
	}
	if labelColumn < 0 || labelColumn >= len(ds.LabelColumns) {
		return nil, 0, errors.NewValidationError("label_column", "label column out of range", labelColumn)
	}

	targets = mat.NewDense(ds.Len(), c.Len(), nil)
	for i, o := range ds.Observations {
		k, ok := c.index[o.Labels[labelColumn]]
		if !ok {
			unknown++
			continue
		}
		targets.Set(i, k, 1)
	}
	return targets, unknown, nil
}
