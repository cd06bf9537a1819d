package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/stats"
)

// CorrMatrix holds the symmetric Pearson correlation matrix of the feature columns.
type CorrMatrix struct {
	Columns []string
	Values  *mat.SymDense
}

// PairCorr is a pair of 0-based feature indices and their correlation.
type PairCorr struct {
	A, B int
	R    float64
}

// CorrelationMatrix computes Pearson correlation between every pair of
// feature columns. Missing values are dropped pairwise. Columns with zero
// spread produce NaN or Inf entries, including on the diagonal.
func CorrelationMatrix(ds *dataset.Dataset) *CorrMatrix {
	cols := ds.Columns()
	n := len(cols)
	if n == 0 {
		return &CorrMatrix{}
	}
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, stats.PearsonCorrelation(cols[i], cols[j]))
		}
	}
	return &CorrMatrix{
		Columns: append([]string(nil), ds.FeatureColumns...),
		Values:  sym,
	}
}

// MostCorrelated returns the off-diagonal pair with the largest |r|. The
// search starts from r = 0 and only replaces it with a strictly larger
// magnitude, so the first such pair in row-major order wins ties. When no
// entry exceeds 0 in magnitude, the pair is (-1, -1).
func (c *CorrMatrix) MostCorrelated() PairCorr {
	best := PairCorr{A: -1, B: -1}
	if c.Values == nil {
		return best
	}
	n := c.Values.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := c.Values.At(i, j)
			if math.Abs(r) > math.Abs(best.R) {
				best = PairCorr{A: i, B: j, R: r}
			}
		}
	}
	return best
}

// Table lays the matrix out with one "Feature i" row per feature.
func (c *CorrMatrix) Table() *Table {
	if c.Values == nil {
		return &Table{}
	}
	n := c.Values.SymmetricDim()
	t := &Table{Columns: featureHeaders(n)}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, Row{
			Label:  fmt.Sprintf("Feature %d", i+1),
			Values: mat.Row(nil, i, c.Values),
		})
	}
	return t
}
