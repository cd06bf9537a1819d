package analysis

import (
	"math"

	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/stats"
)

// HeterogeneityReport holds, for each feature, the standard deviation of the
// feature within each class and the spread of those deviations across classes.
// A low heterogeneity means the feature is distributed alike in every class.
type HeterogeneityReport struct {
	Features []string
	Classes  []string

	// ClassStdDevs[k][j] is the std of feature j over observations of class k.
	ClassStdDevs [][]float64

	// Heterogeneity[j] is the std of ClassStdDevs[.][j].
	Heterogeneity []float64

	// Skipped counts observations whose label is not one of Classes.
	Skipped int
}

// Heterogeneity groups observations by the label in labelColumn and measures
// how much each feature's spread differs between classes.
func Heterogeneity(ds *dataset.Dataset, labelColumn int, classes *dataset.ClassLabelIndex) *HeterogeneityReport {
	K, F := classes.Len(), ds.NumFeatures()
	byClass := make([][][]float64, K)
	for k := range byClass {
		byClass[k] = make([][]float64, F)
	}

	skipped := 0
	for _, o := range ds.Observations {
		k, ok := classes.Index(o.Labels[labelColumn])
		if !ok {
			skipped++
			continue
		}
		for j, v := range o.Features {
			byClass[k][j] = append(byClass[k][j], v)
		}
	}

	rep := &HeterogeneityReport{
		Features:      append([]string(nil), ds.FeatureColumns...),
		Classes:       classes.Names(),
		ClassStdDevs:  make([][]float64, K),
		Heterogeneity: make([]float64, F),
		Skipped:       skipped,
	}
	for k := range byClass {
		rep.ClassStdDevs[k] = make([]float64, F)
		for j := range byClass[k] {
			rep.ClassStdDevs[k][j] = stats.StandardDeviation(byClass[k][j])
		}
	}
	for j := 0; j < F; j++ {
		perClass := make([]float64, K)
		for k := range perClass {
			perClass[k] = rep.ClassStdDevs[k][j]
		}
		rep.Heterogeneity[j] = stats.StandardDeviation(perClass)
	}
	return rep
}

// MostHomogeneous returns the 0-based feature with the lowest heterogeneity
// and its value. NaN entries never win; -1 is returned when every entry is NaN.
func (r *HeterogeneityReport) MostHomogeneous() (int, float64) {
	best, bestVal := -1, math.MaxFloat64
	for j, v := range r.Heterogeneity {
		if v < bestVal {
			best, bestVal = j, v
		}
	}
	if best < 0 {
		return -1, math.NaN()
	}
	return best, bestVal
}

// Table lays the report out as one "<class> Std" row per class followed by a
// Heterogeneity row.
func (r *HeterogeneityReport) Table() *Table {
	t := &Table{Columns: featureHeaders(len(r.Heterogeneity))}
	for k, name := range r.Classes {
		t.Rows = append(t.Rows, Row{Label: name + " Std", Values: r.ClassStdDevs[k]})
	}
	t.Rows = append(t.Rows, Row{Label: "Heterogeneity", Values: r.Heterogeneity})
	return t
}
