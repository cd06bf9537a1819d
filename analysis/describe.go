package analysis

import (
	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/stats"
)

// Describe returns Count, Mean, Std, Min, 25%, 50%, 75% and Max for every
// feature column. Missing values are ignored by every statistic.
func Describe(ds *dataset.Dataset) *Table {
	cols := ds.Columns()
	t := &Table{Columns: featureHeaders(len(cols))}

	add := func(label string, f func([]float64) float64) {
		values := make([]float64, len(cols))
		for j, c := range cols {
			values[j] = f(c)
		}
		t.Rows = append(t.Rows, Row{Label: label, Values: values})
	}
	quantile := func(p float64) func([]float64) float64 {
		return func(xs []float64) float64 { return stats.Quantile(xs, p) }
	}

	add("Count", func(xs []float64) float64 { return float64(stats.Count(xs)) })
	add("Mean", stats.Mean)
	add("Std", stats.StandardDeviation)
	add("Min", stats.Min)
	add("25%", quantile(25))
	add("50%", quantile(50))
	add("75%", quantile(75))
	add("Max", stats.Max)
	return t
}
