// Package analysis computes the dataset summaries behind the describe,
// histogram and scatter commands.
package analysis

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// Row is one labeled line of a Table.
type Row struct {
	Label  string
	Values []float64
}

// Table is a labeled grid of statistics, one column per feature.
type Table struct {
	Columns []string
	Rows    []Row
}

// Value returns the cell for the row with the given label and column j, or
// NaN when no such row exists.
func (t *Table) Value(label string, j int) float64 {
	for _, r := range t.Rows {
		if r.Label == label {
			return r.Values[j]
		}
	}
	return math.NaN()
}

// Write renders the table as right-aligned columns.
func (t *Table) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, c := range t.Columns {
		fmt.Fprintf(tw, "%s\t", c)
	}
	fmt.Fprintln(tw)
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%s\t", r.Label)
		for _, v := range r.Values {
			fmt.Fprintf(tw, "%s\t", formatCell(v))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", v)
}

// featureHeaders names columns "Feature 1".."Feature n", matching the
// 1-based indices the CLI accepts.
func featureHeaders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Feature %d", i+1)
	}
	return out
}
