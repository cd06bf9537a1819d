// Package plotting renders dataset visualizations with gonum/plot: the
// heterogeneity bar chart, per-class histograms, two-feature scatter plots and
// the pair-plot grid. Output format follows the file extension (.png, .svg,
// .pdf, ...).
package plotting

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// Size is the rendered size of a figure.
type Size struct {
	Width, Height vg.Length
}

// DefaultSize is used when a zero Size is passed.
var DefaultSize = Size{Width: 8 * vg.Inch, Height: 6 * vg.Inch}

func (s Size) orDefault() Size {
	if s.Width <= 0 || s.Height <= 0 {
		return DefaultSize
	}
	return s
}

// Save writes p to path in the format named by the extension.
func Save(p *plot.Plot, size Size, path string) error {
	size = size.orDefault()
	if err := p.Save(size.Width, size.Height, path); err != nil {
		return errors.NewFileAccessError("write", path, err)
	}
	return nil
}

// classColor returns the fill color for class k with the given alpha.
func classColor(k int, alpha uint8) color.Color {
	c := color.NRGBAModel.Convert(plotutil.Color(k)).(color.NRGBA)
	c.A = alpha
	return c
}

// groupByClass splits feature j by class. Observations with an unknown label
// or a missing value are dropped.
func groupByClass(ds *dataset.Dataset, j, labelColumn int, classes *dataset.ClassLabelIndex) [][]float64 {
	groups := make([][]float64, classes.Len())
	for _, o := range ds.Observations {
		k, ok := classes.Index(o.Labels[labelColumn])
		if !ok || math.IsNaN(o.Features[j]) {
			continue
		}
		groups[k] = append(groups[k], o.Features[j])
	}
	return groups
}

// pairsByClass returns the (feature a, feature b) points of every class,
// dropping observations where either value is missing.
func pairsByClass(ds *dataset.Dataset, a, b, labelColumn int, classes *dataset.ClassLabelIndex) []plotter.XYs {
	groups := make([]plotter.XYs, classes.Len())
	for _, o := range ds.Observations {
		k, ok := classes.Index(o.Labels[labelColumn])
		if !ok {
			continue
		}
		x, y := o.Features[a], o.Features[b]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		groups[k] = append(groups[k], plotter.XY{X: x, Y: y})
	}
	return groups
}

func checkFeature(ds *dataset.Dataset, j int) error {
	if j < 0 || j >= ds.NumFeatures() {
		return errors.NewValidationError("feature", "out of range", j+1)
	}
	return nil
}

func checkLabelColumn(ds *dataset.Dataset, c int) error {
	if c < 0 || c >= len(ds.LabelColumns) {
		return errors.NewValidationError("label_column", "out of range", c)
	}
	return nil
}

func formatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// writeCanvas draws through fn onto a canvas of the path's format and writes it.
func writeCanvas(path string, size Size, fn func(dc draw.Canvas)) (err error) {
	size = size.orDefault()
	c, err := draw.NewFormattedCanvas(size.Width, size.Height, formatOf(path))
	if err != nil {
		return errors.Wrapf(err, "render %s", path)
	}
	fn(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return errors.NewFileAccessError("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.NewFileAccessError("write", path, cerr)
		}
	}()
	if _, err := c.WriteTo(f); err != nil {
		return errors.NewFileAccessError("write", path, err)
	}
	return nil
}
