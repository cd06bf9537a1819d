package plotting

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/dslr/analysis"
	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// HeterogeneityChart draws one bar per feature. With logScale set and every
// value positive, bars show log10 of the heterogeneity. NaN values are drawn
// as empty bars.
func HeterogeneityChart(rep *analysis.HeterogeneityReport, logScale bool) (*plot.Plot, error) {
	if len(rep.Heterogeneity) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "heterogeneity chart")
	}

	useLog := logScale
	for _, v := range rep.Heterogeneity {
		if !(v > 0) || math.IsInf(v, 0) {
			useLog = false
			break
		}
	}

	values := make(plotter.Values, len(rep.Heterogeneity))
	for j, v := range rep.Heterogeneity {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			values[j] = 0
		case useLog:
			values[j] = math.Log10(v)
		default:
			values[j] = v
		}
	}

	p := plot.New()
	p.Title.Text = "Heterogeneity by Subject"
	p.X.Label.Text = "Subjects"
	p.Y.Label.Text = "Heterogeneity"
	if useLog {
		p.Y.Label.Text = "Heterogeneity (log10)"
	}

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, errors.Wrap(err, "heterogeneity chart")
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)

	names := rep.Features
	if len(names) != len(values) {
		names = make([]string, len(values))
		for j := range names {
			names[j] = fmt.Sprintf("Feature %d", j+1)
		}
	}
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.Font.Size = vg.Points(6)
	return p, nil
}

// Histogram overlays one translucent histogram of feature j per class.
func Histogram(ds *dataset.Dataset, j, labelColumn int, classes *dataset.ClassLabelIndex, bins int) (*plot.Plot, error) {
	if err := checkFeature(ds, j); err != nil {
		return nil, err
	}
	if err := checkLabelColumn(ds, labelColumn); err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = ds.FeatureColumns[j]
	p.Y.Label.Text = "Count"
	if err := addHistograms(p, groupByClass(ds, j, labelColumn, classes), classes, bins, true); err != nil {
		return nil, err
	}
	return p, nil
}

func addHistograms(p *plot.Plot, groups [][]float64, classes *dataset.ClassLabelIndex, bins int, legend bool) error {
	if bins <= 0 {
		bins = 20
	}
	for k, values := range groups {
		if len(values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(values), bins)
		if err != nil {
			return errors.Wrapf(err, "histogram for %s", classes.Name(k))
		}
		h.FillColor = classColor(k, 110)
		h.LineStyle.Width = vg.Length(0)
		p.Add(h)
		if legend {
			p.Legend.Add(classes.Name(k), h)
		}
	}
	return nil
}

// Scatter plots feature a against feature b, one glyph color per class.
// Observations missing either value are omitted.
func Scatter(ds *dataset.Dataset, a, b, labelColumn int, classes *dataset.ClassLabelIndex) (*plot.Plot, error) {
	for _, j := range []int{a, b} {
		if err := checkFeature(ds, j); err != nil {
			return nil, err
		}
	}
	if err := checkLabelColumn(ds, labelColumn); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Scatter Plot - Feature %d vs Feature %d", a+1, b+1)
	p.X.Label.Text = ds.FeatureColumns[a]
	p.Y.Label.Text = ds.FeatureColumns[b]
	if err := addScatters(p, pairsByClass(ds, a, b, labelColumn, classes), classes, vg.Points(2), true); err != nil {
		return nil, err
	}
	return p, nil
}

func addScatters(p *plot.Plot, groups []plotter.XYs, classes *dataset.ClassLabelIndex, radius vg.Length, legend bool) error {
	for k, pts := range groups {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrapf(err, "scatter for %s", classes.Name(k))
		}
		s.Color = classColor(k, 180)
		s.Shape = draw.CircleGlyph{}
		s.Radius = radius
		p.Add(s)
		if legend {
			p.Legend.Add(classes.Name(k), s)
		}
	}
	return nil
}
