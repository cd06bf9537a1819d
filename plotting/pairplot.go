package plotting

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// PairPlot builds an n×n grid for the given 0-based features: per-class
// histograms on the diagonal, scatter plots elsewhere. Row i uses feature i
// on the Y axis and column j uses feature j on the X axis.
func PairPlot(ds *dataset.Dataset, features []int, labelColumn int, classes *dataset.ClassLabelIndex, bins int) ([][]*plot.Plot, error) {
	if len(features) == 0 {
		return nil, errors.NewValidationError("features", "must not be empty", features)
	}
	for _, j := range features {
		if err := checkFeature(ds, j); err != nil {
			return nil, err
		}
	}
	if err := checkLabelColumn(ds, labelColumn); err != nil {
		return nil, err
	}

	n := len(features)
	grid := make([][]*plot.Plot, n)
	for row, fy := range features {
		grid[row] = make([]*plot.Plot, n)
		for col, fx := range features {
			p := plot.New()
			p.X.Tick.Label.Font.Size = vg.Points(4)
			p.Y.Tick.Label.Font.Size = vg.Points(4)
			if row == n-1 {
				p.X.Label.Text = ds.FeatureColumns[fx]
				p.X.Label.TextStyle.Font.Size = vg.Points(5)
			}
			if col == 0 {
				p.Y.Label.Text = ds.FeatureColumns[fy]
				p.Y.Label.TextStyle.Font.Size = vg.Points(5)
			}

			var err error
			if row == col {
				err = addHistograms(p, groupByClass(ds, fx, labelColumn, classes), classes, bins, false)
			} else {
				err = addScatters(p, pairsByClass(ds, fx, fy, labelColumn, classes), classes, vg.Points(0.8), false)
			}
			if err != nil {
				return nil, err
			}
			grid[row][col] = p
		}
	}
	return grid, nil
}

// SaveGrid aligns the plots of grid on one canvas and writes it to path.
func SaveGrid(grid [][]*plot.Plot, size Size, path string) error {
	if len(grid) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "pair plot")
	}
	tiles := draw.Tiles{
		Rows:      len(grid),
		Cols:      len(grid[0]),
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	return writeCanvas(path, size, func(dc draw.Canvas) {
		canvases := plot.Align(grid, tiles, dc)
		for i := range grid {
			for j := range grid[i] {
				if grid[i][j] != nil {
					grid[i][j].Draw(canvases[i][j])
				}
			}
		}
	})
}
