package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/dslr/analysis"
	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
	"github.com/YuminosukeSato/dslr/plotting"
)

func (a *app) plotSize() plotting.Size {
	return plotting.Size{
		Width:  vg.Length(a.cfg.Plot.Width) * vg.Inch,
		Height: vg.Length(a.cfg.Plot.Height) * vg.Inch,
	}
}

func (a *app) plotPath(name string) string {
	format := strings.TrimPrefix(a.cfg.Plot.Format, ".")
	if format == "" {
		format = "png"
	}
	return filepath.Join(a.cfg.Plot.OutputDir, name+"."+format)
}

func (a *app) labelColumn(ds *dataset.Dataset) (int, error) {
	return ds.LabelColumnIndex(a.cfg.Data.LabelColumn)
}

// featureArg parses a 1-based feature index and returns it 0-based.
func featureArg(ds *dataset.Dataset, s string) (int, error) {
	f, err := strconv.Atoi(s)
	if err != nil || f < 1 || f > ds.NumFeatures() {
		return 0, errors.NewValidationError("feature", fmt.Sprintf("must be an integer in [1, %d]", ds.NumFeatures()), s)
	}
	return f - 1, nil
}

func (a *app) histogramCommand() *cobra.Command {
	var (
		noPlot  bool
		feature int
	)
	cmd := &cobra.Command{
		Use:   "histogram <dataset.csv>",
		Short: "Find the feature whose spread is most alike across classes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			col, err := a.labelColumn(ds)
			if err != nil {
				return err
			}
			classes, err := a.classes()
			if err != nil {
				return err
			}

			rep := analysis.Heterogeneity(ds, col, classes)
			out := cmd.OutOrStdout()
			if err := rep.Table().Write(out); err != nil {
				return err
			}
			if j, v := rep.MostHomogeneous(); j >= 0 {
				fmt.Fprintf(out, "\nMost homogeneous feature across classes: %d (%s), heterogeneity %g\n", j+1, ds.FeatureColumns[j], v)
			}
			if noPlot {
				return nil
			}

			p, err := plotting.HeterogeneityChart(rep, a.cfg.Plot.LogScale)
			if err != nil {
				return err
			}
			if err := a.savePlot(cmd, p, "histogram"); err != nil {
				return err
			}
			if feature > 0 {
				h, err := plotting.Histogram(ds, feature-1, col, classes, a.cfg.Plot.Bins)
				if err != nil {
					return err
				}
				return a.savePlot(cmd, h, fmt.Sprintf("histogram_feature_%d", feature))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "print the table only")
	cmd.Flags().IntVar(&feature, "feature", 0, "also draw per-class histograms of this 1-based feature")
	return cmd
}

func (a *app) scatterCommand() *cobra.Command {
	var noPlot bool
	cmd := &cobra.Command{
		Use:   "scatter <dataset.csv> [feature1 feature2]",
		Short: "Print the correlation matrix and plot two features against each other",
		Long: `scatter prints the Pearson correlation of every feature pair and names the
most correlated pair. The plot shows feature1 against feature2 (1-based), or
the most correlated pair when they are omitted.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return errors.Newf("accepts 1 or 3 arg(s), received %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			cm := analysis.CorrelationMatrix(ds)
			out := cmd.OutOrStdout()
			if err := cm.Table().Write(out); err != nil {
				return err
			}
			best := cm.MostCorrelated()
			if best.A >= 0 {
				fmt.Fprintf(out, "\nHighest linear correlation: %g between features %d (%s) and %d (%s)\n",
					best.R, best.A+1, ds.FeatureColumns[best.A], best.B+1, ds.FeatureColumns[best.B])
			}
			if noPlot {
				return nil
			}

			fa, fb := best.A, best.B
			if len(args) == 3 {
				if fa, err = featureArg(ds, args[1]); err != nil {
					return err
				}
				if fb, err = featureArg(ds, args[2]); err != nil {
					return err
				}
			}
			if fa < 0 {
				return errors.NewValidationError("feature", "no correlated pair to plot", nil)
			}
			col, err := a.labelColumn(ds)
			if err != nil {
				return err
			}
			classes, err := a.classes()
			if err != nil {
				return err
			}
			p, err := plotting.Scatter(ds, fa, fb, col, classes)
			if err != nil {
				return err
			}
			return a.savePlot(cmd, p, "scatter")
		},
	}
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "print the table only")
	return cmd
}

func (a *app) pairPlotCommand() *cobra.Command {
	var features []int
	cmd := &cobra.Command{
		Use:   "pairplot <dataset.csv>",
		Short: "Draw a grid of per-class histograms and pairwise scatter plots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			col, err := a.labelColumn(ds)
			if err != nil {
				return err
			}
			classes, err := a.classes()
			if err != nil {
				return err
			}

			selected := make([]int, 0, ds.NumFeatures())
			if len(features) == 0 {
				for j := 0; j < ds.NumFeatures(); j++ {
					selected = append(selected, j)
				}
			}
			for _, f := range features {
				selected = append(selected, f-1)
			}

			grid, err := plotting.PairPlot(ds, selected, col, classes, a.cfg.Plot.Bins)
			if err != nil {
				return err
			}
			path := a.plotPath("pair_plot")
			if err := plotting.SaveGrid(grid, a.plotSize(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&features, "features", nil, "1-based features to include (default all)")
	return cmd
}

func (a *app) savePlot(cmd *cobra.Command, p *plot.Plot, name string) error {
	path := a.plotPath(name)
	if err := plotting.Save(p, a.plotSize(), path); err != nil {
		return err
	}
	log.GetLoggerWithName("cli").Debug("Plot saved", log.PathKey, path)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}
