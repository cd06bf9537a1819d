package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/dslr/core/model"
	"github.com/YuminosukeSato/dslr/pipeline"
	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
)

func (a *app) trainCommand() *cobra.Command {
	var (
		epochs    int
		lr        float64
		seed      uint64
		parallel  bool
		modelPath string
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:   "train <dataset_train.csv>",
		Short: "Train one-vs-all logistic regression and save the model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			flags := cmd.Flags()
			if flags.Changed("epochs") {
				c.Train.Epochs = epochs
			}
			if flags.Changed("learning-rate") {
				c.Train.LearningRate = lr
			}
			if flags.Changed("seed") {
				c.Train.Seed = seed
			}
			if flags.Changed("parallel") {
				c.Train.Parallel = parallel
			}
			if flags.Changed("model") {
				c.Model.Path = modelPath
			}
			if err := c.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tc := pipeline.TrainConfig{
				DataPath:     args[0],
				ModelPath:    c.Model.Path,
				LabelColumn:  c.Data.LabelColumn,
				Classes:      c.Model.Classes,
				Features:     c.Model.SelectedFeatures,
				Epochs:       c.Train.Epochs,
				LearningRate: c.Train.LearningRate,
				Seed:         c.Train.Seed,
				Seeded:       c.Train.Seed != 0,
				Parallel:     c.Train.Parallel,
				ReportEvery:  c.Train.ReportEvery,
				Load:         c.LoadOptions(),
			}
			if !quiet {
				tc.Progress = out
			}

			res, err := pipeline.Train(tc)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Training accuracy: %.2f%%\n", res.Accuracy)
			if res.Unknown > 0 {
				fmt.Fprintf(out, "Skipped %d observations with an unknown %s\n", res.Unknown, c.Data.LabelColumn)
			}
			fmt.Fprintf(out, "Model saved to %s\n", c.Model.Path)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&epochs, "epochs", 0, "number of gradient descent epochs")
	f.Float64Var(&lr, "learning-rate", 0, "gradient descent step size")
	f.Uint64Var(&seed, "seed", 0, "seed for weight initialization (0 draws a random seed)")
	f.BoolVar(&parallel, "parallel", false, "update the class weight vectors concurrently")
	f.StringVar(&modelPath, "model", "", "model file to write")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not print the per-epoch loss table")
	return cmd
}

func (a *app) predictCommand() *cobra.Command {
	var (
		modelPath string
		output    string
		header    string
	)
	cmd := &cobra.Command{
		Use:   "predict <dataset_test.csv>",
		Short: "Predict the class of every observation with a saved model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			if cmd.Flags().Changed("model") {
				c.Model.Path = modelPath
			}
			preds, err := pipeline.Predict(pipeline.PredictConfig{
				DataPath:  args[0],
				ModelPath: c.Model.Path,
				Classes:   c.Model.Classes,
				Features:  c.Model.SelectedFeatures,
				Lenient:   c.Model.Lenient,
				Load:      c.LoadOptions(),
			})
			if err != nil {
				return err
			}
			return withOutput(cmd, output, func(w io.Writer) error {
				return pipeline.WritePredictions(w, preds, header)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&modelPath, "model", "", "model file to read")
	f.StringVarP(&output, "output", "o", "", "write predictions to this file instead of stdout")
	f.StringVar(&header, "header", "", `write "Index,<header>" as the first line`)
	return cmd
}

func (a *app) exportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <model-file>",
		Short: "Convert a model file to JSON with its classes and selected features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			snap, err := model.Decoder{Lenient: c.Model.Lenient}.Load(args[0])
			if err != nil {
				return err
			}
			mw := model.NewModelWeights(snap, c.Model.Classes, c.Model.SelectedFeatures, nil)
			if err := mw.Validate(); err != nil {
				return errors.Wrapf(err, "export %s", args[0])
			}
			b, err := mw.ToJSON()
			if err != nil {
				return err
			}
			return withOutput(cmd, output, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s\n", b)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	return cmd
}

func (a *app) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <model.json> <model-file>",
		Short: "Convert an exported JSON model back to a model file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return errors.NewFileAccessError("read", args[0], err)
			}
			var mw model.ModelWeights
			if err := mw.FromJSON(b); err != nil {
				return errors.Wrapf(err, "decode %s", args[0])
			}
			if err := mw.Validate(); err != nil {
				return errors.Wrapf(err, "import %s", args[0])
			}
			if err := model.Save(args[1], mw.Snapshot()); err != nil {
				return err
			}
			log.GetLoggerWithName("cli").Info("Model imported",
				"run_id", mw.RunID,
				log.PathKey, args[1],
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Model saved to %s\n", args[1])
			return nil
		},
	}
}

// withOutput calls fn with the named file, or with the command's stdout when
// path is empty.
func withOutput(cmd *cobra.Command, path string, fn func(w io.Writer) error) (err error) {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.NewFileAccessError("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.NewFileAccessError("write", path, cerr)
		}
	}()
	return fn(f)
}
