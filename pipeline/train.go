// Package pipeline wires the dataset loader, preprocessing, the classifier and
// the model store into the train and predict entry points.
//
// Training:
//
//	load → impute missing values → fit and apply z-score normalization →
//	select features → one-hot targets → gradient descent → save model
//
// Prediction reuses the saved normalization parameters on a dataset whose
// missing values are imputed with its own column means.
package pipeline

import (
	"io"
	"time"

	"github.com/YuminosukeSato/dslr/core/model"
	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/linear"
	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
	"github.com/YuminosukeSato/dslr/preprocessing"
)

// TrainConfig describes one training run.
type TrainConfig struct {
	DataPath    string
	ModelPath   string // empty skips saving
	LabelColumn string
	Classes     []string
	Features    []int // 1-based feature indices

	Epochs       int
	LearningRate float64
	Seed         uint64
	Seeded       bool
	Parallel     bool

	// Progress receives the per-epoch loss table when non-nil.
	Progress    io.Writer
	ReportEvery int

	Load dataset.LoadOptions
}

// TrainResult is what a training run produced.
type TrainResult struct {
	Model    *linear.OneVsAll
	Snapshot model.Snapshot
	History  linear.History
	Accuracy float64 // final training accuracy, percent
	Unknown  int     // observations whose label is not a known class
}

// Train loads cfg.DataPath, trains a model and saves it to cfg.ModelPath.
func Train(cfg TrainConfig) (*TrainResult, error) {
	ds, err := dataset.Load(cfg.DataPath, cfg.Load)
	if err != nil {
		return nil, errors.Wrap(err, "load training data")
	}
	res, err := TrainDataset(ds, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.ModelPath != "" {
		if err := model.Save(cfg.ModelPath, res.Snapshot); err != nil {
			return nil, err
		}
		logger().Info("Model saved", log.PathKey, cfg.ModelPath)
	}
	return res, nil
}

// TrainDataset trains on an already loaded dataset. ds is imputed and
// normalized in place.
func TrainDataset(ds *dataset.Dataset, cfg TrainConfig) (*TrainResult, error) {
	start := time.Now()
	lg := logger()

	classes, err := dataset.NewClassLabelIndex(cfg.Classes...)
	if err != nil {
		return nil, err
	}
	labelColumn, err := ds.LabelColumnIndex(cfg.LabelColumn)
	if err != nil {
		return nil, err
	}

	preprocessing.ImputeMissing(ds)
	params, err := preprocessing.NewNormalizer().FitApply(ds)
	if err != nil {
		return nil, err
	}

	X, err := ds.Select(cfg.Features)
	if err != nil {
		return nil, err
	}
	T, unknown, err := classes.OneHot(ds, labelColumn)
	if err != nil {
		return nil, err
	}
	if unknown > 0 {
		lg.Warn("Observations with unknown class labels",
			log.SamplesKey, unknown,
			"label_column", cfg.LabelColumn,
		)
	}

	res := &TrainResult{Unknown: unknown}
	opts := []linear.Option{
		linear.WithCallbacks(linear.RecordEvaluation(&res.History)),
		linear.WithParallelClasses(cfg.Parallel),
	}
	if cfg.Epochs > 0 {
		opts = append(opts, linear.WithEpochs(cfg.Epochs))
	}
	if cfg.LearningRate > 0 {
		opts = append(opts, linear.WithLearningRate(cfg.LearningRate))
	}
	if cfg.Seeded {
		opts = append(opts, linear.WithRandomState(cfg.Seed))
	}
	if cfg.Progress != nil {
		opts = append(opts, linear.WithCallbacks(linear.PrintEvaluation(cfg.Progress, cfg.ReportEvery)))
	}

	m := linear.NewOneVsAll(classes, opts...)
	if err := m.Fit(X, T); err != nil {
		return nil, errors.Wrap(err, "train")
	}
	res.Model = m
	res.Snapshot = model.NewSnapshot(m.Weights(), params.Means, params.StdDevs)
	if n := len(res.History.Accuracy); n > 0 {
		res.Accuracy = res.History.Accuracy[n-1]
	} else if res.Accuracy, err = m.Accuracy(X, T); err != nil {
		return nil, err
	}

	lg.Info("Training complete",
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, len(cfg.Features),
		log.AccuracyKey, res.Accuracy,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func logger() log.Logger {
	return log.GetLoggerWithName("pipeline")
}
