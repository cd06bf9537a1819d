package pipeline

import (
	"bufio"
	"fmt"
	"io"

	"github.com/YuminosukeSato/dslr/core/model"
	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/linear"
	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
	"github.com/YuminosukeSato/dslr/preprocessing"
)

// PredictConfig describes one prediction run. Classes and Features must match
// the training run that produced the model file.
type PredictConfig struct {
	DataPath  string
	ModelPath string
	Classes   []string
	Features  []int

	// Lenient accepts malformed numbers in the model file the way older
	// model readers did, truncating the affected line.
	Lenient bool

	Load dataset.LoadOptions
}

// Prediction is the predicted class of one observation.
type Prediction struct {
	Index int
	Class int
	Name  string
}

// Predict loads the model and the dataset and predicts every observation.
func Predict(cfg PredictConfig) ([]Prediction, error) {
	snap, err := model.Decoder{Lenient: cfg.Lenient}.Load(cfg.ModelPath)
	if err != nil {
		return nil, errors.Wrap(err, "load model")
	}
	ds, err := dataset.Load(cfg.DataPath, cfg.Load)
	if err != nil {
		return nil, errors.Wrap(err, "load prediction data")
	}
	return PredictDataset(ds, snap, cfg)
}

// PredictDataset predicts every observation of ds with the given model. ds is
// imputed and normalized in place.
func PredictDataset(ds *dataset.Dataset, snap model.Snapshot, cfg PredictConfig) ([]Prediction, error) {
	classes, err := dataset.NewClassLabelIndex(cfg.Classes...)
	if err != nil {
		return nil, err
	}
	W, err := snap.WeightMatrix()
	if err != nil {
		return nil, err
	}

	preprocessing.ImputeMissing(ds)
	norm, err := preprocessing.NewNormalizerFromParameters(preprocessing.NormalizationParameters{
		Means:   snap.FeatureMeans,
		StdDevs: snap.FeatureStdDevs,
	})
	if err != nil {
		return nil, err
	}
	if err := norm.Apply(ds, norm.Parameters()); err != nil {
		return nil, err
	}

	X, err := ds.Select(cfg.Features)
	if err != nil {
		return nil, err
	}
	m := linear.NewOneVsAll(classes)
	if err := m.SetWeights(W); err != nil {
		return nil, err
	}
	idx, err := m.PredictAll(X)
	if err != nil {
		return nil, err
	}

	out := make([]Prediction, len(idx))
	for i, k := range idx {
		out[i] = Prediction{
			Index: ds.Observations[i].Index,
			Class: k,
			Name:  classes.Name(k),
		}
	}
	logger().Info("Prediction complete",
		log.OperationKey, log.OperationPredict,
		log.PredsKey, len(out),
	)
	return out, nil
}

// WritePredictions writes one "<index>,<class name>" line per prediction in
// input order. A non-empty header is written first as "Index,<header>".
func WritePredictions(w io.Writer, preds []Prediction, header string) error {
	bw := bufio.NewWriter(w)
	if header != "" {
		fmt.Fprintf(bw, "Index,%s\n", header)
	}
	for _, p := range preds {
		fmt.Fprintf(bw, "%d,%s\n", p.Index, p.Name)
	}
	return bw.Flush()
}
