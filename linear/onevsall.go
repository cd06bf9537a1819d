// Package linear implements one-vs-all logistic regression trained by
// fixed-epoch batch gradient descent.
package linear

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/dslr/core/model"
	"github.com/YuminosukeSato/dslr/core/parallel"
	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/metrics"
	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
)

// Defaults for the gradient descent driver.
const (
	DefaultEpochs       = 100
	DefaultLearningRate = 0.1

	// epsilon keeps log() finite when a probability reaches 0 or 1.
	epsilon = 1e-15

	initLow  = -0.5
	initHigh = 0.5
)

var _ model.Classifier = (*OneVsAll)(nil)

// OneVsAll is a multi-class classifier built from K independent binary
// logistic regressions, one per class. Its weights form a K×F matrix applied
// directly to the feature vector; there is no implicit intercept.
type OneVsAll struct {
	state   *model.StateManager
	id      string
	classes *dataset.ClassLabelIndex

	// Hyperparameters
	epochs       int
	learningRate float64
	randomState  uint64
	seeded       bool
	initial      *mat.Dense
	parallel     bool
	callbacks    []Callback

	baseLogger log.Logger
	logger     log.Logger

	// weights is K×F, nil until initialized by Fit or SetWeights.
	weights *mat.Dense
}

// NewOneVsAll creates an untrained classifier over the given classes.
func NewOneVsAll(classes *dataset.ClassLabelIndex, opts ...Option) *OneVsAll {
	m := &OneVsAll{
		state:        model.NewStateManager(),
		id:           uuid.NewString(),
		classes:      classes,
		epochs:       DefaultEpochs,
		learningRate: DefaultLearningRate,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.baseLogger == nil {
		m.baseLogger = log.GetLoggerWithName("linear")
	}
	m.logger = m.baseLogger.With(
		log.ModelNameKey, "OneVsAll",
		log.EstimatorIDKey, m.id,
	)
	return m
}

// Hypothesis returns sigmoid(w·x).
func Hypothesis(w, x []float64) float64 {
	return sigmoid(floats.Dot(w, x))
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// ID returns the estimator id used in log records.
func (m *OneVsAll) ID() string { return m.id }

// Classes returns the class label index.
func (m *OneVsAll) Classes() *dataset.ClassLabelIndex { return m.classes }

// IsFitted reports whether the model holds weights.
func (m *OneVsAll) IsFitted() bool { return m.state.IsFitted() }

// Weights returns a copy of the K×F weight matrix, or nil before training.
func (m *OneVsAll) Weights() *mat.Dense {
	if m.weights == nil {
		return nil
	}
	return mat.DenseCopyOf(m.weights)
}

// SetWeights replaces the weights with a copy of W (K×F) and marks the model fitted.
func (m *OneVsAll) SetWeights(W mat.Matrix) error {
	r, c := W.Dims()
	if r != m.classes.Len() {
		return errors.NewDimensionError("OneVsAll.SetWeights", m.classes.Len(), r, 0)
	}
	m.weights = mat.DenseCopyOf(W)
	m.state.SetFitted()
	m.state.SetDimensions(c, 0)
	return nil
}

// Loss returns the mean binary cross-entropy of class k against column k of T.
func (m *OneVsAll) Loss(X, T mat.Matrix, k int) (float64, error) {
	if m.weights == nil {
		return 0, errors.NewNotFittedError("OneVsAll", "Loss")
	}
	Xd, Td, err := m.checkInputs("OneVsAll.Loss", X, T)
	if err != nil {
		return 0, err
	}
	return m.loss(Xd, Td, k), nil
}

// GradientStep performs one batch gradient descent update of class k's weights.
// Every gradient component is computed from the weights as they were before
// the call; the update is applied afterwards.
func (m *OneVsAll) GradientStep(X, T mat.Matrix, k int, learningRate float64) error {
	if m.weights == nil {
		return errors.NewNotFittedError("OneVsAll", "GradientStep")
	}
	Xd, Td, err := m.checkInputs("OneVsAll.GradientStep", X, T)
	if err != nil {
		return err
	}
	m.step(Xd, Td, k, learningRate)
	return nil
}

// Fit trains the model on X (n×F) against one-hot targets T (n×K).
//
// Training continues from the current weights when the model already holds
// some; otherwise they come from WithInitialWeights or are drawn uniformly
// from [-0.5, 0.5]. Each epoch takes one gradient step per class in index
// order, then reports per-class loss and accuracy to the callbacks.
func (m *OneVsAll) Fit(X, T mat.Matrix) (err error) {
	defer errors.Recover(&err, "OneVsAll.Fit")

	if m.epochs < 0 {
		return errors.NewValidationError("epochs", "must not be negative", m.epochs)
	}
	if m.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", m.learningRate)
	}

	Xd, Td, err := m.checkInputs("OneVsAll.Fit", X, T)
	if err != nil {
		return err
	}
	n, f := Xd.Dims()
	K := m.classes.Len()
	if n == 0 {
		return errors.NewModelError("OneVsAll.Fit", "no training rows", errors.ErrEmptyData)
	}

	if m.weights == nil {
		if err := m.initWeights(f); err != nil {
			return err
		}
	}

	m.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, f,
		log.TargetsKey, K,
		log.EpochsKey, m.epochs,
		log.LearningRateKey, m.learningRate,
	)
	start := time.Now()

	for epoch := 1; epoch <= m.epochs; epoch++ {
		begin := time.Now()
		if m.parallel {
			parallel.ForEach(K, K, func(k int) {
				m.step(Xd, Td, k, m.learningRate)
			})
		} else {
			for k := 0; k < K; k++ {
				m.step(Xd, Td, k, m.learningRate)
			}
		}

		losses := make([]float64, K)
		for k := range losses {
			losses[k] = m.loss(Xd, Td, k)
			if w := errors.CheckScalar("OneVsAll.Fit", losses[k], epoch, k); w != nil {
				errors.Warn(w)
			}
		}
		acc, err := metrics.OneHotAccuracy(Td, m.predictAll(Xd))
		if err != nil {
			return err
		}

		if m.logger.Enabled(context.Background(), log.LevelDebug) {
			m.logger.Debug("Epoch finished",
				log.EpochKey, epoch,
				log.LossKey, losses,
				log.AccuracyKey, acc,
			)
		}

		env := &EpochEnv{
			Model:     m,
			Epoch:     epoch,
			Epochs:    m.epochs,
			Losses:    losses,
			Accuracy:  acc,
			BeginTime: begin,
			EndTime:   time.Now(),
		}
		for _, cb := range m.callbacks {
			if err := cb(env); err != nil {
				return errors.Wrapf(err, "callback at epoch %d", epoch)
			}
		}
		if env.StopTraining {
			break
		}
	}

	m.state.SetFitted()
	m.state.SetDimensions(f, n)
	m.logger.Info("Training finished",
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns the class whose hypothesis is highest for feature vector x.
// The running best starts at probability 0 and is replaced only by a strictly
// greater value, so ties go to the lower index. Probabilities lie in (0, 1),
// which makes 0 a safe starting point.
func (m *OneVsAll) Predict(x []float64) (int, error) {
	if err := m.state.RequireFitted("OneVsAll", "Predict"); err != nil {
		return 0, err
	}
	if _, c := m.weights.Dims(); len(x) != c {
		return 0, errors.NewDimensionError("OneVsAll.Predict", c, len(x), 1)
	}
	return m.predict(x), nil
}

// PredictAll predicts a class index for every row of X.
func (m *OneVsAll) PredictAll(X mat.Matrix) ([]int, error) {
	if err := m.state.RequireFitted("OneVsAll", "PredictAll"); err != nil {
		return nil, err
	}
	_, c := X.Dims()
	if _, wc := m.weights.Dims(); c != wc {
		return nil, errors.NewDimensionError("OneVsAll.PredictAll", wc, c, 1)
	}
	return m.predictAll(asDense(X)), nil
}

// PredictNames predicts a class name for every row of X.
func (m *OneVsAll) PredictNames(X mat.Matrix) ([]string, error) {
	idx, err := m.PredictAll(X)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(idx))
	for i, k := range idx {
		names[i] = m.classes.Name(k)
	}
	return names, nil
}

// Accuracy returns the percentage of rows of X whose predicted class is the
// one marked in T.
func (m *OneVsAll) Accuracy(X, T mat.Matrix) (float64, error) {
	if err := m.state.RequireFitted("OneVsAll", "Accuracy"); err != nil {
		return 0, err
	}
	Xd, Td, err := m.checkInputs("OneVsAll.Accuracy", X, T)
	if err != nil {
		return 0, err
	}
	return metrics.OneHotAccuracy(Td, m.predictAll(Xd))
}

// Hyperparameters returns the training settings for export.
func (m *OneVsAll) Hyperparameters() map[string]interface{} {
	params := map[string]interface{}{
		"epochs":        m.epochs,
		"learning_rate": m.learningRate,
	}
	if m.seeded {
		params["random_state"] = m.randomState
	}
	return params
}

// String returns a short description of the model.
func (m *OneVsAll) String() string {
	st := m.state.GetState()
	if !st.Fitted {
		return fmt.Sprintf("OneVsAll(classes=%d, epochs=%d, learning_rate=%g)", m.classes.Len(), m.epochs, m.learningRate)
	}
	return fmt.Sprintf("OneVsAll(classes=%d, epochs=%d, learning_rate=%g, n_features=%d)",
		m.classes.Len(), m.epochs, m.learningRate, st.NFeatures)
}

func (m *OneVsAll) initWeights(nFeatures int) error {
	K := m.classes.Len()
	if m.initial != nil {
		r, c := m.initial.Dims()
		if r != K || c != nFeatures {
			return errors.NewDimensionError("OneVsAll.Fit", K*nFeatures, r*c, 1)
		}
		m.weights = mat.DenseCopyOf(m.initial)
		return nil
	}

	seed := m.randomState
	if !m.seeded {
		seed = rand.Uint64()
	}
	dist := distuv.Uniform{Min: initLow, Max: initHigh, Src: rand.NewPCG(seed, seed)}
	data := make([]float64, K*nFeatures)
	for i := range data {
		data[i] = dist.Rand()
	}
	m.weights = mat.NewDense(K, nFeatures, data)
	return nil
}

func (m *OneVsAll) checkInputs(op string, X, T mat.Matrix) (*mat.Dense, *mat.Dense, error) {
	n, f := X.Dims()
	tn, tk := T.Dims()
	if tn != n {
		return nil, nil, errors.NewDimensionError(op, n, tn, 0)
	}
	if tk != m.classes.Len() {
		return nil, nil, errors.NewDimensionError(op, m.classes.Len(), tk, 1)
	}
	if m.weights != nil {
		if _, wc := m.weights.Dims(); wc != f {
			return nil, nil, errors.NewDimensionError(op, wc, f, 1)
		}
	}
	return asDense(X), asDense(T), nil
}

func (m *OneVsAll) loss(X, T *mat.Dense, k int) float64 {
	n, _ := X.Dims()
	w := m.weights.RawRowView(k)
	var sum float64
	for i := 0; i < n; i++ {
		p := Hypothesis(w, X.RawRowView(i))
		t := T.At(i, k)
		sum += t*math.Log(p+epsilon) + (1-t)*math.Log(1-p+epsilon)
	}
	return -(1.0 / float64(n)) * sum
}

func (m *OneVsAll) step(X, T *mat.Dense, k int, learningRate float64) {
	n, f := X.Dims()
	w := m.weights.RawRowView(k)
	grad := make([]float64, f)
	for i := 0; i < n; i++ {
		x := X.RawRowView(i)
		floats.AddScaled(grad, Hypothesis(w, x)-T.At(i, k), x)
	}
	floats.Scale(1.0/float64(n), grad)
	floats.AddScaled(w, -learningRate, grad)
}

func (m *OneVsAll) predict(x []float64) int {
	best := 0
	bestP := 0.0
	K, _ := m.weights.Dims()
	for k := 0; k < K; k++ {
		if p := Hypothesis(m.weights.RawRowView(k), x); p > bestP {
			bestP = p
			best = k
		}
	}
	return best
}

func (m *OneVsAll) predictAll(X *mat.Dense) []int {
	n, _ := X.Dims()
	out := make([]int, n)
	for i := range out {
		out[i] = m.predict(X.RawRowView(i))
	}
	return out
}

func asDense(a mat.Matrix) *mat.Dense {
	if d, ok := a.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(a)
}
