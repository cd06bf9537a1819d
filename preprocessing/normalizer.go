package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/dslr/core/model"
	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
	"github.com/YuminosukeSato/dslr/stats"
)

// NormalizationParameters は特徴量ごとの平均と標準偏差の組
// 学習時に Fit で求め、モデルファイルに保存して予測時に再利用する
type NormalizationParameters struct {
	Means   []float64
	StdDevs []float64
}

// Len は特徴量の数を返す
func (p NormalizationParameters) Len() int {
	return len(p.Means)
}

// IsEmpty はパラメータが未設定かどうかを返す
func (p NormalizationParameters) IsEmpty() bool {
	return len(p.Means)+len(p.StdDevs) == 0
}

// Validate は平均と標準偏差の長さが一致し、nFeatures と等しいことを検証する
// nFeatures が負の場合は長さの一致のみを検証する
func (p NormalizationParameters) Validate(nFeatures int) error {
	if len(p.Means) != len(p.StdDevs) {
		return errors.NewDimensionError("NormalizationParameters", len(p.Means), len(p.StdDevs), 1)
	}
	if nFeatures >= 0 && len(p.Means) != nFeatures {
		return errors.NewDimensionError("NormalizationParameters", nFeatures, len(p.Means), 1)
	}
	return nil
}

// Clone はディープコピーを返す
func (p NormalizationParameters) Clone() NormalizationParameters {
	return NormalizationParameters{
		Means:   append([]float64(nil), p.Means...),
		StdDevs: append([]float64(nil), p.StdDevs...),
	}
}

// Normalizer はz-score正規化を行う
// 各特徴量を (x - mean) / std に変換する。std が 0 の特徴量は変換せず警告を出す
type Normalizer struct {
	model.BaseEstimator

	params NormalizationParameters
	logger log.Logger
}

// NewNormalizer は未学習のNormalizerを作成する
//
// 使用例:
//
//	norm := preprocessing.NewNormalizer()
//	params, err := norm.FitApply(ds)
func NewNormalizer() *Normalizer {
	return &Normalizer{logger: log.GetLoggerWithName("preprocessing")}
}

// NewNormalizerFromParameters は保存済みのパラメータを持つNormalizerを作成する
// このNormalizerに対する Fit は再計算を行わない
func NewNormalizerFromParameters(params NormalizationParameters) (*Normalizer, error) {
	if err := params.Validate(-1); err != nil {
		return nil, err
	}
	n := NewNormalizer()
	n.params = params.Clone()
	n.SetFitted()
	return n, nil
}

// Parameters は保持しているパラメータのコピーを返す
func (n *Normalizer) Parameters() NormalizationParameters {
	return n.params.Clone()
}

// Fit は各特徴量列の平均と標準偏差を stats で計算する
// 欠損値の補完は Fit より前に済ませておくこと。
// すでにパラメータを保持している場合は計算せずにそれを返す
func (n *Normalizer) Fit(ds *dataset.Dataset) (NormalizationParameters, error) {
	if n.IsFitted() {
		return n.Parameters(), nil
	}
	if ds.Len() == 0 || ds.NumFeatures() == 0 {
		return NormalizationParameters{}, errors.NewModelError("Normalizer.Fit", "empty data", errors.ErrEmptyData)
	}

	c := ds.NumFeatures()
	params := NormalizationParameters{
		Means:   make([]float64, c),
		StdDevs: make([]float64, c),
	}
	for j := 0; j < c; j++ {
		col := ds.Column(j)
		params.Means[j] = stats.Mean(col)
		params.StdDevs[j] = stats.StandardDeviation(col)
	}

	n.params = params
	n.SetFitted()
	n.logger.Debug("Normalizer fitted",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, c,
	)
	return params.Clone(), nil
}

// Apply は params を使ってデータセットをその場で正規化する
// 標準偏差が 0 の特徴量は値を変えず、呼び出しごとに特徴量ごと1回だけ警告する
func (n *Normalizer) Apply(ds *dataset.Dataset, params NormalizationParameters) error {
	if err := params.Validate(ds.NumFeatures()); err != nil {
		return err
	}

	for j, std := range params.StdDevs {
		if std == 0 {
			errors.Warn(errors.NewDegenerateStatisticWarning("Normalizer.Apply", j,
				"zero standard deviation, normalization skipped"))
		}
	}

	for _, o := range ds.Observations {
		for j, v := range o.Features {
			if std := params.StdDevs[j]; std != 0 {
				o.Features[j] = (v - params.Means[j]) / std
			}
		}
	}

	n.logger.Debug("Dataset normalized",
		log.OperationKey, log.OperationTransform,
		log.SamplesKey, ds.Len(),
	)
	return nil
}

// FitApply は Fit と Apply を続けて実行する
func (n *Normalizer) FitApply(ds *dataset.Dataset) (NormalizationParameters, error) {
	params, err := n.Fit(ds)
	if err != nil {
		return NormalizationParameters{}, err
	}
	if err := n.Apply(ds, params); err != nil {
		return NormalizationParameters{}, err
	}
	return params, nil
}

// Transform は保持しているパラメータで行列を正規化した新しい行列を返す
// 列は Fit に使った特徴量と同じ順序であること
func (n *Normalizer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := n.RequireFitted("Normalizer", "Transform"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if c != n.params.Len() {
		return nil, errors.NewDimensionError("Normalizer.Transform", n.params.Len(), c, 1)
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		if std := n.params.StdDevs[j]; std != 0 {
			return (v - n.params.Means[j]) / std
		}
		return v
	}, X)
	return result, nil
}

// String はNormalizerの文字列表現を返す
func (n *Normalizer) String() string {
	if !n.IsFitted() {
		return "Normalizer()"
	}
	return fmt.Sprintf("Normalizer(n_features=%d)", n.params.Len())
}
