package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ModelWeights のバージョンとモデル種別
const (
	ModelWeightsVersion = "1"
	ModelTypeOneVsAll   = "OneVsAllLogisticRegression"
)

// ModelWeights は学習済みモデルのJSON表現（export用）
// テキスト形式のモデルファイルと違い、クラス名と選択した特徴量も含む
type ModelWeights struct {
	// ModelType はモデルの種類
	ModelType string `json:"model_type"`

	// Version はフォーマットのバージョン（互換性チェック用）
	Version string `json:"version"`

	// RunID はこのエクスポートを識別するID
	RunID string `json:"run_id"`

	// Classes はクラスインデックス順のクラス名
	Classes []string `json:"classes"`

	// SelectedFeatures は1始まりの特徴量番号
	SelectedFeatures []int `json:"selected_features,omitempty"`

	// Features は選択した特徴量の名前（オプション）
	Features []string `json:"features,omitempty"`

	FeatureMeans   []float64   `json:"feature_means"`
	FeatureStdDevs []float64   `json:"feature_std_devs"`
	Weights        [][]float64 `json:"weights"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`
}

// NewModelWeights はSnapshotとクラス名からModelWeightsを作成する
func NewModelWeights(s Snapshot, classes []string, selected []int, features []string) *ModelWeights {
	return &ModelWeights{
		ModelType:        ModelTypeOneVsAll,
		Version:          ModelWeightsVersion,
		RunID:            uuid.NewString(),
		Classes:          append([]string(nil), classes...),
		SelectedFeatures: append([]int(nil), selected...),
		Features:         append([]string(nil), features...),
		FeatureMeans:     append([]float64(nil), s.FeatureMeans...),
		FeatureStdDevs:   append([]float64(nil), s.FeatureStdDevs...),
		Weights:          cloneRows(s.Weights),
		Hyperparameters:  map[string]interface{}{},
	}
}

// Snapshot はモデルファイルに書き出せる形に変換する
func (mw *ModelWeights) Snapshot() Snapshot {
	return Snapshot{
		FeatureMeans:   append([]float64(nil), mw.FeatureMeans...),
		FeatureStdDevs: append([]float64(nil), mw.FeatureStdDevs...),
		Weights:        cloneRows(mw.Weights),
	}
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}
	if mw.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(mw.Classes) != len(mw.Weights) {
		return fmt.Errorf("%d classes but %d weight rows", len(mw.Classes), len(mw.Weights))
	}
	if len(mw.SelectedFeatures) > 0 && len(mw.Weights) > 0 && len(mw.Weights[0]) != len(mw.SelectedFeatures) {
		return fmt.Errorf("%d selected features but weight rows have %d entries", len(mw.SelectedFeatures), len(mw.Weights[0]))
	}
	return mw.Snapshot().Validate()
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:        mw.ModelType,
		Version:          mw.Version,
		RunID:            mw.RunID,
		Classes:          append([]string(nil), mw.Classes...),
		SelectedFeatures: append([]int(nil), mw.SelectedFeatures...),
		Features:         append([]string(nil), mw.Features...),
		FeatureMeans:     append([]float64(nil), mw.FeatureMeans...),
		FeatureStdDevs:   append([]float64(nil), mw.FeatureStdDevs...),
		Weights:          cloneRows(mw.Weights),
		Hyperparameters:  make(map[string]interface{}, len(mw.Hyperparameters)),
	}
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	return clone
}

func cloneRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}
