package preprocessing

import (
	"math"

	"github.com/YuminosukeSato/dslr/dataset"
	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
	"github.com/YuminosukeSato/dslr/stats"
)

// ImputeMissing は各特徴量列の欠損値(NaN)をその列の平均で置き換え、列ごとの補完値を返す
// 平均は正規化前の列から計算するため、Normalizer.Fit より前に呼ぶこと。
// 全て欠損の列は NaN のまま残り、警告が出る
func ImputeMissing(ds *dataset.Dataset) []float64 {
	means := make([]float64, ds.NumFeatures())
	filled := 0
	for j := range means {
		means[j] = stats.Mean(ds.Column(j))
		if math.IsNaN(means[j]) && ds.Len() > 0 {
			errors.Warn(errors.NewDegenerateStatisticWarning("ImputeMissing", j, "all values missing"))
		}
	}

	for _, o := range ds.Observations {
		for j, v := range o.Features {
			if stats.IsMissing(v) {
				o.Features[j] = means[j]
				filled++
			}
		}
	}

	log.GetLoggerWithName("preprocessing").Debug("Missing values imputed",
		log.MissingKey, filled,
		log.FeaturesKey, len(means),
	)
	return means
}
