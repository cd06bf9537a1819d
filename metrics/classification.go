package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// AccuracyScore は予測クラスが正解クラスと一致した割合をパーセント(0〜100)で返す
func AccuracyScore(yTrue, yPred []int) (float64, error) {
	// 入力検証
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("AccuracyScore", "empty input")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("AccuracyScore", n, len(yPred), 0)
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n) * 100, nil
}

// OneHotAccuracy は T[i][yPred[i]] == 1 となる行の割合をパーセントで返す
// T は n×K の one-hot 行列。全て0の行（未知のクラス）は常に不正解になる
func OneHotAccuracy(T mat.Matrix, yPred []int) (float64, error) {
	r, c := T.Dims()
	if len(yPred) != r {
		return 0, errors.NewDimensionError("OneHotAccuracy", r, len(yPred), 0)
	}

	correct := 0
	for i, k := range yPred {
		if k >= 0 && k < c && T.At(i, k) == 1 {
			correct++
		}
	}
	return float64(correct) / float64(r) * 100, nil
}

// ClassIndices は one-hot 行列の各行で1が立っている列を返す
// 1が無い行は -1 になる
func ClassIndices(T mat.Matrix) []int {
	r, c := T.Dims()
	out := make([]int, r)
	for i := 0; i < r; i++ {
		out[i] = -1
		for k := 0; k < c; k++ {
			if T.At(i, k) == 1 {
				out[i] = k
				break
			}
		}
	}
	return out
}

// ConfusionMatrix は K×K の混同行列を返す。行が正解クラス、列が予測クラス
// 正解が -1（未知のクラス）の行は数えない
func ConfusionMatrix(yTrue, yPred []int, nClasses int) (*mat.Dense, error) {
	if nClasses <= 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "nClasses must be positive")
	}
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("ConfusionMatrix", len(yTrue), len(yPred), 0)
	}

	cm := mat.NewDense(nClasses, nClasses, nil)
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 {
			continue
		}
		if t >= nClasses || p < 0 || p >= nClasses {
			return nil, errors.NewValueError("ConfusionMatrix", "class index out of range")
		}
		cm.Set(t, p, cm.At(t, p)+1)
	}
	return cm, nil
}
