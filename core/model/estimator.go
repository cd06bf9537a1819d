package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
// T は n×K の one-hot ターゲット行列
type Fitter interface {
	Fit(X, T mat.Matrix) error
}

// Classifier は各行のクラスインデックスを予測するモデルのインターフェース
type Classifier interface {
	Fitter

	// PredictAll は各行について予測したクラスインデックスを返す
	PredictAll(X mat.Matrix) ([]int, error)

	// Accuracy は予測が T と一致した行の割合をパーセントで返す
	Accuracy(X, T mat.Matrix) (float64, error)
}
