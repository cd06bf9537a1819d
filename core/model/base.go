package model

import "github.com/YuminosukeSato/dslr/pkg/errors"

// BaseEstimator は単一のゴルーチンからのみ使われる前処理器などが埋め込む学習状態
// 学習と予測が並行しうるモデルは StateManager を使う
type BaseEstimator struct {
	fitted bool
}

// IsFitted はパラメータを保持しているかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.fitted
}

// SetFitted は学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.fitted = true
}

// Reset は未学習状態に戻す
func (e *BaseEstimator) Reset() {
	e.fitted = false
}

// RequireFitted は未学習なら name と method を含む NotFittedError を返す
func (e *BaseEstimator) RequireFitted(name, method string) error {
	if !e.fitted {
		return errors.NewNotFittedError(name, method)
	}
	return nil
}
