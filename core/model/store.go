package model

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/dslr/pkg/errors"
)

// モデルファイルの1行目と2行目の先頭ラベル
const (
	MeansLabel   = "FeatureMeans:"
	StdDevsLabel = "FeatureStandardDeviations:"
)

// Snapshot は学習結果としてモデルファイルに保存される内容
// 正規化パラメータとクラスごとの重みベクトル（クラスインデックス順）を持つ
type Snapshot struct {
	FeatureMeans   []float64
	FeatureStdDevs []float64
	Weights        [][]float64
}

// NewSnapshot は重み行列と正規化パラメータからSnapshotを作成する
func NewSnapshot(weights mat.Matrix, means, stdDevs []float64) Snapshot {
	s := Snapshot{
		FeatureMeans:   append([]float64(nil), means...),
		FeatureStdDevs: append([]float64(nil), stdDevs...),
	}
	if weights == nil {
		return s
	}
	r, c := weights.Dims()
	s.Weights = make([][]float64, r)
	for k := 0; k < r; k++ {
		s.Weights[k] = make([]float64, c)
		for j := 0; j < c; j++ {
			s.Weights[k][j] = weights.At(k, j)
		}
	}
	return s
}

// WeightMatrix は重みを K×F の行列として返す。重みが空、または行の長さが
// 揃っていない場合はエラーを返す
func (s Snapshot) WeightMatrix() (*mat.Dense, error) {
	if len(s.Weights) == 0 || len(s.Weights[0]) == 0 {
		return nil, errors.NewModelError("Snapshot.WeightMatrix", "no weights", errors.ErrEmptyData)
	}
	cols := len(s.Weights[0])
	W := mat.NewDense(len(s.Weights), cols, nil)
	for k, row := range s.Weights {
		if len(row) != cols {
			return nil, errors.NewDimensionError("Snapshot.WeightMatrix", cols, len(row), 1)
		}
		W.SetRow(k, row)
	}
	return W, nil
}

// Validate は正規化パラメータの長さが一致し、重み行の長さが揃っていることを検証する
func (s Snapshot) Validate() error {
	if len(s.FeatureMeans) != len(s.FeatureStdDevs) {
		return errors.NewDimensionError("Snapshot.Validate", len(s.FeatureMeans), len(s.FeatureStdDevs), 1)
	}
	_, err := s.WeightMatrix()
	return err
}

// Save はSnapshotをテキスト形式で path に書き込む
//
// 形式:
//
//	FeatureMeans: m1 m2 ...
//	FeatureStandardDeviations: s1 s2 ...
//	<空行>
//	w11 w12 ...   (クラス0)
//	w21 w22 ...   (クラス1)
func Save(path string, s Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewFileAccessError("create", path, err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return errors.Wrapf(err, "save model %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.NewFileAccessError("write", path, err)
	}
	return nil
}

// Encode はSnapshotをテキスト形式で w に書き込む
// 浮動小数点数は往復で値が変わらない最短表現で書く
func Encode(w io.Writer, s Snapshot) error {
	bw := bufio.NewWriter(w)
	writeLine(bw, MeansLabel, s.FeatureMeans)
	writeLine(bw, StdDevsLabel, s.FeatureStdDevs)
	bw.WriteString("\n")
	for _, row := range s.Weights {
		writeLine(bw, "", row)
	}
	return errors.WithStack(bw.Flush())
}

func writeLine(bw *bufio.Writer, label string, values []float64) {
	parts := make([]string, 0, len(values)+1)
	if label != "" {
		parts = append(parts, label)
	}
	for _, v := range values {
		parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
	}
	bw.WriteString(strings.Join(parts, " "))
	bw.WriteString("\n")
}

// Decoder はモデルファイルを読み込む
//
// Lenient が false（デフォルト）の場合、数値でないトークン・欠けた行・長さの
// 揃わない重み行は FormatError になる。Lenient が true の場合は、行の中で最初に
// 数値として読めないトークンに出会った時点でその行の読み込みを止め、
// それまでの部分ベクトルをそのまま使う
type Decoder struct {
	Lenient bool
	// Source はエラーメッセージに使う名前
	Source string
}

// Load は path のモデルファイルを読み込む
func (d Decoder) Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, errors.NewFileAccessError("open", path, err)
	}
	defer f.Close()

	if d.Source == "" {
		d.Source = path
	}
	return d.Decode(f)
}

// Decode は r からSnapshotを読み込む
func (d Decoder) Decode(r io.Reader) (Snapshot, error) {
	source := d.Source
	if source == "" {
		source = "model"
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var s Snapshot
	line := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		line++
		return sc.Text(), true
	}

	for _, target := range []*[]float64{&s.FeatureMeans, &s.FeatureStdDevs} {
		text, ok := next()
		if !ok {
			if d.Lenient {
				return s, errors.WithStack(sc.Err())
			}
			return Snapshot{}, errors.NewFormatError(source, line+1, -1, "", "", "unexpected end of model file")
		}
		fields := strings.Fields(text)
		if len(fields) > 0 {
			// 先頭トークンはラベル
			fields = fields[1:]
		}
		vals, err := d.parseFields(source, line, fields)
		if err != nil {
			return Snapshot{}, err
		}
		*target = vals
	}

	// 区切りの空行
	if _, ok := next(); !ok {
		if d.Lenient {
			return s, errors.WithStack(sc.Err())
		}
		return Snapshot{}, errors.NewFormatError(source, line+1, -1, "", "", "unexpected end of model file")
	}

	for {
		text, ok := next()
		if !ok {
			break
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		vals, err := d.parseFields(source, line, fields)
		if err != nil {
			return Snapshot{}, err
		}
		if !d.Lenient && len(s.Weights) > 0 && len(vals) != len(s.Weights[0]) {
			return Snapshot{}, errors.NewFormatError(source, line, -1, "", text,
				"weight row length "+strconv.Itoa(len(vals))+" differs from "+strconv.Itoa(len(s.Weights[0])))
		}
		s.Weights = append(s.Weights, vals)
	}
	if err := sc.Err(); err != nil {
		return Snapshot{}, errors.Wrapf(err, "%s: read model", source)
	}

	if !d.Lenient {
		if len(s.Weights) == 0 {
			return Snapshot{}, errors.NewFormatError(source, line, -1, "", "", "model file has no weight rows")
		}
		if len(s.FeatureMeans) != len(s.FeatureStdDevs) {
			return Snapshot{}, errors.NewFormatError(source, 2, -1, "", "",
				"feature means and standard deviations differ in length")
		}
	}
	return s, nil
}

func (d Decoder) parseFields(source string, line int, fields []string) ([]float64, error) {
	vals := make([]float64, 0, len(fields))
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			if d.Lenient {
				break
			}
			return nil, errors.NewFormatError(source, line, -1, "", tok, "not a number")
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// Load は strict モードで path のモデルファイルを読み込む
func Load(path string) (Snapshot, error) {
	return Decoder{}.Load(path)
}

// Decode は strict モードで r からSnapshotを読み込む
func Decode(r io.Reader) (Snapshot, error) {
	return Decoder{}.Decode(r)
}
