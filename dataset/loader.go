package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/dslr/pkg/errors"
	"github.com/YuminosukeSato/dslr/pkg/log"
)

// LoadOptions bounds the size of the input.
type LoadOptions struct {
	// MaxRows limits data rows; 0 means unlimited.
	MaxRows int
	// MaxColumns limits header width; 0 means unlimited.
	MaxColumns int
}

// Load reads a dataset file. A file that cannot be opened is reported as a
// FileAccessError; a cell that fails numeric validation as a FormatError.
func Load(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFileAccessError("open", path, err)
	}
	defer f.Close()

	ds, err := LoadReader(f, path, opts)
	if err != nil {
		return nil, err
	}

	log.GetLoggerWithName("dataset").Debug("Dataset loaded",
		log.PathKey, path,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NumFeatures(),
		log.MissingKey, ds.MissingCount(),
	)
	return ds, nil
}

type row struct {
	line   int
	fields []string
}

// LoadReader reads a dataset from r. source names the input in error messages.
func LoadReader(r io.Reader, source string, opts LoadOptions) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrapf(errors.ErrEmptyData, "%s: missing header", source)
		}
		return nil, errors.NewFormatError(source, 1, -1, "", "", "unreadable header: "+err.Error())
	}
	header = append([]string(nil), header...)
	ncol := len(header)
	if opts.MaxColumns > 0 && ncol > opts.MaxColumns {
		return nil, errors.NewValidationError("columns", "too many columns", ncol)
	}
	if ncol < 2 {
		return nil, errors.NewFormatError(source, 1, -1, "", strings.Join(header, ","), "header needs an index column and at least one data column")
	}

	// First pass: buffer rows and note which columns ever hold a number.
	var rows []row
	numeric := make([]bool, ncol)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, errors.NewFormatError(source, perr.Line, -1, "", "", perr.Err.Error())
			}
			return nil, errors.Wrapf(err, "%s: read row %d", source, len(rows)+1)
		}
		if opts.MaxRows > 0 && len(rows) >= opts.MaxRows {
			return nil, errors.NewValidationError("rows", "too many rows", len(rows)+1)
		}
		line, _ := cr.FieldPos(0)

		fields := make([]string, ncol)
		copy(fields, rec)
		for j := 1; j < ncol; j++ {
			fields[j] = strings.TrimSpace(fields[j])
			if !numeric[j] && isNumeric(fields[j]) {
				numeric[j] = true
			}
		}
		rows = append(rows, row{line: line, fields: fields})
	}

	featuresStart := 1
	for j := 1; j < ncol; j++ {
		if !numeric[j] {
			featuresStart++
		}
	}

	ds := &Dataset{
		Header:         header,
		LabelColumns:   header[1:featuresStart],
		FeatureColumns: header[featuresStart:],
		Observations:   make([]*Observation, 0, len(rows)),
	}

	for _, rw := range rows {
		obs, err := parseRow(source, ds, rw, featuresStart)
		if err != nil {
			return nil, err
		}
		ds.Observations = append(ds.Observations, obs)
	}
	return ds, nil
}

func parseRow(source string, ds *Dataset, rw row, featuresStart int) (*Observation, error) {
	rawIndex := strings.TrimSpace(rw.fields[0])
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		return nil, errors.NewFormatError(source, rw.line, -1, ds.Header[0], rawIndex, "invalid index")
	}

	obs := &Observation{
		Index:    index,
		Labels:   make([]string, 0, featuresStart-1),
		Features: make([]float64, 0, len(rw.fields)-featuresStart),
	}

	for j := 1; j < featuresStart; j++ {
		v := rw.fields[j]
		if v != "" && isNumeric(v) {
			return nil, errors.NewFormatError(source, rw.line, index, ds.Header[j], v, "numeric value in label column")
		}
		obs.Labels = append(obs.Labels, v)
	}

	for j := featuresStart; j < len(rw.fields); j++ {
		v := rw.fields[j]
		if v == "" {
			obs.Features = append(obs.Features, math.NaN())
			continue
		}
		x, ok := parseNumber(v)
		if !ok {
			return nil, errors.NewFormatError(source, rw.line, index, ds.Header[j], v, "not a number")
		}
		obs.Features = append(obs.Features, x)
	}
	return obs, nil
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isNumeric(s string) bool {
	_, ok := parseNumber(s)
	return ok
}
