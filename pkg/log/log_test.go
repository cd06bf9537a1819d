package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/dslr/pkg/errors"
)

func TestTestLoggerLevels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("debug message")
	testLogger.Info("info message", OperationKey, OperationFit, SamplesKey, 1600)
	testLogger.Warn("warning message")
	testLogger.Error("error message", fmt.Errorf("boom"), ErrorCodeKey, ErrorEmptyData)

	if buffer.Len() == 0 {
		t.Fatal("Expected log output, got empty string")
	}
	if testLogger.ContainsMessage("debug message") {
		t.Error("Debug message should be filtered at info level")
	}
	for _, msg := range []string{"info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}
	if !testLogger.ContainsField(SamplesKey, 1600.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected samples field not found")
	}
	if !testLogger.ContainsField("error", "boom") {
		t.Error("Expected leading error to be recorded under \"error\"")
	}
}

func TestTestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(ModelNameKey, "OneVsAll", EstimatorIDKey, "ova-001")
	contextLogger.Info("Training started", EpochsKey, 100)

	if !testLogger.ContainsField(ModelNameKey, "OneVsAll") {
		t.Error("Model name context not found")
	}
	if !testLogger.ContainsField(EstimatorIDKey, "ova-001") {
		t.Error("Estimator id context not found")
	}

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
}

func TestZerologLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)).
		With(ModelNameKey, "Normalizer")

	logger.Info("fitted", FeaturesKey, 13)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry["message"] != "fitted" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry[ModelNameKey] != "Normalizer" {
		t.Errorf("%s = %v", ModelNameKey, entry[ModelNameKey])
	}
	if entry[FeaturesKey] != 13.0 {
		t.Errorf("%s = %v", FeaturesKey, entry[FeaturesKey])
	}
}

func TestZerologLoggerErrorStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Error("load failed", errors.New("file vanished"), PathKey, "train.csv")

	out := buf.String()
	if !strings.Contains(out, `"error":"file vanished"`) {
		t.Errorf("error not attached: %s", out)
	}
	if !strings.Contains(out, StacktraceKey) {
		t.Errorf("stacktrace not attached: %s", out)
	}
	if !strings.Contains(out, `"data.path":"train.csv"`) {
		t.Errorf("path field missing: %s", out)
	}
}

func TestZerologLoggerEnabled(t *testing.T) {
	logger := NewZerologLogger(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if logger.Enabled(ctx, LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !logger.Enabled(ctx, LevelError) {
		t.Error("error should be enabled at warn level")
	}
	if NewNopLogger().Enabled(ctx, LevelError) {
		t.Error("nop logger should be disabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLoggerRoutesWarnings(t *testing.T) {
	prev := GetLogger()
	defer func() {
		SetLogger(prev)
		errors.SetZerologWarnFunc(nil)
	}()

	var buf bytes.Buffer
	if err := SetupLogger("debug", FormatJSON, &buf); err != nil {
		t.Fatal(err)
	}

	GetLoggerWithName("dataset").Debug("loaded", SamplesKey, 3)
	errors.Warn(errors.NewDegenerateStatisticWarning("Normalizer.Apply", 0, "zero standard deviation"))

	out := buf.String()
	if !strings.Contains(out, `"ml.component":"dataset"`) {
		t.Errorf("component missing: %s", out)
	}
	if !strings.Contains(out, `"type":"DegenerateStatisticWarning"`) {
		t.Errorf("warning not routed: %s", out)
	}

	if err := SetupLogger("info", "xml", &buf); err == nil {
		t.Error("expected error for unknown format")
	}
}
