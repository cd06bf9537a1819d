package linear

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// EpochEnv is passed to every callback after an epoch completes.
type EpochEnv struct {
	Model     *OneVsAll
	Epoch     int // 1-based
	Epochs    int
	Losses    []float64 // per class, after this epoch's updates
	Accuracy  float64   // percent
	BeginTime time.Time
	EndTime   time.Time

	// StopTraining ends training after the current epoch when set by a callback.
	StopTraining bool
}

// Callback is invoked after each epoch. A non-nil error aborts training.
type Callback func(env *EpochEnv) error

// PrintEvaluation writes a progress table to w, one row every period epochs.
// The header row is written before the first row.
//
//	Epochs  Loss 1    Loss 2    Loss 3    Loss 4    Accuracy
//	Epoch 1 0.693147  0.693147  0.693147  0.693147  25.00%
func PrintEvaluation(w io.Writer, period int) Callback {
	if period <= 0 {
		period = 1
	}
	headerDone := false
	return func(env *EpochEnv) error {
		if env.Epoch%period != 0 && env.Epoch != env.Epochs {
			return nil
		}
		if !headerDone {
			var b strings.Builder
			b.WriteString("Epochs ")
			for k := range env.Losses {
				fmt.Fprintf(&b, "\tLoss %d", k+1)
			}
			b.WriteString("\tAccuracy\n")
			if _, err := io.WriteString(w, b.String()); err != nil {
				return err
			}
			headerDone = true
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Epoch %d", env.Epoch)
		for _, l := range env.Losses {
			fmt.Fprintf(&b, "\t%.6f", l)
		}
		fmt.Fprintf(&b, "\t%.2f%%\n", env.Accuracy)
		_, err := io.WriteString(w, b.String())
		return err
	}
}

// History accumulates per-epoch evaluation results.
type History struct {
	Losses   [][]float64
	Accuracy []float64
}

// RecordEvaluation appends each epoch's losses and accuracy to history.
func RecordEvaluation(history *History) Callback {
	return func(env *EpochEnv) error {
		losses := make([]float64, len(env.Losses))
		copy(losses, env.Losses)
		history.Losses = append(history.Losses, losses)
		history.Accuracy = append(history.Accuracy, env.Accuracy)
		return nil
	}
}

// EarlyStopAtAccuracy stops training once accuracy reaches target percent.
func EarlyStopAtAccuracy(target float64) Callback {
	return func(env *EpochEnv) error {
		if env.Accuracy >= target {
			env.StopTraining = true
		}
		return nil
	}
}
