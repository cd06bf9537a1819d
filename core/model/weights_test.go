package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelWeightsJSON(t *testing.T) {
	classes := []string{"Slytherin", "Ravenclaw", "Gryffindor", "Hufflepuff"}
	mw := NewModelWeights(sampleSnapshot(), classes, []int{3, 4, 7}, []string{"Astronomy", "Herbology", "Ancient Runes"})
	mw.Hyperparameters["epochs"] = 100

	_, err := uuid.Parse(mw.RunID)
	require.NoError(t, err)
	require.NoError(t, mw.Validate())

	data, err := mw.ToJSON()
	require.NoError(t, err)

	var got ModelWeights
	require.NoError(t, got.FromJSON(data))
	assert.Equal(t, mw.Classes, got.Classes)
	assert.Equal(t, mw.Weights, got.Weights)
	assert.Equal(t, sampleSnapshot(), got.Snapshot())
}

func TestModelWeightsValidate(t *testing.T) {
	mw := NewModelWeights(sampleSnapshot(), []string{"A", "B"}, nil, nil)
	assert.Error(t, mw.Validate(), "class count must match weight rows")

	mw = NewModelWeights(sampleSnapshot(), []string{"A", "B", "C", "D"}, []int{1}, nil)
	assert.Error(t, mw.Validate(), "selected features must match row length")

	mw = &ModelWeights{}
	assert.Error(t, mw.Validate())
}

func TestModelWeightsClone(t *testing.T) {
	mw := NewModelWeights(sampleSnapshot(), []string{"A", "B", "C", "D"}, []int{1, 2, 3}, nil)
	clone := mw.Clone()

	clone.Weights[0][0] = 42
	clone.Classes[0] = "Z"
	assert.NotEqual(t, 42.0, mw.Weights[0][0])
	assert.Equal(t, "A", mw.Classes[0])
}

func TestStateManager(t *testing.T) {
	sm := NewStateManager()
	assert.False(t, sm.IsFitted())
	assert.Error(t, sm.RequireFitted("OneVsAll", "Predict"))

	sm.SetFitted()
	sm.SetDimensions(3, 1600)
	assert.NoError(t, sm.RequireFitted("OneVsAll", "Predict"))
	assert.Equal(t, ModelState{Fitted: true, NFeatures: 3, NSamples: 1600}, sm.GetState())

	sm.Reset()
	f, n := sm.GetDimensions()
	assert.Equal(t, 0, f)
	assert.Equal(t, 0, n)
	assert.False(t, sm.IsFitted())
}

func TestBaseEstimator(t *testing.T) {
	var e BaseEstimator
	assert.False(t, e.IsFitted())
	assert.ErrorContains(t, e.RequireFitted("Normalizer", "Transform"), "Transform()")

	e.SetFitted()
	assert.NoError(t, e.RequireFitted("Normalizer", "Transform"))

	e.Reset()
	assert.False(t, e.IsFitted())
}
