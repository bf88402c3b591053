package feature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRidgeRegressor_RecoversLinearRelation(t *testing.T) {
	X := [][]float64{{1, 0}, {2, 1}, {3, 0}, {4, 1}, {5, 0}}
	y := make([]float64, len(X))
	for i, row := range X {
		y[i] = 3 + 2*row[0] - row[1]
	}

	model := NewRidgeRegressor(0)
	require.NoError(t, model.Fit(X, y))

	pred, err := model.Predict([][]float64{{10, 1}})
	require.NoError(t, err)
	assert.InDelta(t, 22, pred[0], 1e-9)
}

func TestRidgeRegressor_PenaltyShrinksWeights(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{2, 4, 6, 8}

	ols := NewRidgeRegressor(0)
	require.NoError(t, ols.Fit(X, y))
	ridge := NewRidgeRegressor(10)
	require.NoError(t, ridge.Fit(X, y))

	assert.InDelta(t, 2, ols.weights[0], 1e-9)
	assert.Less(t, ridge.weights[0], ols.weights[0])
}

func TestRidgeRegressor_Errors(t *testing.T) {
	model := NewRidgeRegressor(1)

	_, err := model.Predict([][]float64{{1}})
	if !errors.Is(err, ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
	if err := model.Fit(nil, nil); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
	require.Error(t, model.Fit([][]float64{{1}, {2}}, []float64{1}))

	require.NoError(t, model.Fit([][]float64{{1}, {2}}, []float64{1, 2}))
	_, err = model.Predict([][]float64{{1, 2}})
	require.Error(t, err)
}
