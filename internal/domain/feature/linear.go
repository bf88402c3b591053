package feature

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var ErrNotFitted = errors.New("regressor not fitted")

// RidgeRegressor is an L2-regularised least-squares model with an
// unpenalised intercept. Lambda 0 gives ordinary least squares.
type RidgeRegressor struct {
	Lambda float64

	weights   []float64
	intercept float64
}

func NewRidgeRegressor(lambda float64) *RidgeRegressor {
	return &RidgeRegressor{Lambda: lambda}
}

func (r *RidgeRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return ErrNoSamples
	}
	if len(X) != len(y) {
		return fmt.Errorf("fit: %d rows vs %d targets", len(X), len(y))
	}
	n, p := len(X), len(X[0])

	// design matrix with a leading ones column
	design := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		if len(row) != p {
			return fmt.Errorf("fit: row %d has %d features, want %d", i, len(row), p)
		}
		design.Set(i, 0, 1)
		for j, v := range row {
			design.Set(i, j+1, v)
		}
	}
	target := mat.NewVecDense(n, append([]float64(nil), y...))

	var gram mat.Dense
	gram.Mul(design.T(), design)
	for j := 1; j <= p; j++ {
		gram.Set(j, j, gram.At(j, j)+r.Lambda)
	}
	var rhs mat.VecDense
	rhs.MulVec(design.T(), target)

	var w mat.VecDense
	if err := w.SolveVec(&gram, &rhs); err != nil {
		// an ill-conditioned solve still produces a usable result
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return fmt.Errorf("fit: solve normal equations: %w", err)
		}
	}

	r.intercept = w.AtVec(0)
	r.weights = make([]float64, p)
	for j := range r.weights {
		r.weights[j] = w.AtVec(j + 1)
	}
	return nil
}

func (r *RidgeRegressor) Predict(X [][]float64) ([]float64, error) {
	if r.weights == nil {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(X))
	for i, row := range X {
		if len(row) != len(r.weights) {
			return nil, fmt.Errorf("predict: row %d has %d features, want %d", i, len(row), len(r.weights))
		}
		v := r.intercept
		for j, x := range row {
			v += r.weights[j] * x
		}
		out[i] = v
	}
	return out, nil
}
