package feature

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrNoSamples = errors.New("no samples")

// Regressor is a trainable single-output model.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(X [][]float64) ([]float64, error)
}

type Metrics struct {
	MAE  float64
	RMSE float64
	R2   float64
	// MAPE is a percentage over non-zero actuals; NaN when every actual is 0.
	MAPE float64
	N    int
}

func Evaluate(yTrue, yPred []float64) (Metrics, error) {
	if len(yTrue) != len(yPred) {
		return Metrics{}, fmt.Errorf("evaluate: %d actuals vs %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return Metrics{}, ErrNoSamples
	}

	residuals := make([]float64, len(yTrue))
	floats.SubTo(residuals, yTrue, yPred)

	abs := make([]float64, len(residuals))
	sq := make([]float64, len(residuals))
	var pct []float64
	for i, r := range residuals {
		abs[i] = math.Abs(r)
		sq[i] = r * r
		if yTrue[i] != 0 {
			pct = append(pct, math.Abs(r/yTrue[i]))
		}
	}

	m := Metrics{
		MAE:  stat.Mean(abs, nil),
		RMSE: math.Sqrt(stat.Mean(sq, nil)),
		MAPE: math.NaN(),
		N:    len(yTrue),
	}
	if len(pct) > 0 {
		m.MAPE = stat.Mean(pct, nil) * 100
	}

	if floats.Min(yTrue) == floats.Max(yTrue) {
		// constant actuals leave nothing to explain
		if floats.Sum(sq) == 0 {
			m.R2 = 1
		}
	} else {
		m.R2 = stat.RSquaredFrom(yPred, yTrue, nil)
	}
	return m, nil
}
