package feature

import "math"

type FitStatus string

const (
	FitHealthy      FitStatus = "healthy"
	FitOverfitting  FitStatus = "overfitting"
	FitUnderfitting FitStatus = "underfitting"
)

const (
	// OverfitThreshold is the largest test/train RMSE ratio still counted as
	// generalizing.
	OverfitThreshold = 1.3
	// UnderfitR2 is the R² below which a model explains too little.
	UnderfitR2 = 0.1
)

type Diagnosis struct {
	Ratio  float64
	Status FitStatus
}

// OverfitRatio is testRMSE / trainRMSE. A perfect train fit gives +Inf.
func OverfitRatio(trainRMSE, testRMSE float64) float64 {
	if trainRMSE == 0 {
		return math.Inf(1)
	}
	return testRMSE / trainRMSE
}

// Diagnose compares train and test metrics of one fitted target. A ratio
// above OverfitThreshold is overfitting; otherwise R² under UnderfitR2 on
// both sets is underfitting.
func Diagnose(train, test Metrics) Diagnosis {
	d := Diagnosis{Ratio: OverfitRatio(train.RMSE, test.RMSE), Status: FitHealthy}
	switch {
	case d.Ratio > OverfitThreshold:
		d.Status = FitOverfitting
	case !math.IsNaN(train.R2) && !math.IsNaN(test.R2) && train.R2 < UnderfitR2 && test.R2 < UnderfitR2:
		d.Status = FitUnderfitting
	}
	return d
}
