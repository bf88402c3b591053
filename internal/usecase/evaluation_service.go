package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/nfl-projections/internal/domain/feature"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

type EvaluateInput struct {
	Position playerweek.Position
	Window   int
	Train    *frame.Table
	Test     *frame.Table
}

type TargetEvaluation struct {
	Target       string
	TrainRows    int
	Metrics      feature.Metrics
	TrainMetrics feature.Metrics
	Diagnosis    feature.Diagnosis
}

type EvaluationResult struct {
	Position    playerweek.Position
	TrainRows   int
	TestRows    int
	Targets     []TargetEvaluation
	DroppedRows int
}

type EvaluationService struct {
	logger *logging.Logger
}

func NewEvaluationService(logger *logging.Logger) *EvaluationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EvaluationService{logger: logger}
}

// Evaluate fits model once per target of the position on the training rows
// and scores its predictions on the test rows. The model is refit for every
// target, so it must not carry state between Fit calls.
func (s *EvaluationService) Evaluate(ctx context.Context, model feature.Regressor, input EvaluateInput) (_ EvaluationResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.Evaluate",
		attrPosition.String(string(input.Position)),
		attrWindow.Int(input.Window),
	)
	defer endUsecaseSpan(span, &err)

	if model == nil {
		return EvaluationResult{}, fmt.Errorf("%w: model is required", ErrInvalidInput)
	}
	if input.Train == nil || input.Test == nil {
		return EvaluationResult{}, fmt.Errorf("%w: train and test tables are required", ErrInvalidInput)
	}
	window := input.Window
	if window < 1 {
		window = feature.DefaultWindow
	}

	train, err := feature.PrepareTraining(input.Train, input.Position, window)
	if err != nil {
		if errors.Is(err, feature.ErrInvalidPosition) {
			return EvaluationResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return EvaluationResult{}, fmt.Errorf("prepare training rows: %w", err)
	}
	test, err := feature.PrepareTraining(input.Test, input.Position, window)
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("prepare test rows: %w", err)
	}
	if train.Len() == 0 || test.Len() == 0 {
		return EvaluationResult{}, fmt.Errorf("%w: position=%s train=%d test=%d", feature.ErrNoSamples, input.Position, train.Len(), test.Len())
	}

	result := EvaluationResult{
		Position:    input.Position,
		TrainRows:   train.Len(),
		TestRows:    test.Len(),
		DroppedRows: train.Dropped + test.Dropped,
	}
	for _, target := range train.Targets {
		if err := model.Fit(train.X, train.Y[target]); err != nil {
			return EvaluationResult{}, fmt.Errorf("fit %s: %w", target, err)
		}
		trainPred, err := model.Predict(train.X)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("predict train %s: %w", target, err)
		}
		testPred, err := model.Predict(test.X)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("predict test %s: %w", target, err)
		}

		trainMetrics, err := feature.Evaluate(train.Y[target], trainPred)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("score train %s: %w", target, err)
		}
		metrics, err := feature.Evaluate(test.Y[target], testPred)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("score test %s: %w", target, err)
		}

		eval := TargetEvaluation{
			Target:       target,
			TrainRows:    train.Len(),
			Metrics:      metrics,
			TrainMetrics: trainMetrics,
			Diagnosis:    feature.Diagnose(trainMetrics, metrics),
		}
		result.Targets = append(result.Targets, eval)

		s.logger.InfoContext(ctx, "evaluated target",
			"position", input.Position,
			"target", target,
			"mae", metrics.MAE,
			"rmse", metrics.RMSE,
			"r2", metrics.R2,
			"mape", metrics.MAPE,
			"n", metrics.N,
			"train_rmse", trainMetrics.RMSE,
			"overfit_ratio", eval.Diagnosis.Ratio,
			"status", eval.Diagnosis.Status,
		)
		if eval.Diagnosis.Status != feature.FitHealthy {
			s.logger.WarnContext(ctx, "target fit is not healthy",
				"position", input.Position,
				"target", target,
				"status", eval.Diagnosis.Status,
				"overfit_ratio", eval.Diagnosis.Ratio,
				"train_r2", trainMetrics.R2,
				"test_r2", metrics.R2,
			)
		}
	}

	return result, nil
}
