package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/nfl-projections/internal/app"
	"github.com/riskibarqy/nfl-projections/internal/config"
	"github.com/riskibarqy/nfl-projections/internal/domain/feature"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

const (
	sourceFile     = "file"
	sourcePostgres = "postgres"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	var err error
	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "build":
		err = runBuild(ctx, args[1:], stdout, stderr)
	case "evaluate":
		err = runEvaluate(ctx, args[1:], stdout, stderr)
	case "columns":
		err = runColumns(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	default:
		printUsage(stderr)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
}

var errUsage = errors.New("usage error")

type buildSummary struct {
	RunID                 string   `json:"run_id"`
	Seasons               []int    `json:"seasons"`
	Window                int      `json:"rolling_window"`
	Rows                  int      `json:"rows"`
	Columns               []string `json:"columns"`
	Path                  string   `json:"path"`
	PostgresRows          int      `json:"postgres_rows,omitempty"`
	CleanedRows           int      `json:"cleaned_rows"`
	DroppedGames          int      `json:"dropped_games"`
	UnmatchedJoinRows     int      `json:"unmatched_join_rows"`
	Rankings              int      `json:"rankings"`
	MissingOpponentRating int      `json:"missing_opponent_rating"`
	Duration              string   `json:"duration"`
}

func runBuild(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seasonsFlag := fs.String("seasons", "", "seasons to build, e.g. 2022,2023 or 2019-2023")
	window := fs.Int("window", 0, "rolling window in games (defaults to ROLLING_WINDOW)")
	name := fs.String("name", "features", "dataset name under DATA_DIR/features")
	refresh := fs.Bool("refresh", false, "refetch raw seasons even when cached on disk")
	toPostgres := fs.Bool("postgres", false, "also replace the seasons in Postgres")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	seasons, err := parseSeasons(*seasonsFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	a, logger, err := bootstrap(ctx, stderr, app.Options{Refresh: *refresh, Postgres: *toPostgres})
	if err != nil {
		return err
	}
	defer closeApp(a, logger)

	built, err := a.Features.Build(ctx, usecase.BuildInput{Seasons: seasons, RollingWindow: *window})
	if err != nil {
		return err
	}
	saved, err := a.Features.Save(ctx, built, usecase.SaveInput{Name: *name, Postgres: *toPostgres})
	if err != nil {
		return err
	}

	return writeJSON(stdout, buildSummary{
		RunID:                 built.RunID,
		Seasons:               built.Seasons,
		Window:                built.Window,
		Rows:                  len(built.Records),
		Columns:               feature.Columns(built.Window),
		Path:                  saved.Path,
		PostgresRows:          saved.PostgresRows,
		CleanedRows:           built.Clean.Output,
		DroppedGames:          built.DroppedGames,
		UnmatchedJoinRows:     built.Report.Join.Unmatched,
		Rankings:              built.Report.Rankings,
		MissingOpponentRating: built.Report.MissingOpponentRating,
		Duration:              built.Duration.Round(time.Millisecond).String(),
	})
}

type targetSummary struct {
	Target       string   `json:"target"`
	TrainRows    int      `json:"train_rows"`
	TestRows     int      `json:"test_rows"`
	MAE          float64  `json:"mae"`
	RMSE         float64  `json:"rmse"`
	R2           float64  `json:"r2"`
	MAPE         *float64 `json:"mape"`
	TrainRMSE    float64  `json:"train_rmse"`
	OverfitRatio *float64 `json:"overfit_ratio"`
	Status       string   `json:"status"`
}

type evaluationSummary struct {
	Dataset     string          `json:"dataset"`
	Position    string          `json:"position"`
	TestSeason  int             `json:"test_season"`
	Lambda      float64         `json:"lambda"`
	TrainRows   int             `json:"train_rows"`
	TestRows    int             `json:"test_rows"`
	DroppedRows int             `json:"dropped_rows"`
	Targets     []targetSummary `json:"targets"`
}

func runEvaluate(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", "features", "saved dataset name")
	position := fs.String("position", "", "position to evaluate: QB, RB, WR or TE")
	testSeason := fs.Int("test-season", 0, "season held out for testing")
	lambda := fs.Float64("lambda", 1.0, "ridge penalty")
	source := fs.String("source", sourceFile, "where features are read from: file or postgres")
	seasonsFlag := fs.String("seasons", "", "seasons to read from postgres, test season included")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *testSeason <= 0 {
		return fmt.Errorf("%w: -test-season is required", errUsage)
	}
	if *lambda < 0 {
		return fmt.Errorf("%w: -lambda must be >= 0", errUsage)
	}

	var seasons []int
	switch *source {
	case sourceFile:
	case sourcePostgres:
		var err error
		if seasons, err = parseSeasons(*seasonsFlag); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
	default:
		return fmt.Errorf("%w: unknown -source %q", errUsage, *source)
	}

	a, logger, err := bootstrap(ctx, stderr, app.Options{Postgres: *source == sourcePostgres})
	if err != nil {
		return err
	}
	defer closeApp(a, logger)

	dataset := *name
	var records []feature.Record
	if *source == sourcePostgres {
		dataset = sourcePostgres
		records, err = a.Repository.ListBySeasons(ctx, seasons)
	} else {
		records, err = a.Store.LoadFeatures(ctx, *name)
	}
	if err != nil {
		return err
	}
	window := feature.DefaultWindow
	if len(records) > 0 && records[0].Window > 0 {
		window = records[0].Window
	}

	train, test, err := feature.HoldoutSplit(feature.RecordsTable(records), *testSeason)
	if err != nil {
		return err
	}
	result, err := a.Evaluation.Evaluate(ctx, feature.NewRidgeRegressor(*lambda), usecase.EvaluateInput{
		Position: playerweek.Position(strings.ToUpper(strings.TrimSpace(*position))),
		Window:   window,
		Train:    train,
		Test:     test,
	})
	if err != nil {
		return err
	}

	summary := evaluationSummary{
		Dataset:     dataset,
		Position:    string(result.Position),
		TestSeason:  *testSeason,
		Lambda:      *lambda,
		TrainRows:   result.TrainRows,
		TestRows:    result.TestRows,
		DroppedRows: result.DroppedRows,
	}
	for _, target := range result.Targets {
		summary.Targets = append(summary.Targets, targetSummary{
			Target:       target.Target,
			TrainRows:    target.TrainRows,
			TestRows:     target.Metrics.N,
			MAE:          target.Metrics.MAE,
			RMSE:         target.Metrics.RMSE,
			R2:           target.Metrics.R2,
			MAPE:         finite(target.Metrics.MAPE),
			TrainRMSE:    target.TrainMetrics.RMSE,
			OverfitRatio: finite(target.Diagnosis.Ratio),
			Status:       string(target.Diagnosis.Status),
		})
	}
	return writeJSON(stdout, summary)
}

type columnsSummary struct {
	Version string              `json:"version"`
	Window  int                 `json:"rolling_window"`
	Columns []string            `json:"columns"`
	Targets map[string][]string `json:"targets"`
}

func runColumns(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("columns", flag.ContinueOnError)
	fs.SetOutput(stderr)
	window := fs.Int("window", feature.DefaultWindow, "rolling window in games")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *window < 1 {
		return fmt.Errorf("%w: -window must be >= 1", errUsage)
	}

	targets := make(map[string][]string)
	for position, names := range feature.TargetMap() {
		targets[string(position)] = names
	}
	return writeJSON(stdout, columnsSummary{
		Version: feature.ColumnsVersion,
		Window:  *window,
		Columns: feature.Columns(*window),
		Targets: targets,
	})
}

func bootstrap(ctx context.Context, stderr io.Writer, opts app.Options) (*app.App, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})
	logging.SetDefault(logger)

	a, err := app.New(ctx, cfg, logger, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("build app: %w", err)
	}
	return a, logger, nil
}

func closeApp(a *app.App, logger *logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
}

// parseSeasons accepts comma separated seasons and inclusive ranges.
func parseSeasons(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("-seasons is required")
	}

	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("invalid season %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(to)); err != nil {
				return nil, fmt.Errorf("invalid season range %q", part)
			}
			if end < start {
				return nil, fmt.Errorf("season range %q is reversed", part)
			}
		}
		for season := start; season <= end; season++ {
			out = append(out, season)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("-seasons is required")
	}
	return out, nil
}

// parseFlags reports bad flags as usage errors. The flag set has already
// printed the details.
func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %s", errUsage, fs.Name())
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func writeJSON(w io.Writer, v any) error {
	body, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <build|evaluate|columns> [flags]\n", name)
	fmt.Fprintln(w, "examples:")
	fmt.Fprintf(w, "  %s build -seasons 2022,2023 -window 3 -name features\n", name)
	fmt.Fprintf(w, "  %s build -seasons 2019-2023 -refresh -postgres\n", name)
	fmt.Fprintf(w, "  %s evaluate -name features -position RB -test-season 2023\n", name)
	fmt.Fprintf(w, "  %s evaluate -source postgres -seasons 2020-2023 -position WR -test-season 2023\n", name)
	fmt.Fprintf(w, "  %s columns -window 3\n", name)
}
