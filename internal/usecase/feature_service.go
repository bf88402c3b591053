package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/nfl-projections/internal/domain/defense"
	"github.com/riskibarqy/nfl-projections/internal/domain/feature"
	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
	idgen "github.com/riskibarqy/nfl-projections/internal/platform/id"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

const defaultFeatureWorkers = 4

type FeatureServiceConfig struct {
	RollingWindow int
	MaxWorkers    int
	// IDs names build runs. Defaults to time-ordered UUIDs.
	IDs idgen.Generator
}

// FeatureWriter persists an assembled feature set under a name.
type FeatureWriter interface {
	SaveFeatures(ctx context.Context, name string, records []feature.Record) (string, error)
}

// FeatureStore replaces the stored feature rows of whole seasons.
type FeatureStore interface {
	ReplaceSeasons(ctx context.Context, seasons []int, records []feature.Record) (int, error)
}

type BuildInput struct {
	Seasons       []int `validate:"required,min=1,dive,gte=1999,lte=2100"`
	RollingWindow int   `validate:"omitempty,min=1,max=17"`
}

type BuildResult struct {
	RunID        string
	Seasons      []int
	Window       int
	Table        *frame.Table
	Records      []feature.Record
	Report       feature.Report
	Clean        playerweek.CleanReport
	DroppedGames int
	Duration     time.Duration
}

type SaveInput struct {
	Name     string
	Postgres bool
}

type SaveResult struct {
	Path         string
	PostgresRows int
}

type FeatureService struct {
	players   playerweek.Provider
	games     game.Provider
	writer    FeatureWriter
	store     FeatureStore
	cfg       FeatureServiceConfig
	logger    *logging.Logger
	validator *validator.Validate
}

func NewFeatureService(
	players playerweek.Provider,
	games game.Provider,
	writer FeatureWriter,
	store FeatureStore,
	cfg FeatureServiceConfig,
	logger *logging.Logger,
) *FeatureService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RollingWindow < 1 {
		cfg.RollingWindow = feature.DefaultWindow
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = defaultFeatureWorkers
	}
	if cfg.IDs == nil {
		cfg.IDs = idgen.NewUUIDGenerator()
	}

	return &FeatureService{
		players:   players,
		games:     games,
		writer:    writer,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		validator: validator.New(),
	}
}

// Build loads and cleans the requested seasons and assembles the feature
// table. Output is identical to a sequential run regardless of MaxWorkers.
func (s *FeatureService) Build(ctx context.Context, input BuildInput) (_ BuildResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeatureService.Build",
		attrSeasons.IntSlice(input.Seasons),
		attrWindow.Int(input.RollingWindow),
	)
	defer endUsecaseSpan(span, &err)

	if err := s.validator.StructCtx(ctx, input); err != nil {
		return BuildResult{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	if s.players == nil || s.games == nil {
		return BuildResult{}, fmt.Errorf("%w: feature providers are not configured", ErrDependencyUnavailable)
	}

	seasons := normalizeSeasons(input.Seasons)
	window := input.RollingWindow
	if window < 1 {
		window = s.cfg.RollingWindow
	}

	runID, err := s.cfg.IDs.NewID()
	if err != nil {
		return BuildResult{}, fmt.Errorf("generate run id: %w", err)
	}

	start := time.Now()
	result := BuildResult{
		RunID:   runID,
		Seasons: seasons,
		Window:  window,
	}
	span.SetAttributes(attrRunID.String(runID), attrWindow.Int(window))
	logger := s.logger.With("run_id", result.RunID)
	logger.InfoContext(ctx, "building features", "seasons", seasons, "rolling_window", window)

	records, games, err := s.loadSeasons(ctx, seasons)
	if err != nil {
		return BuildResult{}, err
	}

	cleaned, cleanReport := playerweek.Clean(records)
	result.Clean = cleanReport
	normalizedGames, droppedGames := game.Normalize(games)
	result.DroppedGames = droppedGames
	logger.InfoContext(ctx, "cleaned player weeks",
		"input_rows", cleanReport.Input,
		"output_rows", cleanReport.Output,
		"capped_values", cleanReport.CappedValues,
		"unknown_teams", cleanReport.UnknownTeams,
		"games", len(normalizedGames),
		"dropped_games", droppedGames,
	)

	table, report, err := feature.AssembleWith(
		playerweek.ToTable(cleaned),
		game.ToTable(normalizedGames),
		feature.Options{Window: window, Rank: s.rankSeasons},
	)
	if err != nil {
		return BuildResult{}, fmt.Errorf("assemble features: %w", err)
	}

	featureRecords, err := feature.Records(table, window)
	if err != nil {
		return BuildResult{}, fmt.Errorf("project feature records: %w", err)
	}

	result.Table = table
	result.Records = featureRecords
	result.Report = report
	result.Duration = time.Since(start)
	span.SetAttributes(attrRows.Int(len(featureRecords)))

	logger.InfoContext(ctx, "feature build complete",
		"rows", report.Rows,
		"columns", len(table.Names()),
		"join_matched", report.Join.Matched,
		"join_unmatched", report.Join.Unmatched,
		"join_duplicate_keys", report.Join.DuplicateKeys,
		"rolling_columns", len(report.RollingColumns),
		"defensive_week_stats", report.DefensiveWeekStats,
		"rankings", report.Rankings,
		"missing_opponent_rating", report.MissingOpponentRating,
		"duration", result.Duration,
	)
	if report.Join.Unmatched > 0 {
		logger.WarnContext(ctx, "player weeks without a scheduled game",
			"rows", report.Join.Unmatched,
		)
	}

	return result, nil
}

// Save writes a built feature set with the configured writer and, when
// requested, replaces the same seasons in the feature store.
func (s *FeatureService) Save(ctx context.Context, built BuildResult, input SaveInput) (_ SaveResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeatureService.Save",
		attrRunID.String(built.RunID),
		attrDataset.String(input.Name),
		attrRows.Int(len(built.Records)),
	)
	defer endUsecaseSpan(span, &err)

	if s.writer == nil {
		return SaveResult{}, fmt.Errorf("%w: feature writer is not configured", ErrDependencyUnavailable)
	}
	name := input.Name
	if name == "" {
		name = "features"
	}

	path, err := s.writer.SaveFeatures(ctx, name, built.Records)
	if err != nil {
		return SaveResult{}, fmt.Errorf("save features: %w", err)
	}
	out := SaveResult{Path: path}
	s.logger.InfoContext(ctx, "saved features", "run_id", built.RunID, "path", path, "rows", len(built.Records))

	if !input.Postgres {
		return out, nil
	}
	if s.store == nil {
		return SaveResult{}, fmt.Errorf("%w: feature store is not configured", ErrDependencyUnavailable)
	}
	rows, err := s.store.ReplaceSeasons(ctx, built.Seasons, built.Records)
	if err != nil {
		return SaveResult{}, fmt.Errorf("replace feature seasons: %w", err)
	}
	out.PostgresRows = rows
	s.logger.InfoContext(ctx, "stored features", "run_id", built.RunID, "seasons", built.Seasons, "rows", rows)

	return out, nil
}

type seasonData struct {
	season  int
	records []playerweek.Record
	games   []game.Game
}

// loadSeasons fetches each season concurrently and concatenates the results
// in season order.
func (s *FeatureService) loadSeasons(ctx context.Context, seasons []int) ([]playerweek.Record, []game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeatureService.loadSeasons", attrSeasons.IntSlice(seasons))
	defer span.End()

	p := pool.NewWithResults[seasonData]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(min(s.cfg.MaxWorkers, len(seasons)))

	for _, season := range seasons {
		p.Go(func(ctx context.Context) (seasonData, error) {
			records, err := s.players.ListBySeasons(ctx, []int{season})
			if err != nil {
				return seasonData{}, fmt.Errorf("%w: list player weeks season=%d: %v", ErrDependencyUnavailable, season, err)
			}
			games, err := s.games.ListBySeasons(ctx, []int{season})
			if err != nil {
				return seasonData{}, fmt.Errorf("%w: list games season=%d: %v", ErrDependencyUnavailable, season, err)
			}
			return seasonData{season: season, records: records, games: games}, nil
		})
	}

	loaded, err := p.Wait()
	if err != nil {
		return nil, nil, err
	}
	sort.Slice(loaded, func(i, j int) bool { return loaded[i].season < loaded[j].season })

	var records []playerweek.Record
	var games []game.Game
	for _, data := range loaded {
		s.logger.DebugContext(ctx, "loaded season", "season", data.season, "player_weeks", len(data.records), "games", len(data.games))
		records = append(records, data.records...)
		games = append(games, data.games...)
	}
	return records, games, nil
}

// rankSeasons ranks each season on the worker pool. Seasons share no state,
// so results are merged back in season order.
func (s *FeatureService) rankSeasons(stats []defense.WeekStat) []defense.Ranking {
	bySeason := defense.SplitBySeason(stats)
	if len(bySeason) <= 1 {
		return defense.Rank(stats)
	}

	ranked := make([][]defense.Ranking, len(bySeason))
	workerPool, err := ants.NewPool(min(s.cfg.MaxWorkers, len(bySeason)))
	if err != nil {
		s.logger.Warn("ranking worker pool unavailable, ranking sequentially", "error", err)
		return defense.Rank(stats)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for i, seasonStats := range bySeason {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			ranked[i] = defense.RankSeason(seasonStats)
		}); err != nil {
			workers.Done()
			ranked[i] = defense.RankSeason(seasonStats)
		}
	}
	workers.Wait()

	var out []defense.Ranking
	for _, season := range ranked {
		out = append(out, season...)
	}
	return out
}

func normalizeSeasons(seasons []int) []int {
	out := slices.Clone(seasons)
	slices.Sort(out)
	return slices.Compact(out)
}
