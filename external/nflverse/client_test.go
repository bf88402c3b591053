package nflverse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/resilience"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

const playerStatsCSV = `player_id,player_display_name,position,recent_team,season,week,season_type,completions,attempts,passing_yards,passing_tds,interceptions,carries,rushing_yards,rushing_tds,receptions,targets,receiving_yards,receiving_tds,fantasy_points_ppr
00-001,Patrick Mahomes,QB,KC,2024,1,REG,20,30,291,1,1,2,2,0,0,0,0,0,18.6
00-002,Josh Jacobs,RB,GB,2024,1,REG,0,0,0,0,0,32,84,0,2,3,12,0,11.6
00-003,Some Receiver,WR,STL,2024,1,REG,NA,NA,NA,NA,NA,NA,NA,NA,4,6,55,1,15.5
00-001,Patrick Mahomes,QB,KC,2024,19,POST,25,35,300,2,0,3,10,0,0,0,0,0,22
`

const newPlayerStatsCSV = `player_id,player_name,position,team,season,week,season_type,passing_yards,passing_interceptions
00-009,J.Allen,QB,BUF,2025,2,REG,250,2
`

const gamesCSV = `game_id,season,game_type,week,away_team,home_team,roof,temp,wind
2023_01_DET_KC,2023,REG,1,DET,KC,outdoors,82,7
2024_01_GB_PHI,2024,REG,1,GB,PHI,outdoors,NA,NA
2024_01_LA_DET,2024,REG,1,LA,DET,dome,,
2024_19_HOU_KC,2024,WC,19,HOU,KC,outdoors,30,12
`

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg ClientConfig) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.HTTPClient = server.Client()
	cfg.PlayerStatsURL = server.URL + "/stats/%d.csv"
	cfg.GamesURL = server.URL + "/games.csv"
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Millisecond
	}
	return NewClient(cfg)
}

func TestPlayerWeeks_ParsesRegularSeasonRows(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats/2024.csv" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(playerStatsCSV))
	}, ClientConfig{})

	records, err := client.PlayerWeeks().ListBySeasons(context.Background(), []int{2024})
	if err != nil {
		t.Fatalf("list player weeks: %v", err)
	}
	require.Len(t, records, 3)

	qb := records[0]
	assert.Equal(t, "Patrick Mahomes", qb.PlayerName)
	assert.Equal(t, playerweek.PositionQB, qb.Position)
	assert.Equal(t, "KC", qb.Team)
	require.NotNil(t, qb.PassingYards)
	assert.Equal(t, 291.0, *qb.PassingYards)
	require.NotNil(t, qb.FantasyPPR)
	assert.Equal(t, 18.6, *qb.FantasyPPR)

	wr := records[2]
	assert.Equal(t, "STL", wr.Team, "team codes are normalized downstream")
	assert.Nil(t, wr.PassingYards)
	require.NotNil(t, wr.ReceivingYards)
	assert.Equal(t, 55.0, *wr.ReceivingYards)
}

func TestPlayerWeeks_AcceptsRenamedColumns(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(newPlayerStatsCSV))
	}, ClientConfig{})

	records, err := client.PlayerWeeks().ListBySeasons(context.Background(), []int{2025})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BUF", records[0].Team)
	require.NotNil(t, records[0].Interceptions)
	assert.Equal(t, 2.0, *records[0].Interceptions)
	assert.Nil(t, records[0].Receptions)
}

func TestPlayerWeeks_MissingRequiredColumn(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("player_id,season,week\n00-1,2024,1\n"))
	}, ClientConfig{})

	_, err := client.PlayerWeeks().ListBySeasons(context.Background(), []int{2024})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position")
}

func TestGames_FiltersSeasonsAndGameType(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(gamesCSV))
	}, ClientConfig{})

	games, err := client.Games().ListBySeasons(context.Background(), []int{2024})
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	require.Len(t, games, 2)
	assert.Equal(t, "2024_01_GB_PHI", games[0].ID)
	assert.Nil(t, games[0].Temperature)
	assert.Nil(t, games[0].WindSpeed)
	assert.Equal(t, "dome", games[1].Roof)
	assert.Equal(t, "LA", games[1].AwayTeam)
}

func TestGames_ConcurrentSeasonsShareDownload(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(gamesCSV))
	}, ClientConfig{})

	errs := make(chan error, 2)
	for _, season := range []int{2023, 2024} {
		go func() {
			_, err := client.Games().ListBySeasons(context.Background(), []int{season})
			errs <- err
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	for i := 0; i < 2; i++ {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestGames_ScheduleDownloadedOncePerClient(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(gamesCSV))
	}, ClientConfig{})
	provider := client.Games()

	// a failed download is not kept
	_, err := provider.ListBySeasons(context.Background(), []int{2023})
	require.Error(t, err)

	for _, season := range []int{2023, 2024, 2023} {
		games, err := provider.ListBySeasons(context.Background(), []int{season})
		require.NoError(t, err)
		for _, g := range games {
			assert.Equal(t, season, g.Season)
		}
	}
	assert.Equal(t, int32(2), hits.Load())

	games, err := client.Games().ListBySeasons(context.Background(), []int{2023, 2024})
	require.NoError(t, err)
	assert.Len(t, games, 3)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(gamesCSV))
	}, ClientConfig{MaxRetries: 2})

	games, err := client.Games().ListBySeasons(context.Background(), []int{2023})
	require.NoError(t, err)
	assert.Len(t, games, 1)
	assert.Equal(t, int32(3), hits.Load())
}

func TestClient_DoesNotRetryNotFound(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.NotFound(w, nil)
	}, ClientConfig{MaxRetries: 3})

	_, err := client.PlayerWeeks().ListBySeasons(context.Background(), []int{1998})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=404")
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, ClientConfig{CircuitBreaker: resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	}})

	for i := 0; i < 2; i++ {
		_, err := client.Games().ListBySeasons(context.Background(), []int{2024})
		require.Error(t, err)
	}

	_, err := client.Games().ListBySeasons(context.Background(), []int{2024})
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestParsePlayerWeeks_SkipsOtherSeasons(t *testing.T) {
	t.Parallel()

	csv := strings.Replace(playerStatsCSV, "GB,2024,1", "GB,2023,1", 1)
	records, skipped, err := parsePlayerWeeks(strings.NewReader(csv), 2024)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 2, skipped)
	for _, rec := range records {
		assert.Equal(t, 2024, rec.Season, fmt.Sprintf("player %s", rec.PlayerID))
	}
}
