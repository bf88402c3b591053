package defense

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekStat(team string, season, week int, pass, rush float64) WeekStat {
	return WeekStat{
		Team:              team,
		Season:            season,
		Week:              week,
		PassYardsAllowed:  pass,
		RushYardsAllowed:  rush,
		TotalYardsAllowed: pass + rush,
	}
}

func rankingsFor(rankings []Ranking, week int) map[string]Ranking {
	out := make(map[string]Ranking)
	for _, r := range rankings {
		if r.Week == week {
			out[r.Team] = r
		}
	}
	return out
}

func TestCompetitionRanks(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   []int
	}{
		{name: "distinct", values: []float64{300, 100, 400, 200}, want: []int{3, 1, 4, 2}},
		{name: "tie for best skips next rank", values: []float64{100, 100, 200}, want: []int{1, 1, 3}},
		{name: "tie in middle", values: []float64{50, 80, 80, 90}, want: []int{1, 2, 2, 4}},
		{name: "single", values: []float64{10}, want: []int{1}},
		{name: "empty", values: nil, want: []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompetitionRanks(tc.values))
		})
	}
}

func TestRank_FourTeamsExactRanksAndStrengths(t *testing.T) {
	stats := []WeekStat{
		weekStat("AAA", 2024, 1, 100, 0),
		weekStat("BBB", 2024, 1, 200, 0),
		weekStat("CCC", 2024, 1, 300, 0),
		weekStat("DDD", 2024, 1, 400, 0),
		weekStat("AAA", 2024, 2, 0, 0),
	}

	got := rankingsFor(Rank(stats), 2)
	require.Len(t, got, 4)

	wantRank := map[string]int{"AAA": 1, "BBB": 2, "CCC": 3, "DDD": 4}
	wantStrength := map[string]float64{"AAA": 0, "BBB": 1.0 / 3.0, "CCC": 2.0 / 3.0, "DDD": 1}
	for team, r := range got {
		if r.PassRank != wantRank[team] {
			t.Fatalf("%s pass rank = %d, want %d", team, r.PassRank, wantRank[team])
		}
		if r.PassStrength != wantStrength[team] {
			t.Fatalf("%s pass strength = %v, want %v", team, r.PassStrength, wantStrength[team])
		}
	}
}

func TestRank_TiesShareMinimumRank(t *testing.T) {
	stats := []WeekStat{
		weekStat("AAA", 2024, 1, 100, 50),
		weekStat("BBB", 2024, 1, 100, 60),
		weekStat("CCC", 2024, 1, 150, 70),
		weekStat("AAA", 2024, 2, 1, 1),
	}

	got := rankingsFor(Rank(stats), 2)
	assert.Equal(t, 1, got["AAA"].PassRank)
	assert.Equal(t, 1, got["BBB"].PassRank)
	assert.Equal(t, 3, got["CCC"].PassRank)
	assert.Equal(t, 1.0, got["CCC"].PassStrength)
}

func TestRank_FirstWeekEmitsNothing(t *testing.T) {
	stats := []WeekStat{
		weekStat("AAA", 2024, 1, 100, 50),
		weekStat("BBB", 2024, 1, 200, 60),
	}

	assert.Empty(t, Rank(stats))
}

func TestRank_UsesCumulativePriorWeeksOnly(t *testing.T) {
	stats := []WeekStat{
		weekStat("AAA", 2024, 1, 100, 10),
		weekStat("BBB", 2024, 1, 300, 10),
		weekStat("AAA", 2024, 2, 400, 10),
		weekStat("BBB", 2024, 2, 100, 10),
		weekStat("AAA", 2024, 3, 0, 0),
		weekStat("BBB", 2024, 3, 0, 0),
	}

	rankings := Rank(stats)

	week2 := rankingsFor(rankings, 2)
	assert.Equal(t, 1, week2["AAA"].PassRank)
	assert.Equal(t, 2, week2["BBB"].PassRank)

	// week 3 sees AAA=500, BBB=400
	week3 := rankingsFor(rankings, 3)
	assert.Equal(t, 2, week3["AAA"].PassRank)
	assert.Equal(t, 1, week3["BBB"].PassRank)
	// rush totals tie at 20
	assert.Equal(t, 1, week3["AAA"].RushRank)
	assert.Equal(t, 1, week3["BBB"].RushRank)
}

func TestRank_FutureWeekPerturbationDoesNotLeak(t *testing.T) {
	base := []WeekStat{
		weekStat("AAA", 2024, 1, 120, 80),
		weekStat("BBB", 2024, 1, 250, 40),
		weekStat("CCC", 2024, 1, 180, 100),
		weekStat("AAA", 2024, 2, 200, 90),
		weekStat("BBB", 2024, 2, 150, 70),
		weekStat("CCC", 2024, 2, 260, 30),
		weekStat("AAA", 2024, 3, 10, 10),
	}
	before := rankingsFor(Rank(base), 3)

	perturbed := append([]WeekStat{}, base...)
	perturbed[len(perturbed)-1] = weekStat("AAA", 2024, 3, 99999, 99999)
	perturbed = append(perturbed,
		weekStat("BBB", 2024, 3, 0, 0),
		weekStat("CCC", 2024, 3, 5000, 5000),
		weekStat("AAA", 2024, 4, 1, 1),
	)
	afterAll := Rank(perturbed)
	after := rankingsFor(afterAll, 3)

	require.Equal(t, before, after)

	week4 := rankingsFor(afterAll, 4)
	require.NotEmpty(t, week4)
	assert.Equal(t, 3, week4["AAA"].PassRank)
}

func TestRank_SeasonsAreIndependent(t *testing.T) {
	stats := []WeekStat{
		weekStat("AAA", 2023, 17, 100, 0),
		weekStat("BBB", 2023, 17, 200, 0),
		weekStat("AAA", 2024, 1, 900, 0),
		weekStat("BBB", 2024, 1, 100, 0),
		weekStat("AAA", 2024, 2, 0, 0),
	}

	rankings := Rank(stats)
	for _, r := range rankings {
		if r.Season == 2024 && r.Week == 1 {
			t.Fatalf("week 1 of 2024 must not be ranked from 2023 data")
		}
	}
	got := rankingsFor(rankings, 2)
	assert.Equal(t, 2, got["AAA"].PassRank)
}

func TestStrength_BoundsForAnyTeamCount(t *testing.T) {
	for n := 1; n <= 40; n++ {
		for rank := 1; rank <= n; rank++ {
			s := Strength(rank, n)
			if s < 0 || s > 1 {
				t.Fatalf("Strength(%d, %d) = %v out of [0, 1]", rank, n, s)
			}
		}
	}
	assert.Equal(t, 0.0, Strength(1, 1))
}

func TestComputeRankings_EmptyInputKeepsSchema(t *testing.T) {
	out, err := ComputeRankings(WeekStatsTable(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
	assert.Equal(t, RankingColumns, out.Names())
}
