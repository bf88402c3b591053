package defense

import (
	"sort"

	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

// Rank computes season-to-date rankings for every season in stats. Seasons
// are independent and emitted in ascending order.
func Rank(stats []WeekStat) []Ranking {
	var out []Ranking
	for _, season := range SplitBySeason(stats) {
		out = append(out, RankSeason(season)...)
	}
	return out
}

// SplitBySeason groups stats by season, ordered by season ascending.
func SplitBySeason(stats []WeekStat) [][]WeekStat {
	bySeason := make(map[int][]WeekStat)
	for _, s := range stats {
		bySeason[s.Season] = append(bySeason[s.Season], s)
	}
	seasons := make([]int, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	out := make([][]WeekStat, 0, len(seasons))
	for _, season := range seasons {
		out = append(out, bySeason[season])
	}
	return out
}

// RankSeason ranks one season's defenses. For each distinct week W the
// emitted rows use running totals over weeks < W only; the first week has
// no prior data and yields no rows. Stats from other seasons are ignored
// by keying on the first row's season.
func RankSeason(stats []WeekStat) []Ranking {
	if len(stats) == 0 {
		return nil
	}
	season := stats[0].Season

	byWeek := make(map[int][]WeekStat)
	for _, s := range stats {
		if s.Season != season {
			continue
		}
		byWeek[s.Week] = append(byWeek[s.Week], s)
	}
	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	acc := newAccumulator()
	var out []Ranking
	for _, week := range weeks {
		if acc.size() > 0 {
			out = append(out, acc.rank(season, week)...)
		}
		for _, s := range byWeek[week] {
			acc.add(s)
		}
	}
	return out
}

// ComputeRankings reads defensive week stats from t and returns a rankings
// table with RankingColumns. Empty input yields an empty table with the
// same schema.
func ComputeRankings(t *frame.Table) (*frame.Table, error) {
	stats, err := WeekStatsFromTable(t)
	if err != nil {
		return nil, err
	}
	return RankingsTable(Rank(stats)), nil
}

func RankingsTable(rankings []Ranking) *frame.Table {
	n := len(rankings)
	teams := frame.NewColumn(ColTeam, frame.KindString, n)
	seasons := frame.NewColumn(ColSeason, frame.KindInt, n)
	weeks := frame.NewColumn(ColWeek, frame.KindInt, n)
	passRank := frame.NewColumn(ColPassRank, frame.KindInt, n)
	rushRank := frame.NewColumn(ColRushRank, frame.KindInt, n)
	totalRank := frame.NewColumn(ColTotalRank, frame.KindInt, n)
	passStrength := frame.NewColumn(ColPassStrength, frame.KindFloat, n)
	rushStrength := frame.NewColumn(ColRushStrength, frame.KindFloat, n)
	for i, r := range rankings {
		teams.SetString(i, r.Team)
		seasons.SetInt(i, r.Season)
		weeks.SetInt(i, r.Week)
		passRank.SetInt(i, r.PassRank)
		rushRank.SetInt(i, r.RushRank)
		totalRank.SetInt(i, r.TotalRank)
		passStrength.SetFloat(i, r.PassStrength)
		rushStrength.SetFloat(i, r.RushStrength)
	}
	return frame.MustNew(teams, seasons, weeks, passRank, rushRank, totalRank, passStrength, rushStrength)
}

// Strength maps a rank among n teams onto [0, 1], 0 being the best defense.
func Strength(rank, n int) float64 {
	return float64(rank-1) / float64(max(n-1, 1))
}

// CompetitionRanks ranks values ascending with ties sharing the lowest rank
// and the next distinct value skipping ahead (1, 1, 3).
func CompetitionRanks(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]int, len(values))
	for pos, idx := range order {
		if pos > 0 && values[idx] == values[order[pos-1]] {
			ranks[idx] = ranks[order[pos-1]]
			continue
		}
		ranks[idx] = pos + 1
	}
	return ranks
}

type totals struct {
	team  string
	pass  float64
	rush  float64
	total float64
}

// accumulator carries each team's running totals forward through a season.
type accumulator struct {
	teams []totals
	index map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int)}
}

func (a *accumulator) size() int {
	return len(a.teams)
}

func (a *accumulator) add(s WeekStat) {
	i, ok := a.index[s.Team]
	if !ok {
		i = len(a.teams)
		a.index[s.Team] = i
		a.teams = append(a.teams, totals{team: s.Team})
	}
	a.teams[i].pass += s.PassYardsAllowed
	a.teams[i].rush += s.RushYardsAllowed
	a.teams[i].total += s.TotalYardsAllowed
}

func (a *accumulator) rank(season, week int) []Ranking {
	n := len(a.teams)
	pass := make([]float64, n)
	rush := make([]float64, n)
	total := make([]float64, n)
	for i, t := range a.teams {
		pass[i] = t.pass
		rush[i] = t.rush
		total[i] = t.total
	}
	passRanks := CompetitionRanks(pass)
	rushRanks := CompetitionRanks(rush)
	totalRanks := CompetitionRanks(total)

	out := make([]Ranking, 0, n)
	for i, t := range a.teams {
		out = append(out, Ranking{
			Team:         t.team,
			Season:       season,
			Week:         week,
			PassRank:     passRanks[i],
			RushRank:     rushRanks[i],
			TotalRank:    totalRanks[i],
			PassStrength: Strength(passRanks[i], n),
			RushStrength: Strength(rushRanks[i], n),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out
}
