package playerweek

import (
	"errors"
	"strings"

	"github.com/riskibarqy/nfl-projections/internal/domain/team"
)

const (
	MaxYardsPerGame      = 600.0
	MaxTouchdownsPerGame = 8.0
)

type CleanReport struct {
	Input           int
	Output          int
	MissingPlayerID int
	InvalidPosition int
	InvalidSeason   int
	InvalidWeek     int
	Duplicates      int
	CappedValues    int
	UnknownTeams    int
}

// Clean drops rows that cannot be keyed, null-fills and caps stats, and maps
// team codes to current franchises. The input slice is left untouched.
func Clean(records []Record) ([]Record, CleanReport) {
	report := CleanReport{Input: len(records)}
	out := make([]Record, 0, len(records))
	seen := make(map[recordKey]struct{}, len(records))

	for _, rec := range records {
		rec.PlayerID = strings.TrimSpace(rec.PlayerID)
		rec.Position = Position(strings.ToUpper(strings.TrimSpace(string(rec.Position))))

		if err := rec.Validate(); err != nil {
			switch {
			case errors.Is(err, ErrMissingPlayerID):
				report.MissingPlayerID++
			case errors.Is(err, ErrInvalidPosition):
				report.InvalidPosition++
			case errors.Is(err, ErrInvalidSeason):
				report.InvalidSeason++
			case errors.Is(err, ErrInvalidWeek):
				report.InvalidWeek++
			}
			continue
		}

		key := recordKey{playerID: rec.PlayerID, season: rec.Season, week: rec.Week}
		if _, dup := seen[key]; dup {
			report.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		if rec.Team != "" {
			normalized, known := team.Normalize(rec.Team)
			if !known {
				report.UnknownTeams++
			}
			rec.Team = normalized
		}

		for _, field := range rec.Stats() {
			value := 0.0
			if *field.Value != nil {
				value = **field.Value
			}
			if limit, ok := statCap(field.Name); ok && value > limit {
				value = limit
				report.CappedValues++
			}
			*field.Value = Float(value)
		}

		out = append(out, rec)
	}

	report.Output = len(out)
	return out, report
}

func statCap(name string) (float64, bool) {
	switch {
	case strings.HasSuffix(name, "_yards"):
		return MaxYardsPerGame, true
	case strings.HasSuffix(name, "_tds"):
		return MaxTouchdownsPerGame, true
	default:
		return 0, false
	}
}

type recordKey struct {
	playerID string
	season   int
	week     int
}
