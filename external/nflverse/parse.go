package nflverse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
)

const regularSeason = "REG"

// header maps column names to indexes. Lookups accept aliases because the
// release files renamed several columns over time.
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	names, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h := make(header, len(names))
	for i, name := range names {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, exists := h[name]; !exists {
			h[name] = i
		}
	}
	return h, nil
}

func (h header) index(aliases ...string) int {
	for _, alias := range aliases {
		if i, ok := h[alias]; ok {
			return i
		}
	}
	return -1
}

func (h header) require(aliases ...string) (int, error) {
	i := h.index(aliases...)
	if i < 0 {
		return -1, fmt.Errorf("required column %q missing", aliases[0])
	}
	return i, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isMissing(v string) bool {
	return v == "" || strings.EqualFold(v, "NA") || strings.EqualFold(v, "null")
}

func floatField(row []string, i int) *float64 {
	v := field(row, i)
	if isMissing(v) {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func intField(row []string, i int) (int, bool) {
	v := field(row, i)
	if isMissing(v) {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return n, true
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

var statAliases = map[string][]string{
	playerweek.StatPassingYards:   {"passing_yards"},
	playerweek.StatPassingTDs:     {"passing_tds"},
	playerweek.StatInterceptions:  {"interceptions", "passing_interceptions"},
	playerweek.StatAttempts:       {"attempts"},
	playerweek.StatCompletions:    {"completions"},
	playerweek.StatRushingYards:   {"rushing_yards"},
	playerweek.StatRushingTDs:     {"rushing_tds"},
	playerweek.StatCarries:        {"carries"},
	playerweek.StatReceptions:     {"receptions"},
	playerweek.StatTargets:        {"targets"},
	playerweek.StatReceivingYards: {"receiving_yards"},
	playerweek.StatReceivingTDs:   {"receiving_tds"},
	playerweek.StatFantasyPPR:     {"fantasy_points_ppr"},
}

// parsePlayerWeeks reads a weekly stats file. Rows from other seasons or
// outside the regular season are skipped and counted.
func parsePlayerWeeks(r io.Reader, season int) ([]playerweek.Record, int, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, 0, err
	}

	iID, err := h.require("player_id")
	if err != nil {
		return nil, 0, err
	}
	iSeason, err := h.require("season")
	if err != nil {
		return nil, 0, err
	}
	iWeek, err := h.require("week")
	if err != nil {
		return nil, 0, err
	}
	iPosition, err := h.require("position")
	if err != nil {
		return nil, 0, err
	}
	iTeam, err := h.require("team", "recent_team")
	if err != nil {
		return nil, 0, err
	}
	iName := h.index("player_display_name", "player_name")
	iSeasonType := h.index("season_type")

	statIdx := make(map[string]int, len(statAliases))
	for name, aliases := range statAliases {
		statIdx[name] = h.index(aliases...)
	}

	var out []playerweek.Record
	skipped := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read row: %w", err)
		}

		if iSeasonType >= 0 && !strings.EqualFold(field(row, iSeasonType), regularSeason) {
			skipped++
			continue
		}
		s, ok := intField(row, iSeason)
		if !ok || s != season {
			skipped++
			continue
		}
		week, _ := intField(row, iWeek)

		rec := playerweek.Record{
			PlayerID:   field(row, iID),
			PlayerName: field(row, iName),
			Position:   playerweek.Position(strings.ToUpper(field(row, iPosition))),
			Team:       strings.ToUpper(field(row, iTeam)),
			Season:     s,
			Week:       week,
		}
		for _, stat := range rec.Stats() {
			*stat.Value = floatField(row, statIdx[stat.Name])
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

// parseGames reads the regular-season games of every season in the schedule
// file.
func parseGames(r io.Reader) ([]game.Game, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	iID, err := h.require("game_id")
	if err != nil {
		return nil, err
	}
	iSeason, err := h.require("season")
	if err != nil {
		return nil, err
	}
	iWeek, err := h.require("week")
	if err != nil {
		return nil, err
	}
	iHome, err := h.require("home_team")
	if err != nil {
		return nil, err
	}
	iAway, err := h.require("away_team")
	if err != nil {
		return nil, err
	}
	iType := h.index("game_type", "season_type")
	iTemp := h.index("temp", "temperature")
	iWind := h.index("wind", "wind_speed")
	iRoof := h.index("roof")

	var out []game.Game
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if iType >= 0 && !strings.EqualFold(field(row, iType), regularSeason) {
			continue
		}
		season, ok := intField(row, iSeason)
		if !ok {
			continue
		}
		week, _ := intField(row, iWeek)

		out = append(out, game.Game{
			ID:          field(row, iID),
			Season:      season,
			Week:        week,
			HomeTeam:    strings.ToUpper(field(row, iHome)),
			AwayTeam:    strings.ToUpper(field(row, iAway)),
			Temperature: floatField(row, iTemp),
			WindSpeed:   floatField(row, iWind),
			Roof:        strings.ToLower(field(row, iRoof)),
		})
	}
	return out, nil
}
