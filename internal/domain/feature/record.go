package feature

import (
	"github.com/riskibarqy/nfl-projections/internal/domain/defense"
	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

// Record is the persisted shape of one feature row: identifiers, the model
// inputs and the target stats. Rolling fields hold the values for Window.
type Record struct {
	PlayerID   string
	PlayerName string
	Position   string
	Team       string
	Season     int
	Week       int
	GameID     *string
	Opponent   *string
	Window     int

	PassingYardsRoll   *float64
	PassingTDsRoll     *float64
	RushingYardsRoll   *float64
	RushingTDsRoll     *float64
	CarriesRoll        *float64
	ReceivingYardsRoll *float64
	ReceivingTDsRoll   *float64
	ReceptionsRoll     *float64

	OppPassStrength *float64
	OppRushStrength *float64
	OppPassRank     *int
	OppRushRank     *int
	OppTotalRank    *int

	TempNormalized float64
	WindNormalized float64
	IsHome         *bool
	IsDome         bool

	PassingYards   *float64
	PassingTDs     *float64
	RushingYards   *float64
	RushingTDs     *float64
	Carries        *float64
	ReceivingYards *float64
	ReceivingTDs   *float64
	Receptions     *float64
}

func (r *Record) rolling() []**float64 {
	return []**float64{
		&r.PassingYardsRoll,
		&r.PassingTDsRoll,
		&r.RushingYardsRoll,
		&r.RushingTDsRoll,
		&r.CarriesRoll,
		&r.ReceivingYardsRoll,
		&r.ReceivingTDsRoll,
		&r.ReceptionsRoll,
	}
}

func (r *Record) targetFields() map[string]**float64 {
	return map[string]**float64{
		playerweek.StatPassingYards:   &r.PassingYards,
		playerweek.StatPassingTDs:     &r.PassingTDs,
		playerweek.StatRushingYards:   &r.RushingYards,
		playerweek.StatRushingTDs:     &r.RushingTDs,
		playerweek.StatCarries:        &r.Carries,
		playerweek.StatReceivingYards: &r.ReceivingYards,
		playerweek.StatReceivingTDs:   &r.ReceivingTDs,
		playerweek.StatReceptions:     &r.Receptions,
	}
}

// Records projects an assembled feature table onto Records. Identifier
// columns are required; feature and target columns that are absent stay
// nil.
func Records(t *frame.Table, window int) ([]Record, error) {
	if window < 1 {
		window = DefaultWindow
	}
	if err := t.Require("features", playerweek.ColPlayerID, playerweek.ColSeason, playerweek.ColWeek); err != nil {
		return nil, err
	}

	out := make([]Record, t.Len())
	for i := range out {
		rec := &out[i]
		rec.Window = window
		rec.PlayerID = stringAt(t, playerweek.ColPlayerID, i)
		rec.PlayerName = stringAt(t, playerweek.ColPlayerName, i)
		rec.Position = stringAt(t, playerweek.ColPosition, i)
		rec.Team = stringAt(t, playerweek.ColTeam, i)
		rec.Season, _ = t.Column(playerweek.ColSeason).IntAt(i)
		rec.Week, _ = t.Column(playerweek.ColWeek).IntAt(i)
		rec.GameID = optString(t, game.ColGameID, i)
		rec.Opponent = optString(t, game.ColOpponent, i)

		for j, field := range rec.rolling() {
			*field = optFloat(t, RollingColumn(modelRollingStats[j], window), i)
		}
		rec.OppPassStrength = optFloat(t, defense.ColPassStrength, i)
		rec.OppRushStrength = optFloat(t, defense.ColRushStrength, i)
		rec.OppPassRank = optInt(t, defense.ColPassRank, i)
		rec.OppRushRank = optInt(t, defense.ColRushRank, i)
		rec.OppTotalRank = optInt(t, defense.ColTotalRank, i)

		if v := optFloat(t, ColTempNormalized, i); v != nil {
			rec.TempNormalized = *v
		}
		if v := optFloat(t, ColWindNormalized, i); v != nil {
			rec.WindNormalized = *v
		}
		rec.IsHome = optBool(t, game.ColIsHome, i)
		if v := optBool(t, game.ColIsDome, i); v != nil {
			rec.IsDome = *v
		}

		for name, field := range rec.targetFields() {
			*field = optFloat(t, name, i)
		}
	}
	return out, nil
}

// RecordsTable rebuilds a feature table from Records. All records are
// expected to share one window; the first record's window names the
// rolling columns.
func RecordsTable(records []Record) *frame.Table {
	window := DefaultWindow
	if len(records) > 0 && records[0].Window > 0 {
		window = records[0].Window
	}
	n := len(records)

	ids := frame.NewColumn(playerweek.ColPlayerID, frame.KindString, n)
	names := frame.NewColumn(playerweek.ColPlayerName, frame.KindString, n)
	positions := frame.NewColumn(playerweek.ColPosition, frame.KindString, n)
	teams := frame.NewColumn(playerweek.ColTeam, frame.KindString, n)
	seasons := frame.NewColumn(playerweek.ColSeason, frame.KindInt, n)
	weeks := frame.NewColumn(playerweek.ColWeek, frame.KindInt, n)
	gameIDs := frame.NewColumn(game.ColGameID, frame.KindString, n)
	opponents := frame.NewColumn(game.ColOpponent, frame.KindString, n)

	rolling := make([]*frame.Column, len(modelRollingStats))
	for j, stat := range modelRollingStats {
		rolling[j] = frame.NewColumn(RollingColumn(stat, window), frame.KindFloat, n)
	}
	passStrength := frame.NewColumn(defense.ColPassStrength, frame.KindFloat, n)
	rushStrength := frame.NewColumn(defense.ColRushStrength, frame.KindFloat, n)
	passRank := frame.NewColumn(defense.ColPassRank, frame.KindInt, n)
	rushRank := frame.NewColumn(defense.ColRushRank, frame.KindInt, n)
	totalRank := frame.NewColumn(defense.ColTotalRank, frame.KindInt, n)
	tempNorm := frame.NewColumn(ColTempNormalized, frame.KindFloat, n)
	windNorm := frame.NewColumn(ColWindNormalized, frame.KindFloat, n)
	isHome := frame.NewColumn(game.ColIsHome, frame.KindBool, n)
	isDome := frame.NewColumn(game.ColIsDome, frame.KindBool, n)

	targetNames := AllTargets()
	targetCols := make([]*frame.Column, len(targetNames))
	for j, name := range targetNames {
		targetCols[j] = frame.NewColumn(name, frame.KindFloat, n)
	}

	for i := range records {
		rec := &records[i]
		ids.SetString(i, rec.PlayerID)
		setString(names, i, rec.PlayerName)
		setString(positions, i, rec.Position)
		setString(teams, i, rec.Team)
		seasons.SetInt(i, rec.Season)
		weeks.SetInt(i, rec.Week)
		if rec.GameID != nil {
			gameIDs.SetString(i, *rec.GameID)
		}
		if rec.Opponent != nil {
			opponents.SetString(i, *rec.Opponent)
		}
		for j, field := range rec.rolling() {
			setFloat(rolling[j], i, *field)
		}
		setFloat(passStrength, i, rec.OppPassStrength)
		setFloat(rushStrength, i, rec.OppRushStrength)
		setInt(passRank, i, rec.OppPassRank)
		setInt(rushRank, i, rec.OppRushRank)
		setInt(totalRank, i, rec.OppTotalRank)
		tempNorm.SetFloat(i, rec.TempNormalized)
		windNorm.SetFloat(i, rec.WindNormalized)
		if rec.IsHome != nil {
			isHome.SetBool(i, *rec.IsHome)
		}
		isDome.SetBool(i, rec.IsDome)

		fields := rec.targetFields()
		for j, name := range targetNames {
			setFloat(targetCols[j], i, *fields[name])
		}
	}

	cols := []*frame.Column{ids, names, positions, teams, seasons, weeks, gameIDs, opponents}
	cols = append(cols, rolling...)
	cols = append(cols, passStrength, rushStrength, passRank, rushRank, totalRank, tempNorm, windNorm, isHome, isDome)
	cols = append(cols, targetCols...)
	return frame.MustNew(cols...)
}

func stringAt(t *frame.Table, name string, row int) string {
	if v := optString(t, name, row); v != nil {
		return *v
	}
	return ""
}

func optString(t *frame.Table, name string, row int) *string {
	col := t.Column(name)
	if col == nil {
		return nil
	}
	v, ok := col.StringAt(row)
	if !ok {
		return nil
	}
	return &v
}

func optFloat(t *frame.Table, name string, row int) *float64 {
	col := t.Column(name)
	if col == nil {
		return nil
	}
	v, ok := col.FloatAt(row)
	if !ok {
		return nil
	}
	return &v
}

func optInt(t *frame.Table, name string, row int) *int {
	col := t.Column(name)
	if col == nil {
		return nil
	}
	v, ok := col.IntAt(row)
	if !ok {
		return nil
	}
	return &v
}

func optBool(t *frame.Table, name string, row int) *bool {
	col := t.Column(name)
	if col == nil {
		return nil
	}
	v, ok := col.BoolAt(row)
	if !ok {
		return nil
	}
	return &v
}

func setString(col *frame.Column, row int, v string) {
	if v != "" {
		col.SetString(row, v)
	}
}

func setFloat(col *frame.Column, row int, v *float64) {
	if v != nil {
		col.SetFloat(row, *v)
	}
}

func setInt(col *frame.Column, row int, v *int) {
	if v != nil {
		col.SetInt(row, *v)
	}
}
