package playerweek

import "github.com/riskibarqy/nfl-projections/internal/platform/frame"

// ToTable lays records out as a columnar table with one row per record.
func ToTable(records []Record) *frame.Table {
	n := len(records)
	ids := frame.NewColumn(ColPlayerID, frame.KindString, n)
	names := frame.NewColumn(ColPlayerName, frame.KindString, n)
	positions := frame.NewColumn(ColPosition, frame.KindString, n)
	teams := frame.NewColumn(ColTeam, frame.KindString, n)
	seasons := frame.NewColumn(ColSeason, frame.KindInt, n)
	weeks := frame.NewColumn(ColWeek, frame.KindInt, n)

	var statCols []*frame.Column
	var zero Record
	for _, field := range zero.Stats() {
		statCols = append(statCols, frame.NewColumn(field.Name, frame.KindFloat, n))
	}

	for i := range records {
		rec := &records[i]
		ids.SetString(i, rec.PlayerID)
		if rec.PlayerName != "" {
			names.SetString(i, rec.PlayerName)
		}
		if rec.Position != "" {
			positions.SetString(i, string(rec.Position))
		}
		if rec.Team != "" {
			teams.SetString(i, rec.Team)
		}
		seasons.SetInt(i, rec.Season)
		weeks.SetInt(i, rec.Week)
		for j, field := range rec.Stats() {
			if *field.Value != nil {
				statCols[j].SetFloat(i, **field.Value)
			}
		}
	}

	cols := append([]*frame.Column{ids, names, positions, teams, seasons, weeks}, statCols...)
	return frame.MustNew(cols...)
}
