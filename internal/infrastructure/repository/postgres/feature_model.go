package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/domain/feature"
)

const featureTable = "player_week_features"

type featureTableModel struct {
	ID         int64          `db:"id"`
	PlayerID   string         `db:"player_id"`
	PlayerName string         `db:"player_name"`
	Position   string         `db:"position"`
	Team       string         `db:"team"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	GameID     sql.NullString `db:"game_id"`
	Opponent   sql.NullString `db:"opponent"`
	Window     int            `db:"rolling_window"`

	PassingYardsRoll   sql.NullFloat64 `db:"passing_yards_roll"`
	PassingTDsRoll     sql.NullFloat64 `db:"passing_tds_roll"`
	RushingYardsRoll   sql.NullFloat64 `db:"rushing_yards_roll"`
	RushingTDsRoll     sql.NullFloat64 `db:"rushing_tds_roll"`
	CarriesRoll        sql.NullFloat64 `db:"carries_roll"`
	ReceivingYardsRoll sql.NullFloat64 `db:"receiving_yards_roll"`
	ReceivingTDsRoll   sql.NullFloat64 `db:"receiving_tds_roll"`
	ReceptionsRoll     sql.NullFloat64 `db:"receptions_roll"`

	OppPassStrength sql.NullFloat64 `db:"opp_pass_strength"`
	OppRushStrength sql.NullFloat64 `db:"opp_rush_strength"`
	OppPassRank     sql.NullInt64   `db:"opp_pass_rank"`
	OppRushRank     sql.NullInt64   `db:"opp_rush_rank"`
	OppTotalRank    sql.NullInt64   `db:"opp_total_rank"`

	TempNormalized float64      `db:"temp_normalized"`
	WindNormalized float64      `db:"wind_normalized"`
	IsHome         sql.NullBool `db:"is_home"`
	IsDome         bool         `db:"is_dome"`

	PassingYards   sql.NullFloat64 `db:"passing_yards"`
	PassingTDs     sql.NullFloat64 `db:"passing_tds"`
	RushingYards   sql.NullFloat64 `db:"rushing_yards"`
	RushingTDs     sql.NullFloat64 `db:"rushing_tds"`
	Carries        sql.NullFloat64 `db:"carries"`
	ReceivingYards sql.NullFloat64 `db:"receiving_yards"`
	ReceivingTDs   sql.NullFloat64 `db:"receiving_tds"`
	Receptions     sql.NullFloat64 `db:"receptions"`

	CreatedAt time.Time `db:"created_at"`
}

type featureInsertModel struct {
	PlayerID   string  `db:"player_id"`
	PlayerName string  `db:"player_name"`
	Position   string  `db:"position"`
	Team       string  `db:"team"`
	Season     int     `db:"season"`
	Week       int     `db:"week"`
	GameID     *string `db:"game_id"`
	Opponent   *string `db:"opponent"`
	Window     int     `db:"rolling_window"`

	PassingYardsRoll   *float64 `db:"passing_yards_roll"`
	PassingTDsRoll     *float64 `db:"passing_tds_roll"`
	RushingYardsRoll   *float64 `db:"rushing_yards_roll"`
	RushingTDsRoll     *float64 `db:"rushing_tds_roll"`
	CarriesRoll        *float64 `db:"carries_roll"`
	ReceivingYardsRoll *float64 `db:"receiving_yards_roll"`
	ReceivingTDsRoll   *float64 `db:"receiving_tds_roll"`
	ReceptionsRoll     *float64 `db:"receptions_roll"`

	OppPassStrength *float64 `db:"opp_pass_strength"`
	OppRushStrength *float64 `db:"opp_rush_strength"`
	OppPassRank     *int     `db:"opp_pass_rank"`
	OppRushRank     *int     `db:"opp_rush_rank"`
	OppTotalRank    *int     `db:"opp_total_rank"`

	TempNormalized float64 `db:"temp_normalized"`
	WindNormalized float64 `db:"wind_normalized"`
	IsHome         *bool   `db:"is_home"`
	IsDome         bool    `db:"is_dome"`

	PassingYards   *float64 `db:"passing_yards"`
	PassingTDs     *float64 `db:"passing_tds"`
	RushingYards   *float64 `db:"rushing_yards"`
	RushingTDs     *float64 `db:"rushing_tds"`
	Carries        *float64 `db:"carries"`
	ReceivingYards *float64 `db:"receiving_yards"`
	ReceivingTDs   *float64 `db:"receiving_tds"`
	Receptions     *float64 `db:"receptions"`
}

func newFeatureInsertModel(rec feature.Record) featureInsertModel {
	return featureInsertModel{
		PlayerID:           rec.PlayerID,
		PlayerName:         rec.PlayerName,
		Position:           rec.Position,
		Team:               rec.Team,
		Season:             rec.Season,
		Week:               rec.Week,
		GameID:             rec.GameID,
		Opponent:           rec.Opponent,
		Window:             rec.Window,
		PassingYardsRoll:   rec.PassingYardsRoll,
		PassingTDsRoll:     rec.PassingTDsRoll,
		RushingYardsRoll:   rec.RushingYardsRoll,
		RushingTDsRoll:     rec.RushingTDsRoll,
		CarriesRoll:        rec.CarriesRoll,
		ReceivingYardsRoll: rec.ReceivingYardsRoll,
		ReceivingTDsRoll:   rec.ReceivingTDsRoll,
		ReceptionsRoll:     rec.ReceptionsRoll,
		OppPassStrength:    rec.OppPassStrength,
		OppRushStrength:    rec.OppRushStrength,
		OppPassRank:        rec.OppPassRank,
		OppRushRank:        rec.OppRushRank,
		OppTotalRank:       rec.OppTotalRank,
		TempNormalized:     rec.TempNormalized,
		WindNormalized:     rec.WindNormalized,
		IsHome:             rec.IsHome,
		IsDome:             rec.IsDome,
		PassingYards:       rec.PassingYards,
		PassingTDs:         rec.PassingTDs,
		RushingYards:       rec.RushingYards,
		RushingTDs:         rec.RushingTDs,
		Carries:            rec.Carries,
		ReceivingYards:     rec.ReceivingYards,
		ReceivingTDs:       rec.ReceivingTDs,
		Receptions:         rec.Receptions,
	}
}

func (m featureTableModel) toRecord() feature.Record {
	return feature.Record{
		PlayerID:           m.PlayerID,
		PlayerName:         m.PlayerName,
		Position:           m.Position,
		Team:               m.Team,
		Season:             m.Season,
		Week:               m.Week,
		GameID:             nullStringToPtr(m.GameID),
		Opponent:           nullStringToPtr(m.Opponent),
		Window:             m.Window,
		PassingYardsRoll:   nullFloatToPtr(m.PassingYardsRoll),
		PassingTDsRoll:     nullFloatToPtr(m.PassingTDsRoll),
		RushingYardsRoll:   nullFloatToPtr(m.RushingYardsRoll),
		RushingTDsRoll:     nullFloatToPtr(m.RushingTDsRoll),
		CarriesRoll:        nullFloatToPtr(m.CarriesRoll),
		ReceivingYardsRoll: nullFloatToPtr(m.ReceivingYardsRoll),
		ReceivingTDsRoll:   nullFloatToPtr(m.ReceivingTDsRoll),
		ReceptionsRoll:     nullFloatToPtr(m.ReceptionsRoll),
		OppPassStrength:    nullFloatToPtr(m.OppPassStrength),
		OppRushStrength:    nullFloatToPtr(m.OppRushStrength),
		OppPassRank:        nullInt64ToIntPtr(m.OppPassRank),
		OppRushRank:        nullInt64ToIntPtr(m.OppRushRank),
		OppTotalRank:       nullInt64ToIntPtr(m.OppTotalRank),
		TempNormalized:     m.TempNormalized,
		WindNormalized:     m.WindNormalized,
		IsHome:             nullBoolToPtr(m.IsHome),
		IsDome:             m.IsDome,
		PassingYards:       nullFloatToPtr(m.PassingYards),
		PassingTDs:         nullFloatToPtr(m.PassingTDs),
		RushingYards:       nullFloatToPtr(m.RushingYards),
		RushingTDs:         nullFloatToPtr(m.RushingTDs),
		Carries:            nullFloatToPtr(m.Carries),
		ReceivingYards:     nullFloatToPtr(m.ReceivingYards),
		ReceivingTDs:       nullFloatToPtr(m.ReceivingTDs),
		Receptions:         nullFloatToPtr(m.Receptions),
	}
}
