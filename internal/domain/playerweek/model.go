package playerweek

import (
	"errors"
	"fmt"
)

var (
	ErrMissingPlayerID = errors.New("player id is required")
	ErrInvalidPosition = errors.New("invalid player position")
	ErrInvalidSeason   = errors.New("season must be greater than zero")
	ErrInvalidWeek     = errors.New("week must be greater than zero")
)

// Position is an offensive skill position.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

var SkillPositions = map[Position]struct{}{
	PositionQB: {},
	PositionRB: {},
	PositionWR: {},
	PositionTE: {},
}

func (p Position) IsSkill() bool {
	_, ok := SkillPositions[p]
	return ok
}

// Column names shared by every table derived from player-week stats.
const (
	ColPlayerID   = "player_id"
	ColPlayerName = "player_name"
	ColPosition   = "position"
	ColTeam       = "team"
	ColSeason     = "season"
	ColWeek       = "week"

	StatPassingYards   = "passing_yards"
	StatPassingTDs     = "passing_tds"
	StatInterceptions  = "interceptions"
	StatAttempts       = "attempts"
	StatCompletions    = "completions"
	StatRushingYards   = "rushing_yards"
	StatRushingTDs     = "rushing_tds"
	StatCarries        = "carries"
	StatReceptions     = "receptions"
	StatTargets        = "targets"
	StatReceivingYards = "receiving_yards"
	StatReceivingTDs   = "receiving_tds"
	StatFantasyPPR     = "fantasy_points_ppr"
)

// Record is one player's box score for one game week. Stat fields are nil
// when the source had no value.
type Record struct {
	PlayerID   string
	PlayerName string
	Position   Position
	Team       string
	Season     int
	Week       int

	PassingYards   *float64
	PassingTDs     *float64
	Interceptions  *float64
	Attempts       *float64
	Completions    *float64
	RushingYards   *float64
	RushingTDs     *float64
	Carries        *float64
	Receptions     *float64
	Targets        *float64
	ReceivingYards *float64
	ReceivingTDs   *float64
	FantasyPPR     *float64
}

// Validate checks that r can be keyed by (player, season, week) and is a
// skill position.
func (r Record) Validate() error {
	if r.PlayerID == "" {
		return ErrMissingPlayerID
	}
	if !r.Position.IsSkill() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, r.Position)
	}
	if r.Season <= 0 {
		return ErrInvalidSeason
	}
	if r.Week <= 0 {
		return ErrInvalidWeek
	}

	return nil
}

// Stats lists the nullable stat fields of r keyed by column name, in a fixed
// order.
func (r *Record) Stats() []StatField {
	return []StatField{
		{Name: StatPassingYards, Value: &r.PassingYards},
		{Name: StatPassingTDs, Value: &r.PassingTDs},
		{Name: StatInterceptions, Value: &r.Interceptions},
		{Name: StatAttempts, Value: &r.Attempts},
		{Name: StatCompletions, Value: &r.Completions},
		{Name: StatRushingYards, Value: &r.RushingYards},
		{Name: StatRushingTDs, Value: &r.RushingTDs},
		{Name: StatCarries, Value: &r.Carries},
		{Name: StatReceptions, Value: &r.Receptions},
		{Name: StatTargets, Value: &r.Targets},
		{Name: StatReceivingYards, Value: &r.ReceivingYards},
		{Name: StatReceivingTDs, Value: &r.ReceivingTDs},
		{Name: StatFantasyPPR, Value: &r.FantasyPPR},
	}
}

type StatField struct {
	Name  string
	Value **float64
}

func Float(v float64) *float64 {
	return &v
}
