package feature

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/nfl-projections/internal/platform/frame"
)

// MissingColumnError is returned when a required input column is absent.
// Callers fix the upstream data; it is never retried.
type MissingColumnError = frame.MissingColumnError

var (
	ErrMissingColumn   = frame.ErrMissingColumn
	ErrInvalidPosition = errors.New("invalid position")
)

// InvalidPositionError is returned when a position filter names something
// other than a skill position.
type InvalidPositionError struct {
	Position string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %q: expected one of QB, RB, WR, TE", e.Position)
}

func (e *InvalidPositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}
