package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for runs and other external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator returns version 7 UUIDs, which sort by creation time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return v.String(), nil
}

// Sequence returns fixed-prefix IDs in order. It is meant for tests that
// assert on run IDs.
type Sequence struct {
	Prefix string
	next   int
}

func (s *Sequence) NewID() (string, error) {
	s.next++
	return fmt.Sprintf("%s%d", s.Prefix, s.next), nil
}
