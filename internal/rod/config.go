package rod

import (
	"errors"
	"fmt"
)

// Placement selects how the initial ants are laid out on the rod.
type Placement int

const (
	Random Placement = iota
	Regular
)

func (p Placement) String() string {
	if p == Regular {
		return "regular"
	}
	return "random"
}

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes the initial state of a simulation.
type Config struct {
	// Count is the number of ants placed on the rod. Zero is allowed and
	// yields an immediately terminated simulation.
	Count int
	// MollyIndex is the position rank (0-based) that becomes Molly.
	// Negative means Count/2.
	MollyIndex int
	// Step is the distance each ant walks per tick. Must be positive.
	Step float64
	// Placement is Regular or Random.
	Placement Placement
}

func (c Config) mollyIndex() int {
	if c.MollyIndex < 0 {
		return c.Count / 2
	}
	return c.MollyIndex
}

// Validate checks every numeric field against its domain. The Molly rank is
// checked before any ant is constructed; with zero ants there is no Molly,
// so the rank is not checked at all.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: ant count %d is negative", ErrInvalidConfig, c.Count)
	}
	if c.Step <= 0 {
		return fmt.Errorf("%w: step %g must be positive", ErrInvalidConfig, c.Step)
	}
	if c.Count == 0 {
		return nil
	}
	if i := c.mollyIndex(); i >= c.Count {
		return fmt.Errorf("%w: molly index %d out of %d ants", ErrInvalidConfig, i, c.Count)
	}
	return nil
}
