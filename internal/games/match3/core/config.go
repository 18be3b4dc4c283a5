package core

import (
	"fmt"
	"unicode/utf8"
)

// Config is the construction-time configuration of a Loop.
type Config struct {
	Width          int
	Height         int
	CellSize       float64
	Kinds          []Kind
	Rule           SelectionRule
	AnimationSpeed float64 // Progress added per unit of tick time
	Seed           uint64
	Layout         []string // Optional starting board, top row first
}

// DefaultConfig returns an 8x8 board with six kinds and the adjacent rule.
func DefaultConfig() Config {
	return Config{
		Width:          8,
		Height:         8,
		CellSize:       1,
		Kinds:          []Kind{"R", "G", "B", "Y", "P", "O"},
		Rule:           RuleAdjacent,
		AnimationSpeed: 0.125,
	}
}

// Validate checks the configuration. Every error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("%w: grid %dx%d is smaller than 3x3", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %v must be positive", ErrInvalidConfig, c.CellSize)
	}
	if c.AnimationSpeed <= 0 {
		return fmt.Errorf("%w: animation speed %v must be positive", ErrInvalidConfig, c.AnimationSpeed)
	}
	if c.Rule != RuleAdjacent && c.Rule != RuleExactThree {
		return fmt.Errorf("%w: unknown selection rule %d", ErrInvalidConfig, c.Rule)
	}
	if len(c.Kinds) == 0 {
		return fmt.Errorf("%w: no tile kinds", ErrInvalidConfig)
	}

	known := make(map[Kind]bool, len(c.Kinds))
	for _, k := range c.Kinds {
		if k == "" {
			return fmt.Errorf("%w: empty tile kind", ErrInvalidConfig)
		}
		if known[k] {
			return fmt.Errorf("%w: duplicate tile kind %q", ErrInvalidConfig, k)
		}
		known[k] = true
	}

	if len(c.Layout) == 0 {
		return nil
	}
	if len(c.Layout) != c.Height {
		return fmt.Errorf("%w: layout has %d rows, want %d", ErrInvalidConfig, len(c.Layout), c.Height)
	}
	for i, row := range c.Layout {
		if n := utf8.RuneCountInString(row); n != c.Width {
			return fmt.Errorf("%w: layout row %d has %d slots, want %d", ErrInvalidConfig, i, n, c.Width)
		}
		for _, r := range row {
			if r != '.' && !known[Kind(string(r))] {
				return fmt.Errorf("%w: layout row %d uses unknown kind %q", ErrInvalidConfig, i, r)
			}
		}
	}
	return nil
}
