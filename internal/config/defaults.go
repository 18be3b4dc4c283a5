package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Grid: GridConfig{
			Width:    8,
			Height:   8,
			CellSize: 1.0,
		},
		Kinds: []KindConfig{
			{ID: "R", Glyph: "🍎", Color: "red"},
			{ID: "G", Glyph: "🍏", Color: "green"},
			{ID: "B", Glyph: "💎", Color: "bright_blue"},
			{ID: "Y", Glyph: "🍋", Color: "yellow"},
			{ID: "P", Glyph: "🍇", Color: "magenta"},
			{ID: "O", Glyph: "🍊", Color: "orange"},
		},
		Selection: SelectionConfig{
			Rule: "adjacent",
		},
		Animation: AnimationConfig{
			Speed: 0.125,
		},
		Display: DisplayConfig{
			ASCII:      false,
			CellWidth:  4,
			CellHeight: 2,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_three":
		return defaultMatch3YAML
	default:
		return nil
	}
}
