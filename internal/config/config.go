// Package config provides YAML-based board configuration loading with
// embedded defaults and .env overrides.
package config

// Match3Config contains all configuration for the match-3 board.
type Match3Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Kinds     []KindConfig    `yaml:"kinds"`
	Selection SelectionConfig `yaml:"selection"`
	Animation AnimationConfig `yaml:"animation"`
	Display   DisplayConfig   `yaml:"display"`
	Layout    []string        `yaml:"layout"`
}

// GridConfig defines the board dimensions.
type GridConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// KindConfig defines one spawnable tile kind and how it is drawn.
type KindConfig struct {
	ID    string `yaml:"id"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// SelectionConfig defines which tile pairs may be exchanged.
type SelectionConfig struct {
	Rule string `yaml:"rule"` // "adjacent" or "exact3"
}

// AnimationConfig defines swap and fall speed.
type AnimationConfig struct {
	Speed float64 `yaml:"speed"` // Progress added per tick
}

// DisplayConfig defines terminal rendering parameters.
type DisplayConfig struct {
	ASCII      bool `yaml:"ascii"`       // Draw kind ids instead of glyphs
	CellWidth  int  `yaml:"cell_width"`  // Terminal columns per slot
	CellHeight int  `yaml:"cell_height"` // Terminal rows per slot
}
