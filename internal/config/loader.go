package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Environment variables that override file configuration.
const (
	EnvWidth    = "MATCH3_WIDTH"
	EnvHeight   = "MATCH3_HEIGHT"
	EnvCellSize = "MATCH3_CELL_SIZE"
	EnvRule     = "MATCH3_RULE"
	EnvSpeed    = "MATCH3_SPEED"
	EnvASCII    = "MATCH3_ASCII"
)

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg := DefaultMatch3Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("match3.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultMatch3Config()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "match3.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultMatch3Config()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultMatch3YAML, &cfg); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyEnv loads the given .env files (default ".env") into the process
// environment without overriding variables already set, then applies any
// MATCH3_* variables to cfg. Missing .env files are ignored.
func ApplyEnv(cfg *Match3Config, envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return applyEnvLookup(cfg, os.LookupEnv)
}

func applyEnvLookup(cfg *Match3Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvWidth); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWidth, err)
		}
		cfg.Grid.Width = n
	}
	if v, ok := lookup(EnvHeight); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvHeight, err)
		}
		cfg.Grid.Height = n
	}
	if v, ok := lookup(EnvCellSize); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvCellSize, err)
		}
		cfg.Grid.CellSize = f
	}
	if v, ok := lookup(EnvSpeed); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSpeed, err)
		}
		cfg.Animation.Speed = f
	}
	if v, ok := lookup(EnvRule); ok {
		cfg.Selection.Rule = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvASCII); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvASCII, err)
		}
		cfg.Display.ASCII = b
	}
	return nil
}

// ToEngine converts the file configuration to an engine configuration.
// Errors wrap core.ErrInvalidConfig.
func (c Match3Config) ToEngine(seed uint64) (core.Config, error) {
	rule, err := core.ParseSelectionRule(c.Selection.Rule)
	if err != nil {
		return core.Config{}, fmt.Errorf("config: %w", err)
	}

	kinds := make([]core.Kind, len(c.Kinds))
	for i, k := range c.Kinds {
		kinds[i] = core.Kind(k.ID)
	}

	ec := core.Config{
		Width:          c.Grid.Width,
		Height:         c.Grid.Height,
		CellSize:       c.Grid.CellSize,
		Kinds:          kinds,
		Rule:           rule,
		AnimationSpeed: c.Animation.Speed,
		Seed:           seed,
		Layout:         c.Layout,
	}
	if err := ec.Validate(); err != nil {
		return core.Config{}, fmt.Errorf("config: %w", err)
	}
	return ec, nil
}

// TileStyle is how one kind is drawn.
type TileStyle struct {
	Glyph string
	Color platformcore.Color
}

// Styles returns the drawing style for every configured kind. A kind with
// no glyph, or any kind in ASCII mode, is drawn with its id.
func (c Match3Config) Styles() (map[core.Kind]TileStyle, error) {
	styles := make(map[core.Kind]TileStyle, len(c.Kinds))
	for _, k := range c.Kinds {
		color, err := platformcore.ParseColor(k.Color)
		if err != nil {
			return nil, fmt.Errorf("config: kind %q: %w", k.ID, err)
		}
		glyph := k.Glyph
		if glyph == "" || c.Display.ASCII {
			glyph = k.ID
		}
		styles[core.Kind(k.ID)] = TileStyle{Glyph: glyph, Color: color}
	}
	return styles, nil
}
