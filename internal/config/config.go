// Package config loads ganttline settings from an optional YAML or TOML file
// and GANTTLINE_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/hierarchy"
	"github.com/alexanderramin/ganttline/internal/render"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all settings for the CLI and the chart engine.
type Config struct {
	DBPath   string `yaml:"db_path" toml:"db_path"`
	LogLevel string `yaml:"log_level" toml:"log_level"`

	Hierarchy HierarchyConfig `yaml:"hierarchy" toml:"hierarchy"`
	Timeline  TimelineConfig  `yaml:"timeline" toml:"timeline"`
	Chart     ChartConfig     `yaml:"chart" toml:"chart"`
	SVG       SVGConfig       `yaml:"svg" toml:"svg"`
}

type HierarchyConfig struct {
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
}

type TimelineConfig struct {
	Tiers       []timeline.Tier `yaml:"tiers" toml:"tiers"`
	PaddingDays int             `yaml:"padding_days" toml:"padding_days"`
}

type ChartConfig struct {
	// Ordering is "level" or "tree".
	Ordering         string            `yaml:"ordering" toml:"ordering"`
	IndentPerLevelPx int               `yaml:"indent_px" toml:"indent_px"`
	FallbackColor    string            `yaml:"fallback_color" toml:"fallback_color"`
	CompleteBorder   string            `yaml:"complete_border" toml:"complete_border"`
	Colors           map[string]string `yaml:"colors" toml:"colors"`
}

type SVGConfig struct {
	LabelWidthPx int    `yaml:"label_width_px" toml:"label_width_px"`
	RowHeightPx  int    `yaml:"row_height_px" toml:"row_height_px"`
	BarHeightPx  int    `yaml:"bar_height_px" toml:"bar_height_px"`
	FontFamily   string `yaml:"font_family" toml:"font_family"`
	FontSize     int    `yaml:"font_size" toml:"font_size"`
}

// Default returns the built-in settings. DBPath is ~/.ganttline/ganttline.db
// when the home directory can be found.
func Default() Config {
	dbPath := "ganttline.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".ganttline", "ganttline.db")
	}
	svg := render.DefaultSVGOptions()
	return Config{
		DBPath:    dbPath,
		LogLevel:  "warn",
		Hierarchy: HierarchyConfig{MaxDepth: hierarchy.DefaultMaxDepth},
		Timeline: TimelineConfig{
			Tiers: append([]timeline.Tier(nil), timeline.DefaultTiers...),
		},
		Chart: ChartConfig{
			Ordering:         string(gantt.OrderLevel),
			IndentPerLevelPx: render.DefaultIndentPerLevelPx,
			FallbackColor:    render.DefaultFallbackColor,
			CompleteBorder:   render.DefaultCompleteBorder,
			Colors:           map[string]string{},
		},
		SVG: SVGConfig{
			LabelWidthPx: svg.LabelWidthPx,
			RowHeightPx:  svg.RowHeightPx,
			BarHeightPx:  svg.BarHeightPx,
			FontFamily:   svg.FontFamily,
			FontSize:     svg.FontSize,
		},
	}
}

// Load reads the file at path over the defaults and then applies environment
// overrides. An empty path skips the file. The format is chosen by extension:
// .yaml/.yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		case ".toml":
			err = toml.Unmarshal(data, &cfg)
		default:
			return cfg, fmt.Errorf("config %s: unsupported extension %q (want .yaml, .yml or .toml)", path, ext)
		}
		if err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from GANTTLINE_* variables. Values that do not
// parse are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GANTTLINE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("GANTTLINE_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GANTTLINE_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Hierarchy.MaxDepth = n
		}
	}
	if v := os.Getenv("GANTTLINE_PADDING_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Timeline.PaddingDays = n
		}
	}
	if v := os.Getenv("GANTTLINE_INDENT_PX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Chart.IndentPerLevelPx = n
		}
	}
	if v := os.Getenv("GANTTLINE_ORDERING"); v != "" {
		v = strings.ToLower(v)
		if _, err := gantt.ParseOrdering(v); err == nil {
			c.Chart.Ordering = v
		}
	}
}

// Validate reports settings the engine cannot work with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if c.Hierarchy.MaxDepth <= 0 {
		return fmt.Errorf("config: max_depth must be positive, got %d", c.Hierarchy.MaxDepth)
	}
	if c.Timeline.PaddingDays < 0 {
		return fmt.Errorf("config: padding_days must not be negative, got %d", c.Timeline.PaddingDays)
	}
	if !timeline.ValidTiers(c.Timeline.Tiers) {
		return fmt.Errorf("config: invalid tiers %+v", c.Timeline.Tiers)
	}
	if _, err := gantt.ParseOrdering(c.Chart.Ordering); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Ordering returns the parsed chart ordering.
func (c Config) Ordering() gantt.Ordering {
	o, err := gantt.ParseOrdering(c.Chart.Ordering)
	if err != nil {
		return gantt.OrderLevel
	}
	return o
}

// Style builds the render style for this configuration.
func (c Config) Style() render.Style {
	return render.Style{
		IndentPerLevelPx: c.Chart.IndentPerLevelPx,
		FallbackColor:    c.Chart.FallbackColor,
		CompleteBorder:   c.Chart.CompleteBorder,
		TagColors:        c.Chart.Colors,
	}
}

// SVGOptions builds SVG writer options with the given title.
func (c Config) SVGOptions(title string) render.SVGOptions {
	o := render.DefaultSVGOptions()
	o.Title = title
	o.LabelWidthPx = c.SVG.LabelWidthPx
	o.RowHeightPx = c.SVG.RowHeightPx
	o.BarHeightPx = c.SVG.BarHeightPx
	if c.SVG.FontFamily != "" {
		o.FontFamily = c.SVG.FontFamily
	}
	o.FontSize = c.SVG.FontSize
	return o
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	return ParseLevel(c.LogLevel)
}

// ParseLevel converts a level name to slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
