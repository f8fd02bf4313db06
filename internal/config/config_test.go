package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/alexanderramin/ganttline/internal/hierarchy"
	"github.com/alexanderramin/ganttline/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, hierarchy.DefaultMaxDepth, cfg.Hierarchy.MaxDepth)
	assert.Equal(t, timeline.DefaultTiers, cfg.Timeline.Tiers)
	assert.Equal(t, 0, cfg.Timeline.PaddingDays)
	assert.Equal(t, gantt.OrderLevel, cfg.Ordering())
	assert.Equal(t, 20, cfg.Style().IndentPerLevelPx)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Timeline, cfg.Timeline)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "ganttline.yaml", `
db_path: /tmp/g.db
log_level: debug
hierarchy:
  max_depth: 8
timeline:
  padding_days: 2
  tiers:
    - {max_days: 14, width_px: 40}
    - {max_days: 0, width_px: 12}
chart:
  ordering: tree
  indent_px: 12
  colors:
    task: "#b16286"
svg:
  row_height_px: 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/g.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 8, cfg.Hierarchy.MaxDepth)
	assert.Equal(t, 2, cfg.Timeline.PaddingDays)
	assert.Equal(t, []timeline.Tier{{MaxDays: 14, WidthPx: 40}, {MaxDays: 0, WidthPx: 12}}, cfg.Timeline.Tiers)
	assert.Equal(t, gantt.OrderTree, cfg.Ordering())
	assert.Equal(t, "#b16286", cfg.Style().TagColors["task"])
	assert.Equal(t, 12, cfg.Style().IndentPerLevelPx)
	assert.Equal(t, 30, cfg.SVGOptions("x").RowHeightPx)
	// Unset keys keep their defaults.
	assert.Equal(t, Default().SVG.LabelWidthPx, cfg.SVG.LabelWidthPx)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "ganttline.toml", `
db_path = "/tmp/g.db"

[chart]
ordering = "tree"

[chart.colors]
meeting = "#689d6a"

[[timeline.tiers]]
max_days = 60
width_px = 24

[[timeline.tiers]]
max_days = 0
width_px = 8
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/g.db", cfg.DBPath)
	assert.Equal(t, gantt.OrderTree, cfg.Ordering())
	assert.Equal(t, "#689d6a", cfg.Chart.Colors["meeting"])
	require.Len(t, cfg.Timeline.Tiers, 2)
	assert.Equal(t, 24, cfg.Timeline.Tiers[0].WidthPx)
	assert.Equal(t, hierarchy.DefaultMaxDepth, cfg.Hierarchy.MaxDepth)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")

	_, err = Load(writeFile(t, "ganttline.json", `{}`))
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = Load(writeFile(t, "bad.yaml", "chart: [unclosed"))
	assert.ErrorContains(t, err, "parsing config")

	_, err = Load(writeFile(t, "tiers.yaml", "timeline:\n  tiers:\n    - {max_days: 0, width_px: 10}\n    - {max_days: 30, width_px: 30}\n"))
	assert.ErrorContains(t, err, "invalid tiers")

	_, err = Load(writeFile(t, "order.yaml", "chart:\n  ordering: random\n"))
	assert.ErrorContains(t, err, "invalid ordering")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GANTTLINE_DB", "/data/env.db")
	t.Setenv("GANTTLINE_LOG_LEVEL", "ERROR")
	t.Setenv("GANTTLINE_MAX_DEPTH", "5")
	t.Setenv("GANTTLINE_PADDING_DAYS", "3")
	t.Setenv("GANTTLINE_INDENT_PX", "10")
	t.Setenv("GANTTLINE_ORDERING", "Tree")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/env.db", cfg.DBPath)
	assert.Equal(t, slog.LevelError, cfg.Level())
	assert.Equal(t, 5, cfg.Hierarchy.MaxDepth)
	assert.Equal(t, 3, cfg.Timeline.PaddingDays)
	assert.Equal(t, 10, cfg.Chart.IndentPerLevelPx)
	assert.Equal(t, gantt.OrderTree, cfg.Ordering())
}

func TestApplyEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("GANTTLINE_MAX_DEPTH", "deep")
	t.Setenv("GANTTLINE_PADDING_DAYS", "-4")
	t.Setenv("GANTTLINE_ORDERING", "sideways")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, hierarchy.DefaultMaxDepth, cfg.Hierarchy.MaxDepth)
	assert.Equal(t, 0, cfg.Timeline.PaddingDays)
	assert.Equal(t, string(gantt.OrderLevel), cfg.Chart.Ordering)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
