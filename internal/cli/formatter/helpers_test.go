package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/ganttline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Website", Truncate("Website", 10))
	assert.Equal(t, "Webs…", Truncate("Website relaunch", 5))
	// Wide runes take two cells each.
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 5))
	assert.Equal(t, "", Truncate("x", 0))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcd…", PadRight("abcdefgh", 5))
}

func TestDateSpan(t *testing.T) {
	a, b := domain.MustDate("2024-01-02"), domain.MustDate("2024-01-05")
	assert.Equal(t, "2024-01-02 → 2024-01-05", stripANSI(DateSpan(&a, &b)))
	assert.Equal(t, "2024-01-02", stripANSI(DateSpan(&a, &a)))
	assert.Equal(t, "2024-01-02 → --", stripANSI(DateSpan(&a, nil)))
	assert.Equal(t, "no dates", stripANSI(DateSpan(nil, nil)))
	assert.Equal(t, "--", stripANSI(DateOrDash((*time.Time)(nil))))
}

func TestProgressPill(t *testing.T) {
	assert.Equal(t, "[■■■□□]  60%", stripANSI(ProgressPill(60)))
	assert.Equal(t, "[■■■■■] 100%", stripANSI(ProgressPill(130)))
	assert.Equal(t, "[□□□□□]   0%", stripANSI(ProgressPill(-5)))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 day", Plural(1, "day"))
	assert.Equal(t, "3 days", Plural(3, "day"))
	assert.Equal(t, "0 warnings", Plural(0, "warning"))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "NAME"}, [][]string{{"1", "short"}, {"22", "a much longer name"}}))
	assert.Contains(t, out, "A   NAME\n")
	assert.Contains(t, out, "1   short\n")
	assert.Contains(t, out, "22  a much longer name\n")
	assert.Empty(t, RenderTable(nil, nil))
}
