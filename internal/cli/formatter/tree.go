package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttline/internal/gantt"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is a single line in an outline.
type TreeItem struct {
	Title  string
	Ref    string
	Tag    string
	Level  int
	IsLast bool
	Detail string
	// Warn marks rows that were placed at the root because their chain broke.
	Warn bool
	Done bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// TreeItemsFromRows converts rows in tree order into outline items.
func TreeItemsFromRows(rows []gantt.RowDescriptor) []TreeItem {
	items := make([]TreeItem, len(rows))
	for i, r := range rows {
		items[i] = TreeItem{
			Title:  r.Label(),
			Ref:    r.SourceItemRef.String(),
			Tag:    r.EntityTypeTag,
			Level:  r.HierarchyLevel,
			IsLast: isLastSibling(rows, i),
			Detail: rowDetail(r),
			Warn:   r.CycleSuspected,
			Done:   r.Progress != nil && *r.Progress >= 100,
		}
	}
	return items
}

// isLastSibling reports whether no later row shares rows[i]'s level before
// the outline climbs above it.
func isLastSibling(rows []gantt.RowDescriptor, i int) bool {
	level := rows[i].HierarchyLevel
	for _, r := range rows[i+1:] {
		if r.HierarchyLevel < level {
			return true
		}
		if r.HierarchyLevel == level {
			return false
		}
	}
	return true
}

func rowDetail(r gantt.RowDescriptor) string {
	if r.NoDates {
		return "no dates"
	}
	detail := Plural(r.DurationDays, "day")
	if r.Progress != nil {
		detail += fmt.Sprintf(" · %d%%", *r.Progress)
	}
	return detail
}

// RenderTree renders items as an indented outline with box-drawing
// connectors and right-aligned detail badges.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}
	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Ref != "" {
			title = StyleDim.Render(item.Ref+" ") + title
		}
		marker := ""
		switch {
		case item.Warn:
			marker = StyleRed.Render("! ")
		case item.Done:
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		}

		content := prefix + marker + title
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(0, maxContentWidth-lipgloss.Width(li.content))
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}
