package gantt

import (
	"sort"

	"github.com/alexanderramin/ganttline/internal/domain"
)

// SortRows sorts rows in place by these rules, keeping fetch order on ties:
// 1. Hierarchy level: ascending
// 2. Dated rows before undated rows
// 3. Start date: earliest first
// 4. Display name: lexical ascending
func SortRows(rows []RowDescriptor) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.HierarchyLevel != b.HierarchyLevel {
			return a.HierarchyLevel < b.HierarchyLevel
		}
		return siblingLess(a, b)
	})
}

func siblingLess(a, b RowDescriptor) bool {
	if a.NoDates != b.NoDates {
		return !a.NoDates
	}
	if a.StartDate != nil && b.StartDate != nil && !a.StartDate.Equal(*b.StartDate) {
		return a.StartDate.Before(*b.StartDate)
	}
	return a.DisplayName < b.DisplayName
}

// treeOrder emits every root followed depth-first by its descendants.
// Siblings are ordered by (start, name). Rows whose parent is not part of
// the chart, and rows in a suspected cycle, are treated as roots.
func treeOrder(rows []RowDescriptor) []RowDescriptor {
	index := make(map[domain.ItemRef]int, len(rows))
	for i, r := range rows {
		if r.SourceItemRef.ID != 0 {
			index[r.SourceItemRef] = i
		}
	}

	children := make(map[int][]int)
	var roots []int
	for i, r := range rows {
		if r.ParentLink == nil || r.CycleSuspected {
			roots = append(roots, i)
			continue
		}
		parent, ok := index[r.ParentLink.Ref()]
		if !ok || rows[parent].CycleSuspected || parent == i {
			roots = append(roots, i)
			continue
		}
		children[parent] = append(children[parent], i)
	}

	bySibling := func(idx []int) {
		sort.SliceStable(idx, func(x, y int) bool {
			return siblingLess(rows[idx[x]], rows[idx[y]])
		})
	}
	bySibling(roots)

	out := make([]RowDescriptor, 0, len(rows))
	visited := make([]bool, len(rows))
	var walk func(i int)
	walk = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		out = append(out, rows[i])
		kids := children[i]
		bySibling(kids)
		for _, k := range kids {
			walk(k)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	// Anything left is unreachable from a root.
	for i := range rows {
		walk(i)
	}
	return out
}
