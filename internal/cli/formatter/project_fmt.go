package formatter

import (
	"github.com/alexanderramin/ganttline/internal/domain"
)

// FormatProjectList renders projects inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with: ganttline project add --id WEB01 --name \"Website\"")
	}
	headers := []string{"ID", "NAME", "DESCRIPTION", "CREATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		desc := p.Description
		if desc == "" {
			desc = "--"
		}
		rows = append(rows, []string{
			p.DisplayID(),
			p.Name,
			desc,
			p.CreatedAt.Format(domain.DateLayout),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatTaskList renders a project's tasks.
func FormatTaskList(tasks []*domain.Task) string {
	if len(tasks) == 0 {
		return Dim("No tasks.")
	}
	headers := []string{"REF", "TITLE", "RESPONSIBLE", "DATES", "PROGRESS", "PARENT"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			domain.ItemRef{Tag: domain.TagTask, ID: t.ID}.String(),
			t.Title,
			domain.CoalesceStr(t.Responsible, "--"),
			DateSpan(t.StartDate, t.DueDate),
			ProgressPill(t.ProgressPercent()),
			ParentRef(t.Parent),
		})
	}
	return RenderTable(headers, rows)
}

// FormatMeetingList renders a project's meetings.
func FormatMeetingList(meetings []*domain.Meeting) string {
	if len(meetings) == 0 {
		return Dim("No meetings.")
	}
	headers := []string{"REF", "SUBJECT", "ORGANIZER", "WHEN", "LOCATION", "PARENT"}
	rows := make([][]string, 0, len(meetings))
	for _, m := range meetings {
		end := m.EndDate
		if end == nil {
			end = m.MeetingDate
		}
		rows = append(rows, []string{
			domain.ItemRef{Tag: domain.TagMeeting, ID: m.ID}.String(),
			m.Subject,
			domain.CoalesceStr(m.Organizer, "--"),
			DateSpan(m.MeetingDate, end),
			domain.CoalesceStr(m.Location, "--"),
			ParentRef(m.Parent),
		})
	}
	return RenderTable(headers, rows)
}
