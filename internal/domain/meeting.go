package domain

import "time"

// Meeting is a short event. Most meetings happen on one day; EndDate is only
// set for multi-day events such as workshops.
type Meeting struct {
	ID          int64
	ProjectID   string
	Subject     string
	Organizer   string
	MeetingDate *time.Time
	EndDate     *time.Time
	Location    string
	Color       string
	Icon        string
	Parent      *ParentLink
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ScheduleItem presents the meeting as a timeline item. A meeting without an
// end date is an instant: start and end are the meeting date.
func (m *Meeting) ScheduleItem() *ScheduleItem {
	end := m.EndDate
	if end == nil {
		end = m.MeetingDate
	}
	item := &ScheduleItem{
		DisplayName:     m.Subject,
		EntityTypeTag:   TagMeeting,
		ResponsibleName: m.Organizer,
		StartDate:       m.MeetingDate,
		EndDate:         end,
		ColorCode:       m.Color,
		IconID:          CoalesceStr(m.Icon, "meeting"),
		Source:          m,
	}
	if m.ID > 0 {
		item.ID = Int64Ptr(m.ID)
	}
	if m.Parent != nil {
		link := *m.Parent
		item.ParentLink = &link
	}
	return item
}
