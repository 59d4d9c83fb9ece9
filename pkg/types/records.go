package types

import (
	"cmp"
	"slices"
	"time"
)

// Child is one row of the children section.
type Child struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	PhotoRef string `json:"photo_ref"` // URL or local path; may be empty.
}

// Grade is one row of the grades section. ChildID is not checked against
// the children section.
type Grade struct {
	ChildID int64  `json:"child_id"`
	Subject string `json:"subject"`
	Score   string `json:"score"` // Kept as read: "9.5", "A", "aprobado".
}

// Homework is one row of the homework section.
type Homework struct {
	ChildID     int64     `json:"child_id"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
}

// Announcement is one row of the announcements section. It has no owner
// and is visible to every role.
type Announcement struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Date  time.Time `json:"date"`
}

// Dataset holds the four tables. They are loaded and persisted together.
type Dataset struct {
	Children      []Child        `json:"children"`
	Grades        []Grade        `json:"grades"`
	Homework      []Homework     `json:"homework"`
	Announcements []Announcement `json:"announcements"`
}

// EmptyDataset returns a Dataset whose four tables are empty but non-nil.
func EmptyDataset() Dataset {
	return Dataset{
		Children:      []Child{},
		Grades:        []Grade{},
		Homework:      []Homework{},
		Announcements: []Announcement{},
	}
}

// Clone returns a deep copy so callers can modify tables without touching
// a cached Dataset. Nil tables come back as empty tables.
func (d Dataset) Clone() Dataset {
	out := EmptyDataset()
	out.Children = append(out.Children, d.Children...)
	out.Grades = append(out.Grades, d.Grades...)
	out.Homework = append(out.Homework, d.Homework...)
	out.Announcements = append(out.Announcements, d.Announcements...)
	return out
}

// NextChildID returns max(id)+1, or 1 when there are no children.
func (d Dataset) NextChildID() int64 {
	if len(d.Children) == 0 {
		return 1
	}
	last := slices.MaxFunc(d.Children, func(a, b Child) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return last.ID + 1
}

// Date returns the calendar date y-m-d at UTC midnight, the form in which
// containers store and return dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TruncateDate drops the clock part of t and moves it to UTC. The zero
// time stays zero.
func TruncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return Date(t.Year(), t.Month(), t.Day())
}
