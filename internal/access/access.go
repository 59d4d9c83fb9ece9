// Package access narrows loaded tables to the rows a role may see.
//
// Filtering is a pure step over data that is already loaded; the Record
// Store does not enforce it. Every presentation path must pass tables
// through Visible (or the per-table functions) before showing them to a
// parent session.
package access

import (
	"slices"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// VisibleChildren returns all rows for a teacher, the rows whose id is in
// permitted for a parent, and no rows for any other role. Order is kept.
func VisibleChildren(role types.Role, permitted []int64, rows []types.Child) []types.Child {
	return filter(role, permitted, rows, func(c types.Child) int64 { return c.ID })
}

// VisibleGrades applies the VisibleChildren rule to Grade.ChildID.
func VisibleGrades(role types.Role, permitted []int64, rows []types.Grade) []types.Grade {
	return filter(role, permitted, rows, func(g types.Grade) int64 { return g.ChildID })
}

// VisibleHomework applies the VisibleChildren rule to Homework.ChildID.
func VisibleHomework(role types.Role, permitted []int64, rows []types.Homework) []types.Homework {
	return filter(role, permitted, rows, func(h types.Homework) int64 { return h.ChildID })
}

// VisibleAnnouncements returns rows unchanged; announcements belong to no
// child.
func VisibleAnnouncements(_ types.Role, _ []int64, rows []types.Announcement) []types.Announcement {
	return rows
}

// Visible narrows all four tables of d for s. A logged-out session sees
// only announcements.
func Visible(s types.Session, d types.Dataset) types.Dataset {
	return types.Dataset{
		Children:      VisibleChildren(s.Role, s.PermittedIDs, d.Children),
		Grades:        VisibleGrades(s.Role, s.PermittedIDs, d.Grades),
		Homework:      VisibleHomework(s.Role, s.PermittedIDs, d.Homework),
		Announcements: VisibleAnnouncements(s.Role, s.PermittedIDs, d.Announcements),
	}
}

func filter[T any](role types.Role, permitted []int64, rows []T, key func(T) int64) []T {
	switch role {
	case types.RoleTeacher:
		return rows
	case types.RoleParent:
		allowed := make(map[int64]struct{}, len(permitted))
		for _, id := range permitted {
			allowed[id] = struct{}{}
		}
		out := make([]T, 0, len(rows))
		for _, r := range rows {
			if _, ok := allowed[key(r)]; ok {
				out = append(out, r)
			}
		}
		return slices.Clip(out)
	default:
		return []T{}
	}
}
