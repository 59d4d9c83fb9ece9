package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

func dataset() types.Dataset {
	return types.Dataset{
		Children: []types.Child{
			{ID: 1, Name: "Ana"}, {ID: 2, Name: "Beto"}, {ID: 3, Name: "Carla"}, {ID: 4, Name: "Dani"},
		},
		Grades: []types.Grade{
			{ChildID: 3, Subject: "Arte", Score: "9"},
			{ChildID: 1, Subject: "Matematicas", Score: "8"},
			{ChildID: 2, Subject: "Historia", Score: "7"},
			{ChildID: 1, Subject: "Historia", Score: "10"},
			{ChildID: 9, Subject: "Huerfana", Score: "5"},
		},
		Homework: []types.Homework{
			{ChildID: 2, Description: "Ensayo", DueDate: types.Date(2024, time.May, 2)},
			{ChildID: 4, Description: "Maqueta"},
		},
		Announcements: []types.Announcement{{Title: "Junta", Body: "Viernes"}},
	}
}

func TestTeacherSeesEverything(t *testing.T) {
	d := dataset()
	for _, permitted := range [][]int64{nil, {1}, {1, 2, 99}} {
		assert.Equal(t, d.Children, VisibleChildren(types.RoleTeacher, permitted, d.Children))
		assert.Equal(t, d.Grades, VisibleGrades(types.RoleTeacher, permitted, d.Grades))
		assert.Equal(t, d.Homework, VisibleHomework(types.RoleTeacher, permitted, d.Homework))
		assert.Equal(t, d.Announcements, VisibleAnnouncements(types.RoleTeacher, permitted, d.Announcements))
	}
}

func TestParentChildren(t *testing.T) {
	d := dataset()
	tests := []struct {
		name      string
		permitted []int64
		wantIDs   []int64
	}{
		{name: "two children", permitted: []int64{1, 2}, wantIDs: []int64{1, 2}},
		{name: "order follows the table not the permitted list", permitted: []int64{3, 1}, wantIDs: []int64{1, 3}},
		{name: "duplicate permitted ids do not duplicate rows", permitted: []int64{2, 2, 2}, wantIDs: []int64{2}},
		{name: "unknown id is ignored", permitted: []int64{42}, wantIDs: []int64{}},
		{name: "no permitted ids", permitted: nil, wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleChildren(types.RoleParent, tt.permitted, d.Children)
			ids := make([]int64, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParentNoFalsePositivesOrNegatives(t *testing.T) {
	d := dataset()
	permitted := []int64{1, 2}
	allowed := map[int64]bool{1: true, 2: true}

	got := VisibleChildren(types.RoleParent, permitted, d.Children)
	for _, c := range got {
		assert.True(t, allowed[c.ID], "child %d leaked", c.ID)
	}
	for _, c := range d.Children {
		if allowed[c.ID] {
			assert.Contains(t, got, c)
		}
	}

	grades := VisibleGrades(types.RoleParent, permitted, d.Grades)
	assert.Equal(t, []types.Grade{d.Grades[1], d.Grades[2], d.Grades[3]}, grades)

	homework := VisibleHomework(types.RoleParent, permitted, d.Homework)
	assert.Equal(t, []types.Homework{d.Homework[0]}, homework)
}

func TestAnnouncementsIgnoreRole(t *testing.T) {
	d := dataset()
	for _, role := range []types.Role{types.RoleTeacher, types.RoleParent, "", "janitor"} {
		assert.Equal(t, d.Announcements, VisibleAnnouncements(role, nil, d.Announcements))
	}
}

func TestUnknownRoleSeesNoRows(t *testing.T) {
	d := dataset()
	assert.Empty(t, VisibleChildren("janitor", []int64{1}, d.Children))
	assert.Empty(t, VisibleGrades("", []int64{1}, d.Grades))
}

func TestVisible(t *testing.T) {
	d := dataset()
	parent := types.Session{Role: types.RoleParent, PermittedIDs: []int64{4}}

	got := Visible(parent, d)
	assert.Equal(t, []types.Child{{ID: 4, Name: "Dani"}}, got.Children)
	assert.Empty(t, got.Grades)
	assert.Equal(t, []types.Homework{d.Homework[1]}, got.Homework)
	assert.Equal(t, d.Announcements, got.Announcements)

	loggedOut := Visible(types.Session{}, d)
	assert.Empty(t, loggedOut.Children)
	assert.Equal(t, d.Announcements, loggedOut.Announcements)
}
