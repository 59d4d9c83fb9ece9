package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

func fullRecords() Records {
	return Records{
		types.SectionChildren:      {{"1", "Ana", "ana.png"}, {"2.0", "Beto", ""}},
		types.SectionGrades:        {{"1", "Matematicas", "9.5"}},
		types.SectionHomework:      {{"2", "Leer capitulo 3", "2024-03-05"}},
		types.SectionAnnouncements: {{"Junta", "Viernes 5pm", ""}},
	}
}

func TestDecode(t *testing.T) {
	d, err := Codec{}.Decode(fullRecords())
	require.NoError(t, err)

	assert.Equal(t, []types.Child{{ID: 1, Name: "Ana", PhotoRef: "ana.png"}, {ID: 2, Name: "Beto"}}, d.Children)
	assert.Equal(t, []types.Grade{{ChildID: 1, Subject: "Matematicas", Score: "9.5"}}, d.Grades)
	assert.Equal(t, types.Date(2024, time.March, 5), d.Homework[0].DueDate)
	assert.True(t, d.Announcements[0].Date.IsZero())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(Records)
		wantErr error
	}{
		{
			name:    "missing section",
			mutate:  func(r Records) { delete(r, types.SectionHomework) },
			wantErr: types.ErrSectionNotFound,
		},
		{
			name:    "non numeric id",
			mutate:  func(r Records) { r[types.SectionChildren][0][0] = "uno" },
			wantErr: types.ErrMalformedRow,
		},
		{
			name:    "fractional id",
			mutate:  func(r Records) { r[types.SectionGrades][0][0] = "1.5" },
			wantErr: types.ErrMalformedRow,
		},
		{
			name:    "bad date",
			mutate:  func(r Records) { r[types.SectionAnnouncements][0][2] = "someday" },
			wantErr: types.ErrMalformedRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := fullRecords()
			tt.mutate(recs)
			_, err := Codec{}.Decode(recs)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestColumnIndex(t *testing.T) {
	sec := types.Sections[0]

	idx, err := ColumnIndex([]string{"extra", "foto_url", " nombre ", "id"}, sec)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, idx)

	_, err = ColumnIndex([]string{"id", "nombre"}, sec)
	assert.ErrorIs(t, err, types.ErrColumnNotFound)
}

func TestProjectAndBlank(t *testing.T) {
	assert.Equal(t, []string{"b", ""}, Project([]string{"a", "b"}, []int{1, 5}))
	assert.True(t, Blank([]string{"", "  "}))
	assert.False(t, Blank([]string{"", "x"}))
}

func TestEncode(t *testing.T) {
	d := types.Dataset{
		Children: []types.Child{{ID: 3, Name: "Ana"}},
		Grades:   []types.Grade{{ChildID: 3, Subject: "Arte", Score: "10"}},
		Homework: []types.Homework{{ChildID: 3, Description: "Dibujo", DueDate: types.Date(2024, time.May, 1)}},
	}

	rows := Codec{ScoreValue: NumericScore}.Encode(d)
	assert.Equal(t, []any{int64(3), "Ana", ""}, rows[types.SectionChildren][0])
	assert.Equal(t, []any{int64(3), "Arte", float64(10)}, rows[types.SectionGrades][0])
	assert.Equal(t, []any{int64(3), "Dibujo", "2024-05-01"}, rows[types.SectionHomework][0])
	assert.Empty(t, rows[types.SectionAnnouncements])
}

func TestNumericScore(t *testing.T) {
	assert.Equal(t, 9.5, NumericScore("9.5"))
	assert.Equal(t, "9.50", NumericScore("9.50"))
	assert.Equal(t, "09", NumericScore("09"))
	assert.Equal(t, "A+", NumericScore("A+"))
}

func TestParseID(t *testing.T) {
	for in, want := range map[string]int64{"1": 1, " 42 ": 42, "3.0": 3} {
		got, err := ParseID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "x", "2.5"} {
		_, err := ParseID(in)
		assert.Error(t, err, in)
	}
}
