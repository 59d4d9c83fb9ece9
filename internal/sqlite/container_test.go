package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

func sampleDataset() types.Dataset {
	return types.Dataset{
		Children: []types.Child{
			{ID: 3, Name: "Carla"},
			{ID: 1, Name: "Ana", PhotoRef: "ana.png"},
		},
		Grades: []types.Grade{
			{ChildID: 1, Subject: "Matematicas", Score: "9.50"},
			{ChildID: 3, Subject: "Historia", Score: "B"},
		},
		Homework: []types.Homework{
			{ChildID: 3, Description: "Maqueta", DueDate: types.Date(2024, time.June, 1)},
			{ChildID: 1, Description: "Sin fecha"},
		},
		Announcements: []types.Announcement{
			{Title: "Vacaciones", Body: "Inician el lunes", Date: types.Date(2024, time.July, 8)},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.db")
	c := New(path)
	want := sampleDataset()

	require.NoError(t, c.Write(want))
	got, err := c.Read()
	require.NoError(t, err)

	assert.Equal(t, want.Children, got.Children, "insertion order is preserved")
	assert.Equal(t, want.Grades, got.Grades)
	assert.Equal(t, want.Homework, got.Homework)
	assert.Equal(t, want.Announcements, got.Announcements)
}

func TestWriteReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.db")
	c := New(path)

	require.NoError(t, c.Write(sampleDataset()))
	require.NoError(t, c.Write(types.EmptyDataset()))

	got, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, types.EmptyDataset(), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")

	_, err := New(path).Read()
	assert.ErrorIs(t, err, types.ErrContainerNotFound)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "read must not create the file")
}

func TestReadSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		ddl     []string
		wantErr error
	}{
		{
			name:    "missing table",
			ddl:     []string{createChildren, createGrades, createHomework},
			wantErr: types.ErrSectionNotFound,
		},
		{
			name: "missing column",
			ddl: []string{
				`CREATE TABLE "Ninos" ("id" INTEGER, "nombre" TEXT)`,
				createGrades, createHomework, createAnnouncements,
			},
			wantErr: types.ErrColumnNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "datos.db")
			db, err := sql.Open(driverName, path)
			require.NoError(t, err)
			for _, ddl := range tt.ddl {
				_, err := db.Exec(ddl)
				require.NoError(t, err)
			}
			require.NoError(t, db.Close())

			_, err = New(path).Read()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadToleratesExtraColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datos.db")
	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	for _, ddl := range []string{
		`CREATE TABLE "Ninos" ("notas" TEXT, "id" INTEGER, "nombre" TEXT, "foto_url" TEXT)`,
		createGrades, createHomework, createAnnouncements,
		`INSERT INTO "Ninos" VALUES ('x', 7, 'Dani', NULL)`,
	} {
		_, err := db.Exec(ddl)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	got, err := New(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []types.Child{{ID: 7, Name: "Dani"}}, got.Children)
}
