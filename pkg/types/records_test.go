package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextChildID(t *testing.T) {
	tests := []struct {
		name     string
		children []Child
		want     int64
	}{
		{name: "empty table starts at 1", children: nil, want: 1},
		{name: "single child", children: []Child{{ID: 1}}, want: 2},
		{name: "uses max not length", children: []Child{{ID: 7}, {ID: 3}}, want: 8},
		{name: "gap in ids", children: []Child{{ID: 1}, {ID: 5}, {ID: 2}}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Dataset{Children: tt.children}
			assert.Equal(t, tt.want, d.NextChildID())
		})
	}
}

func TestDatasetClone(t *testing.T) {
	orig := Dataset{
		Children: []Child{{ID: 1, Name: "Ana"}},
		Grades:   []Grade{{ChildID: 1, Subject: "Math", Score: "9"}},
	}

	cp := orig.Clone()
	cp.Children[0].Name = "changed"
	cp.Children = append(cp.Children, Child{ID: 2, Name: "Beto"})

	assert.Equal(t, "Ana", orig.Children[0].Name)
	assert.Len(t, orig.Children, 1)
	assert.NotNil(t, cp.Homework, "nil tables come back empty")
	assert.Empty(t, cp.Announcements)
}

func TestTruncateDate(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*60*60)
	got := TruncateDate(time.Date(2024, time.March, 5, 18, 30, 0, 0, loc))
	assert.Equal(t, Date(2024, time.March, 5), got)
	assert.True(t, TruncateDate(time.Time{}).IsZero())
}

func TestErrorWrapping(t *testing.T) {
	load := &LoadError{Path: "x.xlsx", Err: ErrSectionNotFound}
	require.True(t, IsLoadError(load))
	assert.True(t, errors.Is(load, ErrSectionNotFound))

	val := &ValidationError{Field: "name", Err: ErrInvalidName}
	require.True(t, IsValidationError(val))
	assert.ErrorIs(t, val, ErrInvalidName)
	assert.Equal(t, "invalid name: name must not be empty", val.Error())

	write := &StorageWriteError{Path: "x.xlsx", Err: errors.New("disk full")}
	assert.True(t, IsStorageWriteError(write))
	assert.False(t, IsStorageWriteError(load))
}
