// Package tabular converts between the typed Dataset and the plain rows a
// container stores: one slice of cells per row, projected onto a section's
// columns in the order listed by types.Sections.
package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// Records maps a section name to its rows. Each row has exactly one cell
// per section column.
type Records map[string][][]string

// Rows maps a section name to rows of typed values ready to write.
type Rows map[string][][]any

// Codec carries the container-specific parts of decoding and encoding.
// Nil funcs fall back to the text forms.
type Codec struct {
	ParseDate  func(string) (time.Time, error)
	DateValue  func(time.Time) any
	ScoreValue func(string) any
}

// ColumnIndex returns, for each column of sec, its position in header.
// Header cells are matched exactly after trimming surrounding spaces.
// Extra header cells are ignored.
func ColumnIndex(header []string, sec types.Section) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	idx := make([]int, len(sec.Columns))
	for i, col := range sec.Columns {
		p, ok := pos[col]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", types.ErrColumnNotFound, sec.Name, col)
		}
		idx[i] = p
	}
	return idx, nil
}

// Project picks the cells at idx out of row. Short rows yield empty cells.
func Project(row []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, p := range idx {
		if p < len(row) {
			out[i] = row[p]
		}
	}
	return out
}

// Blank reports whether every cell of row is empty or whitespace.
func Blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Decode builds a Dataset from recs. A missing section is an error; a row
// whose id or date cannot be parsed is ErrMalformedRow.
func (c Codec) Decode(recs Records) (types.Dataset, error) {
	d := types.EmptyDataset()
	parseDate := c.ParseDate
	if parseDate == nil {
		parseDate = ParseTextDate
	}

	for _, sec := range types.Sections {
		rows, ok := recs[sec.Name]
		if !ok {
			return types.Dataset{}, fmt.Errorf("%w: %s", types.ErrSectionNotFound, sec.Name)
		}
		for i, r := range rows {
			// Row numbers are 1-based and count the header row.
			line := i + 2
			if err := c.decodeRow(&d, sec.Name, r, parseDate); err != nil {
				return types.Dataset{}, fmt.Errorf("%w: %s row %d: %v", types.ErrMalformedRow, sec.Name, line, err)
			}
		}
	}
	return d, nil
}

func (c Codec) decodeRow(d *types.Dataset, section string, r []string, parseDate func(string) (time.Time, error)) error {
	switch section {
	case types.SectionChildren:
		id, err := ParseID(r[0])
		if err != nil {
			return err
		}
		d.Children = append(d.Children, types.Child{ID: id, Name: r[1], PhotoRef: r[2]})
	case types.SectionGrades:
		id, err := ParseID(r[0])
		if err != nil {
			return err
		}
		d.Grades = append(d.Grades, types.Grade{ChildID: id, Subject: r[1], Score: r[2]})
	case types.SectionHomework:
		id, err := ParseID(r[0])
		if err != nil {
			return err
		}
		due, err := parseDate(r[2])
		if err != nil {
			return err
		}
		d.Homework = append(d.Homework, types.Homework{ChildID: id, Description: r[1], DueDate: due})
	case types.SectionAnnouncements:
		date, err := parseDate(r[2])
		if err != nil {
			return err
		}
		d.Announcements = append(d.Announcements, types.Announcement{Title: r[0], Body: r[1], Date: date})
	}
	return nil
}

// Encode turns d into typed rows per section.
func (c Codec) Encode(d types.Dataset) Rows {
	dateValue := c.DateValue
	if dateValue == nil {
		dateValue = func(t time.Time) any { return FormatDate(t) }
	}
	scoreValue := c.ScoreValue
	if scoreValue == nil {
		scoreValue = func(s string) any { return s }
	}

	rows := Rows{
		types.SectionChildren:      make([][]any, 0, len(d.Children)),
		types.SectionGrades:        make([][]any, 0, len(d.Grades)),
		types.SectionHomework:      make([][]any, 0, len(d.Homework)),
		types.SectionAnnouncements: make([][]any, 0, len(d.Announcements)),
	}
	for _, ch := range d.Children {
		rows[types.SectionChildren] = append(rows[types.SectionChildren], []any{ch.ID, ch.Name, ch.PhotoRef})
	}
	for _, g := range d.Grades {
		rows[types.SectionGrades] = append(rows[types.SectionGrades], []any{g.ChildID, g.Subject, scoreValue(g.Score)})
	}
	for _, h := range d.Homework {
		rows[types.SectionHomework] = append(rows[types.SectionHomework], []any{h.ChildID, h.Description, dateValue(h.DueDate)})
	}
	for _, a := range d.Announcements {
		rows[types.SectionAnnouncements] = append(rows[types.SectionAnnouncements], []any{a.Title, a.Body, dateValue(a.Date)})
	}
	return rows
}

// ParseID parses an integer id. Spreadsheets often store integers as
// floats ("3" or "3.0"); integral floats are accepted.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty id")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return int64(f), nil
}

// dateLayouts are tried in order by ParseTextDate.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// ParseTextDate parses a date written as text. An empty cell is the zero
// date.
func ParseTextDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return types.TruncateDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// NumericScore returns s as a float64 when formatting the number back
// yields s again, and s itself otherwise. This keeps "9.5" numeric in a
// spreadsheet without turning "09" or "9.50" into something else.
func NumericScore(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || strconv.FormatFloat(f, 'f', -1, 64) != s {
		return s
	}
	return f
}
