// Package workbook stores the Dataset in an .xlsx file with one sheet per
// section. The first row of each sheet is the header; columns are found by
// name so sheets written by other tools load as long as the names match.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/gradebook/internal/atomicfile"
	"github.com/mesh-intelligence/gradebook/internal/tabular"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// dateNumFmt is the built-in "yyyy-mm-dd"-like short date format.
const dateNumFmt = 14

// dateColumns lists, per section, the columns holding dates.
var dateColumns = map[string]string{
	types.SectionHomework:      types.ColHomeworkDue,
	types.SectionAnnouncements: types.ColAnnDate,
}

// Container implements types.Container on an .xlsx file.
type Container struct {
	path string
}

// New returns a Container for the workbook at path. The file is not
// touched until Read or Write.
func New(path string) *Container {
	return &Container{path: path}
}

// Path returns the workbook file path.
func (c *Container) Path() string { return c.path }

// Read loads the four sheets.
func (c *Container) Read() (types.Dataset, error) {
	f, err := excelize.OpenFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Dataset{}, fmt.Errorf("%w: %s", types.ErrContainerNotFound, c.path)
		}
		return types.Dataset{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	recs := make(tabular.Records, len(types.Sections))
	for _, sec := range types.Sections {
		rows, err := readSheet(f, sec)
		if err != nil {
			return types.Dataset{}, err
		}
		recs[sec.Name] = rows
	}
	return codec.Decode(recs)
}

// Write replaces the workbook with d.
func (c *Container) Write(d types.Dataset) error {
	f, err := build(d)
	if err != nil {
		return err
	}
	defer f.Close()

	return atomicfile.Write(c.path, ".gradebook-*.xlsx", func(w io.Writer) error {
		if err := f.Write(w); err != nil {
			return fmt.Errorf("serializing workbook: %w", err)
		}
		return nil
	})
}

var codec = tabular.Codec{
	ParseDate:  parseCellDate,
	DateValue:  dateCell,
	ScoreValue: tabular.NumericScore,
}

// readSheet returns the rows of sec projected onto its columns, header
// excluded and blank rows skipped.
func readSheet(f *excelize.File, sec types.Section) ([][]string, error) {
	idx, err := f.GetSheetIndex(sec.Name)
	if err != nil {
		return nil, fmt.Errorf("looking up sheet %s: %w", sec.Name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrSectionNotFound, sec.Name)
	}

	rows, err := f.GetRows(sec.Name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sec.Name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", types.ErrColumnNotFound, sec.Name)
	}

	cols, err := tabular.ColumnIndex(rows[0], sec)
	if err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := tabular.Project(row, cols)
		if tabular.Blank(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// build lays out d as a new workbook, sheets in types.Sections order.
func build(d types.Dataset) (*excelize.File, error) {
	f := excelize.NewFile()
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: dateNumFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating date style: %w", err)
	}

	rows := codec.Encode(d)
	for i, sec := range types.Sections {
		if err := addSheet(f, i, sec.Name); err != nil {
			f.Close()
			return nil, err
		}
		if col, ok := dateColumns[sec.Name]; ok {
			if err := styleColumn(f, sec, col, dateStyle); err != nil {
				f.Close()
				return nil, err
			}
		}
		header := make([]any, len(sec.Columns))
		for j, col := range sec.Columns {
			header[j] = col
		}
		if err := f.SetSheetRow(sec.Name, "A1", &header); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing %s header: %w", sec.Name, err)
		}
		for j, row := range rows[sec.Name] {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetSheetRow(sec.Name, cell, &row); err != nil {
				f.Close()
				return nil, fmt.Errorf("writing %s row %d: %w", sec.Name, j+2, err)
			}
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// addSheet renames the default sheet for the first section and appends
// the rest.
func addSheet(f *excelize.File, i int, name string) error {
	if i == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("naming sheet %s: %w", name, err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("adding sheet %s: %w", name, err)
	}
	return nil
}

func styleColumn(f *excelize.File, sec types.Section, col string, style int) error {
	for j, c := range sec.Columns {
		if c != col {
			continue
		}
		name, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return err
		}
		if err := f.SetColStyle(sec.Name, name, style); err != nil {
			return fmt.Errorf("styling %s.%s: %w", sec.Name, col, err)
		}
	}
	return nil
}

// parseCellDate accepts Excel serial dates, which is how date cells come
// back in raw mode, and falls back to text dates.
func parseCellDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", s, err)
		}
		return types.TruncateDate(t), nil
	}
	return tabular.ParseTextDate(s)
}

// dateCell leaves zero dates empty.
func dateCell(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return types.TruncateDate(t)
}
