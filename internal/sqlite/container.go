// Package sqlite stores the Dataset in a single SQLite database file with
// one table per section. Reads query the file in place; writes build a
// fresh database next to it and rename it over the old one, so a failed
// write never leaves a partial file.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/gradebook/internal/atomicfile"
	"github.com/mesh-intelligence/gradebook/internal/tabular"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

const driverName = "sqlite"

// Container implements types.Container on a SQLite file.
type Container struct {
	path string
}

// New returns a Container for the database at path.
func New(path string) *Container {
	return &Container{path: path}
}

// Path returns the database file path.
func (c *Container) Path() string { return c.path }

// Read loads the four tables. The file must exist; opening a missing path
// would otherwise create an empty database.
func (c *Container) Read() (types.Dataset, error) {
	if _, err := os.Stat(c.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Dataset{}, fmt.Errorf("%w: %s", types.ErrContainerNotFound, c.path)
		}
		return types.Dataset{}, fmt.Errorf("stat %s: %w", c.path, err)
	}

	db, err := sql.Open(driverName, c.path)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	recs := make(tabular.Records, len(types.Sections))
	for _, sec := range types.Sections {
		rows, err := readSection(db, sec)
		if err != nil {
			return types.Dataset{}, err
		}
		recs[sec.Name] = rows
	}
	return tabular.Codec{}.Decode(recs)
}

// Write replaces the database file with d.
func (c *Container) Write(d types.Dataset) error {
	rows := tabular.Codec{}.Encode(d)
	return atomicfile.Build(c.path, ".gradebook-*.db", func(tmpName string) error {
		return writeDatabase(tmpName, rows)
	})
}

// readSection checks that the section table and its columns exist, then
// returns its rows as text cells.
func readSection(db *sql.DB, sec types.Section) ([][]string, error) {
	cols, err := tableColumns(db, sec.Name)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrSectionNotFound, sec.Name)
	}
	if _, err := tabular.ColumnIndex(cols, sec); err != nil {
		return nil, err
	}

	rows, err := db.Query(selectSQL(sec))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", sec.Name, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(sec.Columns))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", sec.Name, err)
		}
		rec := make([]string, len(cells))
		for i, cell := range cells {
			rec[i] = cell.String
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", sec.Name, err)
	}
	return out, nil
}

// tableColumns returns the column names of table, or nil if the table does
// not exist.
func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning %s columns: %w", table, err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// writeDatabase creates the schema in the empty file at path and inserts
// rows in one transaction.
func writeDatabase(path string, rows tabular.Rows) error {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning write transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}

	for _, sec := range types.Sections {
		if err := insertRows(tx, sec, rows[sec.Name]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing write transaction: %w", err)
	}
	return db.Close()
}

func insertRows(tx *sql.Tx, sec types.Section, rows [][]any) error {
	stmt, err := tx.Prepare(insertSQL(sec))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", sec.Name, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			return fmt.Errorf("inserting %s row %d: %w", sec.Name, i+1, err)
		}
	}
	return nil
}
