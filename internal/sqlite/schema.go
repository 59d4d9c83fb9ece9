package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// Schema DDL for the four section tables. Table and column names are the
// section and column names so the file reads like the workbook.
const (
	createChildren = `CREATE TABLE "Ninos" (
    "id" INTEGER NOT NULL,
    "nombre" TEXT NOT NULL,
    "foto_url" TEXT NOT NULL
);`

	createGrades = `CREATE TABLE "Calificaciones" (
    "id_nino" INTEGER NOT NULL,
    "materia" TEXT NOT NULL,
    "calificacion" TEXT NOT NULL
);`

	createHomework = `CREATE TABLE "Tareas" (
    "id_nino" INTEGER NOT NULL,
    "tarea" TEXT NOT NULL,
    "fecha_entrega" TEXT NOT NULL
);`

	createAnnouncements = `CREATE TABLE "Circulares" (
    "titulo" TEXT NOT NULL,
    "contenido" TEXT NOT NULL,
    "fecha" TEXT NOT NULL
);`
)

// Index DDL for the per-child lookups.
const (
	idxGradesChild   = `CREATE INDEX idx_calificaciones_nino ON "Calificaciones"("id_nino");`
	idxHomeworkChild = `CREATE INDEX idx_tareas_nino ON "Tareas"("id_nino");`
)

// schemaDDL lists all CREATE TABLE statements in types.Sections order.
var schemaDDL = []string{
	createChildren,
	createGrades,
	createHomework,
	createAnnouncements,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxGradesChild,
	idxHomeworkChild,
}

// quoteIdent quotes a table or column name for SQLite.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// joinColumns quotes and joins column names with commas.
func joinColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return strings.Join(quoted, ", ")
}

// selectSQL reads a section in insertion order.
func selectSQL(sec types.Section) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", joinColumns(sec.Columns), quoteIdent(sec.Name))
}

// insertSQL appends one row to a section.
func insertSQL(sec types.Section) string {
	placeholders := make([]string, len(sec.Columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(sec.Name), joinColumns(sec.Columns), strings.Join(placeholders, ", "))
}
