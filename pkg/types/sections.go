package types

// Section names as they appear in the container. They match the data files
// already in use, so existing workbooks load unchanged.
const (
	SectionChildren      = "Ninos"
	SectionGrades        = "Calificaciones"
	SectionHomework      = "Tareas"
	SectionAnnouncements = "Circulares"
)

// Column names, read by exact match.
const (
	ColChildID       = "id"
	ColChildName     = "nombre"
	ColChildPhoto    = "foto_url"
	ColGradeChild    = "id_nino"
	ColGradeSubject  = "materia"
	ColGradeScore    = "calificacion"
	ColHomeworkChild = "id_nino"
	ColHomeworkDesc  = "tarea"
	ColHomeworkDue   = "fecha_entrega"
	ColAnnTitle      = "titulo"
	ColAnnBody       = "contenido"
	ColAnnDate       = "fecha"
)

// Section describes one named table of the container and its columns in
// write order.
type Section struct {
	Name    string
	Columns []string
}

// Sections lists the four sections in the order they are written.
var Sections = []Section{
	{Name: SectionChildren, Columns: []string{ColChildID, ColChildName, ColChildPhoto}},
	{Name: SectionGrades, Columns: []string{ColGradeChild, ColGradeSubject, ColGradeScore}},
	{Name: SectionHomework, Columns: []string{ColHomeworkChild, ColHomeworkDesc, ColHomeworkDue}},
	{Name: SectionAnnouncements, Columns: []string{ColAnnTitle, ColAnnBody, ColAnnDate}},
}
