package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gradebook/internal/tabular"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

var warnColor = color.New(color.FgYellow)

// warnLoad reports a recoverable load failure on stderr. The command
// carries on with the empty dataset.
func warnLoad(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", warnColor.Sprint("warning:"), err)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

func newTable(w io.Writer, header, rule string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	fmt.Fprintln(tw, rule)
	return tw
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printChildren(w io.Writer, rows []types.Child) error {
	tw := newTable(w, "ID\tNAME\tPHOTO", "--\t----\t-----")
	for _, c := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, dash(c.PhotoRef))
	}
	return tw.Flush()
}

func printGrades(w io.Writer, rows []types.Grade) error {
	tw := newTable(w, "CHILD\tSUBJECT\tSCORE", "-----\t-------\t-----")
	for _, g := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ChildID, g.Subject, dash(g.Score))
	}
	return tw.Flush()
}

func printHomework(w io.Writer, rows []types.Homework) error {
	tw := newTable(w, "CHILD\tDUE\tTASK", "-----\t---\t----")
	for _, h := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", h.ChildID, dash(tabular.FormatDate(h.DueDate)), h.Description)
	}
	return tw.Flush()
}

func printAnnouncements(w io.Writer, rows []types.Announcement) error {
	for i, an := range rows {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  %s\n%s\n", dash(tabular.FormatDate(an.Date)), an.Title, an.Body)
	}
	return nil
}
