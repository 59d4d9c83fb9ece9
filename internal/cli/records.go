package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gradebook/internal/access"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// visible loads the dataset and filters it for the current session. A
// load failure is printed as a warning and the empty dataset is used.
func (a *app) visible(cmd *cobra.Command) (types.Dataset, error) {
	sess, err := a.currentSession()
	if err != nil {
		return types.Dataset{}, err
	}
	d, err := a.records.Load()
	if err != nil {
		warnLoad(cmd, err)
	}
	return access.Visible(sess, d), nil
}

// listCmd builds a read-only command that prints one section of the
// visible dataset.
func listCmd[T any](a *app, use, short string, pick func(types.Dataset) []T, render func(io.Writer, []T) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.visible(cmd)
			if err != nil {
				return err
			}
			rows := pick(d)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records.")
				return nil
			}
			return render(cmd.OutOrStdout(), rows)
		},
	}
}

func (a *app) childrenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "children",
		Short: "List or add children",
	}
	cmd.AddCommand(listCmd(a, "list", "List the children visible to you",
		func(d types.Dataset) []types.Child { return d.Children }, printChildren))
	cmd.AddCommand(a.addChildCmd())
	return cmd
}

func (a *app) addChildCmd() *cobra.Command {
	var photo string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a child (teachers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.currentSession()
			if err != nil {
				return err
			}
			if sess.Role != types.RoleTeacher {
				return fmt.Errorf("add child: %w", types.ErrForbidden)
			}
			c, err := a.records.AddChild(args[0], photo)
			if err != nil {
				return err
			}
			a.logger.Info("child added", "id", c.ID, "username", sess.Username)
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added child %d: %s\n", c.ID, c.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&photo, "photo", "", "photo URL or local path")
	return cmd
}

func (a *app) gradesCmd() *cobra.Command {
	return group("grades", "Show grades",
		listCmd(a, "list", "List the grades visible to you",
			func(d types.Dataset) []types.Grade { return d.Grades }, printGrades))
}

func (a *app) homeworkCmd() *cobra.Command {
	return group("homework", "Show homework",
		listCmd(a, "list", "List the homework visible to you",
			func(d types.Dataset) []types.Homework { return d.Homework }, printHomework))
}

func (a *app) announcementsCmd() *cobra.Command {
	return group("announcements", "Show announcements",
		listCmd(a, "list", "List all announcements",
			func(d types.Dataset) []types.Announcement { return d.Announcements }, printAnnouncements))
}

func group(use, short string, sub ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}
	cmd.AddCommand(sub...)
	return cmd
}
