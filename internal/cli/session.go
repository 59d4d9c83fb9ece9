package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gradebook/internal/auth"
	"github.com/mesh-intelligence/gradebook/internal/paths"
	"github.com/mesh-intelligence/gradebook/internal/sessionstore"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// withSessions opens the session file for the duration of fn.
func (a *app) withSessions(fn func(*sessionstore.Store) error) error {
	s, err := sessionstore.Open(paths.SessionFile(a.configDir))
	if err != nil {
		return sysError(err)
	}
	defer s.Close()
	return fn(s)
}

// currentSession returns the stored session, or ErrNotLoggedIn.
func (a *app) currentSession() (types.Session, error) {
	var sess types.Session
	err := a.withSessions(func(s *sessionstore.Store) error {
		var err error
		sess, err = s.Load()
		if err != nil {
			return sysError(err)
		}
		return nil
	})
	if err != nil {
		return types.Session{}, err
	}
	if !sess.LoggedIn() {
		return types.Session{}, types.ErrNotLoggedIn
	}
	return sess, nil
}

func (a *app) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a teacher or parent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.auth.Login(username, password)
			if err != nil {
				return err
			}
			if err := a.withSessions(func(s *sessionstore.Store) error {
				if err := s.Save(sess); err != nil {
					return sysError(err)
				}
				return nil
			}); err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), sess)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.Username, sess.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "user", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := a.withSessions(func(s *sessionstore.Store) error {
				prev, err := s.Load()
				if err != nil {
					return sysError(err)
				}
				if err := s.Save(auth.Logout(prev)); err != nil {
					return sysError(err)
				}
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.currentSession()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), sess)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sess.Username, sess.Role)
			if sess.Role == types.RoleParent {
				fmt.Fprintf(cmd.OutOrStdout(), "children: %v\n", sess.PermittedIDs)
			}
			return nil
		},
	}
}
