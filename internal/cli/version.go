package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gradebook/pkg/gradebook"
)

const modulePath = "github.com/mesh-intelligence/gradebook"

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gradebook version",
		// version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "gradebook v%s (%s)\nmodule: %s\n", gradebook.Version, gradebook.Commit, modulePath)
			return nil
		},
	}
}
