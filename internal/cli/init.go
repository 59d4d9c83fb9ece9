package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gradebook/internal/config"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and the data file",
		Long: "Write config.yaml to the configuration directory if it is missing and\n" +
			"create an empty data file with the four sections if none exists.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	written, err := config.WriteDefault(a.configDir, a.cfg.DataFile)
	if err != nil {
		return sysError(err)
	}
	if written {
		a.logger.Info("wrote default config", "config_dir", a.configDir)
	}

	_, err = a.records.Load()
	switch {
	case err == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "Data file already present: %s\n", a.cfg.DataFile)
		return nil
	case errors.Is(err, types.ErrContainerNotFound):
		if err := a.records.Save(types.EmptyDataset()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created data file: %s\n", a.cfg.DataFile)
		return nil
	default:
		// Never overwrite a file that exists but cannot be read.
		return sysError(err)
	}
}
