// Package cli implements the gradebook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gradebook/internal/auth"
	"github.com/mesh-intelligence/gradebook/internal/config"
	"github.com/mesh-intelligence/gradebook/internal/logging"
	"github.com/mesh-intelligence/gradebook/internal/paths"
	"github.com/mesh-intelligence/gradebook/pkg/gradebook"
	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataFile  string
	jsonMode  bool
}

// app is the state shared by one command invocation. PersistentPreRunE
// fills it before any subcommand runs.
type app struct {
	flags rootFlags

	configDir string
	cfg       types.Config
	logger    *slog.Logger
	logCloser io.Closer
	records   types.RecordStore
	auth      *auth.Authenticator
}

func newApp() *app {
	return &app{
		logger:    slog.New(slog.DiscardHandler),
		logCloser: io.NopCloser(nil),
	}
}

// NewRootCmd creates the top-level "gradebook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gradebook",
		Short: "School records for teachers and parents",
		Long: "Gradebook keeps children, grades, homework and announcements in one\n" +
			"data file. Teachers see every record; parents see their own children.",
		Version:           gradebook.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataFile, "data-file", "", "data file (default: $(CWD)/"+paths.DefaultDataFileName+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(a.versionCmd())
	root.AddCommand(a.initCmd())
	root.AddCommand(a.loginCmd())
	root.AddCommand(a.logoutCmd())
	root.AddCommand(a.whoamiCmd())
	root.AddCommand(a.childrenCmd())
	root.AddCommand(a.gradesCmd())
	root.AddCommand(a.homeworkCmd())
	root.AddCommand(a.announcementsCmd())

	return root
}

// setup resolves directories, loads config.yaml and builds the logger,
// the record store and the authenticator.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	cfg, err := config.Load(configDir)
	if err != nil {
		return sysError(err)
	}
	dataFile, err := paths.ResolveDataFile(a.flags.dataFile, cfg.DataFile)
	if err != nil {
		return sysError(fmt.Errorf("resolve data file: %w", err))
	}
	cfg.DataFile = dataFile
	a.cfg = cfg

	logger, closer, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return sysError(fmt.Errorf("configure logging: %w", err))
	}
	a.logger, a.logCloser = logger, closer

	a.records, err = gradebook.Open(cfg, logger)
	if err != nil {
		return sysError(fmt.Errorf("open records: %w", err))
	}

	provider, err := auth.NewConfigProvider(cfg.Users)
	if err != nil {
		return sysError(err)
	}
	a.auth = auth.NewAuthenticator(provider, logger)

	a.logger.Debug("configured", "config_dir", configDir, "data_file", cfg.DataFile, "backend", cfg.Backend)
	return nil
}

func (a *app) close() {
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	a := newApp()
	err := a.rootCmd().Execute()
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitErr carries an explicit exit code.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

// sysError marks err as a system failure (exit 2).
func sysError(err error) error {
	return &exitErr{code: exitSysError, err: err}
}

// exitCode maps an error to the process exit status. Storage failures and
// errors marked with sysError are system errors; everything else,
// including authentication and validation, is a user error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	if types.IsStorageWriteError(err) || types.IsLoadError(err) {
		return exitSysError
	}
	return exitUserError
}
