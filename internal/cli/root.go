// Package cli implements the luxedir command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds the global flag values of one command tree.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	debug     bool
}

// NewRootCmd creates the top-level "luxedir" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "luxedir",
		Short: "A schema-driven directory of listings",
		Long: "luxedir keeps a directory of listings whose fields are defined at runtime.\n" +
			"Administrators shape the schema; visitors browse, filter and sort the listings.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&f.configDir, "config-dir", "", "configuration directory (env LUXEDIR_CONFIG_DIR)")
	root.PersistentFlags().StringVar(&f.dataDir, "data-dir", "", "data directory (env LUXEDIR_DATA_DIR)")
	root.PersistentFlags().BoolVar(&f.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&f.debug, "debug", false, "verbose logging to stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(f),
		newSchemaCmd(f),
		newRecordCmd(f),
		newBrowseCmd(f),
		newFacetsCmd(f),
		newImportCmd(f),
		newExportCmd(f),
		newUserCmd(f),
		newLoginCmd(f),
		newLogoutCmd(f),
		newWhoamiCmd(f),
		newSwitchRoleCmd(f),
		newConfigCmd(f),
		newServeCmd(f),
	)
	return root
}

// Execute runs the root command and exits with the code the error maps to.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "luxedir:", err)
		os.Exit(exitCode(err))
	}
}

// cliError carries the exit code a failed command should produce.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(err error) error { return &cliError{code: exitUserError, err: err} }

func sysError(err error) error { return &cliError{code: exitSysError, err: err} }

// exitCode maps err to a process exit code. Errors that did not pass
// through classify come from cobra's flag and argument parsing.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}

// classify wraps an error returned by the directory with its exit code.
// Errors of the directory's own taxonomy are the caller's fault; anything
// else is a system failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if types.IsValidation(err) || types.IsNotFound(err) || types.IsConflict(err) {
		return userError(err)
	}
	return sysError(err)
}
