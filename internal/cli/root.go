package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "bench-fio",
	Short:   "Preflight checks for fio storage benchmarks",
	Version: version,
	Long: `bench-fio drives fio to benchmark files, block devices, directories and
Ceph rbd pools. Before a run is launched, the check command confirms that fio
is installed and compatible, that the targets exist and match their declared
type, and that write workloads were explicitly allowed with --destructive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// ReportedError wraps an error whose report was already written to stdout
type ReportedError struct {
	Err error
}

// Error returns the wrapped error message
func (e *ReportedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error
func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// Execute runs the root command. This is called by main.main(); the caller
// decides the exit status from the returned error.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	// Add subcommands to root command
	RootCmd.AddCommand(newCheckCmd())
	RootCmd.AddCommand(versionCmd)
}
