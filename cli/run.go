package cli

import (
	"github.com/spf13/cobra"
)

// A runCommand is used to create an sdt executable's
// main functionality.
type runCommand struct {
	appName string
	runFunc func(cmd *cobra.Command, args []string) error
}

var _ cobraCommand = (*runCommand)(nil)

// NewRunCommand constructs a new run command for the given
// executable's appName and the runFunc implementing the main
// functionality. The command carries the --config and --encoding
// flags.
func NewRunCommand(appName string, runFunc func(cmd *cobra.Command, args []string) error) *cobra.Command {
	runCmd := &runCommand{
		appName: appName,
		runFunc: runFunc,
	}
	return runCmd.Build()
}

// Build constructs the cobra.Command according to the
// runCommand's settings.
func (runCmd *runCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   "run",
		Short: "Run a " + runCmd.appName + " instance.",
		Long: `Run a ` + runCmd.appName + ` instance.

This will look for config files with default names
in the current directory if not specified differently.
	`,
		Args:    cobra.NoArgs,
		PreRunE: checkEncoding,
		RunE:    runCmd.runFunc,
	}
	cmd.Flags().StringP("config", "c", "config."+DefaultEncoding, "Path to the configuration file")
	cmd.Flags().StringP("encoding", "e", DefaultEncoding, "Config file encoding (toml or yaml)")
	return &cmd
}
