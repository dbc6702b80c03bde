package cli

import (
	"fmt"

	"github.com/sdt-sys/sdt-go/internal"
	"github.com/spf13/cobra"
)

// A versionCommand is used to display an sdt executable's
// version.
type versionCommand struct {
	appName string
}

var _ cobraCommand = (*versionCommand)(nil)

// NewVersionCommand constructs a new version command for the given
// executable's appName.
func NewVersionCommand(appName string) *cobra.Command {
	versCmd := &versionCommand{
		appName: appName,
	}
	return versCmd.Build()
}

// Build constructs the cobra.Command according to the
// versionCommand's settings.
func (versCmd *versionCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + versCmd.appName + ".",
		Long:  `Print the version number of ` + versCmd.appName + `.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if short, _ := cmd.Flags().GetBool("short"); short {
				fmt.Fprintln(cmd.OutOrStdout(), internal.Version)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), versCmd.appName+" v"+internal.Version)
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return &cmd
}
