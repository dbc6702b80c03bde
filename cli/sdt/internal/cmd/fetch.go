package cmd

import (
	"github.com/sdt-sys/sdt-go/application"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch SUBJECT",
	Short: "Download the credential a server stores for SUBJECT.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := execute(cmd, application.NewFetchRequest(args[0]), nil)
		if err != nil {
			return err
		}
		return writeCredential(cmd, res.Credential)
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)
	addOutFlag(fetchCmd)
}
