package cmd

import (
	"fmt"

	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/spf13/cobra"
)

var proofCmd = &cobra.Command{
	Use:   "proof CREDENTIAL",
	Short: "Print the proof at the tip of a credential's chain.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCredential(cmd, args[0])
		if err != nil {
			return err
		}
		res, err := execute(cmd, protocol.NewProofCommand(c), nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Proof)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(proofCmd)
}
