package cmd

import (
	"fmt"

	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify CREDENTIAL PROOF",
	Short: "Check a credential against an expected proof.",
	Long: `Recompute every commitment of the credential in the CREDENTIAL file
and check that its chain ends at PROOF.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCredential(cmd, args[0])
		if err != nil {
			return err
		}
		if _, err := execute(cmd, protocol.NewVerificationCommand(c, args[1]), nil); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Verified")
		return nil
	},
}

var discloseCmd = &cobra.Command{
	Use:   "disclose CREDENTIAL PROOF",
	Short: "Verify a credential and print the values it reveals.",
	Long: `Verify the credential in the CREDENTIAL file against PROOF and print
the revealed values of every version, keyed by label path.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCredential(cmd, args[0])
		if err != nil {
			return err
		}
		res, err := execute(cmd, protocol.NewDisclosureCommand(c, args[1]), nil)
		if err != nil {
			return err
		}
		return printJSON(cmd, res.Disclosed)
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(discloseCmd)
}
