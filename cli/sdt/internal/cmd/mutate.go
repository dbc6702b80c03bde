package cmd

import (
	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/spf13/cobra"
)

var mutateCmd = &cobra.Command{
	Use:   "mutate CREDENTIAL CLAIM",
	Short: "Append a new version built from CLAIM to a credential.",
	Long: `Append a new version to the mutation chain of the credential in the
CREDENTIAL file. The new version commits to the JSON object in the CLAIM
file and is linked to the current tip.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCredential(cmd, args[0])
		if err != nil {
			return err
		}
		claim, err := loadObject(cmd, args[1])
		if err != nil {
			return err
		}
		workers, _ := cmd.Flags().GetInt("workers")
		res, err := execute(cmd, protocol.NewMutationCommand(c, claim),
			&protocol.Options{Workers: workers})
		if err != nil {
			return err
		}
		return writeCredential(cmd, res.Credential)
	},
}

func init() {
	RootCmd.AddCommand(mutateCmd)
	addOutFlag(mutateCmd)
	mutateCmd.Flags().IntP("workers", "w", 0, "Number of concurrent hashing workers, one per CPU if zero")
}
