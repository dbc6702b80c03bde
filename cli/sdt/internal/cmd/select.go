package cmd

import (
	"strings"

	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select CREDENTIAL QUERY",
	Short: "Redact everything a query does not select.",
	Long: `Redact every part of the credential in the CREDENTIAL file that the
QUERY does not select. The result verifies against the same proof as the
original. A QUERY starting with @ names a file holding the query.

Example:
  sdt select alice.json '{ personal { name } }'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCredential(cmd, args[0])
		if err != nil {
			return err
		}
		q, err := queryArg(cmd, args[1])
		if err != nil {
			return err
		}
		res, err := execute(cmd, protocol.NewSelectionCommand(c, q), nil)
		if err != nil {
			return err
		}
		return writeCredential(cmd, res.Credential)
	},
}

func queryArg(cmd *cobra.Command, arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	buf, err := readInput(cmd, arg[1:])
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func init() {
	RootCmd.AddCommand(selectCmd)
	addOutFlag(selectCmd)
}
