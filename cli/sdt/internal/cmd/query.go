package cmd

import (
	"fmt"

	"github.com/sdt-sys/sdt-go/query"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query QUERY",
	Short: "Parse a query and print the paths it selects.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := queryArg(cmd, args[0])
		if err != nil {
			return err
		}
		sel, err := query.Parse(q)
		if err != nil {
			return err
		}
		for _, p := range sel.Paths() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(queryCmd)
}
