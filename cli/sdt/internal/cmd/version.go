package cmd

import (
	"github.com/sdt-sys/sdt-go/cli"
)

var versionCmd = cli.NewVersionCommand("sdt")

func init() {
	RootCmd.AddCommand(versionCmd)
}
