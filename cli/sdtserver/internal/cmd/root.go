// Package cmd implements the CLI commands for an sdt credential server.
package cmd

import (
	"github.com/sdt-sys/sdt-go/cli"
)

// RootCmd represents the base "sdtserver" command when called without any subcommands.
var RootCmd = cli.NewRootCommand("sdtserver",
	"Selective-disclosure credential server",
	`sdtserver issues selective-disclosure credentials and extends
their mutation chains. It also answers selection, proof, verification
and disclosure requests for credentials sent by its callers.`)
