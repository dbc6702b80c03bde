// Package cmd implements the CLI commands of the sdt tool.
package cmd

import (
	"github.com/sdt-sys/sdt-go/cli"
)

// RootCmd represents the base "sdt" command when called without any subcommands.
var RootCmd = cli.NewRootCommand("sdt",
	"Selective-disclosure credential tool",
	`sdt builds salted commitment trees over JSON claims, selects the
parts of a credential to reveal, and verifies what was revealed against
a proof.

Operations run locally unless --server names an sdt credential server
(unix:///path or tcp://host:port).`)

func init() {
	RootCmd.PersistentFlags().StringP("server", "s", "", "Address of the credential server")
	RootCmd.PersistentFlags().Bool("insecure", false, "Skip verification of the server's TLS certificate")
	RootCmd.PersistentFlags().String("ca", "", "PEM file of the CA that signed the server's TLS certificate")
}
