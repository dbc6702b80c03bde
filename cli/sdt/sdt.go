// Executable sdt issues, selects and verifies selective-disclosure
// credentials, either locally or through an sdt credential server.
package main

import (
	"github.com/sdt-sys/sdt-go/cli"
	"github.com/sdt-sys/sdt-go/cli/sdt/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
