// Executable sdt credential server. See README for
// usage instructions.
package main

import (
	"github.com/sdt-sys/sdt-go/cli"
	"github.com/sdt-sys/sdt-go/cli/sdtserver/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
