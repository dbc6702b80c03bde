package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/sdt-sys/sdt-go/application/server"
	"github.com/sdt-sys/sdt-go/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = cli.NewRunCommand("sdt credential server", run)

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("pid", "p", false, "Write down the process id to sdt.pid in the current working directory")
}

func run(cmd *cobra.Command, args []string) error {
	confPath, encoding, err := cli.ConfigFile(cmd)
	if err != nil {
		return err
	}
	if pid, _ := cmd.Flags().GetBool("pid"); pid {
		writePID()
	}

	conf := &server.Config{}
	if err := conf.Load(confPath, encoding); err != nil {
		return err
	}
	serv, err := server.NewCredentialServer(conf)
	if err != nil {
		return err
	}

	// run the server until receiving an interrupt signal
	serv.Run(conf.Addresses)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	return serv.Shutdown()
}

func writePID() {
	pidf, err := os.OpenFile(path.Join(".", "sdt.pid"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		log.Printf("Cannot create sdt.pid: %v", err)
		return
	}
	defer pidf.Close()
	if _, err := fmt.Fprint(pidf, os.Getpid()); err != nil {
		log.Printf("Cannot write to pid file: %v", err)
	}
}
