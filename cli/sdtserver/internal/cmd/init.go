package cmd

import (
	"path"

	"github.com/sdt-sys/sdt-go/application"
	"github.com/sdt-sys/sdt-go/application/server"
	"github.com/sdt-sys/sdt-go/cli"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = cli.NewInitCommand("sdt credential server", mkConfig)

func mkConfig(cmd *cobra.Command, args []string) error {
	dir := cmd.Flag("dir").Value.String()
	encoding, err := cli.Encoding(cmd)
	if err != nil {
		return err
	}
	file := path.Join(dir, "config."+encoding)

	addrs := []*server.Address{
		{
			ServerAddress: application.ServerAddress{
				Address: "unix:///tmp/sdt.sock",
			},
			AllowIssuance: true,
		},
		{
			ServerAddress: application.ServerAddress{
				Address:     "tcp://0.0.0.0:3000",
				TLSCertPath: "server.pem",
				TLSKeyPath:  "server.key",
			},
		},
	}
	logger := &application.LoggerConfig{
		EnableStacktrace: true,
		Environment:      "development",
		Path:             "sdtserver.log",
	}
	storage := &server.StorageConfig{
		Backend:   "leveldb",
		Path:      "credentials.db",
		CacheSize: 1024,
	}
	builder := &server.BuilderConfig{
		HashAlg: uint64(hasher.Default),
	}

	conf := server.NewConfig(file, encoding, addrs, logger, storage, builder)
	conf.MetricsAddress = "127.0.0.1:9100"
	if err := conf.Save(); err != nil {
		return err
	}
	cmd.Println("Wrote " + file)
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}
