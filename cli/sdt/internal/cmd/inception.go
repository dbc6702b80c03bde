package cmd

import (
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/spf13/cobra"
)

var inceptionCmd = &cobra.Command{
	Use:   "inception SUBJECT CLAIM",
	Short: "Create a credential for SUBJECT from a JSON claim file.",
	Long: `Create a credential for SUBJECT from the JSON object in the CLAIM
file ("-" reads stdin). Every value is committed to with a fresh salt.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		claim, err := loadObject(cmd, args[1])
		if err != nil {
			return err
		}
		opts, err := builderOptions(cmd)
		if err != nil {
			return err
		}
		c := protocol.NewInceptionCommand(args[0], claim)
		// servers build with their configured algorithm unless asked otherwise
		c.Payload.(*protocol.InceptionCommand).HashAlg = opts.HashAlg
		res, err := execute(cmd, c, opts)
		if err != nil {
			return err
		}
		return writeCredential(cmd, res.Credential)
	},
}

func builderOptions(cmd *cobra.Command) (*protocol.Options, error) {
	opts := new(protocol.Options)
	if name, _ := cmd.Flags().GetString("hash-alg"); name != "" {
		id, err := hasher.Lookup(name)
		if err != nil {
			return nil, err
		}
		opts.HashAlg = id
	}
	opts.Workers, _ = cmd.Flags().GetInt("workers")
	return opts, nil
}

func init() {
	RootCmd.AddCommand(inceptionCmd)
	addOutFlag(inceptionCmd)
	inceptionCmd.Flags().String("hash-alg", "", "Hash function of the credential: sha2-256, sha3-256, blake3 or a multicodec code")
	inceptionCmd.Flags().IntP("workers", "w", 0, "Number of concurrent hashing workers, one per CPU if zero")
}
