package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// DefaultEncoding is the config file encoding used unless the
// --encoding flag says otherwise.
const DefaultEncoding = "toml"

var encodings = map[string]bool{"toml": true, "yaml": true}

func checkEncoding(cmd *cobra.Command, args []string) error {
	_, err := Encoding(cmd)
	return err
}

// Encoding returns the value of the command's --encoding flag.
func Encoding(cmd *cobra.Command) (string, error) {
	enc, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return "", err
	}
	if !encodings[enc] {
		return "", errors.Errorf("unsupported encoding %q", enc)
	}
	return enc, nil
}

// ConfigFile returns the path and encoding given by the run
// command's --config and --encoding flags.
func ConfigFile(cmd *cobra.Command) (string, string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", "", err
	}
	enc, err := Encoding(cmd)
	if err != nil {
		return "", "", err
	}
	return path, enc, nil
}
