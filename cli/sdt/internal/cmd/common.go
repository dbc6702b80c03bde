package cmd

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/application"
	"github.com/sdt-sys/sdt-go/merkletree"
	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/spf13/cobra"
)

// readInput reads the named file, or stdin if name is "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func loadCredential(cmd *cobra.Command, name string) (*protocol.Credential, error) {
	buf, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}
	c := new(protocol.Credential)
	if err := json.Unmarshal(buf, c); err != nil {
		return nil, errors.Wrapf(err, "cannot decode credential %s", name)
	}
	return c, nil
}

func loadObject(cmd *cobra.Command, name string) (merkletree.Object, error) {
	buf, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}
	claim, err := merkletree.ParseClaim(buf)
	if err != nil {
		return nil, err
	}
	obj, ok := claim.(merkletree.Object)
	if !ok {
		return nil, errors.Wrapf(merkletree.ErrClaimShape, "claim %s is not an object", name)
	}
	return obj, nil
}

func tlsConfig(cmd *cobra.Command) (*tls.Config, error) {
	insecure, _ := cmd.Flags().GetBool("insecure")
	conf := &tls.Config{InsecureSkipVerify: insecure}
	ca, _ := cmd.Flags().GetString("ca")
	if ca == "" {
		return conf, nil
	}
	pem, err := os.ReadFile(ca)
	if err != nil {
		return nil, err
	}
	conf.RootCAs = x509.NewCertPool()
	if !conf.RootCAs.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("no certificate found in %s", ca)
	}
	return conf, nil
}

// execute runs c locally, or sends it to the server given by --server.
// A failed Result is returned as an error.
func execute(cmd *cobra.Command, c *protocol.Command, opts *protocol.Options) (*protocol.Result, error) {
	var res *protocol.Result
	server, _ := cmd.Flags().GetString("server")
	if server == "" {
		if c.Kind == application.FetchKind {
			return nil, errors.New("fetch needs --server")
		}
		res = protocol.ExecuteWith(c, opts)
	} else {
		msg, err := application.MarshalRequest(c)
		if err != nil {
			return nil, err
		}
		conf, err := tlsConfig(cmd)
		if err != nil {
			return nil, err
		}
		reply, err := application.SendRequest(server, msg, conf)
		if err != nil {
			return nil, errors.Wrap(err, "Error while receiving response")
		}
		res = application.UnmarshalResponse(reply)
	}
	if res.Failed() {
		return nil, errors.Errorf("%s: %s", res.ErrorKind, res.Message)
	}
	return res, nil
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(buf))
	return nil
}

// writeCredential writes c to the file given by --out, or to the
// command's output.
func writeCredential(cmd *cobra.Command, c *protocol.Credential) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return printJSON(cmd, c)
	}
	return application.MarshalCredentialToFile(c, out)
}

func addOutFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Write the credential to this file instead of stdout")
}
