package application

import (
	"crypto/tls"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// DialTimeout bounds connecting to a server.
var DialTimeout = 5 * time.Second

type closeWriter interface {
	CloseWrite() error
}

// SendRequest sends msg to the server listening at address and returns
// the server's reply. The address is formatted as a ServerAddress, and
// tcp connections use TLS with the given configuration.
func SendRequest(address string, msg []byte, tlsConfig *tls.Config) ([]byte, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, err
	}
	dialer := &net.Dialer{Timeout: DialTimeout}
	var conn net.Conn
	switch u.Scheme {
	case "tcp":
		conn, err = tls.DialWithDialer(dialer, "tcp", u.Host, tlsConfig)
	case "unix":
		conn, err = dialer.Dial("unix", u.Path)
	default:
		return nil, errors.Errorf("unknown network type %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if _, err := conn.Write(msg); err != nil {
		return nil, err
	}
	// the server reads until EOF
	if cw, ok := conn.(closeWriter); ok {
		if err := cw.CloseWrite(); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(conn)
}
