// Package testutil provides TLS certificates and clients for testing
// servers built on application.ServerBase.
package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"net/url"
	"os"
	"path"
	"testing"
	"time"
)

const (
	// PublicConnection is the TCP address servers listen on in tests.
	PublicConnection = "tcp://127.0.0.1:37373"
	// LocalConnection is the Unix socket servers listen on in tests.
	LocalConnection = "unix:///tmp/sdt-test.sock"
)

// CreateTLSCertForTest generates a self-signed certificate and key for
// 127.0.0.1, written as server.pem and server.key into a temporary
// directory. The returned function removes the directory.
func CreateTLSCertForTest(t *testing.T) (string, func()) {
	dir, err := os.MkdirTemp("", "sdt-tls")
	if err != nil {
		t.Fatal(err)
	}
	teardown := func() { os.RemoveAll(dir) }

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		teardown()
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{Organization: []string{"sdt test"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		teardown()
		t.Fatal(err)
	}
	keyDer, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		teardown()
		t.Fatal(err)
	}
	certOut := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyOut := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDer})
	if err := os.WriteFile(path.Join(dir, "server.pem"), certOut, 0600); err != nil {
		teardown()
		t.Fatal(err)
	}
	if err := os.WriteFile(path.Join(dir, "server.key"), keyOut, 0600); err != nil {
		teardown()
		t.Fatal(err)
	}
	return dir, teardown
}

type closeWriter interface {
	CloseWrite() error
}

func roundTrip(conn net.Conn, msg []byte) ([]byte, error) {
	defer conn.Close()
	if _, err := conn.Write(msg); err != nil {
		return nil, err
	}
	if cw, ok := conn.(closeWriter); ok {
		if err := cw.CloseWrite(); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(conn)
}

// NewTCPClient sends msg to the server at PublicConnection over TLS
// and returns the server's reply.
func NewTCPClient(msg []byte) ([]byte, error) {
	u, err := url.Parse(PublicConnection)
	if err != nil {
		return nil, err
	}
	conn, err := tls.Dial("tcp", u.Host, &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		return nil, err
	}
	return roundTrip(conn, msg)
}

// NewUnixClient sends msg to the server at LocalConnection and returns
// the server's reply.
func NewUnixClient(msg []byte) ([]byte, error) {
	u, err := url.Parse(LocalConnection)
	if err != nil {
		return nil, err
	}
	conn, err := net.Dial("unix", u.Path)
	if err != nil {
		return nil, err
	}
	return roundTrip(conn, msg)
}
