package application

import (
	"bytes"
	"crypto/tls"
	"io"
	"net"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sdt-sys/sdt-go/protocol"
)

// MaxRequestSize is the largest command a server reads from a connection.
const MaxRequestSize = 1 << 20

// A ServerAddress describes a server's connection.
// It supports two types of connections: a TCP connection ("tcp")
// and a Unix socket connection ("unix").
//
// Additionally, TCP connections must use TLS for added security,
// and each is required to specify a TLS certificate and corresponding
// private key.
type ServerAddress struct {
	// Address is formatted as a url: scheme://address.
	Address string `toml:"address" yaml:"address"`
	// TLSCertPath is a path to the server's TLS Certificate,
	// which has to be set if the connection is TCP.
	TLSCertPath string `toml:"cert,omitempty" yaml:"cert,omitempty"`
	// TLSKeyPath is a path to the server's TLS private key,
	// which has to be set if the connection is TCP.
	TLSKeyPath string `toml:"key,omitempty" yaml:"key,omitempty"`
}

// A ServerBase represents the base features needed to implement
// a credential server. It handles requests/results and their
// encoding/decoding, and supports concurrent handling of requests.
type ServerBase struct {
	Verb           string
	acceptableReqs map[*ServerAddress]map[protocol.CommandKind]bool

	logger *Logger
	sync.RWMutex

	stop          chan struct{}
	waitStop      sync.WaitGroup
	waitCloseConn sync.WaitGroup

	configFilePath string
	configEncoding string
	reloadChan     chan os.Signal
}

// NewServerBase creates a new generic server base.
func NewServerBase(conf *CommonConfig, listenVerb string,
	perms map[*ServerAddress]map[protocol.CommandKind]bool) *ServerBase {
	sb := new(ServerBase)
	sb.Verb = listenVerb
	sb.acceptableReqs = perms
	sb.logger = NewLogger(conf.Logger)
	sb.stop = make(chan struct{})
	sb.configFilePath = conf.Path
	sb.configEncoding = conf.Encoding
	sb.reloadChan = make(chan os.Signal, 1)
	signal.Notify(sb.reloadChan, syscall.SIGUSR2)
	return sb
}

// IsWrite reports whether a command changes the server's state.
// Such commands are serialised against all others.
func IsWrite(kind protocol.CommandKind) bool {
	switch kind {
	case protocol.InceptionKind, protocol.MutationKind:
		return true
	}
	return false
}

// ListenAndHandle implements the main functionality of a server.
// It listens at the given server address with corresponding
// permissions and passes every decoded command to reqHandler.
func (sb *ServerBase) ListenAndHandle(addr *ServerAddress,
	reqHandler func(cmd *protocol.Command) *protocol.Result) {
	ln, tlsConfig := addr.resolveAndListen()
	sb.waitStop.Add(1)
	go func() {
		sb.logger.Info(sb.Verb, "address", addr.Address)
		sb.acceptRequests(addr, ln, tlsConfig, reqHandler)
		sb.waitStop.Done()
	}()
}

func (addr *ServerAddress) resolveAndListen() (ln net.Listener,
	tlsConfig *tls.Config) {
	u, err := url.Parse(addr.Address)
	if err != nil {
		panic(err)
	}
	switch u.Scheme {
	case "tcp":
		// force to use TLS
		cer, err := tls.LoadX509KeyPair(addr.TLSCertPath, addr.TLSKeyPath)
		if err != nil {
			panic(err)
		}
		tlsConfig = &tls.Config{Certificates: []tls.Certificate{cer}}
		tcpaddr, err := net.ResolveTCPAddr(u.Scheme, u.Host)
		if err != nil {
			panic(err)
		}
		ln, err = net.ListenTCP(u.Scheme, tcpaddr)
		if err != nil {
			panic(err)
		}
		return
	case "unix":
		unixaddr, err := net.ResolveUnixAddr(u.Scheme, u.Path)
		if err != nil {
			panic(err)
		}
		ln, err = net.ListenUnix(u.Scheme, unixaddr)
		if err != nil {
			panic(err)
		}
		return
	default:
		panic("Unknown network type")
	}
}

func (sb *ServerBase) acceptRequests(addr *ServerAddress, ln net.Listener,
	tlsConfig *tls.Config,
	handler func(cmd *protocol.Command) *protocol.Result) {
	defer ln.Close()
	go func() {
		<-sb.stop
		if l, ok := ln.(interface {
			SetDeadline(time.Time) error
		}); ok {
			l.SetDeadline(time.Now())
		}
	}()

	for {
		select {
		case <-sb.stop:
			sb.waitCloseConn.Wait()
			return
		default:
		}
		conn, err := ln.Accept()
		if err != nil {
			if opErr, ok := err.(*net.OpError); ok && opErr.Timeout() {
				continue
			}
			sb.logger.Error(err.Error())
			continue
		}
		if _, ok := ln.(*net.TCPListener); ok {
			conn = tls.Server(conn, tlsConfig)
		}
		sb.waitCloseConn.Add(1)
		go func() {
			sb.acceptClient(addr, conn, handler)
			sb.waitCloseConn.Done()
		}()
	}
}

// checkRequestType verifies that the server is allowed to handle
// the given command kind at the given address.
func (sb *ServerBase) checkRequestType(addr *ServerAddress,
	kind protocol.CommandKind) error {
	if !sb.acceptableReqs[addr][kind] {
		return protocol.ErrMalformedCommand
	}
	return nil
}

func (sb *ServerBase) acceptClient(addr *ServerAddress, conn net.Conn,
	handler func(cmd *protocol.Command) *protocol.Result) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	logger := sb.logger.With("request", uuid.New().String(),
		"address", remoteAddr(conn))

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, conn, MaxRequestSize); err != nil && err != io.EOF {
		logger.Error(err.Error())
		return
	}

	res := sb.handle(addr, buf.Bytes(), handler, logger)

	msg, e := MarshalResponse(res)
	if e != nil {
		panic(e)
	}
	if _, err := conn.Write(msg); err != nil {
		logger.Error(err.Error())
	}
}

func (sb *ServerBase) handle(addr *ServerAddress, msg []byte,
	handler func(cmd *protocol.Command) *protocol.Result,
	logger *Logger) *protocol.Result {
	cmd, err := UnmarshalRequest(msg)
	if err != nil {
		logger.Warn(err.Error())
		return protocol.NewErrorResult(err)
	}
	if err := sb.checkRequestType(addr, cmd.Kind); err != nil {
		logger.Error("Unacceptable command", "cmd", cmd.Kind)
		return protocol.NewErrorResult(err)
	}

	if IsWrite(cmd.Kind) {
		sb.Lock()
	} else {
		sb.RLock()
	}
	res := handler(cmd)
	if IsWrite(cmd.Kind) {
		sb.Unlock()
	} else {
		sb.RUnlock()
	}

	if res.Failed() {
		logger.Warn(res.Message, "cmd", cmd.Kind, "error_kind", res.ErrorKind)
	} else {
		logger.Debug("Handled command", "cmd", cmd.Kind)
	}
	return res
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// RunInBackground creates a new goroutine that calls function `f`.
// It automatically increments the counter `sync.WaitGroup` of the
// `ServerBase` and calls `Done` when the function execution is finished.
func (sb *ServerBase) RunInBackground(f func()) {
	sb.waitStop.Add(1)
	go func() {
		f()
		sb.waitStop.Done()
	}()
}

// HotReload implements hot-reloading by listening for SIGUSR2 signal.
func (sb *ServerBase) HotReload(f func()) {
	for {
		select {
		case <-sb.stop:
			return
		case <-sb.reloadChan:
			sb.Lock()
			f()
			sb.Unlock()
		}
	}
}

// Logger returns the server base's logger instance.
func (sb *ServerBase) Logger() *Logger {
	return sb.logger
}

// ConfigInfo returns the server base's config file path and encoding.
func (sb *ServerBase) ConfigInfo() (string, string) {
	return sb.configFilePath, sb.configEncoding
}

// Stop returns a channel closed on shutdown.
func (sb *ServerBase) Stop() <-chan struct{} {
	return sb.stop
}

// Shutdown closes all of the server's connections and shuts down the server.
func (sb *ServerBase) Shutdown() error {
	close(sb.stop)
	signal.Stop(sb.reloadChan)
	sb.waitStop.Wait()
	return nil
}
