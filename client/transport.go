package client

import (
	"bufio"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"time"
)

// Transport is the byte-level capability the exchange loop consumes.
//
// The core places no format requirements on a Transport beyond ordered,
// reliable byte delivery. Implementations own all I/O timeouts; the
// exchange loop itself carries no timers.
type Transport interface {
	// Connect establishes the byte stream to host:port.
	Connect(host string, port int) error

	// Write sends the full request bytes, returning the count written.
	Write(p []byte) (int, error)

	// ReadByte returns the next byte from the stream, or an error on
	// timeout or end-of-stream.
	ReadByte() (byte, error)

	// Close tears down the stream. Safe to call when not connected.
	Close() error
}

// tcpTransport is the default Transport: a plain or TLS TCP stream with
// per-operation deadlines and buffered single-byte reads.
type tcpTransport struct {
	connectTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	tlsConfig      *tls.Config

	conn   net.Conn
	reader *bufio.Reader
}

var _ Transport = (*tcpTransport)(nil)

func newTCPTransport(cfg *Config) *tcpTransport {
	return &tcpTransport{
		connectTimeout: cfg.connectTimeout,
		readTimeout:    cfg.readTimeout,
		writeTimeout:   cfg.writeTimeout,
		tlsConfig:      cfg.tlsConfig,
	}
}

func (t *tcpTransport) Connect(host string, port int) error {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))

	conn, err := net.DialTimeout("tcp", addr, t.connectTimeout)
	if err != nil {
		return fmt.Errorf("sip2: dial %s: %w", addr, err)
	}

	if t.tlsConfig != nil {
		tlsConn := tls.Client(conn, t.tlsConfig)
		_ = tlsConn.SetDeadline(time.Now().Add(t.connectTimeout))

		if err := tlsConn.Handshake(); err != nil {
			_ = conn.Close()

			return fmt.Errorf("sip2: TLS handshake with %s: %w", addr, err)
		}

		_ = tlsConn.SetDeadline(time.Time{})
		conn = tlsConn
	}

	t.conn = conn
	t.reader = bufio.NewReader(conn)

	return nil
}

func (t *tcpTransport) Write(p []byte) (int, error) {
	if t.conn == nil {
		return 0, ErrNotConnected
	}

	if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
		return 0, err
	}

	return t.conn.Write(p)
}

func (t *tcpTransport) ReadByte() (byte, error) {
	if t.conn == nil {
		return 0, ErrNotConnected
	}

	if err := t.conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
		return 0, err
	}

	return t.reader.ReadByte()
}

func (t *tcpTransport) Close() error {
	if t.conn == nil {
		return nil
	}

	conn := t.conn
	t.conn = nil
	t.reader = nil

	return conn.Close()
}

// NewTLSConfig creates a basic TLS configuration for the given server name.
// An empty serverName skips hostname verification, for lab setups with
// self-signed ACS certificates.
func NewTLSConfig(serverName string) *tls.Config {
	return &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: serverName == "",
		MinVersion:         tls.VersionTLS12,
	}
}

// NewTLSConfigWithCA creates a TLS configuration trusting the CA certificate
// at caCertPath in addition to (not instead of) hostname verification.
func NewTLSConfigWithCA(serverName, caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("sip2: read CA cert: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("sip2: failed to parse CA cert %s", caCertPath)
	}

	return &tls.Config{
		ServerName: serverName,
		RootCAs:    caCertPool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
