package email_test

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"io"
	"math/big"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/require"
)

const (
	testUser     = "relay@example.com"
	testPassword = "secret"
)

type receivedMail struct {
	From string
	To   []string
	Data []byte
}

// relay is an in-process SMTP server accepting PLAIN auth. By default it
// offers STARTTLS with a throwaway certificate and only advertises AUTH once
// the connection is encrypted.
type relay struct {
	mu       sync.Mutex
	messages []receivedMail
	logins   int

	host string
	port int
}

type relayOption func(*smtp.Server)

// withoutTLS turns the relay into a plaintext-only server that still
// accepts credentials.
func withoutTLS() relayOption {
	return func(s *smtp.Server) {
		s.TLSConfig = nil
		s.AllowInsecureAuth = true
	}
}

func startRelay(t *testing.T, opts ...relayOption) *relay {
	t.Helper()

	r := &relay{}
	s := smtp.NewServer(r)
	s.Domain = "localhost"
	s.TLSConfig = &tls.Config{Certificates: []tls.Certificate{selfSigned(t)}}
	for _, opt := range opts {
		opt(s)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	r.host = host
	r.port, err = strconv.Atoi(port)
	require.NoError(t, err)

	go func() { _ = s.Serve(ln) }()
	t.Cleanup(func() { _ = s.Close() })

	return r
}

func selfSigned(t *testing.T) tls.Certificate {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "relay.test"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

func (r *relay) Messages() []receivedMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]receivedMail(nil), r.messages...)
}

func (r *relay) Logins() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.logins
}

func (r *relay) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &relaySession{relay: r}, nil
}

type relaySession struct {
	relay  *relay
	authed bool
	from   string
	to     []string
}

func (s *relaySession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *relaySession) Auth(mech string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(identity, username, password string) error {
		if username != testUser || password != testPassword {
			return errors.New("invalid credentials")
		}
		s.authed = true
		s.relay.mu.Lock()
		s.relay.logins++
		s.relay.mu.Unlock()
		return nil
	}), nil
}

func (s *relaySession) Mail(from string, _ *smtp.MailOptions) error {
	if !s.authed {
		return smtp.ErrAuthRequired
	}
	s.from = from
	return nil
}

func (s *relaySession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *relaySession) Data(r io.Reader) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	s.relay.mu.Lock()
	s.relay.messages = append(s.relay.messages, receivedMail{From: s.from, To: s.to, Data: buf.Bytes()})
	s.relay.mu.Unlock()
	return nil
}

func (s *relaySession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *relaySession) Logout() error { return nil }
