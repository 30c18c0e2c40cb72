package network

// Chrome TLS fingerprint emulation via refraction-networking/utls.
//
// HTTPS requests go through an HTTP/2 transport first, since the ClientHello
// advertises h2 like a real browser. When the server settles on http/1.1 the
// dial is aborted and the request is replayed on an HTTP/1.1 transport whose
// ClientHello only advertises http/1.1.

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

var errNotH2 = errors.New("server did not negotiate h2")

type fingerprintTransport struct {
	h1 *http.Transport
	h2 *http2.Transport

	// hosts that answered with http/1.1, so later requests skip the h2 attempt
	h1Hosts sync.Map
}

func newFingerprintTransport(timeout time.Duration) *fingerprintTransport {
	dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}

	h1 := newStdTransport(timeout)
	h1.ForceAttemptHTTP2 = false
	h1.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	h1.DialTLSContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLS(ctx, dialer, network, addr, []string{"http/1.1"})
	}

	h2 := &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return dialTLS(ctx, dialer, network, addr, nil)
		},
		ReadIdleTimeout: 30 * time.Second,
		PingTimeout:     15 * time.Second,
	}

	return &fingerprintTransport{h1: h1, h2: h2}
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}
	if _, ok := t.h1Hosts.Load(req.URL.Host); ok {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if err == nil {
		return resp, nil
	}
	if !errors.Is(err, errNotH2) {
		return nil, err
	}
	t.h1Hosts.Store(req.URL.Host, struct{}{})

	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, err
		}
		body, gerr := req.GetBody()
		if gerr != nil {
			return nil, err
		}
		req = req.Clone(req.Context())
		req.Body = body
	}

	return t.h1.RoundTrip(req)
}

// dialTLS opens a TCP connection and performs a Chrome 120 handshake.
// With alpn set, the ALPN extension is replaced so only those protocols are offered.
// Without it, a connection that did not negotiate h2 is rejected with errNotH2.
func dialTLS(ctx context.Context, dialer *net.Dialer, network, addr string, alpn []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	config := &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}

	var tlsConn *utls.UConn
	if alpn == nil {
		tlsConn = utls.UClient(conn, config, utls.HelloChrome_120)
	} else {
		spec, err := utls.UTLSIdToSpec(utls.HelloChrome_120)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("load chrome spec: %w", err)
		}
		for _, ext := range spec.Extensions {
			if a, ok := ext.(*utls.ALPNExtension); ok {
				a.AlpnProtocols = alpn
			}
		}

		tlsConn = utls.UClient(conn, config, utls.HelloCustom)
		if err := tlsConn.ApplyPreset(&spec); err != nil {
			conn.Close()
			return nil, fmt.Errorf("apply chrome spec: %w", err)
		}
	}

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}
	_ = conn.SetDeadline(time.Time{})

	if alpn == nil && tlsConn.ConnectionState().NegotiatedProtocol != http2.NextProtoTLS {
		tlsConn.Close()
		return nil, errNotH2
	}

	return tlsConn, nil
}
