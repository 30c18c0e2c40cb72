// Package network provides the outbound HTTP stack shared by the proxy and the fallback resolver.
package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// Options tune an outbound transport.
type Options struct {
	// Fingerprint presents a Chrome ClientHello on HTTPS connections.
	Fingerprint bool
	// Timeout bounds dial, TLS handshake and the wait for response headers.
	Timeout time.Duration
}

// Client is the shared client for CLI housekeeping requests (release checks and such).
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: NewTransport(Options{Fingerprint: false, Timeout: 30 * time.Second}),
}

// NewTransport builds a round tripper according to opts.
func NewTransport(opts Options) http.RoundTripper {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	var rt http.RoundTripper
	if opts.Fingerprint {
		rt = newFingerprintTransport(opts.Timeout)
	} else {
		rt = newStdTransport(opts.Timeout)
	}

	return &headerTimeout{next: rt, timeout: opts.Timeout}
}

// NewClient returns a client following at most maxRedirects redirects.
// The client has no overall timeout; callers bound each attempt with a context.
func NewClient(rt http.RoundTripper, maxRedirects int) *http.Client {
	return &http.Client{
		Transport:     rt,
		CheckRedirect: LimitRedirects(maxRedirects),
	}
}

// LimitRedirects returns a CheckRedirect policy that stops after n hops.
func LimitRedirects(n int) func(*http.Request, []*http.Request) error {
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) > n {
			return fmt.Errorf("stopped after %d redirects", n)
		}
		return nil
	}
}

func newStdTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.IdleConnTimeout = 90 * time.Second
	t.TLSHandshakeTimeout = timeout
	t.ExpectContinueTimeout = time.Second
	t.ForceAttemptHTTP2 = true
	_ = http2.ConfigureTransport(t)
	return t
}

var errHeaderTimeout = errors.New("timeout awaiting response headers")

// headerTimeout cancels a request whose response headers do not arrive in time.
// Unlike http.Client.Timeout it leaves streaming bodies unbounded.
type headerTimeout struct {
	next    http.RoundTripper
	timeout time.Duration
}

func (h *headerTimeout) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithCancel(req.Context())
	timer := time.AfterFunc(h.timeout, cancel)

	resp, err := h.next.RoundTrip(req.WithContext(ctx))
	if !timer.Stop() {
		if resp != nil {
			resp.Body.Close()
		}
		cancel()
		return nil, errHeaderTimeout
	}
	if err != nil {
		cancel()
		return nil, err
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
