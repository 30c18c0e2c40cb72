// Package proxy forwards client requests to a fixed upstream with identity
// headers removed and a synthesized browser fingerprint in their place.
package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/fingerprint"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/metrics"
	"github.com/toumei/toumei/network"
)

// Options configure a Forwarder.
type Options struct {
	// Transport defaults to network.NewTransport with Timeout and Fingerprint.
	Transport   http.RoundTripper
	Headers     *fingerprint.Synthesizer
	Timeout     time.Duration
	Fingerprint bool
}

// Forwarder is an http.Handler proxying everything below prefix to target.
type Forwarder struct {
	prefix  string
	target  Target
	headers *fingerprint.Synthesizer
	reverse *httputil.ReverseProxy
}

type headersKey struct{}

// NewForwarder returns a forwarder that maps prefix + path to target + path.
func NewForwarder(prefix string, target Target, opts Options) *Forwarder {
	if opts.Headers == nil {
		opts.Headers = fingerprint.Default
	}
	if opts.Transport == nil {
		opts.Transport = network.NewTransport(network.Options{
			Fingerprint: opts.Fingerprint,
			Timeout:     opts.Timeout,
		})
	}

	f := &Forwarder{
		prefix:  strings.TrimSuffix(prefix, "/"),
		target:  target,
		headers: opts.Headers,
	}

	f.reverse = &httputil.ReverseProxy{
		Rewrite:        f.rewrite,
		Transport:      opts.Transport,
		ModifyResponse: f.modifyResponse,
		ErrorHandler:   f.fail,
		FlushInterval:  -1,
	}

	return f
}

// Target returns the upstream this forwarder serves.
func (f *Forwarder) Target() Target {
	return f.target
}

func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	synthesized, err := f.headers.Headers()
	if err != nil {
		f.fail(w, r, err)
		return
	}

	ctx := context.WithValue(r.Context(), headersKey{}, synthesized)
	f.reverse.ServeHTTP(w, r.WithContext(ctx))
}

// StripPrefix removes prefix from path; the result always starts with "/".
func StripPrefix(path, prefix string) string {
	rest, ok := strings.CutPrefix(path, prefix)
	if !ok {
		rest = path
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return rest
}

func (f *Forwarder) rewrite(pr *httputil.ProxyRequest) {
	out := pr.Out

	out.URL.Path = StripPrefix(out.URL.Path, f.prefix)
	if out.URL.RawPath != "" {
		out.URL.RawPath = StripPrefix(out.URL.RawPath, f.prefix)
	}
	pr.SetURL(f.target.Upstream)

	StripRequest(out.Header)

	if synthesized, ok := out.Context().Value(headersKey{}).(http.Header); ok {
		for k, v := range synthesized {
			out.Header[k] = v
		}
	}

	origin := f.target.Origin()
	out.Header.Set("Origin", origin)
	out.Header.Set("Referer", origin+"/")
}

func (f *Forwarder) modifyResponse(resp *http.Response) error {
	StripResponse(resp.Header)
	metrics.ProxyRequests.WithLabelValues(f.target.Token, metrics.OutcomeSuccess).Inc()
	return nil
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (f *Forwarder) fail(w http.ResponseWriter, r *http.Request, err error) {
	metrics.ProxyRequests.WithLabelValues(f.target.Token, metrics.OutcomeFailure).Inc()
	log.WithFields(log.Fields{
		"token": f.target.Token,
		"path":  r.URL.Path,
	}).Errorf("proxy: %v", err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: constant.MsgProxyFailed,
		Code:  constant.ProxyErrorCode,
	})
}
