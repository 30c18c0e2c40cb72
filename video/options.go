package video

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/toumei/toumei/fallback"
	"github.com/toumei/toumei/fingerprint"
	"github.com/toumei/toumei/network"
)

// Options are shared by the checker, fetcher and thumbnailer.
type Options struct {
	// Client performs every outbound call. Its redirect policy caps probes.
	Client  *http.Client
	Headers *fingerprint.Synthesizer

	Embed          []fallback.Candidate
	Oembed         []fallback.Candidate
	Thumbnail      []fallback.Candidate
	ThumbnailHosts []string

	ProbeTimeout     time.Duration
	MetadataTimeout  time.Duration
	ThumbnailTimeout time.Duration

	// Innertube adds the player API after the oEmbed chain.
	Innertube bool
}

func (o Options) client() *http.Client {
	if o.Client == nil {
		return network.NewClient(network.NewTransport(network.Options{}), 5)
	}
	return o.Client
}

// StatusError is an upstream answer outside 2xx.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func do(ctx context.Context, client *http.Client, method, target string, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header = headers

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return resp, nil
}

// probe issues a HEAD request and succeeds on any 2xx.
func probe(client *http.Client) fallback.Attempt[string] {
	return func(ctx context.Context, target string, headers http.Header) (string, error) {
		resp, err := do(ctx, client, http.MethodHead, target, headers)
		if err != nil {
			return "", err
		}
		resp.Body.Close()
		return target, nil
	}
}
