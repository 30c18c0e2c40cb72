package network

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// MaxBodySize caps bodies read into memory by ReadBody.
const MaxBodySize = 2 << 20

// DecodeBody wraps resp.Body with a decoder matching its Content-Encoding.
// Synthesized headers advertise gzip, deflate and br explicitly, which
// disables the transport's transparent decompression.
func DecodeBody(resp *http.Response) (io.ReadCloser, error) {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))

	switch encoding {
	case "", "identity":
		return resp.Body, nil
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		return &decoded{Reader: r, closers: []io.Closer{r, resp.Body}}, nil
	case "deflate":
		r, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("deflate body: %w", err)
		}
		return &decoded{Reader: r, closers: []io.Closer{r, resp.Body}}, nil
	case "br":
		return &decoded{Reader: brotli.NewReader(resp.Body), closers: []io.Closer{resp.Body}}, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

// ReadBody decodes and reads at most MaxBodySize bytes of resp.Body, closing it.
func ReadBody(resp *http.Response) ([]byte, error) {
	body, err := DecodeBody(resp)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(io.LimitReader(body, MaxBodySize))
}

type decoded struct {
	io.Reader
	closers []io.Closer
}

func (d *decoded) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
