// Package fingerprint synthesizes browser-like outbound header sets so that upstream hosts
// cannot tie consecutive proxy requests to a single client identity.
package fingerprint

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/toumei/toumei/constant"
)

// TokenSize is the number of random bytes in a fingerprint token.
const TokenSize = 16

// Profile is one browser identity the synthesizer can present.
type Profile struct {
	UserAgent string
	Platform  string
}

// Profiles is the fixed set of identities a header set is drawn from.
// Every entry is Chrome 120 so the user agent agrees with the Sec-Ch-Ua hints
// below and with the ClientHello presented by network's TLS transport.
var Profiles = []Profile{
	{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Platform:  `"Windows"`,
	},
	{
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Platform:  `"macOS"`,
	},
	{
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Platform:  `"Linux"`,
	},
}

// ChromeMajor is the browser version every profile and client hint claims.
const ChromeMajor = "120"

// static headers shared by every synthesized set.
var static = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "ja-JP,ja;q=0.9,en;q=0.8",
	"Accept-Encoding":           "gzip, deflate, br",
	"Cache-Control":             "no-cache",
	"Pragma":                    "no-cache",
	"Dnt":                       "1",
	"Sec-Ch-Ua":                 `"Not_A Brand";v="8", "Chromium";v="` + ChromeMajor + `", "Google Chrome";v="` + ChromeMajor + `"`,
	"Sec-Ch-Ua-Mobile":          "?0",
	"Sec-Fetch-Dest":            "empty",
	"Sec-Fetch-Mode":            "cors",
	"Sec-Fetch-Site":            "cross-site",
	"Sec-Gpc":                   "1",
	"Upgrade-Insecure-Requests": "1",
}

// Synthesizer builds header sets from an explicit entropy source.
type Synthesizer struct {
	mu  sync.Mutex
	src io.Reader
}

// New returns a synthesizer reading randomness from src.
// Tests pass a deterministic reader; production uses crypto/rand via Default.
func New(src io.Reader) *Synthesizer {
	return &Synthesizer{src: src}
}

// Default draws from crypto/rand.
var Default = New(rand.Reader)

// Headers returns a fresh header set. No two calls share a fingerprint token
// as long as the source does not repeat itself.
func (s *Synthesizer) Headers() (http.Header, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := pick(s.src, len(Profiles))
	if err != nil {
		return nil, fmt.Errorf("pick profile: %w", err)
	}

	token, err := token(s.src)
	if err != nil {
		return nil, err
	}

	profile := Profiles[idx]
	h := make(http.Header, len(static)+3)
	for k, v := range static {
		h.Set(k, v)
	}
	h.Set(constant.HeaderUserAgent, profile.UserAgent)
	h.Set("Sec-Ch-Ua-Platform", profile.Platform)
	h.Set(constant.HeaderSessionID, token)

	return h, nil
}

// Apply overwrites every header of dst that the synthesized set defines.
func (s *Synthesizer) Apply(dst http.Header) error {
	h, err := s.Headers()
	if err != nil {
		return err
	}

	for k, v := range h {
		dst[k] = v
	}
	return nil
}

// Token returns a standalone fingerprint token from crypto/rand.
func Token() (string, error) {
	return token(rand.Reader)
}

func token(src io.Reader) (string, error) {
	buf := make([]byte, TokenSize)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// pick returns a uniform index in [0, n) using rejection sampling over single bytes.
func pick(src io.Reader, n int) (int, error) {
	if n <= 0 || n > 256 {
		return 0, errors.New("profile count out of range")
	}

	limit := 256 - 256%n
	var b [1]byte
	for {
		if _, err := io.ReadFull(src, b[:]); err != nil {
			return 0, err
		}
		if int(b[0]) < limit {
			return int(b[0]) % n, nil
		}
	}
}
