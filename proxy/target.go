package proxy

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var tokenRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Target maps a path token to an upstream origin.
type Target struct {
	Token    string
	Upstream *url.URL
}

// Origin returns scheme://host of the upstream.
func (t Target) Origin() string {
	return t.Upstream.Scheme + "://" + t.Upstream.Host
}

func (t Target) String() string {
	return t.Token + "=" + t.Upstream.String()
}

// ParseTargets parses "token=url" entries.
func ParseTargets(entries []string) ([]Target, error) {
	targets := make([]Target, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		token, raw, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			return nil, fmt.Errorf("proxy target %q: expected token=url", entry)
		}

		token = strings.ToLower(strings.TrimSpace(token))
		if !tokenRegex.MatchString(token) {
			return nil, fmt.Errorf("proxy target %q: invalid token %q", entry, token)
		}
		if _, dup := seen[token]; dup {
			return nil, fmt.Errorf("proxy target %q: duplicate token %q", entry, token)
		}

		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("proxy target %q: %w", entry, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("proxy target %q: unsupported scheme %q", entry, u.Scheme)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("proxy target %q: missing host", entry)
		}
		u.Path = strings.TrimSuffix(u.Path, "/")

		seen[token] = struct{}{}
		targets = append(targets, Target{Token: token, Upstream: u})
	}

	return targets, nil
}
