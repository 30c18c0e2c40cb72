// Package fallback walks an ordered list of upstream candidates until one succeeds.
//
// Attempts are strictly sequential: the next candidate is only contacted after
// the previous one failed, which keeps the load and the fingerprint exposure on
// upstream hosts minimal at the cost of worst-case latency.
package fallback

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/toumei/toumei/constant"
)

// Placeholder is replaced by the video ID when a candidate is expanded.
const Placeholder = "{id}"

// Candidate is one upstream URL template of a resource class.
type Candidate struct {
	// Name identifies the candidate in logs and metrics, the template's host by default.
	Name     string
	Template string
}

// URL expands the template for id.
func (c Candidate) URL(id string) string {
	return strings.ReplaceAll(c.Template, Placeholder, url.QueryEscape(id))
}

// Host returns the hostname the candidate points at.
func (c Candidate) Host() string {
	u, err := url.Parse(c.URL(constant.SampleVideoID))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (c Candidate) String() string {
	return c.Name
}

// ParseCandidates validates templates of the named class and keeps their order.
func ParseCandidates(class string, templates []string) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(templates))

	for i, template := range templates {
		template = strings.TrimSpace(template)
		if !strings.Contains(template, Placeholder) {
			return nil, fmt.Errorf("%s candidate %d: missing %s placeholder in %q", class, i, Placeholder, template)
		}

		c := Candidate{Template: template}
		u, err := url.Parse(c.URL(constant.SampleVideoID))
		if err != nil {
			return nil, fmt.Errorf("%s candidate %d: %w", class, i, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("%s candidate %d: unsupported scheme %q", class, i, u.Scheme)
		}
		if u.Hostname() == "" {
			return nil, fmt.Errorf("%s candidate %d: missing host in %q", class, i, template)
		}

		c.Name = u.Hostname()
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// Static wraps fixed URLs (no placeholder) as candidates.
func Static(urls ...string) []Candidate {
	candidates := make([]Candidate, 0, len(urls))
	for _, raw := range urls {
		name := raw
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			name = u.Hostname()
		}
		candidates = append(candidates, Candidate{Name: name, Template: raw})
	}
	return candidates
}
