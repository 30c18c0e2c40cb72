package video

import (
	"context"

	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/fallback"
	"github.com/toumei/toumei/log"
)

// Access is the outcome of an accessibility probe.
type Access struct {
	VideoID    string `json:"videoId"`
	Accessible bool   `json:"accessible"`
	// Endpoint is the hostname of the embed candidate that answered.
	Endpoint string `json:"endpoint,omitempty"`
	EmbedURL string `json:"embedUrl,omitempty"`
}

// EmbedURL returns the privacy embed URL with the default player parameters.
func EmbedURL(id string) string {
	return constant.EmbedBase + id + "?" + constant.EmbedParams
}

// Checker probes embed candidates to tell whether a video can be reached.
type Checker struct {
	opts Options
}

func NewChecker(opts Options) *Checker {
	return &Checker{opts: opts}
}

// Check returns ErrInvalidID for malformed IDs and otherwise never fails:
// an exhausted candidate list is reported as Accessible == false.
func (c *Checker) Check(ctx context.Context, id string) (Access, error) {
	if !ValidID(id) {
		return Access{}, ErrInvalidID
	}

	access := Access{VideoID: id}

	_, winner, err := fallback.Try(ctx, fallback.Options{
		Class:   "embed",
		Timeout: c.opts.ProbeTimeout,
		Headers: c.opts.Headers,
	}, c.opts.Embed, id, probe(c.opts.client()))
	if err != nil {
		log.WithFields(log.Fields{"id": id}).Infof("video not accessible: %v", err)
		return access, nil
	}

	access.Accessible = true
	access.Endpoint = winner.Host()
	access.EmbedURL = EmbedURL(id)
	return access, nil
}
