package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/toumei/toumei/fallback"
	"github.com/toumei/toumei/fingerprint"
	"github.com/toumei/toumei/log"
	"github.com/toumei/toumei/network"
)

// Metadata describes a video. Duration is in whole seconds.
type Metadata struct {
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// PlaceholderTitle is used when only the thumbnail proves the video exists.
func PlaceholderTitle(id string) string {
	return fmt.Sprintf("YouTube動画 (%s)", id)
}

var thumbnailRegex = regexp.MustCompile(`/(?:hq|mq|sd)?default\.(jpg|webp)`)

// UpgradeThumbnail rewrites a low resolution thumbnail URL to its maxresdefault variant.
func UpgradeThumbnail(u string) string {
	return thumbnailRegex.ReplaceAllString(u, "/maxresdefault.${1}")
}

var innertubeCandidates = []fallback.Candidate{
	{Name: "innertube", Template: "https://www.youtube.com/watch?v={id}"},
}

// Fetcher resolves metadata through the oEmbed chain, the optional player API
// and finally a thumbnail probe.
type Fetcher struct {
	opts Options
}

func NewFetcher(opts Options) *Fetcher {
	return &Fetcher{opts: opts}
}

// Fetch returns mo.None when every source failed. The only error is ErrInvalidID.
func (f *Fetcher) Fetch(ctx context.Context, id string) (mo.Option[Metadata], error) {
	if !ValidID(id) {
		return mo.None[Metadata](), ErrInvalidID
	}

	client := f.opts.client()
	fields := log.Fields{"id": id}

	meta, _, err := fallback.Try(ctx, f.options("oembed", f.opts.MetadataTimeout), f.opts.Oembed, id, f.oembed(client))
	if err == nil {
		meta.Thumbnail = UpgradeThumbnail(meta.Thumbnail)
		return mo.Some(meta), nil
	}
	log.WithFields(fields).Debugf("oembed: %v", err)

	if f.opts.Innertube {
		meta, _, err = fallback.Try(ctx, f.options("innertube", f.opts.MetadataTimeout), innertubeCandidates, id, f.innertube(client))
		if err == nil {
			return mo.Some(meta), nil
		}
		log.WithFields(fields).Debugf("innertube: %v", err)
	}

	thumbnail, _, err := fallback.Try(ctx, f.options("thumbnail", f.opts.ProbeTimeout), f.opts.Thumbnail, id, probe(client))
	if err == nil {
		return mo.Some(Metadata{
			Title:     PlaceholderTitle(id),
			Thumbnail: thumbnail,
		}), nil
	}

	log.WithFields(fields).Infof("metadata unavailable: %v", err)
	return mo.None[Metadata](), nil
}

func (f *Fetcher) options(class string, timeout time.Duration) fallback.Options {
	return fallback.Options{
		Class:   class,
		Timeout: timeout,
		Headers: f.opts.Headers,
	}
}

type oembedResponse struct {
	Title        string  `json:"title"`
	AuthorName   string  `json:"author_name"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	Error        string  `json:"error"`
}

var errNoTitle = errors.New("response carries no title")

func (f *Fetcher) oembed(client *http.Client) fallback.Attempt[Metadata] {
	return func(ctx context.Context, target string, headers http.Header) (Metadata, error) {
		headers.Set("Accept", "application/json")

		resp, err := do(ctx, client, http.MethodGet, target, headers)
		if err != nil {
			return Metadata{}, err
		}

		body, err := network.ReadBody(resp)
		if err != nil {
			return Metadata{}, err
		}

		var parsed oembedResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return Metadata{}, fmt.Errorf("decode oembed: %w", err)
		}
		if parsed.Error != "" {
			return Metadata{}, fmt.Errorf("oembed: %s", parsed.Error)
		}
		if parsed.Title == "" {
			return Metadata{}, errNoTitle
		}

		return Metadata{
			Title:     parsed.Title,
			Author:    parsed.AuthorName,
			Thumbnail: parsed.ThumbnailURL,
			Duration:  int(math.Round(parsed.Duration)),
		}, nil
	}
}

func (f *Fetcher) innertube(client *http.Client) fallback.Attempt[Metadata] {
	return func(ctx context.Context, target string, headers http.Header) (Metadata, error) {
		next := client.Transport
		if next == nil {
			next = http.DefaultTransport
		}

		yt := youtube.Client{
			HTTPClient: &http.Client{
				Transport:     &fillHeaders{next: next, synth: f.opts.Headers, first: headers},
				CheckRedirect: client.CheckRedirect,
			},
		}

		v, err := yt.GetVideoContext(ctx, target)
		if err != nil {
			return Metadata{}, err
		}
		if v.Title == "" {
			return Metadata{}, errNoTitle
		}

		meta := Metadata{
			Title:    v.Title,
			Author:   v.Author,
			Duration: int(v.Duration.Seconds()),
		}
		if len(v.Thumbnails) > 0 {
			best := lo.MaxBy(v.Thumbnails, func(a, b youtube.Thumbnail) bool {
				return a.Width > b.Width
			})
			meta.Thumbnail = UpgradeThumbnail(best.URL)
		}

		return meta, nil
	}
}

// fillHeaders adds synthesized headers the player client did not set itself.
// The attempt's header set goes on the first request only; every later request
// of the same attempt gets a fresh set so no fingerprint token is sent twice.
// Accept-Encoding is left to the transport so bodies are decompressed transparently.
type fillHeaders struct {
	next  http.RoundTripper
	synth *fingerprint.Synthesizer

	mu    sync.Mutex
	first http.Header
}

func (f *fillHeaders) take() (http.Header, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if h := f.first; h != nil {
		f.first = nil
		return h, nil
	}

	synth := f.synth
	if synth == nil {
		synth = fingerprint.Default
	}
	return synth.Headers()
}

func (f *fillHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	headers, err := f.take()
	if err != nil {
		return nil, err
	}

	req = req.Clone(req.Context())
	for k, v := range headers {
		if k == "Accept-Encoding" || req.Header.Get(k) != "" {
			continue
		}
		req.Header[k] = v
	}
	return f.next.RoundTrip(req)
}
