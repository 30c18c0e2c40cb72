package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"github.com/samber/lo"
	"github.com/toumei/toumei/fallback"
	"github.com/toumei/toumei/network"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrInvalidParams wraps every rejected thumbnail transform parameter.
var ErrInvalidParams = errors.New("invalid thumbnail parameters")

// Qualities are the thumbnail variants tried for each host, best first.
var Qualities = []string{
	"maxresdefault",
	"sddefault",
	"hqdefault",
	"mqdefault",
	"default",
}

// Dimensions lists the sizes a thumbnail may be resized to.
var Dimensions = [][2]int{
	{426, 240},
	{640, 360},
	{854, 480},
	{960, 540},
	{1024, 576},
	{1280, 720},
	{1600, 900},
	{1920, 1080},
}

const (
	FormatJPEG = "jpeg"
	FormatWebP = "webp"

	defaultWebPQuality = 85
	defaultJPEGQuality = 90
)

// Transform describes an optional re-encoding. The zero value passes the upstream JPEG through.
type Transform struct {
	Format  string
	Width   int
	Height  int
	Quality int
}

// Identity reports whether the upstream image can be served unchanged.
func (t Transform) Identity() bool {
	return t.Width == 0 && t.Quality == 0 && (t.Format == "" || t.Format == FormatJPEG)
}

// ParseTransform validates the format, resize and quality query parameters.
func ParseTransform(format, resize, quality string) (Transform, error) {
	var t Transform

	switch strings.ToLower(format) {
	case "":
	case "jpeg", "jpg":
		t.Format = FormatJPEG
	case "webp":
		t.Format = FormatWebP
	default:
		return t, fmt.Errorf("%w: format %q is not one of webp, jpeg", ErrInvalidParams, format)
	}

	if resize != "" {
		w, h, ok := strings.Cut(resize, ",")
		width, errW := strconv.Atoi(strings.TrimSpace(w))
		height, errH := strconv.Atoi(strings.TrimSpace(h))
		if !ok || errW != nil || errH != nil {
			return t, fmt.Errorf("%w: resize must be width,height", ErrInvalidParams)
		}
		if !lo.Contains(Dimensions, [2]int{width, height}) {
			return t, fmt.Errorf("%w: %dx%d is not an allowed size", ErrInvalidParams, width, height)
		}
		t.Width, t.Height = width, height
	}

	if quality != "" {
		q, err := strconv.Atoi(quality)
		if err != nil {
			return t, fmt.Errorf("%w: quality must be a number", ErrInvalidParams)
		}
		if q != 75 && q != 85 {
			return t, fmt.Errorf("%w: quality must be 75 or 85", ErrInvalidParams)
		}
		t.Quality = q
	}

	return t, nil
}

// Image is an encoded thumbnail ready to be written out.
type Image struct {
	ContentType string
	Data        []byte
	// Source is the upstream URL the image was taken from.
	Source string
}

// Thumbnailer downloads thumbnails over hosts and qualities and optionally re-encodes them.
type Thumbnailer struct {
	opts   Options
	scheme string
}

func NewThumbnailer(opts Options) *Thumbnailer {
	return &Thumbnailer{opts: opts, scheme: "https"}
}

// Candidates flattens hosts × qualities into one ordered list.
func (t *Thumbnailer) Candidates() []fallback.Candidate {
	candidates := make([]fallback.Candidate, 0, len(t.opts.ThumbnailHosts)*len(Qualities))
	for _, host := range t.opts.ThumbnailHosts {
		for _, q := range Qualities {
			candidates = append(candidates, fallback.Candidate{
				Name:     host + "/" + q,
				Template: fmt.Sprintf("%s://%s/vi/%s/%s.jpg", t.scheme, host, fallback.Placeholder, q),
			})
		}
	}
	return candidates
}

// Fetch returns the first thumbnail any candidate serves, transformed as requested.
func (t *Thumbnailer) Fetch(ctx context.Context, id string, transform Transform) (Image, error) {
	if !ValidID(id) {
		return Image{}, ErrInvalidID
	}

	client := t.opts.client()
	img, _, err := fallback.Try(ctx, fallback.Options{
		Class:   "thumbnail",
		Timeout: t.opts.ThumbnailTimeout,
		Headers: t.opts.Headers,
	}, t.Candidates(), id, func(ctx context.Context, target string, headers http.Header) (Image, error) {
		resp, err := do(ctx, client, http.MethodGet, target, headers)
		if err != nil {
			return Image{}, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return Image{}, &StatusError{Code: resp.StatusCode}
		}

		data, err := network.ReadBody(resp)
		if err != nil {
			return Image{}, err
		}

		if transform.Identity() {
			return Image{ContentType: "image/jpeg", Data: data, Source: target}, nil
		}

		encoded, contentType, err := Encode(data, transform)
		if err != nil {
			return Image{}, err
		}
		return Image{ContentType: contentType, Data: encoded, Source: target}, nil
	})

	return img, err
}

// Encode decodes src, scales it with CatmullRom when a size is set and re-encodes it.
func Encode(src []byte, t Transform) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, "", fmt.Errorf("decode thumbnail: %w", err)
	}

	if t.Width > 0 {
		dst := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	if t.Format == FormatWebP {
		quality := lo.Ternary(t.Quality > 0, t.Quality, defaultWebPQuality)
		if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, "", fmt.Errorf("encode webp: %w", err)
		}
		return buf.Bytes(), "image/webp", nil
	}

	quality := lo.Ternary(t.Quality > 0, t.Quality, defaultJPEGQuality)
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
