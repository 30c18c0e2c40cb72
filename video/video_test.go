package video

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/fallback"
	"github.com/toumei/toumei/fingerprint"
	"github.com/toumei/toumei/network"
)

const rickroll = "dQw4w9WgXcQ"

type stub struct {
	*httptest.Server
	calls atomic.Int32
}

func newStub(handler http.HandlerFunc) *stub {
	s := &stub{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		handler(w, r)
	}))
	return s
}

func mustCandidates(class string, templates ...string) []fallback.Candidate {
	c, err := fallback.ParseCandidates(class, templates)
	if err != nil {
		panic(err)
	}
	return c
}

func testOptions() Options {
	return Options{
		Client:           network.NewClient(network.NewTransport(network.Options{Timeout: 2 * time.Second}), 5),
		ProbeTimeout:     2 * time.Second,
		MetadataTimeout:  2 * time.Second,
		ThumbnailTimeout: 2 * time.Second,
	}
}

func testJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestExtractID(t *testing.T) {
	Convey("Given the usual YouTube URL forms", t, func() {
		for _, raw := range []string{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://m.youtube.com/watch?feature=share&v=dQw4w9WgXcQ",
			"https://youtu.be/dQw4w9WgXcQ?t=42",
			"https://www.youtube.com/embed/dQw4w9WgXcQ",
			"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?rel=0",
			"https://www.youtube.com/shorts/dQw4w9WgXcQ",
			"https://www.youtube.com/v/dQw4w9WgXcQ",
			"  dQw4w9WgXcQ ",
		} {
			id, err := ExtractID(raw)
			So(err, ShouldBeNil)
			So(id, ShouldEqual, rickroll)
		}
	})

	Convey("Anything else is rejected", t, func() {
		for _, raw := range []string{"", "https://example.com/watch?v=short", "dQw4w9WgXc", "dQw4w9WgXcQ!"} {
			_, err := ExtractID(raw)
			So(err, ShouldEqual, ErrInvalidID)
		}
	})

	Convey("ValidID accepts exactly eleven URL safe characters", t, func() {
		So(ValidID(rickroll), ShouldBeTrue)
		So(ValidID("abc-_DEF123"), ShouldBeTrue)
		So(ValidID("abc/DEF1234"), ShouldBeFalse)
		So(ValidID(rickroll+"x"), ShouldBeFalse)
	})
}

func TestChecker(t *testing.T) {
	Convey("Given a malformed ID", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {})
		defer srv.Close()

		opts := testOptions()
		opts.Embed = mustCandidates("embed", srv.URL+"/embed/{id}")

		_, err := NewChecker(opts).Check(context.Background(), "not-an-id")

		Convey("No outbound call is made", func() {
			So(err, ShouldEqual, ErrInvalidID)
			So(srv.calls.Load(), ShouldEqual, 0)
		})
	})

	Convey("Given a failing first candidate and a healthy second one", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodHead || strings.HasPrefix(r.URL.Path, "/blocked/") {
				w.WriteHeader(http.StatusForbidden)
			}
		})
		defer srv.Close()

		opts := testOptions()
		opts.Embed = mustCandidates("embed", srv.URL+"/blocked/{id}", srv.URL+"/embed/{id}")

		access, err := NewChecker(opts).Check(context.Background(), rickroll)

		Convey("The video is accessible through the second one", func() {
			So(err, ShouldBeNil)
			So(srv.calls.Load(), ShouldEqual, 2)
			So(access.Accessible, ShouldBeTrue)
			So(access.VideoID, ShouldEqual, rickroll)
			So(access.Endpoint, ShouldEqual, "127.0.0.1")
			So(access.EmbedURL, ShouldStartWith, "https://www.youtube-nocookie.com/embed/"+rickroll+"?")
			So(access.EmbedURL, ShouldContainSubstring, "modestbranding=1")
		})
	})

	Convey("Given candidates that redirect forever", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path, http.StatusFound)
		})
		defer srv.Close()

		opts := testOptions()
		opts.Embed = mustCandidates("embed", srv.URL+"/loop/{id}")

		access, err := NewChecker(opts).Check(context.Background(), rickroll)

		Convey("The probe gives up and reports the video as inaccessible", func() {
			So(err, ShouldBeNil)
			So(access.Accessible, ShouldBeFalse)
			So(access.Endpoint, ShouldBeEmpty)
			So(access.EmbedURL, ShouldBeEmpty)
			So(srv.calls.Load(), ShouldEqual, 6)
		})
	})
}

func TestFetcher(t *testing.T) {
	oembedTemplate := "/oembed?url=https://www.youtube.com/watch?v={id}&format=json"

	Convey("Given a primary oEmbed endpoint that answers", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"title":"T","author_name":"A","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}`))
		})
		defer srv.Close()

		opts := testOptions()
		opts.Oembed = mustCandidates("oembed", srv.URL+oembedTemplate)

		meta, err := NewFetcher(opts).Fetch(context.Background(), rickroll)

		Convey("The metadata carries the upgraded thumbnail", func() {
			So(err, ShouldBeNil)
			So(meta.IsPresent(), ShouldBeTrue)
			So(meta.MustGet(), ShouldResemble, Metadata{
				Title:     "T",
				Author:    "A",
				Thumbnail: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
			})
		})
	})

	Convey("Given an error body, a server error and then a good answer", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case strings.HasPrefix(r.URL.Path, "/noembed"):
				_, _ = w.Write([]byte(`{"error":"404 Not Found"}`))
			case strings.HasPrefix(r.URL.Path, "/mirror"):
				w.WriteHeader(http.StatusInternalServerError)
			default:
				_, _ = w.Write([]byte(`{"title":"Third","author_name":"C","duration":212}`))
			}
		})
		defer srv.Close()

		opts := testOptions()
		opts.Oembed = mustCandidates("oembed",
			srv.URL+"/noembed"+oembedTemplate,
			srv.URL+"/mirror"+oembedTemplate,
			srv.URL+oembedTemplate,
		)

		meta, err := NewFetcher(opts).Fetch(context.Background(), rickroll)

		Convey("The third endpoint provides the result after exactly three calls", func() {
			So(err, ShouldBeNil)
			So(srv.calls.Load(), ShouldEqual, 3)
			So(meta.MustGet().Title, ShouldEqual, "Third")
			So(meta.MustGet().Duration, ShouldEqual, 212)
		})
	})

	Convey("Given failing oEmbed endpoints and an existing thumbnail", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead && strings.HasPrefix(r.URL.Path, "/vi/") {
				return
			}
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		opts := testOptions()
		opts.Oembed = mustCandidates("oembed", srv.URL+oembedTemplate)
		opts.Thumbnail = mustCandidates("thumbnail", srv.URL+"/vi/{id}/hqdefault.jpg")

		meta, err := NewFetcher(opts).Fetch(context.Background(), rickroll)

		Convey("A placeholder title is returned with the thumbnail", func() {
			So(err, ShouldBeNil)
			So(meta.MustGet(), ShouldResemble, Metadata{
				Title:     "YouTube動画 (dQw4w9WgXcQ)",
				Thumbnail: srv.URL + "/vi/dQw4w9WgXcQ/hqdefault.jpg",
			})
		})
	})

	Convey("Given every source failing", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		opts := testOptions()
		opts.Oembed = mustCandidates("oembed", srv.URL+oembedTemplate, srv.URL+"/b"+oembedTemplate)
		opts.Thumbnail = mustCandidates("thumbnail", srv.URL+"/vi/{id}/hqdefault.jpg")

		meta, err := NewFetcher(opts).Fetch(context.Background(), rickroll)

		Convey("Absence is reported without an error", func() {
			So(err, ShouldBeNil)
			So(meta.IsAbsent(), ShouldBeTrue)
			So(srv.calls.Load(), ShouldEqual, 3)
		})
	})

	Convey("Given a malformed ID", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {})
		defer srv.Close()

		opts := testOptions()
		opts.Oembed = mustCandidates("oembed", srv.URL+oembedTemplate)

		_, err := NewFetcher(opts).Fetch(context.Background(), "<script>")

		Convey("No outbound call is made", func() {
			So(err, ShouldEqual, ErrInvalidID)
			So(srv.calls.Load(), ShouldEqual, 0)
		})
	})
}

func TestUpgradeThumbnail(t *testing.T) {
	Convey("Low resolution thumbnails are upgraded to maxresdefault", t, func() {
		So(UpgradeThumbnail("https://i.ytimg.com/vi/x/hqdefault.jpg"), ShouldEqual, "https://i.ytimg.com/vi/x/maxresdefault.jpg")
		So(UpgradeThumbnail("https://i.ytimg.com/vi/x/mqdefault.jpg"), ShouldEqual, "https://i.ytimg.com/vi/x/maxresdefault.jpg")
		So(UpgradeThumbnail("https://i.ytimg.com/vi_webp/x/sddefault.webp"), ShouldEqual, "https://i.ytimg.com/vi_webp/x/maxresdefault.webp")
		So(UpgradeThumbnail("https://i.ytimg.com/vi/x/default.jpg"), ShouldEqual, "https://i.ytimg.com/vi/x/maxresdefault.jpg")
	})

	Convey("Other URLs are left alone", t, func() {
		So(UpgradeThumbnail("https://i.ytimg.com/vi/x/maxresdefault.jpg"), ShouldEqual, "https://i.ytimg.com/vi/x/maxresdefault.jpg")
		So(UpgradeThumbnail(""), ShouldEqual, "")
	})
}

func TestThumbnailer(t *testing.T) {
	source := testJPEG(480, 360)

	newThumbnailer := func(srv *stub) *Thumbnailer {
		opts := testOptions()
		opts.ThumbnailHosts = []string{strings.TrimPrefix(srv.URL, "http://")}
		th := NewThumbnailer(opts)
		th.scheme = "http"
		return th
	}

	Convey("Given a host serving only hqdefault", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/vi/"+rickroll+"/hqdefault.jpg" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(source)
		})
		defer srv.Close()

		th := newThumbnailer(srv)

		Convey("Without a transform the upstream bytes are passed through", func() {
			img, err := th.Fetch(context.Background(), rickroll, Transform{})
			So(err, ShouldBeNil)
			So(img.ContentType, ShouldEqual, "image/jpeg")
			So(img.Data, ShouldResemble, source)
			So(img.Source, ShouldEndWith, "/hqdefault.jpg")
			So(srv.calls.Load(), ShouldEqual, 3)
		})

		Convey("A resize produces an image of the requested size", func() {
			img, err := th.Fetch(context.Background(), rickroll, Transform{Width: 426, Height: 240, Quality: 75})
			So(err, ShouldBeNil)
			So(img.ContentType, ShouldEqual, "image/jpeg")

			decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
			So(err, ShouldBeNil)
			So(decoded.Bounds().Dx(), ShouldEqual, 426)
			So(decoded.Bounds().Dy(), ShouldEqual, 240)
		})

		Convey("A webp transform changes the content type", func() {
			img, err := th.Fetch(context.Background(), rickroll, Transform{Format: FormatWebP})
			So(err, ShouldBeNil)
			So(img.ContentType, ShouldEqual, "image/webp")
			So(string(img.Data[:4]), ShouldEqual, "RIFF")
		})
	})

	Convey("Given a host without any thumbnail", t, func() {
		srv := newStub(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		_, err := newThumbnailer(srv).Fetch(context.Background(), rickroll, Transform{})

		Convey("Every quality is tried once and the chain is exhausted", func() {
			So(errors.Is(err, fallback.ErrExhausted), ShouldBeTrue)
			So(srv.calls.Load(), ShouldEqual, len(Qualities))
		})
	})

	Convey("Candidates are ordered by host, then by quality", t, func() {
		th := NewThumbnailer(Options{ThumbnailHosts: []string{"i.ytimg.com", "i1.ytimg.com"}})
		c := th.Candidates()
		So(c, ShouldHaveLength, 2*len(Qualities))
		So(c[0].URL(rickroll), ShouldEqual, "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg")
		So(c[len(Qualities)].URL(rickroll), ShouldEqual, "https://i1.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg")
	})
}

func TestParseTransform(t *testing.T) {
	Convey("Given valid parameters", t, func() {
		tr, err := ParseTransform("jpg", "640,360", "85")
		So(err, ShouldBeNil)
		So(tr, ShouldResemble, Transform{Format: FormatJPEG, Width: 640, Height: 360, Quality: 85})
		So(tr.Identity(), ShouldBeFalse)
	})

	Convey("Empty parameters mean pass-through", t, func() {
		tr, err := ParseTransform("", "", "")
		So(err, ShouldBeNil)
		So(tr.Identity(), ShouldBeTrue)
	})

	Convey("Invalid parameters are rejected", t, func() {
		for _, p := range [][3]string{
			{"avif", "", ""},
			{"", "640x360", ""},
			{"", "100,100", ""},
			{"", "", "high"},
			{"", "", "50"},
		} {
			_, err := ParseTransform(p[0], p[1], p[2])
			So(errors.Is(err, ErrInvalidParams), ShouldBeTrue)
		}
	})
}

func TestSearcher(t *testing.T) {
	items := make([]SearchItem, 30)
	for i := range items {
		items[i] = SearchItem{ID: rickroll, Title: "item"}
	}

	var queries []string
	s := &Searcher{search: func(_ context.Context, q string) ([]SearchItem, error) {
		queries = append(queries, q)
		return items, nil
	}}

	Convey("Results are trimmed to the limit", t, func() {
		res, err := s.Search(context.Background(), "  never gonna  ", 5)
		So(err, ShouldBeNil)
		So(res.Query, ShouldEqual, "never gonna")
		So(res.Items, ShouldHaveLength, 5)
	})

	Convey("Out of range limits use the default", t, func() {
		res, err := s.Search(context.Background(), "q", 500)
		So(err, ShouldBeNil)
		So(res.Items, ShouldHaveLength, DefaultSearchLimit)
	})

	Convey("An empty query never reaches the upstream", t, func() {
		before := len(queries)
		_, err := s.Search(context.Background(), "   ", 5)
		So(err, ShouldEqual, ErrEmptyQuery)
		So(queries, ShouldHaveLength, before)
	})

	Convey("Upstream failures are wrapped", t, func() {
		failing := &Searcher{search: func(context.Context, string) ([]SearchItem, error) {
			return nil, errors.New("boom")
		}}
		_, err := failing.Search(context.Background(), "q", 5)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "boom")
	})
}

func TestFormatDuration(t *testing.T) {
	Convey("Durations are rendered like the YouTube player", t, func() {
		So(FormatDuration(0), ShouldEqual, "LIVE")
		So(FormatDuration(59), ShouldEqual, "0:59")
		So(FormatDuration(212), ShouldEqual, "3:32")
		So(FormatDuration(3725), ShouldEqual, "1:02:05")
	})
}

type recordingTransport struct {
	seen []http.Header
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.seen = append(r.seen, req.Header.Clone())
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Header: http.Header{}, Request: req}, nil
}

func TestFillHeaders(t *testing.T) {
	Convey("Given the player client transport", t, func() {
		first, err := fingerprint.Default.Headers()
		So(err, ShouldBeNil)

		rec := &recordingTransport{}
		rt := &fillHeaders{next: rec, synth: fingerprint.Default, first: first}

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "https://www.youtube.com/youtubei/v1/player", nil)
			req.Header.Set(constant.HeaderUserAgent, "com.google.android.youtube/19.0")
			_, err := rt.RoundTrip(req)
			So(err, ShouldBeNil)
		}

		Convey("The attempt's header set is used for the first request", func() {
			So(rec.seen[0].Get(constant.HeaderSessionID), ShouldEqual, first.Get(constant.HeaderSessionID))
		})

		Convey("Every request carries its own fingerprint token", func() {
			tokens := map[string]struct{}{}
			for _, h := range rec.seen {
				token := h.Get(constant.HeaderSessionID)
				So(token, ShouldHaveLength, fingerprint.TokenSize*2)
				tokens[token] = struct{}{}
			}
			So(tokens, ShouldHaveLength, 3)
		})

		Convey("Headers set by the client win and Accept-Encoding is left alone", func() {
			for _, h := range rec.seen {
				So(h.Get(constant.HeaderUserAgent), ShouldEqual, "com.google.android.youtube/19.0")
				So(h.Get("Accept-Encoding"), ShouldBeEmpty)
			}
		})
	})
}
