package fingerprint

import (
	"bytes"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/toumei/toumei/constant"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

func TestHeaders(t *testing.T) {
	Convey("Given the default synthesizer", t, func() {
		Convey("The fingerprint token is 32 lowercase hex characters", func() {
			h, err := Default.Headers()
			So(err, ShouldBeNil)

			token := h.Get(constant.HeaderSessionID)
			So(len(token), ShouldEqual, TokenSize*2)
			_, err = hex.DecodeString(token)
			So(err, ShouldBeNil)
			So(token, ShouldEqual, strings.ToLower(token))
		})

		Convey("Two consecutive calls produce different tokens", func() {
			a, err := Default.Headers()
			So(err, ShouldBeNil)
			b, err := Default.Headers()
			So(err, ShouldBeNil)
			So(a.Get(constant.HeaderSessionID), ShouldNotEqual, b.Get(constant.HeaderSessionID))
		})

		Convey("The user agent comes from a known profile and the platform hint matches it", func() {
			h, err := Default.Headers()
			So(err, ShouldBeNil)

			var matched bool
			for _, p := range Profiles {
				if p.UserAgent == h.Get(constant.HeaderUserAgent) {
					matched = true
					So(h.Get("Sec-Ch-Ua-Platform"), ShouldEqual, p.Platform)
				}
			}
			So(matched, ShouldBeTrue)
		})

		Convey("Every profile is the Chrome release the client hints announce", func() {
			h, err := Default.Headers()
			So(err, ShouldBeNil)
			So(h.Get("Sec-Ch-Ua"), ShouldContainSubstring, `"Chromium";v="`+ChromeMajor+`"`)

			for _, p := range Profiles {
				So(p.UserAgent, ShouldContainSubstring, "Chrome/"+ChromeMajor+".")
				So(p.UserAgent, ShouldNotContainSubstring, "Firefox")
			}
		})

		Convey("Static browser headers are present", func() {
			h, err := Default.Headers()
			So(err, ShouldBeNil)
			So(h.Get("Accept-Language"), ShouldEqual, "ja-JP,ja;q=0.9,en;q=0.8")
			So(h.Get("Cache-Control"), ShouldEqual, "no-cache")
			So(h.Get("Sec-Ch-Ua-Mobile"), ShouldEqual, "?0")
		})
	})

	Convey("Given a deterministic source", t, func() {
		seed := append([]byte{2}, bytes.Repeat([]byte{0xab}, TokenSize)...)
		s := New(bytes.NewReader(seed))

		Convey("The profile and token are derived from it", func() {
			h, err := s.Headers()
			So(err, ShouldBeNil)
			So(h.Get(constant.HeaderUserAgent), ShouldEqual, Profiles[2].UserAgent)
			So(h.Get(constant.HeaderSessionID), ShouldEqual, strings.Repeat("ab", TokenSize))
		})
	})

	Convey("Given a byte outside the uniform range", t, func() {
		idx, err := pick(bytes.NewReader([]byte{255, 4}), 3)

		Convey("It is rejected and the next byte is used", func() {
			So(err, ShouldBeNil)
			So(idx, ShouldEqual, 1)
		})
	})

	Convey("Given an exhausted source", t, func() {
		s := New(failingReader{})

		Convey("Headers reports the error", func() {
			_, err := s.Headers()
			So(err, ShouldNotBeNil)
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Apply overwrites synthesized headers and keeps the rest", t, func() {
		dst := http.Header{}
		dst.Set(constant.HeaderUserAgent, "curl/8.0")
		dst.Set("Range", "bytes=0-")

		So(Default.Apply(dst), ShouldBeNil)
		So(dst.Get(constant.HeaderUserAgent), ShouldNotEqual, "curl/8.0")
		So(dst.Get("Range"), ShouldEqual, "bytes=0-")
		So(dst.Get(constant.HeaderSessionID), ShouldNotBeEmpty)
	})
}
