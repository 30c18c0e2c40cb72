// Package video resolves YouTube video availability, metadata, thumbnails and search results
// through ordered lists of upstream endpoints.
package video

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidID is returned before any network call when an ID is malformed.
var ErrInvalidID = errors.New("invalid video id")

var (
	idRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	urlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube(?:-nocookie)?\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?|shorts|live)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`),
		regexp.MustCompile(`^([A-Za-z0-9_-]{11})$`),
	}
)

// ValidID reports whether id is exactly 11 characters of [A-Za-z0-9_-].
func ValidID(id string) bool {
	return idRegex.MatchString(id)
}

// ExtractID finds the video ID in any common YouTube URL form or accepts a bare ID.
func ExtractID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	for _, pattern := range urlPatterns {
		if m := pattern.FindStringSubmatch(raw); m != nil && ValidID(m[1]) {
			return m[1], nil
		}
	}

	return "", ErrInvalidID
}
