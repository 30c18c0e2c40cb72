package version

import (
	"cmp"
	"fmt"
	"strings"
)

// release is the numeric part of a release tag such as "v0.3.1" or "0.4.0-rc1".
type release [3]int

func parseRelease(tag string) (release, error) {
	var r release

	core, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(tag), "v"), "-")
	if _, err := fmt.Sscanf(core, "%d.%d.%d", &r[0], &r[1], &r[2]); err != nil {
		return r, fmt.Errorf("release tag %q: %w", tag, err)
	}
	return r, nil
}

// Compare orders two release tags by major, minor and patch.
// Pre-release suffixes are ignored, so "0.4.0-rc1" equals "0.4.0".
// It returns 1 when a is newer than b, -1 when older and 0 when equal.
func Compare(a, b string) (int, error) {
	ra, err := parseRelease(a)
	if err != nil {
		return 0, err
	}

	rb, err := parseRelease(b)
	if err != nil {
		return 0, err
	}

	for i := range ra {
		if c := cmp.Compare(ra[i], rb[i]); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}
