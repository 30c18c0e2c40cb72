// Package version provides release tracking and update discovery.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/metafates/gache"
	"github.com/toumei/toumei/filesystem"
	"github.com/toumei/toumei/network"
	"github.com/toumei/toumei/util"
	"github.com/toumei/toumei/where"
)

// ReleasesURL is queried for the latest published release.
var ReleasesURL = "https://api.github.com/repos/toumei/toumei/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       where.Version(),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest retrieves the most recent release version.
// The answer is cached for two days.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	version, err = fetch(network.Client, ReleasesURL)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(version)
	return version, nil
}

func fetch(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", err
	}

	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}
