package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/toumei/toumei/fallback"
	"github.com/toumei/toumei/key"
	"github.com/toumei/toumei/proxy"
)

// Endpoints is the validated upstream configuration shared read-only by every request.
type Endpoints struct {
	Embed          []fallback.Candidate
	Oembed         []fallback.Candidate
	Thumbnail      []fallback.Candidate
	ThumbnailHosts []string
	Targets        []proxy.Target
}

// LoadEndpoints parses the endpoint and proxy target configuration.
// Malformed entries are reported here so the server fails at startup rather than per request.
func LoadEndpoints() (*Endpoints, error) {
	var (
		e   Endpoints
		err error
	)

	if e.Embed, err = fallback.ParseCandidates("embed", viper.GetStringSlice(key.EndpointsEmbed)); err != nil {
		return nil, err
	}
	if e.Oembed, err = fallback.ParseCandidates("oembed", viper.GetStringSlice(key.EndpointsOembed)); err != nil {
		return nil, err
	}
	if e.Thumbnail, err = fallback.ParseCandidates("thumbnail", viper.GetStringSlice(key.EndpointsThumbnail)); err != nil {
		return nil, err
	}

	for _, host := range viper.GetStringSlice(key.EndpointsThumbnailHosts) {
		host = strings.TrimSpace(host)
		if host == "" || strings.ContainsAny(host, "/:?# ") {
			return nil, fmt.Errorf("%s: invalid host %q", key.EndpointsThumbnailHosts, host)
		}
		e.ThumbnailHosts = append(e.ThumbnailHosts, host)
	}

	if e.Targets, err = proxy.ParseTargets(viper.GetStringSlice(key.ProxyTargets)); err != nil {
		return nil, err
	}

	return &e, nil
}

// Validate checks every setting that cannot be verified by its type alone.
func Validate() error {
	if _, err := LoadEndpoints(); err != nil {
		return err
	}

	if viper.GetInt(key.ProxyTimeout) <= 0 {
		return fmt.Errorf("%s must be positive", key.ProxyTimeout)
	}

	for _, k := range []string{key.FallbackProbeTimeout, key.FallbackMetadataTimeout, key.FallbackThumbnailTimeout} {
		if viper.GetInt(k) <= 0 {
			return fmt.Errorf("%s must be positive", k)
		}
	}

	if viper.GetInt(key.ProbeMaxRedirects) < 0 {
		return fmt.Errorf("%s must not be negative", key.ProbeMaxRedirects)
	}

	return nil
}
