package server

import (
	"time"

	"github.com/spf13/viper"
	"github.com/toumei/toumei/config"
	"github.com/toumei/toumei/fingerprint"
	"github.com/toumei/toumei/key"
	"github.com/toumei/toumei/network"
	"github.com/toumei/toumei/proxy"
	"github.com/toumei/toumei/session"
	"github.com/toumei/toumei/video"
	"github.com/toumei/toumei/where"
)

func seconds(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Second
}

// VideoOptions builds the video options from the current configuration.
func VideoOptions() (video.Options, *config.Endpoints, error) {
	endpoints, err := config.LoadEndpoints()
	if err != nil {
		return video.Options{}, nil, err
	}

	transport := network.NewTransport(network.Options{
		Fingerprint: viper.GetBool(key.NetworkTLSFingerprint),
		Timeout:     seconds(key.ProxyTimeout),
	})

	return video.Options{
		Client:           network.NewClient(transport, viper.GetInt(key.ProbeMaxRedirects)),
		Headers:          fingerprint.Default,
		Embed:            endpoints.Embed,
		Oembed:           endpoints.Oembed,
		Thumbnail:        endpoints.Thumbnail,
		ThumbnailHosts:   endpoints.ThumbnailHosts,
		ProbeTimeout:     seconds(key.FallbackProbeTimeout),
		MetadataTimeout:  seconds(key.FallbackMetadataTimeout),
		ThumbnailTimeout: seconds(key.FallbackThumbnailTimeout),
		Innertube:        viper.GetBool(key.MetadataInnertube),
	}, endpoints, nil
}

// OpenStore returns the session store selected by sessions.persist.
func OpenStore() (session.Store, error) {
	if !viper.GetBool(key.SessionsPersist) {
		return session.NewMemory(), nil
	}
	return session.OpenFile(where.Sessions())
}

// FromConfig assembles a server from the validated configuration.
func FromConfig() (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts, endpoints, err := VideoOptions()
	if err != nil {
		return nil, err
	}

	store, err := OpenStore()
	if err != nil {
		return nil, err
	}

	forwarders := make(map[string]*proxy.Forwarder, len(endpoints.Targets))
	for _, target := range endpoints.Targets {
		forwarders[target.Token] = proxy.NewForwarder(ProxyPrefix+target.Token, target, proxy.Options{
			Transport: opts.Client.Transport,
			Headers:   opts.Headers,
		})
	}

	return New(Deps{
		Checker:          video.NewChecker(opts),
		Fetcher:          video.NewFetcher(opts),
		Thumbnailer:      video.NewThumbnailer(opts),
		Searcher:         video.NewSearcher(),
		Store:            store,
		Forwarders:       forwarders,
		CorsOrigins:      viper.GetStringSlice(key.ServerCorsOrigins),
		MaxMessageLength: viper.GetInt(key.ChatMaxMessageLength),
	}), nil
}
