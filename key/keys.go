// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Server - these keys configure the inbound HTTP listener.
const (
	ServerAddress         = "server.address"
	ServerShutdownTimeout = "server.shutdown_timeout"
	ServerCorsOrigins     = "server.cors_origins"
)

// Reverse Proxy - these keys define the token to upstream mapping and its timeout ceiling.
const (
	ProxyTargets = "proxy.targets"
	ProxyTimeout = "proxy.timeout"
)

// Upstream Endpoints - ordered candidate templates per resource class. "{id}" is replaced by the video ID.
const (
	EndpointsEmbed          = "endpoints.embed"
	EndpointsOembed         = "endpoints.oembed"
	EndpointsThumbnail      = "endpoints.thumbnail"
	EndpointsThumbnailHosts = "endpoints.thumbnail_hosts"
)

// Fallback Budgets - per-attempt timeouts in seconds.
const (
	FallbackProbeTimeout     = "fallback.probe_timeout"
	FallbackMetadataTimeout  = "fallback.metadata_timeout"
	FallbackThumbnailTimeout = "fallback.thumbnail_timeout"
)

const (
	ProbeMaxRedirects = "probe.max_redirects"
)

const (
	MetadataInnertube = "metadata.innertube"
)

const (
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Chat and Sessions.
const (
	SessionsPersist      = "sessions.persist"
	ChatMaxMessageLength = "chat.max_message_length"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the command-line behavior.
const (
	IconsVariant    = "icons.variant"
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
