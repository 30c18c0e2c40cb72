// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Toumei is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Toumei = "toumei"

	// Version is the current application semantic version string.
	Version = "0.3.1"
)

// Build metadata, injected with -ldflags "-X github.com/toumei/toumei/constant.Revision=...".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
