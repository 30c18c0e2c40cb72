package constant

// Header names shared by the proxy and the outbound client.
const (
	HeaderSessionID = "X-Session-Id"
	HeaderUserAgent = "User-Agent"
)

// SampleVideoID is a syntactically valid ID used to validate endpoint templates at startup.
const SampleVideoID = "dQw4w9WgXcQ"

// EmbedParams are the player parameters appended to privacy embed URLs.
const EmbedParams = "wmode=transparent&iv_load_policy=3&autoplay=0&html5=1&showinfo=0&rel=0&modestbranding=1&playsinline=0&theme=dark"

// EmbedBase is the privacy embed endpoint handed to clients.
const EmbedBase = "https://www.youtube-nocookie.com/embed/"
