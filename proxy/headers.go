package proxy

import (
	"net/http"
	"strings"

	"github.com/samber/lo"
)

// Identity and routing headers that must never reach the upstream.
var requestDenylist = []string{
	"X-Forwarded-For",
	"X-Forwarded-Proto",
	"X-Forwarded-Host",
	"X-Forwarded-Port",
	"Forwarded",
	"X-Real-Ip",
	"Via",
	"True-Client-Ip",
	"Cf-Connecting-Ip",
	"Cf-Ipcountry",
	"Cf-Ray",
	"Cf-Visitor",
	"Cdn-Loop",
	"Cookie",
}

var requestDenyPrefixes = []string{
	"X-Replit-",
	"Cf-",
}

// Tracking and infrastructure headers that must never reach the client.
var responseDenylist = []string{
	"Set-Cookie",
	"X-Youtube-Ad-Signals",
	"X-Youtube-Identity-Token",
	"Server",
	"Via",
	"X-Cache",
	"X-Cache-Hits",
	"X-Served-By",
	"Alt-Svc",
	"Report-To",
	"Nel",
	"Cross-Origin-Opener-Policy-Report-Only",
}

// Access-Control-* is owned by the server's CORS middleware; passing the
// upstream's through would duplicate Access-Control-Allow-Origin.
var responseDenyPrefixes = []string{
	"X-Youtube-",
	"Access-Control-",
}

const contentSecurityPolicy = "default-src 'self' https://www.youtube-nocookie.com https://www.youtube.com https://*.ytimg.com https://*.ggpht.com https://*.googlevideo.com; " +
	"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://www.youtube-nocookie.com https://www.youtube.com https://www.gstatic.com; " +
	"img-src 'self' data: https://*.ytimg.com https://*.ggpht.com; " +
	"media-src 'self' blob: https://*.googlevideo.com; " +
	"frame-ancestors 'self'"

// Privacy headers set on every proxied response.
var injected = map[string]string{
	"X-Frame-Options":           "SAMEORIGIN",
	"X-Content-Type-Options":    "nosniff",
	"Referrer-Policy":           "no-referrer",
	"Permissions-Policy":        "interest-cohort=(), browsing-topics=(), geolocation=(), microphone=(), camera=()",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Content-Security-Policy":   contentSecurityPolicy,
	"Cache-Control":             "no-store",
}

func strip(h http.Header, names, prefixes []string) {
	for _, name := range names {
		h.Del(name)
	}

	for k := range h {
		canonical := http.CanonicalHeaderKey(k)
		if lo.ContainsBy(prefixes, func(p string) bool {
			return strings.HasPrefix(canonical, p)
		}) {
			delete(h, k)
		}
	}
}

// StripRequest removes the request denylist from h.
func StripRequest(h http.Header) {
	strip(h, requestDenylist, requestDenyPrefixes)
}

// StripResponse removes the response denylist from h and sets the privacy headers.
func StripResponse(h http.Header) {
	strip(h, responseDenylist, responseDenyPrefixes)
	for k, v := range injected {
		h.Set(k, v)
	}
}
