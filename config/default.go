// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/toumei/toumei/color"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/key"
	"github.com/toumei/toumei/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Toumei + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.ServerAddress, ":5000", "Address the HTTP server listens on")
	register(key.ServerShutdownTimeout, 10, "Seconds to wait for in-flight requests on shutdown")
	register(key.ServerCorsOrigins, []string{"*"}, "Origins allowed by the CORS middleware")

	register(key.ProxyTargets, []string{
		"youtube=https://www.youtube-nocookie.com",
		"ytimg=https://i.ytimg.com",
		"ggpht=https://yt3.ggpht.com",
	}, "Reverse proxy targets as token=upstream.\nServed under /api/proxy/<token>/")
	register(key.ProxyTimeout, 30, "Seconds allowed for connect, TLS and response headers of a proxied request")

	register(key.EndpointsEmbed, []string{
		"https://www.youtube-nocookie.com/embed/{id}",
		"https://www.youtube.com/embed/{id}",
		"https://www.youtube.com/watch?v={id}",
	}, "Ordered embed URLs probed by the access checker")
	register(key.EndpointsOembed, []string{
		"https://www.youtube.com/oembed?url=https://www.youtube.com/watch?v={id}&format=json",
		"https://youtube.com/oembed?url=https://www.youtube.com/watch?v={id}&format=json",
		"https://noembed.com/embed?url=https://www.youtube.com/watch?v={id}",
	}, "Ordered oEmbed endpoints queried for video metadata")
	register(key.EndpointsThumbnail, []string{
		"https://i.ytimg.com/vi/{id}/hqdefault.jpg",
	}, "Thumbnail URLs probed when every metadata endpoint failed")
	register(key.EndpointsThumbnailHosts, []string{
		"i.ytimg.com",
		"i1.ytimg.com",
		"i2.ytimg.com",
		"i3.ytimg.com",
		"i4.ytimg.com",
		"i9.ytimg.com",
	}, "Image hosts tried in order by the thumbnail endpoint")

	register(key.FallbackProbeTimeout, 5, "Per-attempt timeout in seconds for existence probes")
	register(key.FallbackMetadataTimeout, 10, "Per-attempt timeout in seconds for metadata requests")
	register(key.FallbackThumbnailTimeout, 15, "Per-attempt timeout in seconds for thumbnail downloads")
	register(key.ProbeMaxRedirects, 5, "Maximum redirects followed by an existence probe")
	register(key.MetadataInnertube, false, "Query the YouTube player API after every oEmbed endpoint failed")
	register(key.NetworkTLSFingerprint, true, "Present a Chrome TLS fingerprint on outbound HTTPS connections")

	register(key.SessionsPersist, false, "Persist chat sessions to a snapshot file in the data directory")
	register(key.ChatMaxMessageLength, 2000, "Maximum accepted chat message length in characters")

	register(key.LogsWrite, false, "Write logs to a dated file in addition to stderr")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Check for a newer release when printing the version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
