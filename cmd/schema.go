package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/toumei/toumei/server"
	"github.com/toumei/toumei/session"
	"github.com/toumei/toumei/video"
	"golang.org/x/exp/slices"
)

// schemaTypes maps the names accepted by `toumei schema` to the payloads they describe.
var schemaTypes = map[string]any{
	"video":    &video.Metadata{},
	"check":    &server.AccessResponse{},
	"search":   &video.SearchResult{},
	"chat":     &server.ChatRequest{},
	"reply":    &server.ChatResponse{},
	"history":  []*session.Message{},
	"sessions": []*session.Session{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:       "schema [type]",
	Short:     "Print the JSON Schema of an API payload",
	Long:      "Print the JSON Schema of an API payload.\nAvailable types: " + strings.Join(schemaNames(), ", "),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: schemaNames(),
	Run: func(cmd *cobra.Command, args []string) {
		name := "video"
		if len(args) > 0 {
			name = args[0]
		}

		schema, err := reflectSchema(name)
		handleErr(err)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}

func schemaNames() []string {
	names := lo.Keys(schemaTypes)
	slices.Sort(names)
	return names
}

func reflectSchema(name string) (*jsonschema.Schema, error) {
	v, ok := schemaTypes[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q, available: %s", name, strings.Join(schemaNames(), ", "))
	}

	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch name {
		case "Session", "Message", "Role":
			return filepath.Base(t.PkgPath()) + "." + name
		}
		return name
	}

	return reflector.Reflect(v), nil
}
