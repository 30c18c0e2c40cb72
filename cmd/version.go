package cmd

import (
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/toumei/toumei/color"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/style"
	"github.com/toumei/toumei/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}      {{ bold .Version }}
  {{ faint "Git Commit" }}   {{ bold .Revision }}
  {{ faint "Build Date" }}   {{ bold .BuiltAt }}
  {{ faint "Built By" }}     {{ bold .BuiltBy }}
  {{ faint "Platform" }}     {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Go" }}           {{ bold .Go }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify(cmd.OutOrStdout())

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), map[string]string{
			"App":      constant.Toumei,
			"Version":  constant.Version,
			"Revision": constant.Revision,
			"BuiltAt":  strings.TrimSpace(constant.BuiltAt),
			"BuiltBy":  constant.BuiltBy,
			"OS":       runtime.GOOS,
			"Arch":     runtime.GOARCH,
			"Go":       runtime.Version(),
		}))
	},
}
