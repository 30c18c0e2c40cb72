package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/toumei/toumei/color"
	"github.com/toumei/toumei/fallback"
	"github.com/toumei/toumei/proxy"
	"github.com/toumei/toumei/server"
	"github.com/toumei/toumei/style"
	"github.com/toumei/toumei/video"
)

func init() {
	rootCmd.AddCommand(endpointsCmd)
	endpointsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	endpointsCmd.Flags().StringP("id", "i", "", "Expand templates for this video ID")
}

type endpointGroup struct {
	Class      string   `json:"class"`
	Candidates []string `json:"candidates"`
}

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the configured fallback candidates and proxy targets in the order they are tried",
	Run: func(cmd *cobra.Command, args []string) {
		opts, endpoints, err := server.VideoOptions()
		handleErr(err)

		id := lo.Must(cmd.Flags().GetString("id"))
		if id != "" {
			id, err = video.ExtractID(id)
			handleErr(err)
		}

		render := func(candidates []fallback.Candidate) []string {
			return lo.Map(candidates, func(c fallback.Candidate, _ int) string {
				if id != "" {
					return c.URL(id)
				}
				return c.Template
			})
		}

		groups := []endpointGroup{
			{"embed", render(endpoints.Embed)},
			{"oembed", render(endpoints.Oembed)},
			{"thumbnail", render(endpoints.Thumbnail)},
			{"thumbnail transcoder", render(video.NewThumbnailer(opts).Candidates())},
			{"proxy", lo.Map(endpoints.Targets, func(t proxy.Target, _ int) string { return t.String() })},
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(groups))
			return
		}

		heading := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, g := range groups {
			cmd.Println(heading(g.Class))
			for n, c := range g.Candidates {
				cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%2d.", n+1)), c)
			}
			if i < len(groups)-1 {
				cmd.Println()
			}
		}
	},
}
