package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/toumei/toumei/color"
	"github.com/toumei/toumei/icon"
	"github.com/toumei/toumei/server"
	"github.com/toumei/toumei/style"
	"github.com/toumei/toumei/util"
	"github.com/toumei/toumei/video"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
}

// checkReport is what `toumei check` prints.
type checkReport struct {
	video.Access
	Metadata *video.Metadata `json:"metadata,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <url|id>",
	Short: "Probe a video through the embed fallback chain and fetch its metadata",
	Args:  cobra.ExactArgs(1),
	Example: `  toumei check dQw4w9WgXcQ
  toumei check "https://youtu.be/dQw4w9WgXcQ" --json`,
	Run: func(cmd *cobra.Command, args []string) {
		id, err := video.ExtractID(args[0])
		handleErr(err)

		opts, _, err := server.VideoOptions()
		handleErr(err)

		ctx := commandContext(cmd)
		asJson := lo.Must(cmd.Flags().GetBool("json"))

		var erase func()
		if !asJson {
			erase = util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), id))
		}

		start := time.Now()
		access, err := video.NewChecker(opts).Check(ctx, id)
		handleErr(err)

		meta, err := video.NewFetcher(opts).Fetch(ctx, id)
		handleErr(err)

		if erase != nil {
			erase()
		}

		report := checkReport{Access: access}
		if m, ok := meta.Get(); ok {
			report.Metadata = &m
		}

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(report))
			return
		}

		cmd.Println(renderReport(report, time.Since(start)))
	},
}

func renderReport(r checkReport, took time.Duration) string {
	label := style.New().Foreground(color.Blue).Bold(true).Width(10).Render

	status := style.Fg(color.Green)(icon.Get(icon.Success) + " accessible via " + r.Endpoint)
	if !r.Accessible {
		status = style.Fg(color.Red)(icon.Get(icon.Blocked) + " every embed endpoint failed")
	}

	lines := []string{
		style.Bold(r.VideoID),
		label("Status") + status,
	}

	if r.EmbedURL != "" {
		lines = append(lines, label("Embed")+icon.Get(icon.Link)+" "+r.EmbedURL)
	}

	if m := r.Metadata; m != nil {
		lines = append(lines, label("Title")+m.Title)
		if m.Author != "" {
			lines = append(lines, label("Author")+m.Author)
		}
		if m.Duration > 0 {
			lines = append(lines, label("Duration")+video.FormatDuration(m.Duration))
		}
		if m.Thumbnail != "" {
			lines = append(lines, label("Thumbnail")+style.Faint(m.Thumbnail))
		}
	} else {
		lines = append(lines, label("Metadata")+style.Fg(color.Yellow)("unavailable"))
	}

	lines = append(lines, style.Faint(fmt.Sprintf("took %s", took.Round(time.Millisecond))))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.AccentColor).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
