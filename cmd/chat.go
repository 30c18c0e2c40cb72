package cmd

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"github.com/toumei/toumei/chat"
	"github.com/toumei/toumei/color"
	"github.com/toumei/toumei/style"
	"github.com/toumei/toumei/util"
)

func init() {
	rootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the offline assistant a question",
	Long: `Ask the offline assistant a question.
Replies come from a fixed keyword table and are the same ones served by POST /api/chat/send.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := strings.Join(args, " ")
		width := util.TerminalWidth(80) - 2

		cmd.Println(style.Fg(color.Purple)(style.Bold(chat.Title(message))))
		cmd.Println(indent.String(wordwrap.String(chat.Respond(message), width), 2))
	},
}
