package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/toumei/toumei/filesystem"
	"github.com/toumei/toumei/icon"
	"github.com/toumei/toumei/util"
	"github.com/toumei/toumei/where"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"session snapshot", "sessions", mo.Some("s"), where.Sessions},
	{"log files", "logs", mo.Some("l"), where.Logs},
	{"version cache", "version-cache", mo.None[string](), where.Version},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if short, ok := target.argShort.Get(); ok {
			clearCmd.Flags().BoolP(target.argLong, short, false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}

	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove persisted sessions, log files and cached lookups",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) {
			names := lo.Map(selected, func(t clearTarget, _ int) string { return t.name })

			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: fmt.Sprintf("Remove %s?", strings.Join(names, ", ")),
				Default: false,
			}, &confirmed))

			if !confirmed {
				return
			}
		}

		for _, target := range selected {
			path := target.location()
			if exists, _ := filesystem.API().Exists(path); !exists {
				cmd.Printf("%s %s already clear\n", icon.Get(icon.Success), util.Capitalize(target.name))
				continue
			}

			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := util.Delete(path)
			erase()
			handleErr(err)

			cmd.Printf("%s %s cleared\n", icon.Get(icon.Success), util.Capitalize(target.name))
		}
	},
}
