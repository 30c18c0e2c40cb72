package version

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/toumei/toumei/color"
	"github.com/toumei/toumei/constant"
	"github.com/toumei/toumei/icon"
	"github.com/toumei/toumei/key"
	"github.com/toumei/toumei/style"
	"github.com/toumei/toumei/util"
)

// Notify writes an alert to w when a newer release than the running binary exists.
// It is a no-op unless cli.version_check is enabled.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a newer release...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%s %s %s %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		icon.Get(icon.Mark),
		style.Bold(constant.Toumei+" "+latest+" is available"),
		style.Faint(fmt.Sprintf("(you're on %s)", constant.Version)),
		style.Faint("https://github.com/toumei/toumei/releases/tag/v"+latest),
	)
}
