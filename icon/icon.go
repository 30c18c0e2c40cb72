// Package icon provides a multi-variant rendering engine for CLI status symbols.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/spf13/viper"
	"github.com/toumei/toumei/key"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns every registered icon style identifier.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Link
	Search
	Mark
	Blocked
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "\uf00d",
		plain:   "✗",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "…",
		kaomoji: "(・_・;)",
		squares: "🟨",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "\uf0c1",
		plain:   "~",
		kaomoji: "(°ロ°)☝",
		squares: "🟦",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "\uf002",
		plain:   "?",
		kaomoji: "(・・ )?",
		squares: "🟪",
	},
	Mark: {
		emoji:   "📌",
		nerd:    "\uf08d",
		plain:   "*",
		kaomoji: "(￣▽￣)ノ",
		squares: "🟧",
	},
	Blocked: {
		emoji:   "🚧",
		nerd:    "\uf05e",
		plain:   "!",
		kaomoji: "(╯°□°)╯",
		squares: "⬛",
	},
}

// Get retrieves the representation matching the configured icons variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for i.
func Get(i Icon) string {
	if d, ok := icons[i]; ok {
		return d.Get()
	}
	return ""
}
