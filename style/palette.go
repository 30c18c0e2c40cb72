package style

import "github.com/charmbracelet/lipgloss"

// AccentColor frames boxed CLI reports.
var AccentColor = lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#cba6f7"}
