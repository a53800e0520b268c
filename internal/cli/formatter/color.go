package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityBadge renders a priority as a colored marker.
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ high")
	case domain.PriorityMedium:
		return StyleYellow.Render("● medium")
	case domain.PriorityLow:
		return StyleDim.Render("▽ low")
	default:
		return StyleDim.Render(string(p))
	}
}

// SlotKindLabel renders a slot kind in its own color.
func SlotKindLabel(k scheduler.SlotKind) string {
	switch k {
	case scheduler.SlotWork:
		return StyleGreen.Render("work")
	case scheduler.SlotBreak:
		return StyleBlue.Render("break")
	case scheduler.SlotRemainder:
		return StylePurple.Render("remainder")
	default:
		return StyleFg.Render(string(k))
	}
}

// Swatch renders a block in the given hex color, or a dim dot when the
// color is unset.
func Swatch(hex string) string {
	if hex == "" {
		return StyleDim.Render("·")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
