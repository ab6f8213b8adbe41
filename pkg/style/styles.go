package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/modpick/pkg/rules"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)
)

// Rule kind styles
var (
	DefinedStyle = lipgloss.NewStyle().
			Foreground(DefinedColor).
			Bold(true)

	GeneratedStyle = lipgloss.NewStyle().
			Foreground(GeneratedColor).
			Bold(true)

	NestedStyle = lipgloss.NewStyle().
			Foreground(NestedColor).
			Bold(true)
)

// KindStyle returns the style of a rule kind badge.
func KindStyle(k rules.Kind) lipgloss.Style {
	switch k {
	case rules.KindDefined:
		return DefinedStyle
	case rules.KindGenerated:
		return GeneratedStyle
	case rules.KindNested:
		return NestedStyle
	default:
		return MutedStyle
	}
}

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
