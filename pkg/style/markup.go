package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tagPattern matches innermost tags: content holds no "[" other than the
// ones opening ANSI escape sequences.
var tagPattern = regexp.MustCompile(`\[(\w+)\]((?:[^\[]|\x1b\[)*)\[/(\w+)\]`)

// MarkupParser renders "[tag]text[/tag]" markup. A plain parser strips the
// tags and keeps the text.
type MarkupParser struct {
	styles map[string]lipgloss.Style
	plain  bool
}

// NewMarkupParser creates a parser with the default tags.
func NewMarkupParser(plain bool) *MarkupParser {
	return &MarkupParser{
		plain: plain,
		styles: map[string]lipgloss.Style{
			"title":     TitleStyle,
			"success":   SuccessStyle,
			"error":     ErrorStyle,
			"warning":   WarningStyle,
			"value":     ValueStyle,
			"path":      PathStyle,
			"muted":     MutedStyle,
			"bold":      lipgloss.NewStyle().Bold(true),
			"defined":   DefinedStyle,
			"generated": GeneratedStyle,
			"nested":    NestedStyle,
		},
	}
}

// Render processes markup text. Unknown tags are left untouched; nested tags
// are rendered inside out.
func (p *MarkupParser) Render(text string) string {
	for {
		changed := false
		text = tagPattern.ReplaceAllStringFunc(text, func(match string) string {
			m := tagPattern.FindStringSubmatch(match)
			if m[1] != m[3] {
				return match
			}
			st, ok := p.styles[m[1]]
			if !ok {
				return match
			}
			changed = true
			if p.plain {
				return m[2]
			}
			return st.Render(m[2])
		})
		if !changed {
			return text
		}
	}
}

// RenderTemplate substitutes {{key}} placeholders, then renders markup.
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}
