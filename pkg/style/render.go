package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/rules"
)

// Indicators
const (
	ExcludedMark = "✗"
	BranchMark   = "├── "
	LastMark     = "└── "
	PipeMark     = "│   "
	BlankMark    = "    "
)

// Printer renders modpick's human readable output. A plain printer emits
// the same text without styling.
type Printer struct {
	plain  bool
	markup *MarkupParser
}

// NewPrinter creates a printer; plain disables styling.
func NewPrinter(plain bool) *Printer {
	return &Printer{plain: plain, markup: NewMarkupParser(plain)}
}

func (p *Printer) paint(st lipgloss.Style, s string) string {
	if p.plain || s == "" {
		return s
	}
	return st.Render(s)
}

// Template fills the {{key}} placeholders of text from vars and renders its
// "[tag]text[/tag]" markup.
func (p *Printer) Template(text string, vars map[string]string) string {
	return p.markup.RenderTemplate(text, vars)
}

// Tree renders nodes as an indented tree under title.
func (p *Printer) Tree(title string, nodes []Node) string {
	var b strings.Builder
	b.WriteString(p.paint(TitleStyle, title))
	b.WriteString("\n")
	p.branch(&b, nodes, "")
	return strings.TrimRight(b.String(), "\n")
}

func (p *Printer) branch(b *strings.Builder, nodes []Node, prefix string) {
	for i, n := range nodes {
		mark, next := BranchMark, PipeMark
		if i == len(nodes)-1 {
			mark, next = LastMark, BlankMark
		}

		line := fmt.Sprintf("%s %s", n.Caption, p.paint(KindStyle(n.Kind), "["+strings.ToLower(string(n.Kind))+"]"))
		if n.Value != "" {
			line += ": " + p.paint(ValueStyle, n.Value)
		}
		if n.Disabled {
			line = p.paint(MutedStyle, line)
		}
		b.WriteString(prefix + mark + line + "\n")
		p.branch(b, n.Children, prefix+next)
	}
}

// Exclusions renders the excluded mods grouped by directory.
func (p *Printer) Exclusions(e rules.Exclusions, empty string) string {
	if len(e) == 0 {
		return p.paint(MutedStyle, empty)
	}

	var b strings.Builder
	for _, dir := range e.Keys() {
		ids := e[dir].Sorted()
		b.WriteString(fmt.Sprintf("%s (%d)\n", p.paint(PathStyle, dir), len(ids)))
		for _, id := range ids {
			b.WriteString(Indent(fmt.Sprintf("%s %s", p.paint(ErrorStyle, ExcludedMark), id), 1))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Error renders err with its code and details.
func (p *Printer) Error(err error) string {
	if err == nil {
		return ""
	}
	msg := p.paint(ErrorStyle, "Error:") + " " + err.Error()
	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		return msg
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msg += "\n" + Indent(p.paint(MutedStyle, fmt.Sprintf("%s: %v", k, details[k])), 1)
	}
	return msg
}
