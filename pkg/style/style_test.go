package style

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/mods"
	"github.com/arthur-debert/modpick/pkg/rules"
	"github.com/arthur-debert/modpick/pkg/texts"
)

type countingWalker struct {
	found map[string][]mods.Metadata
	calls int
}

func (w *countingWalker) Walk(dir string, visit func(mods.Metadata) error) error {
	w.calls++
	for _, m := range w.found[dir] {
		if err := visit(m); err != nil {
			return err
		}
	}
	return nil
}

func testRoot(w rules.Walker) *rules.Rules {
	log := zerolog.Nop()
	deps := rules.Deps{Walker: w, Translator: texts.Builtin(), Logger: log}
	modsRule := rules.NewGeneratedRule(rules.Info{ID: "mods", Caption: "Mods"},
		rules.GeneratedSource{Directories: []string{"mods"}, Defaults: choice.NewSet("beta")}, deps)
	pack := rules.NewDefinedRule(rules.Info{ID: "pack", Caption: "Pack"}, []rules.Option{
		{ID: "vanilla", Caption: "Vanilla"},
		{ID: "modded", Caption: "Modded", Children: []rules.Rule{modsRule}},
	}, log)
	extras := rules.NewNestedRule(rules.Info{ID: "extras", Caption: "Extras"}, nil, true, log)
	return rules.NewRules([]rules.Rule{pack, extras}, log)
}

func modded() *choice.Holder {
	return choice.NewHolder([]choice.Entry{
		{ID: "pack", Choice: choice.NewDefined("modded")},
		{ID: "extras", Choice: choice.NewHolder(nil, true)},
	}, false)
}

func TestBuildTree(t *testing.T) {
	w := &countingWalker{found: map[string][]mods.Metadata{"mods": {{ID: "alpha"}, {ID: "beta", Name: "Beta"}}}}
	root := testRoot(w)

	nodes, err := BuildTree(root, modded(), texts.Builtin(), false)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Modded", nodes[0].Value)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "1 Disabled", nodes[0].Children[0].Value, "defaults apply to the nested holder")
	assert.Empty(t, nodes[0].Children[0].Children)
	assert.True(t, nodes[1].Disabled)
	assert.Equal(t, "(disabled)", nodes[1].Value)
	assert.Zero(t, w.calls, "unexpanded trees never scan")

	nodes, err = BuildTree(root, modded(), texts.Builtin(), true)
	require.NoError(t, err)
	generated := nodes[0].Children[0].Children
	require.Len(t, generated, 2)
	assert.Equal(t, "alpha", generated[0].Caption)
	assert.Equal(t, "Enabled", generated[0].Value)
	assert.Equal(t, "Beta", generated[1].Caption)
	assert.Equal(t, "Disabled", generated[1].Value)
	assert.Equal(t, 1, w.calls)
}

func TestPrinterTreePlain(t *testing.T) {
	w := &countingWalker{found: map[string][]mods.Metadata{"mods": {{ID: "alpha"}}}}
	nodes, err := BuildTree(testRoot(w), modded(), texts.Builtin(), true)
	require.NoError(t, err)

	got := NewPrinter(true).Tree("Mod selection", nodes)
	want := strings.Join([]string{
		"Mod selection",
		"├── Pack [defined]: Modded",
		"│   └── Mods [generated]: 1 Disabled",
		"│       └── alpha [defined]: Enabled",
		"└── Extras [nested]: (disabled)",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestPrinterExclusionsPlain(t *testing.T) {
	p := NewPrinter(true)
	assert.Equal(t, "nothing", p.Exclusions(rules.Exclusions{}, "nothing"))

	e := rules.Exclusions{
		"mods":   choice.NewSet("beta", "alpha"),
		"config": choice.NewSet("x"),
	}

	want := strings.Join([]string{
		"config (1)",
		"  ✗ x",
		"mods (2)",
		"  ✗ alpha",
		"  ✗ beta",
	}, "\n")
	assert.Equal(t, want, p.Exclusions(e, "nothing"))
}

func TestPrinterError(t *testing.T) {
	p := NewPrinter(true)
	assert.Empty(t, p.Error(nil))

	err := errors.New(errors.ErrNotFound, "rule kind 'FOO' not found").
		WithDetail("known", []string{"DEFINED"}).
		WithDetail("field", "rules[0].type")
	assert.Equal(t, "Error: [NOT_FOUND] rule kind 'FOO' not found\n  field: rules[0].type\n  known: [DEFINED]", p.Error(err))
}

func TestMarkup(t *testing.T) {
	plain := NewMarkupParser(true)
	assert.Equal(t, "keep x and [unknown]y[/unknown]", plain.Render("keep [bold]x[/bold] and [unknown]y[/unknown]"))
	assert.Equal(t, "nested", plain.Render("[bold][value]nested[/value][/bold]"))
	assert.Equal(t, "hello world", plain.RenderTemplate("hello [path]{{name}}[/path]", map[string]string{"name": "world"}))

	styled := NewMarkupParser(false)
	out := styled.Render("[error][bold]x[/bold][/error]")
	assert.Contains(t, out, "x")
	assert.NotContains(t, out, "[bold]")
	assert.NotContains(t, out, "[/error]")
}

func TestPrinterTemplate(t *testing.T) {
	vars := map[string]string{"path": "/game/config/choices.json"}
	assert.Equal(t, "Saved to /game/config/choices.json", NewPrinter(true).Template("Saved to [path]{{path}}[/path]", vars))

	styled := NewPrinter(false).Template("Saved to [path]{{path}}[/path]", vars)
	assert.Contains(t, styled, "/game/config/choices.json")
	assert.NotContains(t, styled, "[/path]")
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "Hello", Indent("Hello", 0))
	assert.Equal(t, "    Hello", Indent("Hello", 2))
}
