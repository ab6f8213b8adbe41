package ui

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/arthur-debert/modpick/pkg/mods"
	"github.com/arthur-debert/modpick/pkg/rules"
	"github.com/arthur-debert/modpick/pkg/texts"
)

type screen struct {
	title   string
	options []string
	def     int
}

// scriptedPrompter answers Select from picks and Confirm from confirms.
type scriptedPrompter struct {
	picks    []int
	confirms []bool
	screens  []screen
	asked    []string
}

func (p *scriptedPrompter) Select(title string, options []string, def int) (int, error) {
	p.screens = append(p.screens, screen{title: title, options: options, def: def})
	if len(p.picks) == 0 {
		return -1, errors.New(errors.ErrInternal, "script exhausted")
	}
	pick := p.picks[0]
	p.picks = p.picks[1:]
	return pick, nil
}

func (p *scriptedPrompter) Confirm(question string, _ bool) (bool, error) {
	p.asked = append(p.asked, question)
	if len(p.confirms) == 0 {
		return false, errors.New(errors.ErrInternal, "script exhausted")
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

type dirWalker map[string][]mods.Metadata

func (w dirWalker) Walk(dir string, visit func(mods.Metadata) error) error {
	for _, m := range w[dir] {
		if err := visit(m); err != nil {
			return err
		}
	}
	return nil
}

// testTree builds a root with one DEFINED rule "pack": vanilla, or modded
// with a GENERATED rule over the mods directory holding alpha and beta.
func testTree() *rules.Rules {
	log := zerolog.Nop()
	deps := rules.Deps{
		Walker: dirWalker{"mods": {
			{ID: "alpha", Name: "Alpha"},
			{ID: "beta", Name: "Beta"},
		}},
		Translator: texts.Builtin(),
		Logger:     log,
	}
	modsRule := rules.NewGeneratedRule(rules.Info{ID: "mods", Caption: "Mods"},
		rules.GeneratedSource{Directories: []string{"mods"}, Defaults: choice.NewSet("beta")}, deps)
	pack := rules.NewDefinedRule(rules.Info{ID: "pack", Caption: "Pack", Tooltip: "Which pack"}, []rules.Option{
		{ID: "vanilla", Caption: "Vanilla"},
		{ID: "modded", Caption: "Modded", Children: []rules.Rule{modsRule}},
	}, log)
	return rules.NewRules([]rules.Rule{pack}, log)
}

func newPresenter(p Prompter) *ConsolePresenter {
	return NewConsolePresenter(p, texts.Builtin(), zerolog.Nop())
}

func TestConsoleSelect(t *testing.T) {
	p := &scriptedPrompter{picks: []int{0}}
	req := rules.SelectRequest{
		RuleID:  "pack",
		Title:   "Pack",
		Tooltip: "Which pack",
		Current: "modded",
		Options: []rules.SelectOption{{ID: "vanilla", Caption: "Vanilla"}, {ID: "modded", Caption: "@modpick.generated.on"}},
	}

	id, err := newPresenter(p).Select(context.Background(), req).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "vanilla", id)

	require.Len(t, p.screens, 1)
	assert.Equal(t, "Pack (Which pack)", p.screens[0].title)
	assert.Equal(t, []string{"Vanilla", "Enabled"}, p.screens[0].options)
	assert.Equal(t, 1, p.screens[0].def, "current option is preselected")
}

func TestConsoleSelectNoOptions(t *testing.T) {
	_, err := newPresenter(&scriptedPrompter{}).Select(context.Background(), rules.SelectRequest{RuleID: "x"}).
		Await(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestConsoleDoneKeepsDefaults(t *testing.T) {
	root := testTree()
	p := &scriptedPrompter{picks: []int{1}}

	got, err := newPresenter(p).PresentNested(context.Background(), root, nil).Await(context.Background())
	require.NoError(t, err)

	want, err := rules.DefaultChoices(root)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	require.Len(t, p.screens, 1)
	assert.Equal(t, "Mod selection", p.screens[0].title)
	assert.Equal(t, []string{"Pack: Vanilla", "Done", "Cancel"}, p.screens[0].options, "root cannot be disabled")
	assert.Equal(t, 1, p.screens[0].def)
}

func TestConsoleEditsNestedTree(t *testing.T) {
	root := testTree()
	p := &scriptedPrompter{picks: []int{
		0, // root: edit pack
		1, // pack: modded
		0, // modded screen: edit mods
		0, // mods screen: edit alpha
		1, // alpha: off
		3, // mods screen: done
		2, // modded screen: done
		1, // root: done
	}}

	got, err := newPresenter(p).PresentNested(context.Background(), root, nil).Await(context.Background())
	require.NoError(t, err)

	want := choice.NewHolder([]choice.Entry{
		{ID: "pack", Choice: choice.NewDefinedNested("modded", choice.NewHolder([]choice.Entry{
			{ID: "mods", Choice: choice.NewGenerated(choice.NewSet("alpha", "beta"), false)},
		}, false))},
	}, false)
	assert.True(t, want.Equal(got))

	modsScreen := p.screens[3]
	assert.Equal(t, []string{"Alpha: Enabled", "Beta: Disabled", "Disable this group", "Done", "Cancel"}, modsScreen.options)

	out, err := root.Resolve(got)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, out["mods"].Sorted())
}

func TestConsoleCancelledEditKeepsPrevious(t *testing.T) {
	root := testTree()
	p := &scriptedPrompter{picks: []int{
		0, // root: edit pack
		1, // pack: modded
		3, // modded screen: cancel, nothing changed
		1, // root: done
	}}

	got, err := newPresenter(p).PresentNested(context.Background(), root, nil).Await(context.Background())
	require.NoError(t, err)

	c, ok := got.Get("pack")
	require.True(t, ok)
	assert.True(t, choice.NewDefined("vanilla").Equal(c))
	assert.Empty(t, p.asked, "unchanged screens cancel without asking")
}

func TestConsoleCancelAsksWhenChanged(t *testing.T) {
	root := testTree()
	initial, err := rules.DefaultChoices(root)
	require.NoError(t, err)

	t.Run("discard", func(t *testing.T) {
		p := &scriptedPrompter{picks: []int{0, 1, 2, 2}, confirms: []bool{true}}
		_, err := newPresenter(p).PresentNested(context.Background(), root, initial).Await(context.Background())
		assert.True(t, future.IsCancelled(err))
		assert.Equal(t, []string{"Discard the changes made on this screen?"}, p.asked)
	})

	t.Run("keep editing", func(t *testing.T) {
		p := &scriptedPrompter{
			picks:    []int{0, 1, 2, 2, 1},
			confirms: []bool{false},
		}
		got, err := newPresenter(p).PresentNested(context.Background(), root, initial).Await(context.Background())
		require.NoError(t, err)
		c, _ := got.Get("pack")
		assert.Equal(t, "modded", c.(*choice.Defined).Option())
	})
}

func TestConsoleToggleDisabled(t *testing.T) {
	root := testTree()
	rule, _ := root.Find("pack")
	opt, _ := rule.(*rules.DefinedRule).Option("modded")

	p := &scriptedPrompter{picks: []int{1, 1}}
	got, err := newPresenter(p).PresentNested(context.Background(), opt, nil).Await(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Disabled())

	require.Len(t, p.screens, 2)
	assert.Equal(t, "Modded (disabled)", p.screens[1].title)
	assert.Equal(t, []string{"Enable this group", "Done", "Cancel"}, p.screens[1].options)
}

func TestConsoleContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newPresenter(&scriptedPrompter{}).PresentNested(ctx, testTree(), nil).Await(context.Background())
	assert.True(t, future.IsCancelled(err))
}

func TestConsolePrompterError(t *testing.T) {
	_, err := newPresenter(&scriptedPrompter{}).PresentNested(context.Background(), testTree(), nil).
		Await(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestAcceptPresenter(t *testing.T) {
	root := testTree()
	ctx := context.Background()

	id, err := AcceptPresenter{}.Select(ctx, rules.SelectRequest{Current: "modded"}).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "modded", id)

	got, err := AcceptPresenter{}.PresentNested(ctx, root, nil).Await(ctx)
	require.NoError(t, err)
	want, _ := rules.DefaultChoices(root)
	assert.True(t, want.Equal(got))

	rule, _ := root.Find("pack")
	c, err := rule.UpdateChoice(ctx, choice.NewDefined("modded"), AcceptPresenter{}).Await(ctx)
	require.NoError(t, err)
	d := c.(*choice.Defined)
	assert.Equal(t, "modded", d.Option())
	require.NotNil(t, d.Nested())
	modsChoice, ok := d.Nested().Get("mods")
	require.True(t, ok)
	assert.True(t, choice.NewGenerated(choice.NewSet("beta"), false).Equal(modsChoice))
}
