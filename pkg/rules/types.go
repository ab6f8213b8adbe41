package rules

import (
	"context"
	"sort"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/arthur-debert/modpick/pkg/mods"
	"github.com/rs/zerolog"
)

// Kind identifies a rule variant. The values double as the "type" tag in
// the rules document.
type Kind string

const (
	KindDefined   Kind = "DEFINED"
	KindGenerated Kind = "GENERATED"
	KindNested    Kind = "NESTED"
)

// Rule is a node of the rule tree. The variants are *DefinedRule,
// *GeneratedRule and *NestedRule.
type Rule interface {
	ID() string
	Caption() string
	Tooltip() string
	Kind() Kind

	// DefaultChoice is the choice assumed when the user has not made one.
	DefaultChoice() (choice.Choice, bool)

	// Resolve applies c to out. It returns false without touching out when
	// c is not the variant this rule expects.
	Resolve(c choice.Choice, out Exclusions) bool

	// UpdateChoice runs the interaction for this rule through p, seeded
	// with prev, and completes with the new choice.
	UpdateChoice(ctx context.Context, prev choice.Choice, p Presenter) *future.Future[choice.Choice]

	sealed()
}

// RuleHolder owns an ordered list of child rules and titles the screen
// listing them.
type RuleHolder interface {
	Rules() ([]Rule, error)
	ScreenTitle() string
	CanDisable() bool
	ResolveChoices(h *choice.Holder) (Exclusions, error)
}

// Exclusions maps a mod directory to the ids of the mods excluded there.
type Exclusions map[string]choice.Set

// Keys returns the directories in lexical order.
func (e Exclusions) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SelectOption is one entry offered by Presenter.Select.
type SelectOption struct {
	ID      string
	Caption string
	Tooltip string
}

// SelectRequest asks the presenter to pick one option of a rule.
type SelectRequest struct {
	RuleID  string
	Title   string
	Tooltip string
	Options []SelectOption
	Current string
}

// Presenter runs the interactive steps of UpdateChoice.
type Presenter interface {
	// Select completes with the id of the picked option.
	Select(ctx context.Context, req SelectRequest) *future.Future[string]

	// PresentNested opens the screen for holder seeded with initial and
	// completes with the final choices, or is cancelled.
	PresentNested(ctx context.Context, holder RuleHolder, initial *choice.Holder) *future.Future[*choice.Holder]
}

// Walker enumerates the mods found in a logical mod directory, in
// discovery order.
type Walker interface {
	Walk(dir string, visit func(mods.Metadata) error) error
}

// Translator renders localization keys.
type Translator interface {
	Text(key string) string
	Format(key string, args ...any) string
}

// Deps carries the collaborators a GeneratedRule needs.
type Deps struct {
	Walker     Walker
	Translator Translator
	Logger     zerolog.Logger
}

// Info is the identity and display text shared by every rule.
type Info struct {
	ID      string
	Caption string
	Tooltip string
}

type base struct {
	info Info
	log  zerolog.Logger
}

func (b *base) ID() string      { return b.info.ID }
func (b *base) Caption() string { return b.info.Caption }
func (b *base) Tooltip() string { return b.info.Tooltip }
func (b *base) sealed()         {}
