package rules

import (
	"context"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/rs/zerolog"
)

// NestedRule groups child rules under one caption. Its choice is a
// choice.Holder keyed by the children's ids.
type NestedRule struct {
	base
	children   []Rule
	canDisable bool
}

// NewNestedRule copies children into a new group.
func NewNestedRule(info Info, children []Rule, canDisable bool, log zerolog.Logger) *NestedRule {
	return &NestedRule{
		base:       base{info: info, log: log},
		children:   append([]Rule(nil), children...),
		canDisable: canDisable,
	}
}

func (r *NestedRule) Kind() Kind { return KindNested }

func (r *NestedRule) Rules() ([]Rule, error) {
	return append([]Rule(nil), r.children...), nil
}

func (r *NestedRule) ScreenTitle() string { return r.Caption() }
func (r *NestedRule) CanDisable() bool    { return r.canDisable }

func (r *NestedRule) ResolveChoices(h *choice.Holder) (Exclusions, error) {
	return resolveHolder(r, r.children, h, r.log), nil
}

func (r *NestedRule) DefaultChoice() (choice.Choice, bool) {
	return defaultHolder(r.children, false), true
}

func (r *NestedRule) Resolve(c choice.Choice, out Exclusions) bool {
	h, ok := c.(*choice.Holder)
	if !ok || h == nil {
		return false
	}
	if h.Disabled() && r.canDisable {
		r.log.Debug().Str("rule", r.ID()).Msg("Group disabled, skipping")
		return true
	}
	resolveRules(r.children, h, out, r.log)
	return true
}

func (r *NestedRule) UpdateChoice(ctx context.Context, prev choice.Choice, p Presenter) *future.Future[choice.Choice] {
	seed, ok := prev.(*choice.Holder)
	if !ok || seed == nil {
		r.log.Debug().Str("rule", r.ID()).Msg("No usable previous choice, starting from default")
		seed = defaultHolder(r.children, false)
	}
	return future.Then(p.PresentNested(ctx, r, seed), func(h *choice.Holder) (choice.Choice, error) {
		return h, nil
	})
}
