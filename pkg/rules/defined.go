package rules

import (
	"context"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/rs/zerolog"
)

// Option is one entry of a DefinedRule. Children are the rules that only
// apply while the option is selected; Disabled makes that nested set start
// out disabled. Default marks the option picked by default when the first
// option starts disabled.
type Option struct {
	ID       string
	Caption  string
	Tooltip  string
	Children []Rule
	Disabled bool
	Default  bool

	log zerolog.Logger
}

// Rules returns the option's nested rules.
func (o Option) Rules() ([]Rule, error) {
	return append([]Rule(nil), o.Children...), nil
}

func (o Option) ScreenTitle() string { return o.Caption }

// CanDisable is true: a nested option set can always be switched off.
func (o Option) CanDisable() bool { return true }

func (o Option) ResolveChoices(h *choice.Holder) (Exclusions, error) {
	return resolveHolder(o, o.Children, h, o.log), nil
}

func (o Option) defaults() *choice.Holder {
	return defaultHolder(o.Children, o.Disabled)
}

// DefinedRule offers a fixed, ordered list of options.
type DefinedRule struct {
	base
	options []Option
}

// NewDefinedRule copies options into a new rule.
func NewDefinedRule(info Info, options []Option, log zerolog.Logger) *DefinedRule {
	opts := make([]Option, len(options))
	for i, o := range options {
		o.Children = append([]Rule(nil), o.Children...)
		o.log = log
		opts[i] = o
	}
	return &DefinedRule{base: base{info: info, log: log}, options: opts}
}

func (r *DefinedRule) Kind() Kind { return KindDefined }

// Options returns a copy of the option list.
func (r *DefinedRule) Options() []Option {
	return append([]Option(nil), r.options...)
}

// Option looks up an option by id.
func (r *DefinedRule) Option(id string) (Option, bool) {
	for _, o := range r.options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// DefaultChoice selects the first option, or the option marked Default when
// the first one starts disabled.
func (r *DefinedRule) DefaultChoice() (choice.Choice, bool) {
	if len(r.options) == 0 {
		return nil, false
	}
	pick := r.options[0]
	if pick.Disabled {
		for _, o := range r.options[1:] {
			if o.Default {
				pick = o
				break
			}
		}
	}
	return defaultFor(pick), true
}

func defaultFor(o Option) *choice.Defined {
	if len(o.Children) == 0 {
		return choice.NewDefined(o.ID)
	}
	return choice.NewDefinedNested(o.ID, o.defaults())
}

func (r *DefinedRule) Resolve(c choice.Choice, out Exclusions) bool {
	d, ok := c.(*choice.Defined)
	if !ok || d == nil {
		return false
	}
	opt, ok := r.Option(d.Option())
	if !ok {
		return false
	}
	if len(opt.Children) == 0 {
		return true
	}

	nested := d.Nested()
	if nested == nil {
		nested = opt.defaults()
	}
	if nested.Disabled() && opt.CanDisable() {
		r.log.Debug().Str("rule", r.ID()).Str("option", opt.ID).Msg("Nested rules disabled, skipping")
		return true
	}
	resolveRules(opt.Children, nested, out, r.log)
	return true
}

func (r *DefinedRule) UpdateChoice(ctx context.Context, prev choice.Choice, p Presenter) *future.Future[choice.Choice] {
	def, ok := r.DefaultChoice()
	if !ok {
		return future.Failed[choice.Choice](errors.Newf(errors.ErrInvalidInput, "rule %q has no options", r.ID()))
	}
	current, usable := prev.(*choice.Defined)
	if usable && current != nil {
		_, usable = r.Option(current.Option())
	} else {
		usable = false
	}
	if !usable {
		r.log.Debug().Str("rule", r.ID()).Msg("No usable previous choice, starting from default")
		current = def.(*choice.Defined)
	}

	req := SelectRequest{
		RuleID:  r.ID(),
		Title:   r.Caption(),
		Tooltip: r.Tooltip(),
		Current: current.Option(),
	}
	for _, o := range r.options {
		req.Options = append(req.Options, SelectOption{ID: o.ID, Caption: o.Caption, Tooltip: o.Tooltip})
	}

	return future.ThenAsync(p.Select(ctx, req), func(id string) *future.Future[choice.Choice] {
		opt, ok := r.Option(id)
		if !ok {
			return future.Failed[choice.Choice](errors.Newf(errors.ErrInvalidInput, "rule %q has no option %q", r.ID(), id))
		}
		if len(opt.Children) == 0 {
			return future.Resolved[choice.Choice](choice.NewDefined(id))
		}

		seed := opt.defaults()
		if id == current.Option() && current.Nested() != nil {
			seed = current.Nested()
		}
		return future.Then(p.PresentNested(ctx, opt, seed), func(h *choice.Holder) (choice.Choice, error) {
			return choice.NewDefinedNested(id, h), nil
		})
	})
}
