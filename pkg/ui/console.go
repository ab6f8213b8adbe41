package ui

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/arthur-debert/modpick/pkg/rules"
	"github.com/arthur-debert/modpick/pkg/style"
)

// Text keys used by the console screens.
const (
	KeyDone          = "modpick.ui.done"
	KeyCancel        = "modpick.ui.cancel"
	KeyDisable       = "modpick.ui.disable"
	KeyEnable        = "modpick.ui.enable"
	KeyDisabled      = "modpick.ui.disabled"
	KeyConfirmCancel = "modpick.ui.confirm_cancel"
)

// Texts renders localization keys and "@key" display values.
type Texts interface {
	Text(key string) string
	Resolve(value string) string
}

// ConsolePresenter implements rules.Presenter on top of a Prompter. Every
// interaction completes before the returned future is handed back.
type ConsolePresenter struct {
	prompter Prompter
	texts    Texts
	logger   zerolog.Logger
}

// NewConsolePresenter creates a presenter asking its questions through p.
func NewConsolePresenter(p Prompter, texts Texts, logger zerolog.Logger) *ConsolePresenter {
	return &ConsolePresenter{prompter: p, texts: texts, logger: logger}
}

// Select asks for one option of req. The current option is preselected.
func (c *ConsolePresenter) Select(ctx context.Context, req rules.SelectRequest) *future.Future[string] {
	if ctx.Err() != nil {
		return future.Cancelled[string]()
	}
	if len(req.Options) == 0 {
		return future.Failed[string](errors.Newf(errors.ErrInvalidInput, "rule %q has no options", req.RuleID))
	}

	labels := make([]string, len(req.Options))
	current := 0
	for i, o := range req.Options {
		labels[i] = c.texts.Resolve(o.Caption)
		if o.ID == req.Current {
			current = i
		}
	}

	picked, err := c.prompter.Select(c.title(req.Title, req.Tooltip), labels, current)
	if err != nil {
		return future.Failed[string](err)
	}
	if picked < 0 || picked >= len(labels) {
		return future.Failed[string](errors.Newf(errors.ErrInternal, "selection %d out of range", picked))
	}
	c.logger.Debug().Str("rule", req.RuleID).Str("option", req.Options[picked].ID).Msg("Option selected")
	return future.Resolved(req.Options[picked].ID)
}

// PresentNested lists the rules of holder with their current values and
// lets the user edit them one at a time until Done or Cancel is picked.
// Cancelling an edit keeps the rule's previous value; cancelling the
// screen cancels the returned future.
func (c *ConsolePresenter) PresentNested(ctx context.Context, holder rules.RuleHolder, initial *choice.Holder) *future.Future[*choice.Holder] {
	children, err := holder.Rules()
	if err != nil {
		return future.Failed[*choice.Holder](err)
	}
	if initial == nil {
		if initial, err = rules.DefaultChoices(holder); err != nil {
			return future.Failed[*choice.Holder](err)
		}
	}

	state := initial
	title := c.texts.Resolve(holder.ScreenTitle())
	for {
		if ctx.Err() != nil {
			return future.Cancelled[*choice.Holder]()
		}

		var labels []string
		if !state.Disabled() {
			for _, rule := range children {
				labels = append(labels, c.summary(rule, state))
			}
		}
		edits := len(labels)
		toggle := -1
		if holder.CanDisable() {
			toggle = len(labels)
			if state.Disabled() {
				labels = append(labels, c.texts.Text(KeyEnable))
			} else {
				labels = append(labels, c.texts.Text(KeyDisable))
			}
		}
		done := len(labels)
		labels = append(labels, c.texts.Text(KeyDone))
		cancel := len(labels)
		labels = append(labels, c.texts.Text(KeyCancel))

		screenTitle := title
		if state.Disabled() {
			screenTitle = fmt.Sprintf("%s %s", title, c.texts.Text(KeyDisabled))
		}

		picked, err := c.prompter.Select(screenTitle, labels, done)
		if err != nil {
			return future.Failed[*choice.Holder](err)
		}
		if picked < 0 || picked >= len(labels) {
			return future.Failed[*choice.Holder](errors.Newf(errors.ErrInternal, "selection %d out of range", picked))
		}

		switch {
		case picked < edits:
			rule := children[picked]
			prev, _ := state.Get(rule.ID())
			next, err := rule.UpdateChoice(ctx, prev, c).Await(ctx)
			if future.IsCancelled(err) {
				c.logger.Debug().Str("rule", rule.ID()).Msg("Edit cancelled, keeping previous choice")
				continue
			}
			if err != nil {
				return future.Failed[*choice.Holder](err)
			}
			state = state.With(rule.ID(), next)
		case picked == toggle:
			state = state.WithDisabled(!state.Disabled())
		case picked == done:
			return future.Resolved(state)
		case picked == cancel:
			if state.Equal(initial) {
				return future.Cancelled[*choice.Holder]()
			}
			discard, err := c.prompter.Confirm(c.texts.Text(KeyConfirmCancel), false)
			if err != nil {
				return future.Failed[*choice.Holder](err)
			}
			if discard {
				return future.Cancelled[*choice.Holder]()
			}
		}
	}
}

func (c *ConsolePresenter) title(title, tooltip string) string {
	title = c.texts.Resolve(title)
	if tooltip == "" {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, c.texts.Resolve(tooltip))
}

// summary renders "caption: value" for a rule of the nested screen.
func (c *ConsolePresenter) summary(rule rules.Rule, state *choice.Holder) string {
	caption := c.texts.Resolve(rule.Caption())
	current, ok := state.Get(rule.ID())
	if !ok {
		current, ok = rule.DefaultChoice()
	}
	if !ok {
		return caption
	}
	return fmt.Sprintf("%s: %s", caption, style.Describe(rule, current, c.texts))
}
