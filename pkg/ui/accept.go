package ui

import (
	"context"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/arthur-debert/modpick/pkg/rules"
)

// AcceptPresenter implements rules.Presenter without asking anything: every
// question is answered with the value it was seeded with. It backs the
// non-interactive mode of the choose command.
type AcceptPresenter struct{}

func (AcceptPresenter) Select(ctx context.Context, req rules.SelectRequest) *future.Future[string] {
	if ctx.Err() != nil {
		return future.Cancelled[string]()
	}
	return future.Resolved(req.Current)
}

func (AcceptPresenter) PresentNested(ctx context.Context, holder rules.RuleHolder, initial *choice.Holder) *future.Future[*choice.Holder] {
	if ctx.Err() != nil {
		return future.Cancelled[*choice.Holder]()
	}
	if initial != nil {
		return future.Resolved(initial)
	}
	defaults, err := rules.DefaultChoices(holder)
	if err != nil {
		return future.Failed[*choice.Holder](err)
	}
	return future.Resolved(defaults)
}
