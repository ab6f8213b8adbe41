package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/arthur-debert/modpick/pkg/mods"
	"github.com/rs/zerolog"
)

type fakeWalker struct {
	dirs  map[string][]mods.Metadata
	fail  map[string]error
	calls map[string]int
}

func newFakeWalker(dirs map[string][]mods.Metadata) *fakeWalker {
	return &fakeWalker{dirs: dirs, fail: map[string]error{}, calls: map[string]int{}}
}

func (w *fakeWalker) Walk(dir string, visit func(mods.Metadata) error) error {
	w.calls[dir]++
	if err := w.fail[dir]; err != nil {
		return err
	}
	for _, m := range w.dirs[dir] {
		if err := visit(m); err != nil {
			return err
		}
	}
	return nil
}

type fakeTranslator struct{}

func (fakeTranslator) Text(key string) string {
	return "text(" + strings.TrimPrefix(key, "@") + ")"
}

func (fakeTranslator) Format(key string, args ...any) string {
	return fmt.Sprintf("%s%v", key, args)
}

type fakePresenter struct {
	answers  []string
	nested   func(holder RuleHolder, initial *choice.Holder) *future.Future[*choice.Holder]
	requests []SelectRequest
	seeds    []*choice.Holder
}

// Select answers from the queue; an empty answer cancels.
func (p *fakePresenter) Select(_ context.Context, req SelectRequest) *future.Future[string] {
	p.requests = append(p.requests, req)
	if len(p.answers) == 0 {
		return future.Resolved(req.Current)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == "" {
		return future.Cancelled[string]()
	}
	return future.Resolved(answer)
}

func (p *fakePresenter) PresentNested(_ context.Context, holder RuleHolder, initial *choice.Holder) *future.Future[*choice.Holder] {
	p.seeds = append(p.seeds, initial)
	if p.nested == nil {
		return future.Resolved(initial)
	}
	return p.nested(holder, initial)
}

func meta(ids ...string) []mods.Metadata {
	out := make([]mods.Metadata, 0, len(ids))
	for _, id := range ids {
		out = append(out, mods.Metadata{ID: id, Name: strings.ToUpper(id)})
	}
	return out
}

func testDeps(w Walker) Deps {
	return Deps{Walker: w, Translator: fakeTranslator{}, Logger: zerolog.Nop()}
}

func ids(rs []Rule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

func optionIDs(r Rule) []string {
	var out []string
	for _, o := range r.(*DefinedRule).Options() {
		out = append(out, o.ID)
	}
	return out
}

func await[T any](f *future.Future[T]) (T, error) {
	return f.Await(context.Background())
}
