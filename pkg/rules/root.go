package rules

import (
	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/logging"
	"github.com/rs/zerolog"
)

// TitleKey titles the top-level questionnaire screen.
const TitleKey = "@modpick.title"

// Rules is the root of a rule tree.
type Rules struct {
	children []Rule
	log      zerolog.Logger
}

// NewRules copies children into a new root.
func NewRules(children []Rule, log zerolog.Logger) *Rules {
	return &Rules{children: append([]Rule(nil), children...), log: log}
}

func (r *Rules) Rules() ([]Rule, error) {
	return append([]Rule(nil), r.children...), nil
}

func (r *Rules) ScreenTitle() string { return TitleKey }

// CanDisable is false: the questionnaire as a whole cannot be switched off.
func (r *Rules) CanDisable() bool { return false }

func (r *Rules) ResolveChoices(h *choice.Holder) (Exclusions, error) {
	return resolveHolder(r, r.children, h, r.log), nil
}

// Resolve turns the saved choices into exclusions. A nil holder resolves
// every rule to its default.
func (r *Rules) Resolve(h *choice.Holder) (Exclusions, error) {
	done := logging.LogOperationStart(r.log, "resolve")
	defer done()
	return r.ResolveChoices(h)
}

// Find returns the top-level rule with the given id.
func (r *Rules) Find(id string) (Rule, bool) {
	for _, rule := range r.children {
		if rule.ID() == id {
			return rule, true
		}
	}
	return nil, false
}

// Directories lists the mod directories of every generated rule in the
// tree, under any option, sorted and without duplicates. Nothing is scanned.
func (r *Rules) Directories() []string {
	seen := choice.NewSet()
	collectDirectories(r.children, seen)
	return seen.Sorted()
}

func collectDirectories(children []Rule, seen choice.Set) {
	for _, rule := range children {
		switch v := rule.(type) {
		case *GeneratedRule:
			for _, dir := range v.directories {
				seen.Add(dir)
			}
		case *NestedRule:
			collectDirectories(v.children, seen)
		case *DefinedRule:
			for _, o := range v.options {
				collectDirectories(o.Children, seen)
			}
		}
	}
}
