package rules

import (
	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/rs/zerolog"
)

// resolveRules resolves every child against its entry in h, falling back to
// the child's default choice when the entry is missing or mismatched.
func resolveRules(children []Rule, h *choice.Holder, out Exclusions, log zerolog.Logger) {
	for _, rule := range children {
		c, found := h.Get(rule.ID())
		if found {
			if rule.Resolve(c, out) {
				continue
			}
			log.Warn().
				Str("rule", rule.ID()).
				Str("expected", string(rule.Kind())).
				Str("got", string(c.Kind())).
				Msg("Choice does not match rule, using default")
		}

		def, ok := rule.DefaultChoice()
		if !ok {
			log.Debug().Str("rule", rule.ID()).Msg("Rule has no default choice")
			continue
		}
		rule.Resolve(def, out)
	}
}

// resolveHolder is the shared ResolveChoices body of the holders whose
// children are fixed at construction.
func resolveHolder(holder RuleHolder, children []Rule, h *choice.Holder, log zerolog.Logger) Exclusions {
	out := Exclusions{}
	if h.Disabled() && holder.CanDisable() {
		log.Debug().Str("holder", holder.ScreenTitle()).Msg("Holder disabled, nothing to resolve")
		return out
	}
	resolveRules(children, h, out, log)
	return out
}

// DefaultChoices builds the holder choice made of every child's default.
func DefaultChoices(holder RuleHolder) (*choice.Holder, error) {
	children, err := holder.Rules()
	if err != nil {
		return nil, err
	}
	return defaultHolder(children, false), nil
}

func defaultHolder(children []Rule, disabled bool) *choice.Holder {
	entries := make([]choice.Entry, 0, len(children))
	for _, rule := range children {
		if def, ok := rule.DefaultChoice(); ok {
			entries = append(entries, choice.Entry{ID: rule.ID(), Choice: def})
		}
	}
	return choice.NewHolder(entries, disabled)
}
