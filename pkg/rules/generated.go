package rules

import (
	"context"
	"sync"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/future"
	"github.com/arthur-debert/modpick/pkg/mods"
)

// Option ids and text keys of the synthetic per-mod rules.
const (
	OptionOn  = "on"
	OptionOff = "off"

	CaptionOn     = "@modpick.generated.on"
	CaptionOff    = "@modpick.generated.off"
	ItemFormatKey = "modpick.generated.format"
)

// GeneratedSource describes where a GeneratedRule finds its mods.
// Defaults lists the mod ids that start switched off. CustomNames maps a
// mod id to the text key used for its display name.
type GeneratedSource struct {
	Directories []string
	Defaults    choice.Set
	CustomNames map[string]string
}

// GeneratedRule synthesizes one on/off rule per mod found in its
// directories. The scan happens on the first call to Rules and its result
// is kept for the lifetime of the rule; a failed scan is retried on the
// next call.
type GeneratedRule struct {
	base
	directories []string
	defaults    choice.Set
	customNames map[string]string
	walker      Walker
	translator  Translator

	mu     sync.Mutex
	loaded bool
	fake   []Rule
}

// NewGeneratedRule copies src into a new rule.
func NewGeneratedRule(info Info, src GeneratedSource, deps Deps) *GeneratedRule {
	names := make(map[string]string, len(src.CustomNames))
	for k, v := range src.CustomNames {
		names[k] = v
	}
	return &GeneratedRule{
		base:        base{info: info, log: deps.Logger},
		directories: append([]string(nil), src.Directories...),
		defaults:    src.Defaults.Clone(),
		customNames: names,
		walker:      deps.Walker,
		translator:  deps.Translator,
	}
}

func (r *GeneratedRule) Kind() Kind { return KindGenerated }

// Directories returns a copy of the scanned directories.
func (r *GeneratedRule) Directories() []string {
	return append([]string(nil), r.directories...)
}

// Defaults returns a copy of the ids that start switched off.
func (r *GeneratedRule) Defaults() choice.Set {
	return r.defaults.Clone()
}

// Rules returns the synthetic rules, scanning the directories on first use.
func (r *GeneratedRule) Rules() ([]Rule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		fake, err := r.synthesize()
		if err != nil {
			return nil, err
		}
		r.fake = fake
		r.loaded = true
	}
	return append([]Rule(nil), r.fake...), nil
}

func (r *GeneratedRule) synthesize() ([]Rule, error) {
	var fake []Rule
	seen := make(map[string]bool)

	for _, dir := range r.directories {
		err := r.walker.Walk(dir, func(m mods.Metadata) error {
			if seen[m.ID] {
				r.log.Debug().Str("rule", r.ID()).Str("mod", m.ID).Str("dir", dir).Msg("Mod already listed, skipping")
				return nil
			}
			seen[m.ID] = true
			fake = append(fake, r.synthetic(m))
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrScan, "failed to scan mod directory %q for rule %q", dir, r.ID())
		}
	}

	r.log.Debug().Str("rule", r.ID()).Int("count", len(fake)).Msg("Synthesized rules from mod scan")
	return fake, nil
}

func (r *GeneratedRule) synthetic(m mods.Metadata) *DefinedRule {
	on := Option{ID: OptionOn, Caption: CaptionOn}
	off := Option{ID: OptionOff, Caption: CaptionOff}
	options := []Option{on, off}
	if r.defaults.Contains(m.ID) {
		options = []Option{off, on}
	}

	name := m.DisplayName()
	if key, ok := r.customNames[m.ID]; ok {
		name = r.translator.Text(key)
	}

	info := Info{
		ID:      m.ID,
		Caption: r.translator.Format(ItemFormatKey, name),
	}
	return NewDefinedRule(info, options, r.log)
}

func (r *GeneratedRule) ScreenTitle() string { return r.Caption() }

// CanDisable is always true. A rule that could not be disabled outright
// could still be emptied by switching every mod off.
func (r *GeneratedRule) CanDisable() bool { return true }

// ResolveChoices is not supported: a generated choice only resolves through
// Resolve.
func (r *GeneratedRule) ResolveChoices(*choice.Holder) (Exclusions, error) {
	return nil, errors.Newf(errors.ErrUnsupported, "rule %q resolves generated choices only", r.ID())
}

func (r *GeneratedRule) DefaultChoice() (choice.Choice, bool) {
	return choice.NewGenerated(r.defaults, false), true
}

// Resolve writes the switched-off ids under every directory of the rule,
// replacing whatever an earlier rule stored there. A disabled choice writes
// nothing.
func (r *GeneratedRule) Resolve(c choice.Choice, out Exclusions) bool {
	g, ok := c.(*choice.Generated)
	if !ok || g == nil {
		return false
	}
	if g.Disabled() && r.CanDisable() {
		r.log.Debug().Str("rule", r.ID()).Strs("directories", r.directories).Msg("Generated rule disabled, skipping directories")
		return true
	}
	for _, dir := range r.directories {
		out[dir] = g.Off()
	}
	return true
}

func (r *GeneratedRule) UpdateChoice(ctx context.Context, prev choice.Choice, p Presenter) *future.Future[choice.Choice] {
	g, ok := prev.(*choice.Generated)
	if !ok || g == nil {
		r.log.Debug().Str("rule", r.ID()).Msg("No usable previous choice, starting from default")
		def, _ := r.DefaultChoice()
		g = def.(*choice.Generated)
	}

	fake, err := r.Rules()
	if err != nil {
		return future.Failed[choice.Choice](err)
	}

	seed := GeneratedToHolder(fake, g)
	return future.Then(p.PresentNested(ctx, r, seed), func(h *choice.Holder) (choice.Choice, error) {
		return HolderToGenerated(fake, h), nil
	})
}

// GeneratedToHolder spreads g over the synthetic rules: each rule gets the
// off option when its id is switched off in g, on otherwise.
func GeneratedToHolder(fake []Rule, g *choice.Generated) *choice.Holder {
	entries := make([]choice.Entry, 0, len(fake))
	for _, rule := range fake {
		opt := OptionOn
		if g.IsOff(rule.ID()) {
			opt = OptionOff
		}
		entries = append(entries, choice.Entry{ID: rule.ID(), Choice: choice.NewDefined(opt)})
	}
	return choice.NewHolder(entries, g.Disabled())
}

// HolderToGenerated collects the synthetic rules whose choice in h is the
// off option. Rules missing from h stay on.
func HolderToGenerated(fake []Rule, h *choice.Holder) *choice.Generated {
	off := choice.NewSet()
	for _, rule := range fake {
		c, _ := h.Get(rule.ID())
		if d, ok := c.(*choice.Defined); ok && d.Option() == OptionOff {
			off.Add(rule.ID())
		}
	}
	return choice.NewGenerated(off, h.Disabled())
}
