package rulesfile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/muhammadmuzzammil1998/jsonc"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/arthur-debert/modpick/pkg/registry"
	"github.com/arthur-debert/modpick/pkg/rules"
)

// decoder builds one rule of a given kind from its document entry. Problems
// are recorded on the parser; a nil rule means the entry is unusable.
type decoder func(p *parser, raw jsoniter.RawMessage, path string) rules.Rule

var kinds = registry.NewLabeled[decoder]("rule kind")

func init() {
	registry.MustRegister(kinds, string(rules.KindDefined), decodeDefined)
	registry.MustRegister(kinds, string(rules.KindGenerated), decodeGenerated)
	registry.MustRegister(kinds, string(rules.KindNested), decodeNested)
}

// Kinds lists the rule kinds the document may use.
func Kinds() []string {
	return kinds.List()
}

type parser struct {
	deps rules.Deps
	errs *multierror.Error
}

func (p *parser) fail(err error) {
	p.errs = multierror.Append(p.errs, err)
}

func (p *parser) failf(path, format string, args ...interface{}) {
	p.fail(fmt.Errorf("%s: %s", path, fmt.Sprintf(format, args...)))
}

// LoadRules reads and parses the rules document at path.
func LoadRules(fsys filesystem.FS, path string, deps rules.Deps) (*rules.Rules, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read rules file %s", path)
	}
	root, err := ParseRules(data, deps)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "in %s", path)
	}
	deps.Logger.Debug().Str("path", path).Msg("Loaded rules")
	return root, nil
}

// ParseRules builds the rule tree described by data. Every problem found is
// reported at once in a single ErrConfigInvalid error.
func ParseRules(data []byte, deps rules.Deps) (*rules.Rules, error) {
	var doc struct {
		Rules []jsoniter.RawMessage `json:"rules"`
	}
	if err := jsoniter.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "malformed rules document")
	}

	p := &parser{deps: deps}
	children := p.decodeList(doc.Rules, "rules")
	if err := p.errs.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid rules document")
	}
	return rules.NewRules(children, deps.Logger), nil
}

func (p *parser) decodeList(raws []jsoniter.RawMessage, path string) []rules.Rule {
	out := make([]rules.Rule, 0, len(raws))
	seen := make(map[string]string)

	for i, raw := range raws {
		at := fmt.Sprintf("%s[%d]", path, i)

		var head struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		}
		if err := jsoniter.Unmarshal(raw, &head); err != nil {
			p.failf(at, "malformed rule: %v", err)
			continue
		}
		if head.ID == "" {
			p.failf(at, "rule has no id")
			continue
		}
		if prev, dup := seen[head.ID]; dup {
			p.failf(at, "duplicate rule id %q, first used at %s", head.ID, prev)
			continue
		}
		seen[head.ID] = at

		dec, err := kinds.Get(strings.ToUpper(head.Type))
		if err != nil {
			p.fail(errors.Wrapf(err, errors.ErrRuleKind, "%s: unknown rule type %q", at, head.Type))
			continue
		}
		if rule := dec(p, raw, at); rule != nil {
			out = append(out, rule)
		}
	}
	return out
}

type optionDoc struct {
	ID       string                `json:"id"`
	Caption  string                `json:"caption"`
	Tooltip  string                `json:"tooltip"`
	Rules    []jsoniter.RawMessage `json:"rules"`
	Disabled bool                  `json:"disabled"`
	Default  bool                  `json:"default"`
}

func decodeDefined(p *parser, raw jsoniter.RawMessage, path string) rules.Rule {
	var doc struct {
		ID      string      `json:"id"`
		Caption string      `json:"caption"`
		Tooltip string      `json:"tooltip"`
		Options []optionDoc `json:"options"`
	}
	if err := jsoniter.Unmarshal(raw, &doc); err != nil {
		p.failf(path, "malformed DEFINED rule: %v", err)
		return nil
	}
	if len(doc.Options) == 0 {
		p.failf(path, "rule %q has no options", doc.ID)
		return nil
	}

	options := make([]rules.Option, 0, len(doc.Options))
	seen := make(map[string]bool)
	for j, o := range doc.Options {
		at := fmt.Sprintf("%s.options[%d]", path, j)
		if o.ID == "" {
			p.failf(at, "option has no id")
			continue
		}
		if seen[o.ID] {
			p.failf(at, "duplicate option id %q", o.ID)
			continue
		}
		seen[o.ID] = true

		options = append(options, rules.Option{
			ID:       o.ID,
			Caption:  o.Caption,
			Tooltip:  o.Tooltip,
			Children: p.decodeList(o.Rules, at+".rules"),
			Disabled: o.Disabled,
			Default:  o.Default,
		})
	}

	info := rules.Info{ID: doc.ID, Caption: doc.Caption, Tooltip: doc.Tooltip}
	return rules.NewDefinedRule(info, options, p.deps.Logger)
}

func decodeGenerated(p *parser, raw jsoniter.RawMessage, path string) rules.Rule {
	var doc struct {
		ID          string            `json:"id"`
		Caption     string            `json:"caption"`
		Tooltip     string            `json:"tooltip"`
		Directories []string          `json:"directories"`
		Defaults    []string          `json:"defaults"`
		CustomNames map[string]string `json:"customNames"`
	}
	if err := jsoniter.Unmarshal(raw, &doc); err != nil {
		p.failf(path, "malformed GENERATED rule: %v", err)
		return nil
	}
	if len(doc.Directories) == 0 {
		p.failf(path, "rule %q has no directories", doc.ID)
		return nil
	}

	info := rules.Info{ID: doc.ID, Caption: doc.Caption, Tooltip: doc.Tooltip}
	src := rules.GeneratedSource{
		Directories: doc.Directories,
		Defaults:    choice.NewSet(doc.Defaults...),
		CustomNames: doc.CustomNames,
	}
	return rules.NewGeneratedRule(info, src, p.deps)
}

func decodeNested(p *parser, raw jsoniter.RawMessage, path string) rules.Rule {
	var doc struct {
		ID         string                `json:"id"`
		Caption    string                `json:"caption"`
		Tooltip    string                `json:"tooltip"`
		Rules      []jsoniter.RawMessage `json:"rules"`
		CanDisable bool                  `json:"canDisable"`
	}
	if err := jsoniter.Unmarshal(raw, &doc); err != nil {
		p.failf(path, "malformed NESTED rule: %v", err)
		return nil
	}

	info := rules.Info{ID: doc.ID, Caption: doc.Caption, Tooltip: doc.Tooltip}
	children := p.decodeList(doc.Rules, path+".rules")
	return rules.NewNestedRule(info, children, doc.CanDisable, p.deps.Logger)
}
