package style

import (
	"fmt"

	"github.com/arthur-debert/modpick/pkg/choice"
	"github.com/arthur-debert/modpick/pkg/rules"
)

// Text keys used when describing choices.
const (
	KeyEdit     = "modpick.ui.edit"
	KeyDisabled = "modpick.ui.disabled"
)

// Texts renders localization keys and "@key" display values.
type Texts interface {
	Text(key string) string
	Resolve(value string) string
}

// Node is one rule of a rendered tree together with its current value.
type Node struct {
	ID       string     `json:"id"`
	Kind     rules.Kind `json:"kind"`
	Caption  string     `json:"caption"`
	Value    string     `json:"value,omitempty"`
	Disabled bool       `json:"disabled,omitempty"`
	Children []Node     `json:"children,omitempty"`
}

// BuildTree describes the rules of holder as they stand under h. Missing
// choices show their defaults. Generated rules are only scanned and listed
// mod by mod when expand is set.
func BuildTree(holder rules.RuleHolder, h *choice.Holder, texts Texts, expand bool) ([]Node, error) {
	children, err := holder.Rules()
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(children))
	for _, rule := range children {
		current, ok := h.Get(rule.ID())
		if !ok {
			current, _ = rule.DefaultChoice()
		}
		node := Node{
			ID:      rule.ID(),
			Kind:    rule.Kind(),
			Caption: texts.Resolve(rule.Caption()),
			Value:   Describe(rule, current, texts),
		}
		if node.Children, node.Disabled, err = subtree(rule, current, texts, expand); err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func subtree(rule rules.Rule, current choice.Choice, texts Texts, expand bool) ([]Node, bool, error) {
	switch r := rule.(type) {
	case *rules.DefinedRule:
		d, ok := current.(*choice.Defined)
		if !ok {
			return nil, false, nil
		}
		opt, ok := r.Option(d.Option())
		if !ok || len(opt.Children) == 0 {
			return nil, false, nil
		}
		nested := d.Nested()
		if nested == nil {
			if nested, _ = rules.DefaultChoices(opt); nested == nil {
				return nil, false, nil
			}
		}
		nodes, err := BuildTree(opt, nested, texts, expand)
		return nodes, nested.Disabled(), err
	case *rules.NestedRule:
		h, _ := current.(*choice.Holder)
		nodes, err := BuildTree(r, h, texts, expand)
		return nodes, h.Disabled(), err
	case *rules.GeneratedRule:
		g, ok := current.(*choice.Generated)
		if !ok {
			return nil, false, nil
		}
		if !expand {
			return nil, g.Disabled(), nil
		}
		fake, err := r.Rules()
		if err != nil {
			return nil, false, err
		}
		nodes, err := BuildTree(r, rules.GeneratedToHolder(fake, g), texts, expand)
		return nodes, g.Disabled(), err
	}
	return nil, false, nil
}

// Describe renders a short summary of a rule's current choice: the option
// caption, the number of mods switched off, or whether a group is disabled.
func Describe(rule rules.Rule, current choice.Choice, texts Texts) string {
	switch v := current.(type) {
	case *choice.Defined:
		if d, ok := rule.(*rules.DefinedRule); ok {
			if opt, ok := d.Option(v.Option()); ok {
				return texts.Resolve(opt.Caption)
			}
		}
		return v.Option()
	case *choice.Generated:
		if v.Disabled() {
			return texts.Text(KeyDisabled)
		}
		return fmt.Sprintf("%d %s", v.Off().Len(), texts.Text(rules.CaptionOff))
	case *choice.Holder:
		if v.Disabled() {
			return texts.Text(KeyDisabled)
		}
		return texts.Text(KeyEdit)
	}
	return ""
}
