package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/modpick/pkg/errors"
)

// Prompter asks the user single questions on the terminal.
type Prompter interface {
	// Select returns the index of the picked option.
	Select(title string, options []string, defaultOption int) (int, error)
	Confirm(question string, defaultValue bool) (bool, error)
}

// TerminalPrompter implements Prompter with pterm's interactive widgets.
type TerminalPrompter struct {
	maxHeight int
}

// NewTerminalPrompter creates a prompter showing at most maxHeight options
// at once. Zero keeps pterm's default.
func NewTerminalPrompter(maxHeight int) *TerminalPrompter {
	return &TerminalPrompter{maxHeight: maxHeight}
}

func (p *TerminalPrompter) Select(title string, options []string, defaultOption int) (int, error) {
	if len(options) == 0 {
		return -1, errors.New(errors.ErrInvalidInput, "nothing to select from")
	}

	// pterm answers with the label, so labels are numbered to keep them apart
	labels := make([]string, len(options))
	index := make(map[string]int, len(options))
	for i, opt := range options {
		labels[i] = fmt.Sprintf("%d. %s", i+1, opt)
		index[labels[i]] = i
	}

	sel := pterm.DefaultInteractiveSelect.WithOptions(labels)
	if defaultOption >= 0 && defaultOption < len(labels) {
		sel = sel.WithDefaultOption(labels[defaultOption])
	}
	if p.maxHeight > 0 {
		sel = sel.WithMaxHeight(p.maxHeight)
	}

	picked, err := sel.Show(title)
	if err != nil {
		return -1, errors.Wrap(err, errors.ErrInternal, "failed to read selection")
	}
	i, ok := index[picked]
	if !ok {
		return -1, errors.Newf(errors.ErrInternal, "unexpected selection %q", picked)
	}
	return i, nil
}

func (p *TerminalPrompter) Confirm(question string, defaultValue bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(defaultValue).Show(question)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to read confirmation")
	}
	return ok, nil
}
