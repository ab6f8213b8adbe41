package choice

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry pairs a rule id with its choice.
type Entry struct {
	ID     string
	Choice Choice
}

// Holder maps the ids of a holder's child rules to their choices, in rule
// order, and carries the holder's disabled flag. A nil *Holder behaves as
// an empty, enabled holder.
type Holder struct {
	entries  *orderedmap.OrderedMap[string, Choice]
	disabled bool
}

// NewHolder builds a holder from entries. A later entry with the same id
// replaces the earlier value but keeps its position. Nil choices are
// skipped.
func NewHolder(entries []Entry, disabled bool) *Holder {
	m := orderedmap.New[string, Choice]()
	for _, e := range entries {
		if e.Choice == nil {
			continue
		}
		m.Set(e.ID, e.Choice)
	}
	return &Holder{entries: m, disabled: disabled}
}

func (h *Holder) Kind() Kind { return KindHolder }
func (h *Holder) sealed()    {}

// Get returns the choice recorded for id.
func (h *Holder) Get(id string) (Choice, bool) {
	if h == nil {
		return nil, false
	}
	return h.entries.Get(id)
}

// Len returns the number of recorded choices.
func (h *Holder) Len() int {
	if h == nil {
		return 0
	}
	return h.entries.Len()
}

// Disabled reports whether the holder as a whole is disabled.
func (h *Holder) Disabled() bool {
	return h != nil && h.disabled
}

// IDs returns the recorded rule ids in order.
func (h *Holder) IDs() []string {
	if h == nil {
		return nil
	}
	ids := make([]string, 0, h.entries.Len())
	for pair := h.entries.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Entries returns a copy of the recorded entries in order.
func (h *Holder) Entries() []Entry {
	if h == nil {
		return nil
	}
	out := make([]Entry, 0, h.entries.Len())
	for pair := h.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Entry{ID: pair.Key, Choice: pair.Value})
	}
	return out
}

// With returns a copy of h where id maps to c.
func (h *Holder) With(id string, c Choice) *Holder {
	return NewHolder(append(h.Entries(), Entry{ID: id, Choice: c}), h.Disabled())
}

// WithDisabled returns a copy of h with the disabled flag set to disabled.
func (h *Holder) WithDisabled(disabled bool) *Holder {
	return NewHolder(h.Entries(), disabled)
}

// Equal compares the disabled flag and the recorded choices. Entry order
// is not significant.
func (h *Holder) Equal(other Choice) bool {
	o, ok := other.(*Holder)
	if !ok {
		return false
	}
	if h.Disabled() != o.Disabled() || h.Len() != o.Len() {
		return false
	}
	for _, e := range h.Entries() {
		oc, found := o.Get(e.ID)
		if !found || !e.Choice.Equal(oc) {
			return false
		}
	}
	return true
}
