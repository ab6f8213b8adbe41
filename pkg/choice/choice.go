package choice

// Kind names a Choice variant.
type Kind string

const (
	KindDefined   Kind = "defined"
	KindGenerated Kind = "generated"
	KindHolder    Kind = "holder"
)

// Choice is the recorded decision for one rule. The set of variants is
// closed: *Defined, *Generated and *Holder.
type Choice interface {
	Kind() Kind
	Equal(other Choice) bool
	sealed()
}

// Defined records the option picked on a rule with a fixed option list,
// plus the choices for that option's nested rules when it has any.
type Defined struct {
	option string
	nested *Holder
}

// NewDefined returns a choice selecting option.
func NewDefined(option string) *Defined {
	return &Defined{option: option}
}

// NewDefinedNested returns a choice selecting option together with the
// choices for its nested rules.
func NewDefinedNested(option string, nested *Holder) *Defined {
	return &Defined{option: option, nested: nested}
}

func (d *Defined) Kind() Kind { return KindDefined }
func (d *Defined) sealed()    {}

// Option returns the selected option id.
func (d *Defined) Option() string { return d.option }

// Nested returns the nested choices, or nil when none were recorded.
func (d *Defined) Nested() *Holder { return d.nested }

func (d *Defined) Equal(other Choice) bool {
	o, ok := other.(*Defined)
	if !ok || d == nil || o == nil {
		return ok && d == o
	}
	return d.option == o.option && d.nested.Equal(o.nested)
}

// Generated records which items of a generated rule are switched off and
// whether the rule as a whole is disabled.
type Generated struct {
	off      Set
	disabled bool
}

// NewGenerated copies off into a new choice.
func NewGenerated(off Set, disabled bool) *Generated {
	return &Generated{off: off.Clone(), disabled: disabled}
}

func (g *Generated) Kind() Kind { return KindGenerated }
func (g *Generated) sealed()    {}

// Off returns a copy of the switched-off ids.
func (g *Generated) Off() Set { return g.off.Clone() }

// IsOff reports whether id is switched off.
func (g *Generated) IsOff(id string) bool { return g.off.Contains(id) }

// Disabled reports whether the whole rule is disabled.
func (g *Generated) Disabled() bool { return g.disabled }

func (g *Generated) Equal(other Choice) bool {
	o, ok := other.(*Generated)
	if !ok || g == nil || o == nil {
		return ok && g == o
	}
	return g.disabled == o.disabled && g.off.Equal(o.off)
}
