package scopeprefs

// Builder stages optional metadata onto a freshly constructed Preference
// without exposing a partially built cell. It exclusively owns the cell until
// Build is called.
//
// Methods chain; each may be called any number of times, with the last call
// for a given field winning, and the chaining order of disjoint fields does
// not affect the result. Build yields the finished cell and spends the
// builder: calling any method on a spent builder panics.
type Builder struct {
	pref  *Preference
	spent bool
}

func newBuilder(identifier, label, description string, kind Kind, value any) *Builder {
	return &Builder{
		pref: &Preference{
			identifier:  identifier,
			label:       label,
			description: description,
			kind:        kind,
			value:       value,
			visible:     true,
			unit:        UnitCounts,
		},
	}
}

// IsVisible sets whether the preference is shown to the user. Default true.
func (b *Builder) IsVisible(visible bool) *Builder {
	b.mustLive()
	b.pref.visible = visible
	return b
}

// WithUnit attaches a physical unit descriptor to the preference.
func (b *Builder) WithUnit(unit UnitType) *Builder {
	b.mustLive()
	b.pref.unit = unit
	return b
}

// Build yields the finished preference and spends the builder.
func (b *Builder) Build() *Preference {
	b.mustLive()
	b.spent = true
	p := b.pref
	b.pref = nil
	return p
}

func (b *Builder) mustLive() {
	if b.spent {
		panic("scopeprefs: use of spent preference builder")
	}
}
