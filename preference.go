// Package scopeprefs defines the core preference cell and its kind-checked
// access protocol.
package scopeprefs

import (
	"fmt"
	"image/color"
	"strconv"
)

// Kind identifies which payload a Preference currently holds.
type Kind int

// The closed set of payload kinds. KindNone marks a cell whose payload has
// been moved out; it is never produced by a constructor and is not
// user-visible. It is the zero Kind so that a zero-value Preference reads as
// moved-from rather than as an empty boolean.
const (
	KindNone Kind = iota
	KindBoolean
	KindString
	KindReal
	KindColor
)

// String returns the stable textual name of the kind, as used in the
// serialized form.
func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindReal:
		return "real"
	case KindColor:
		return "color"
	case KindNone:
		return "none"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Color is the internal color payload: three 16-bit channels, no alpha.
type Color struct {
	R uint16
	G uint16
	B uint16
}

// Preference is a single named, user-facing configuration setting. It holds
// exactly one payload whose type is selected by its Kind at construction and
// never changes afterwards; only the payload's value may be replaced, through
// the kind-matching setter.
//
// A Preference has exactly one logical owner at a time. It is handled by
// pointer and transferred with MoveFrom; copying the struct value duplicates
// ownership and is not supported. Cells perform no internal locking — callers
// sharing a cell across goroutines must serialize access themselves.
type Preference struct {
	identifier  string
	label       string
	description string

	kind  Kind
	value any // live payload, dynamic type selected by kind; nil iff kind == KindNone

	visible bool
	unit    UnitType
}

// NewBool starts building a boolean preference with the given default value.
func NewBool(identifier, label, description string, defaultValue bool) *Builder {
	return newBuilder(identifier, label, description, KindBoolean, defaultValue)
}

// NewString starts building a string preference with the given default value.
func NewString(identifier, label, description, defaultValue string) *Builder {
	return newBuilder(identifier, label, description, KindString, defaultValue)
}

// NewStringLiteral starts building a string preference from a read-only
// literal default. It is a convenience entry point into the same String kind
// as NewString; the finished cells are indistinguishable.
func NewStringLiteral(identifier, label, description, defaultValue string) *Builder {
	return NewString(identifier, label, description, defaultValue)
}

// NewReal starts building a real-number preference with the given default
// value.
func NewReal(identifier, label, description string, defaultValue float64) *Builder {
	return newBuilder(identifier, label, description, KindReal, defaultValue)
}

// NewColor starts building a color preference from a toolkit-native color.
// The value is normalized to the internal 16-bit triple; alpha is discarded.
func NewColor(identifier, label, description string, defaultValue color.Color) *Builder {
	return newBuilder(identifier, label, description, KindColor, colorFromNative(defaultValue))
}

// NewColorRaw starts building a color preference from the internal triple.
func NewColorRaw(identifier, label, description string, defaultValue Color) *Builder {
	return newBuilder(identifier, label, description, KindColor, defaultValue)
}

// GetIdentifier returns the stable machine-readable key of the preference.
func (p *Preference) GetIdentifier() string { return p.identifier }

// GetLabel returns the human-readable display name of the preference.
func (p *Preference) GetLabel() string { return p.label }

// GetDescription returns the human-readable description of the preference.
func (p *Preference) GetDescription() string { return p.description }

// GetKind returns the active payload kind.
func (p *Preference) GetKind() Kind { return p.kind }

// GetIsVisible reports whether the preference should be shown to the user.
func (p *Preference) GetIsVisible() bool { return p.visible }

// HasUnit reports whether a non-default unit was attached to the preference.
func (p *Preference) HasUnit() bool { return p.unit != UnitCounts }

// GetUnit returns the unit descriptor associated with the preference. The
// default is UnitCounts (dimensionless).
func (p *Preference) GetUnit() UnitType { return p.unit }

// GetBool returns the boolean payload. It panics if the preference is not of
// KindBoolean.
func (p *Preference) GetBool() bool {
	p.mustKind(KindBoolean)
	return p.value.(bool)
}

// GetReal returns the real-number payload. It panics if the preference is not
// of KindReal.
func (p *Preference) GetReal() float64 {
	p.mustKind(KindReal)
	return p.value.(float64)
}

// GetString returns the string payload. It panics if the preference is not of
// KindString.
func (p *Preference) GetString() string {
	p.mustKind(KindString)
	return p.value.(string)
}

// GetColor returns the color payload in the toolkit-native representation.
// It panics if the preference is not of KindColor.
func (p *Preference) GetColor() color.RGBA64 {
	c := p.GetColorRaw()
	return color.RGBA64{R: c.R, G: c.G, B: c.B, A: 0xffff}
}

// GetColorRaw returns the internal color triple. It panics if the preference
// is not of KindColor.
func (p *Preference) GetColorRaw() Color {
	p.mustKind(KindColor)
	return p.value.(Color)
}

// SetBool replaces the boolean payload. It panics if the preference is not of
// KindBoolean; setting never changes the kind.
func (p *Preference) SetBool(value bool) {
	p.mustKind(KindBoolean)
	p.cleanUp()
	p.value = value
}

// SetReal replaces the real-number payload. It panics if the preference is
// not of KindReal.
func (p *Preference) SetReal(value float64) {
	p.mustKind(KindReal)
	p.cleanUp()
	p.value = value
}

// SetString replaces the string payload. It panics if the preference is not
// of KindString.
func (p *Preference) SetString(value string) {
	p.mustKind(KindString)
	p.cleanUp()
	p.value = value
}

// SetColor replaces the color payload from a toolkit-native color. It panics
// if the preference is not of KindColor.
func (p *Preference) SetColor(value color.Color) {
	p.mustKind(KindColor)
	p.cleanUp()
	p.value = colorFromNative(value)
}

// SetColorRaw replaces the color payload from the internal triple. It panics
// if the preference is not of KindColor.
func (p *Preference) SetColorRaw(value Color) {
	p.mustKind(KindColor)
	p.cleanUp()
	p.value = value
}

// MoveFrom transfers other's payload and metadata into p. Any payload p held
// before is released first. other is left in the KindNone moved-from state:
// it is safe to destroy or move into again, but reading it through any typed
// accessor panics.
func (p *Preference) MoveFrom(other *Preference) {
	p.cleanUp()

	p.identifier = other.identifier
	p.label = other.label
	p.description = other.description
	p.kind = other.kind
	p.value = other.value
	p.visible = other.visible
	p.unit = other.unit

	other.kind = KindNone
	other.value = nil
}

// ToString returns the canonical textual rendering of the payload, as used by
// the persistence layer: "true"/"false" for booleans, the text itself for
// strings, a locale-independent decimal form for reals, and "rgb(r,g,b)" with
// decimal 16-bit channels for colors. It panics on a moved-from cell.
func (p *Preference) ToString() string {
	switch p.kind {
	case KindBoolean:
		return strconv.FormatBool(p.value.(bool))
	case KindString:
		return p.value.(string)
	case KindReal:
		return strconv.FormatFloat(p.value.(float64), 'g', -1, 64)
	case KindColor:
		c := p.value.(Color)
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	default:
		panic(fmt.Sprintf("scopeprefs: ToString on moved-from preference %q", p.identifier))
	}
}

// mustKind enforces the kind contract on accessors and setters. A mismatch is
// a programmer error, not a recoverable condition.
func (p *Preference) mustKind(want Kind) {
	if p.kind != want {
		panic(fmt.Sprintf("scopeprefs: %s access on %s preference %q", want, p.kind, p.identifier))
	}
}

// cleanUp releases the live payload, if any. It is the single place a payload
// is destroyed: setters call it before constructing the replacement value and
// MoveFrom calls it before taking over the source's payload.
func (p *Preference) cleanUp() {
	p.value = nil
}

// colorFromNative normalizes a toolkit-native color to the internal triple.
// This is the only point where the external color representation is touched.
func colorFromNative(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint16(r), G: uint16(g), B: uint16(b)}
}
