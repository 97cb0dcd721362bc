package scopeprefs

import "testing"

func TestBuilderDefaults(t *testing.T) {
	p := NewBool("b", "B", "", true).Build()

	if !p.GetIsVisible() {
		t.Errorf("Expected visibility to default to true")
	}
	if p.HasUnit() {
		t.Errorf("Expected no unit by default")
	}
	if p.GetUnit() != UnitCounts {
		t.Errorf("Expected default unit counts, got %s", p.GetUnit())
	}
}

func TestBuilderChainingOrderIndependent(t *testing.T) {
	a := NewReal("r", "R", "", 1.0).IsVisible(false).WithUnit(UnitHertz).Build()
	b := NewReal("r", "R", "", 1.0).WithUnit(UnitHertz).IsVisible(false).Build()

	if a.GetIsVisible() != b.GetIsVisible() {
		t.Errorf("Expected identical visibility regardless of chaining order")
	}
	if a.GetUnit() != b.GetUnit() {
		t.Errorf("Expected identical unit regardless of chaining order")
	}
	if a.GetReal() != b.GetReal() || a.GetIdentifier() != b.GetIdentifier() {
		t.Errorf("Expected identical payload and identity regardless of chaining order")
	}
}

func TestBuilderLastCallWins(t *testing.T) {
	p := NewReal("r", "R", "", 1.0).
		WithUnit(UnitVolts).
		IsVisible(false).
		WithUnit(UnitSeconds).
		IsVisible(true).
		Build()

	if p.GetUnit() != UnitSeconds {
		t.Errorf("Expected last WithUnit call to win, got %s", p.GetUnit())
	}
	if !p.GetIsVisible() {
		t.Errorf("Expected last IsVisible call to win")
	}
}

func TestBuilderUnitAttachment(t *testing.T) {
	p := NewReal("r", "R", "", 1.0).WithUnit(UnitVolts).Build()
	if !p.HasUnit() || p.GetUnit() != UnitVolts {
		t.Errorf("Expected unit volts after WithUnit, got %s", p.GetUnit())
	}

	// Attaching the dimensionless default is indistinguishable from no unit.
	q := NewReal("r", "R", "", 1.0).WithUnit(UnitCounts).Build()
	if q.HasUnit() {
		t.Errorf("Expected HasUnit false for the default unit")
	}
}

func TestBuilderSpentPanics(t *testing.T) {
	b := NewBool("b", "B", "", true)
	if p := b.Build(); p == nil {
		t.Fatalf("Expected Build to yield the cell")
	}

	mustPanic(t, "IsVisible on spent builder", func() { b.IsVisible(false) })
	mustPanic(t, "WithUnit on spent builder", func() { b.WithUnit(UnitVolts) })
	mustPanic(t, "second Build on spent builder", func() { b.Build() })
}
