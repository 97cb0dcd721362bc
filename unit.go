package scopeprefs

// UnitType is an opaque descriptor for the physical unit associated with a
// preference value. The core only stores it; lookup and formatting are the
// responsibility of the units package.
type UnitType int

// Supported unit descriptors. UnitCounts is the dimensionless default every
// preference starts with.
const (
	UnitCounts UnitType = iota
	UnitVolts
	UnitAmps
	UnitOhms
	UnitSeconds
	UnitHertz
	UnitDecibels
	UnitPercent
	UnitSamples
)

// String returns the name of the unit descriptor.
func (t UnitType) String() string {
	switch t {
	case UnitCounts:
		return "counts"
	case UnitVolts:
		return "volts"
	case UnitAmps:
		return "amps"
	case UnitOhms:
		return "ohms"
	case UnitSeconds:
		return "seconds"
	case UnitHertz:
		return "hertz"
	case UnitDecibels:
		return "decibels"
	case UnitPercent:
		return "percent"
	case UnitSamples:
		return "samples"
	default:
		return "unknown"
	}
}
