// Package units renders preference values together with their physical
// units. The scopeprefs core only stores an opaque UnitType descriptor;
// lookup and formatting live here, at the presentation boundary.
package units

import (
	"fmt"
	"math"
	"strconv"

	"github.com/CreativeUnicorns/scopeprefs"
)

// Suffix returns the display suffix for a unit descriptor. Dimensionless
// counts have no suffix.
func Suffix(t scopeprefs.UnitType) string {
	switch t {
	case scopeprefs.UnitVolts:
		return "V"
	case scopeprefs.UnitAmps:
		return "A"
	case scopeprefs.UnitOhms:
		return "Ω"
	case scopeprefs.UnitSeconds:
		return "s"
	case scopeprefs.UnitHertz:
		return "Hz"
	case scopeprefs.UnitDecibels:
		return "dB"
	case scopeprefs.UnitPercent:
		return "%"
	case scopeprefs.UnitSamples:
		return "S"
	default:
		return ""
	}
}

// Format renders a real preference value in its unit. Scalable units get an
// SI prefix; percent is rendered from a 0..1 fraction; counts and samples are
// rendered without scaling.
func Format(value float64, t scopeprefs.UnitType) string {
	switch t {
	case scopeprefs.UnitCounts:
		return strconv.FormatFloat(value, 'g', -1, 64)
	case scopeprefs.UnitPercent:
		return fmt.Sprintf("%.4g %%", value*100)
	case scopeprefs.UnitDecibels:
		return fmt.Sprintf("%.4g dB", value)
	case scopeprefs.UnitSamples:
		return fmt.Sprintf("%.4g S", value)
	default:
		scaled, prefix := siScale(value)
		return fmt.Sprintf("%.4g %s%s", scaled, prefix, Suffix(t))
	}
}

// siScale reduces a value into the 1..1000 range and returns the matching SI
// prefix, covering pico through giga.
func siScale(value float64) (float64, string) {
	abs := math.Abs(value)
	switch {
	case value == 0:
		return value, ""
	case abs >= 1e9:
		return value / 1e9, "G"
	case abs >= 1e6:
		return value / 1e6, "M"
	case abs >= 1e3:
		return value / 1e3, "k"
	case abs >= 1:
		return value, ""
	case abs >= 1e-3:
		return value * 1e3, "m"
	case abs >= 1e-6:
		return value * 1e6, "µ"
	case abs >= 1e-9:
		return value * 1e9, "n"
	default:
		return value * 1e12, "p"
	}
}
