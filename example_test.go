package scopeprefs_test

import (
	"fmt"

	"github.com/CreativeUnicorns/scopeprefs"
)

func Example() {
	gain := scopeprefs.NewReal("channel.gain", "Gain", "Input gain applied to the channel", 1.0).
		WithUnit(scopeprefs.UnitVolts).
		Build()

	gain.SetReal(2.5)
	fmt.Println(gain.GetIdentifier(), gain.ToString(), gain.GetUnit())
	// Output: channel.gain 2.5 volts
}

func ExampleRegistry() {
	registry := scopeprefs.NewRegistry()

	trace := scopeprefs.NewColorRaw("display.trace", "Trace color", "Waveform trace color",
		scopeprefs.Color{R: 255, G: 255, B: 0}).Build()
	if err := registry.Register(trace); err != nil {
		fmt.Println(err)
		return
	}

	pref, _ := registry.Get("display.trace")
	fmt.Println(pref.GetLabel(), pref.ToString())
	// Output: Trace color rgb(255,255,0)
}
