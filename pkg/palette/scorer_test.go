package palette

import (
	"testing"

	"palette-engine/pkg/colorutil"
)

func TestSelectSwatchesVibrantScenario(t *testing.T) {
	t.Parallel()

	red := NewSwatch(colorutil.FromRGB(255, 0, 0), 3)
	blue := NewSwatch(colorutil.FromRGB(0, 0, 255), 1)

	selected := SelectSwatches([]*Swatch{red, blue}, DefaultTargets())

	if got := selected[Vibrant.Name]; got != red {
		t.Errorf("vibrant = %v, want red", got)
	}
	// Both colors sit at lightness 0.5 with full saturation, so nothing
	// qualifies for the light, dark, or muted roles.
	if len(selected) != 1 {
		t.Errorf("selected %d targets, want 1: %v", len(selected), selected)
	}
}

func TestSelectSwatchesRespectsBands(t *testing.T) {
	t.Parallel()

	vivid := NewSwatch(colorutil.FromRGB(255, 0, 0), 1)       // saturation 1
	washed := NewSwatch(colorutil.FromRGB(140, 115, 115), 20) // saturation ~0.1

	selected := SelectSwatches([]*Swatch{washed, vivid}, []Target{Vibrant})

	// The washed-out color has twenty times the population but sits below
	// Vibrant's minimum saturation.
	if got := selected[Vibrant.Name]; got != vivid {
		t.Errorf("vibrant = %v, want the saturated swatch", got)
	}
}

func TestSelectSwatchesPopulationScaledToCandidates(t *testing.T) {
	t.Parallel()

	// Population scores are relative to the biggest candidate, not to the
	// biggest swatch overall. The near-white giant is outside the band, so
	// the popular in-band swatch earns the full population term and beats
	// the closer color match.
	perfect := NewSwatch(colorutil.FromRGB(255, 0, 0), 10)      // sat 1.0, light 0.5
	popular := NewSwatch(colorutil.FromRGB(184, 20, 20), 100)   // sat 0.8, light 0.4
	giant := NewSwatch(colorutil.FromRGB(250, 250, 250), 10000) // light 0.98, out of band

	target := NewTarget("accent").
		WithSaturation(0, 1, 1).
		WithLightness(0, 0.5, 0.9)

	selected := SelectSwatches([]*Swatch{perfect, popular, giant}, []Target{target})
	if got := selected["accent"]; got != popular {
		t.Errorf("accent = %v, want the popular in-band swatch", got)
	}
}

func TestSelectSwatchesExclusivity(t *testing.T) {
	t.Parallel()

	teal := NewSwatch(colorutil.FromRGB(0, 128, 128), 5)
	first := NewTarget("first")
	second := NewTarget("second")

	selected := SelectSwatches([]*Swatch{teal}, []Target{first, second})
	if selected["first"] != teal {
		t.Errorf("first = %v, want the only swatch", selected["first"])
	}
	if sw, ok := selected["second"]; ok {
		t.Errorf("second = %v, want no selection after the claim", sw)
	}

	// A non-exclusive first target leaves its pick available.
	shared := SelectSwatches([]*Swatch{teal}, []Target{first.WithExclusive(false), second})
	if shared["first"] != teal || shared["second"] != teal {
		t.Errorf("shared selections = %v, want both targets on the swatch", shared)
	}
}

func TestSelectSwatchesScoreTieGoesToPopulation(t *testing.T) {
	t.Parallel()

	// Lightness-only scoring, two grays equidistant from the 0.5 target.
	darker := NewSwatch(colorutil.FromRGB(102, 102, 102), 2)  // lightness 0.4
	lighter := NewSwatch(colorutil.FromRGB(153, 153, 153), 9) // lightness 0.6
	target := NewTarget("gray").WithWeights(0, 1, 0)

	for _, pool := range [][]*Swatch{{darker, lighter}, {lighter, darker}} {
		selected := SelectSwatches(pool, []Target{target})
		if got := selected["gray"]; got != lighter {
			t.Errorf("gray = %v, want the higher-population swatch", got)
		}
	}
}

func TestSelectSwatchesFullTieGoesToFirst(t *testing.T) {
	t.Parallel()

	c := colorutil.FromRGB(40, 90, 160)
	a := NewSwatch(c, 4)
	b := NewSwatch(c, 4)

	selected := SelectSwatches([]*Swatch{a, b}, []Target{NewTarget("any")})
	if got := selected["any"]; got != a {
		t.Errorf("selected the later of two identical swatches")
	}
}

func TestSelectSwatchesEmptyPool(t *testing.T) {
	t.Parallel()

	if got := SelectSwatches(nil, DefaultTargets()); len(got) != 0 {
		t.Errorf("selections from empty pool = %v, want none", got)
	}
}
