package palette

import "math"

// Lightness and saturation bands for the built-in targets, plus the
// standard scoring weights.
const (
	targetDarkLuma = 0.26
	maxDarkLuma    = 0.45

	minLightLuma    = 0.55
	targetLightLuma = 0.74

	minNormalLuma    = 0.3
	targetNormalLuma = 0.5
	maxNormalLuma    = 0.7

	targetMutedSaturation = 0.3
	maxMutedSaturation    = 0.4

	minVibrantSaturation    = 0.35
	targetVibrantSaturation = 1

	weightSaturation = 0.24
	weightLuma       = 0.52
	weightPopulation = 0.24
)

// Target is a named profile describing the kind of swatch wanted for a UI
// role: an inclusive saturation band, an inclusive lightness band, and the
// weights used to score candidates inside those bands.
type Target struct {
	Name string `json:"name"`

	SaturationMin    float64 `json:"saturation_min"`
	SaturationTarget float64 `json:"saturation_target"`
	SaturationMax    float64 `json:"saturation_max"`

	LightnessMin    float64 `json:"lightness_min"`
	LightnessTarget float64 `json:"lightness_target"`
	LightnessMax    float64 `json:"lightness_max"`

	SaturationWeight float64 `json:"saturation_weight"`
	LightnessWeight  float64 `json:"lightness_weight"`
	PopulationWeight float64 `json:"population_weight"`

	// Exclusive removes this target's selected swatch from the candidate
	// pool of every target resolved after it.
	Exclusive bool `json:"exclusive"`
}

// The built-in targets, in their selection priority order.
var (
	// Vibrant prefers saturated colors of medium lightness.
	Vibrant = NewTarget("vibrant").
		WithLightness(minNormalLuma, targetNormalLuma, maxNormalLuma).
		WithSaturation(minVibrantSaturation, targetVibrantSaturation, 1)

	// LightVibrant prefers saturated, light colors.
	LightVibrant = NewTarget("light_vibrant").
			WithLightness(minLightLuma, targetLightLuma, 1).
			WithSaturation(minVibrantSaturation, targetVibrantSaturation, 1)

	// DarkVibrant prefers saturated, dark colors.
	DarkVibrant = NewTarget("dark_vibrant").
			WithLightness(0, targetDarkLuma, maxDarkLuma).
			WithSaturation(minVibrantSaturation, targetVibrantSaturation, 1)

	// Muted prefers desaturated colors of medium lightness.
	Muted = NewTarget("muted").
		WithLightness(minNormalLuma, targetNormalLuma, maxNormalLuma).
		WithSaturation(0, targetMutedSaturation, maxMutedSaturation)

	// LightMuted prefers desaturated, light colors.
	LightMuted = NewTarget("light_muted").
			WithLightness(minLightLuma, targetLightLuma, 1).
			WithSaturation(0, targetMutedSaturation, maxMutedSaturation)

	// DarkMuted prefers desaturated, dark colors.
	DarkMuted = NewTarget("dark_muted").
			WithLightness(0, targetDarkLuma, maxDarkLuma).
			WithSaturation(0, targetMutedSaturation, maxMutedSaturation)
)

// DefaultTargets returns the six built-in targets in priority order:
// the vibrant family first, then the muted family.
func DefaultTargets() []Target {
	return []Target{Vibrant, LightVibrant, DarkVibrant, Muted, LightMuted, DarkMuted}
}

// NewTarget returns an exclusive target with full saturation and lightness
// ranges, mid-range targets, and the standard scoring weights.
func NewTarget(name string) Target {
	return Target{
		Name:             name,
		SaturationTarget: 0.5,
		SaturationMax:    1,
		LightnessTarget:  0.5,
		LightnessMax:     1,
		SaturationWeight: weightSaturation,
		LightnessWeight:  weightLuma,
		PopulationWeight: weightPopulation,
		Exclusive:        true,
	}
}

// WithSaturation returns a copy of the target with the saturation band set.
func (t Target) WithSaturation(minSat, target, maxSat float64) Target {
	t.SaturationMin = minSat
	t.SaturationTarget = target
	t.SaturationMax = maxSat
	return t
}

// WithLightness returns a copy of the target with the lightness band set.
func (t Target) WithLightness(minLight, target, maxLight float64) Target {
	t.LightnessMin = minLight
	t.LightnessTarget = target
	t.LightnessMax = maxLight
	return t
}

// WithWeights returns a copy of the target with custom scoring weights.
// Weights are normalized against their sum at scoring time.
func (t Target) WithWeights(saturation, lightness, population float64) Target {
	t.SaturationWeight = saturation
	t.LightnessWeight = lightness
	t.PopulationWeight = population
	return t
}

// WithExclusive returns a copy of the target with exclusivity set.
// A non-exclusive target leaves its selection available to later targets.
func (t Target) WithExclusive(exclusive bool) Target {
	t.Exclusive = exclusive
	return t
}

// normalizedWeights returns the scoring weights scaled to sum to 1.
// Negative weights count as zero.
func (t Target) normalizedWeights() (saturation, lightness, population float64) {
	saturation = math.Max(t.SaturationWeight, 0)
	lightness = math.Max(t.LightnessWeight, 0)
	population = math.Max(t.PopulationWeight, 0)

	sum := saturation + lightness + population
	if sum == 0 {
		return 0, 0, 0
	}
	return saturation / sum, lightness / sum, population / sum
}
