package palette

import (
	"image"

	"palette-engine/pkg/colorutil"
)

// Default generation parameters.
const (
	// DefaultMaxColors is the default quantizer color budget.
	DefaultMaxColors = 16

	// DefaultResizeArea caps the number of sampled pixels. Bitmaps larger
	// than this are down-sampled before quantization; quantization cost
	// grows with the distinct-color count, which tracks the sample count.
	DefaultResizeArea = 112 * 112
)

// Lightness thresholds for the default filter.
const (
	blackMaxLightness = 0.05
	whiteMinLightness = 0.95
)

// Filter reports whether a color may contribute swatches to a palette.
// The color is fully opaque; hsl is its precomputed HSL form.
type Filter func(c colorutil.ARGB, hsl colorutil.HSL) bool

// DefaultFilter rejects near-black and near-white colors. Those are
// usually background or sensor noise rather than theme material.
func DefaultFilter(_ colorutil.ARGB, hsl colorutil.HSL) bool {
	return hsl.L > blackMaxLightness && hsl.L < whiteMinLightness
}

// DefaultParams returns the standard generation parameters: 16 colors from
// a bitmap down-sampled to roughly 112x112 pixels, the default filter, and
// the six built-in targets.
func DefaultParams() Params {
	return Params{
		MaxColors:  DefaultMaxColors,
		ResizeArea: DefaultResizeArea,
		Filters:    []Filter{DefaultFilter},
		Targets:    DefaultTargets(),
	}
}

// WithMaxColors returns a copy of params with the quantizer budget set.
func (p Params) WithMaxColors(n int) Params {
	p.MaxColors = n
	return p
}

// WithResizeArea returns a copy of params with the down-sample threshold
// set. Zero disables down-sampling and quantizes every source pixel.
func (p Params) WithResizeArea(area int) Params {
	p.ResizeArea = area
	return p
}

// WithRegion returns a copy of params restricted to a sub-rectangle of the
// source bitmap.
func (p Params) WithRegion(r image.Rectangle) Params {
	p.Region = &r
	return p
}

// WithFilters returns a copy of params with the filter chain replaced.
// Calling it with no arguments clears filtering entirely.
func (p Params) WithFilters(filters ...Filter) Params {
	p.Filters = filters
	return p
}

// WithTargets returns a copy of params with the target list replaced.
// Targets are resolved in the given order.
func (p Params) WithTargets(targets ...Target) Params {
	p.Targets = targets
	return p
}

// AddTarget returns a copy of params with an extra target appended, unless
// a target with the same name is already present.
func (p Params) AddTarget(t Target) Params {
	for _, existing := range p.Targets {
		if existing.Name == t.Name {
			return p
		}
	}
	targets := make([]Target, len(p.Targets), len(p.Targets)+1)
	copy(targets, p.Targets)
	p.Targets = append(targets, t)
	return p
}
