package palette

import (
	"fmt"
	"image"
	"math"

	"palette-engine/pkg/bitmap"
	"palette-engine/pkg/colorutil"
)

// Generate extracts a palette from a bitmap: down-sample if the bitmap is
// large, snapshot the pixels, quantize them to at most params.MaxColors
// swatches, and resolve the target profiles against that pool.
//
// The caller keeps ownership of bm; only the scaled copy Generate creates
// internally is disposed here. Read failures and disposed sources
// propagate as errors, while an image with nothing left after filtering
// produces an empty palette, not an error.
func Generate(bm bitmap.Bitmap, params Params) (*Palette, error) {
	if bm == nil {
		return nil, fmt.Errorf("nil bitmap")
	}
	if bm.Disposed() {
		return nil, fmt.Errorf("source bitmap: %w", bitmap.ErrDisposed)
	}
	if params.MaxColors < 1 {
		return nil, fmt.Errorf("invalid max colors %d, want at least 1", params.MaxColors)
	}

	width, height := bm.Width(), bm.Height()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("empty bitmap %dx%d", width, height)
	}

	bounds := image.Rect(0, 0, width, height)
	region := bounds
	if params.Region != nil {
		region = *params.Region
		if region.Empty() || !region.In(bounds) {
			return nil, fmt.Errorf("region %v outside bitmap bounds %v", region, bounds)
		}
	}

	// Step 1: down-sample large bitmaps so quantization cost stays bounded.
	source, ratio, err := scaledSource(bm, params.ResizeArea)
	if err != nil {
		return nil, err
	}
	if source != bm {
		defer source.Dispose()
		region = scaleRegion(region, ratio, source.Width(), source.Height())
	}

	// Step 2: snapshot the pixels for the region.
	pixels, err := bitmap.Pixels(source, region)
	if err != nil {
		return nil, err
	}

	// Step 3: quantize down to representative swatches.
	swatches, err := Quantize(pixels, params.MaxColors, params.Filters...)
	if err != nil {
		return nil, err
	}

	// Step 4: resolve the target profiles against the swatch pool.
	selections := SelectSwatches(swatches, params.Targets)

	// Step 5: assemble the immutable result.
	return newPalette(swatches, selections), nil
}

// scaledSource returns a down-sampled copy of the bitmap when its area
// exceeds resizeArea, or the bitmap itself (ratio 1) when it is small
// enough already. Both dimensions shrink by the same ratio.
func scaledSource(bm bitmap.Bitmap, resizeArea int) (bitmap.Bitmap, float64, error) {
	area := bm.Width() * bm.Height()
	if resizeArea <= 0 || area <= resizeArea {
		return bm, 1, nil
	}

	ratio := math.Sqrt(float64(resizeArea) / float64(area))
	w := int(math.Ceil(float64(bm.Width()) * ratio))
	h := int(math.Ceil(float64(bm.Height()) * ratio))

	scaled, err := bm.Scaled(w, h)
	if err != nil {
		return nil, 0, fmt.Errorf("scale %dx%d bitmap to %dx%d: %w",
			bm.Width(), bm.Height(), w, h, err)
	}
	return scaled, ratio, nil
}

// scaleRegion maps a region from source coordinates onto the scaled
// bitmap, expanding outward to whole pixels and clamping in bounds.
func scaleRegion(r image.Rectangle, ratio float64, w, h int) image.Rectangle {
	scaled := image.Rect(
		int(math.Floor(float64(r.Min.X)*ratio)),
		int(math.Floor(float64(r.Min.Y)*ratio)),
		int(math.Ceil(float64(r.Max.X)*ratio)),
		int(math.Ceil(float64(r.Max.Y)*ratio)),
	)
	return scaled.Intersect(image.Rect(0, 0, w, h))
}

func newPalette(swatches []*Swatch, selections map[string]*Swatch) *Palette {
	var dominant *Swatch
	for _, sw := range swatches {
		if dominant == nil || sw.Population > dominant.Population {
			dominant = sw
		}
	}
	return &Palette{swatches: swatches, selections: selections, dominant: dominant}
}

// Swatches returns every quantized swatch, ordered by descending
// population. The slice is a copy; the palette itself never changes.
func (p *Palette) Swatches() []*Swatch {
	out := make([]*Swatch, len(p.swatches))
	copy(out, p.swatches)
	return out
}

// SwatchForTarget returns the swatch selected for the target, or nil when
// no candidate qualified. A nil result is an expected outcome for images
// lacking the target's hue and lightness mix.
func (p *Palette) SwatchForTarget(t Target) *Swatch {
	return p.selections[t.Name]
}

// ColorForTarget returns the color selected for the target, or fallback
// when the target went unresolved.
func (p *Palette) ColorForTarget(t Target, fallback colorutil.ARGB) colorutil.ARGB {
	if sw := p.selections[t.Name]; sw != nil {
		return sw.Color
	}
	return fallback
}

// VibrantSwatch returns the swatch selected for the Vibrant target, if any.
func (p *Palette) VibrantSwatch() *Swatch { return p.SwatchForTarget(Vibrant) }

// LightVibrantSwatch returns the swatch selected for the LightVibrant
// target, if any.
func (p *Palette) LightVibrantSwatch() *Swatch { return p.SwatchForTarget(LightVibrant) }

// DarkVibrantSwatch returns the swatch selected for the DarkVibrant
// target, if any.
func (p *Palette) DarkVibrantSwatch() *Swatch { return p.SwatchForTarget(DarkVibrant) }

// MutedSwatch returns the swatch selected for the Muted target, if any.
func (p *Palette) MutedSwatch() *Swatch { return p.SwatchForTarget(Muted) }

// LightMutedSwatch returns the swatch selected for the LightMuted target,
// if any.
func (p *Palette) LightMutedSwatch() *Swatch { return p.SwatchForTarget(LightMuted) }

// DarkMutedSwatch returns the swatch selected for the DarkMuted target,
// if any.
func (p *Palette) DarkMutedSwatch() *Swatch { return p.SwatchForTarget(DarkMuted) }

// DominantSwatch returns the swatch with the largest population, or nil
// for an empty palette.
func (p *Palette) DominantSwatch() *Swatch { return p.dominant }

// DominantColor returns the dominant swatch color, or fallback for an
// empty palette.
func (p *Palette) DominantColor(fallback colorutil.ARGB) colorutil.ARGB {
	if p.dominant == nil {
		return fallback
	}
	return p.dominant.Color
}
