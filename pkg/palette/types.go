// Package palette extracts representative colors from bitmap pixel data and
// scores them against weighted saturation/lightness targets for UI theming.
package palette

import (
	"fmt"
	"image"
	"sync"

	"palette-engine/pkg/colorutil"
)

// Minimum WCAG contrast ratios for text rendered over a swatch color.
const (
	MinContrastTitleText = 3.0
	MinContrastBodyText  = 4.5
)

// Swatch is a representative color extracted by quantization together with
// the number of sampled pixels it stands for. HSL and text colors are
// computed on first access and cached; the color itself never changes.
type Swatch struct {
	Color      colorutil.ARGB `json:"color"`
	Population int            `json:"population"`

	once  sync.Once
	hsl   colorutil.HSL
	title colorutil.ARGB
	body  colorutil.ARGB
}

// NewSwatch creates a swatch for a color representing population pixels.
func NewSwatch(color colorutil.ARGB, population int) *Swatch {
	return &Swatch{Color: color, Population: population}
}

// HSL returns the swatch color in HSL space.
func (s *Swatch) HSL() colorutil.HSL {
	s.derive()
	return s.hsl
}

// TitleTextColor returns a color legible at title sizes over the swatch
// color (contrast ratio at least MinContrastTitleText).
func (s *Swatch) TitleTextColor() colorutil.ARGB {
	s.derive()
	return s.title
}

// BodyTextColor returns a color legible at body sizes over the swatch
// color (contrast ratio at least MinContrastBodyText).
func (s *Swatch) BodyTextColor() colorutil.ARGB {
	s.derive()
	return s.body
}

func (s *Swatch) String() string {
	hsl := s.HSL()
	return fmt.Sprintf("%s hsl(%.0f,%.2f,%.2f) population=%d",
		s.Color.Hex(), hsl.H, hsl.S, hsl.L, s.Population)
}

func (s *Swatch) derive() {
	s.once.Do(func() {
		s.hsl = colorutil.RGBToHSL(s.Color)
		s.title, s.body = textColors(s.Color.WithAlpha(255))
	})
}

// textColors picks title and body text colors for an opaque background.
// White at the minimum passing alpha is preferred, then black; when neither
// satisfies both contrast requirements the choice is made per requirement,
// with a fully opaque fallback for backgrounds no alpha can fix.
func textColors(bg colorutil.ARGB) (title, body colorutil.ARGB) {
	lightTitle, _ := colorutil.MinimumAlphaForContrast(colorutil.White, bg, MinContrastTitleText)
	lightBody, _ := colorutil.MinimumAlphaForContrast(colorutil.White, bg, MinContrastBodyText)
	if lightTitle != colorutil.AlphaUnsatisfiable && lightBody != colorutil.AlphaUnsatisfiable {
		return colorutil.White.WithAlpha(uint8(lightTitle)), colorutil.White.WithAlpha(uint8(lightBody))
	}

	darkTitle, _ := colorutil.MinimumAlphaForContrast(colorutil.Black, bg, MinContrastTitleText)
	darkBody, _ := colorutil.MinimumAlphaForContrast(colorutil.Black, bg, MinContrastBodyText)
	if darkTitle != colorutil.AlphaUnsatisfiable && darkBody != colorutil.AlphaUnsatisfiable {
		return colorutil.Black.WithAlpha(uint8(darkTitle)), colorutil.Black.WithAlpha(uint8(darkBody))
	}

	// No single foreground works for both sizes; resolve each on its own.
	return pickTextColor(bg, lightTitle, darkTitle), pickTextColor(bg, lightBody, darkBody)
}

func pickTextColor(bg colorutil.ARGB, lightAlpha, darkAlpha int) colorutil.ARGB {
	if darkAlpha != colorutil.AlphaUnsatisfiable {
		return colorutil.Black.WithAlpha(uint8(darkAlpha))
	}
	if lightAlpha != colorutil.AlphaUnsatisfiable {
		return colorutil.White.WithAlpha(uint8(lightAlpha))
	}

	// Neither white nor black reaches the ratio at any alpha. Use whichever
	// contrasts more at full opacity.
	whiteRatio, _ := colorutil.ContrastRatio(colorutil.White, bg)
	blackRatio, _ := colorutil.ContrastRatio(colorutil.Black, bg)
	if whiteRatio >= blackRatio {
		return colorutil.White
	}
	return colorutil.Black
}

// Palette is the immutable result of Generate: every quantized swatch in
// descending population order plus the per-target selections.
// See palette.go for the accessors.
type Palette struct {
	swatches   []*Swatch
	selections map[string]*Swatch
	dominant   *Swatch
}

// Params configures palette generation.
// See params.go for defaults and builder helpers.
type Params struct {
	MaxColors  int              // quantizer color budget, at least 1
	ResizeArea int              // down-sample above this pixel count; 0 disables
	Region     *image.Rectangle // optional sub-rectangle of the source bitmap
	Filters    []Filter         // colors must pass every filter; empty admits all
	Targets    []Target         // profiles resolved in slice order
}
