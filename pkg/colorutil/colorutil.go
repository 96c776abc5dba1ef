// Package colorutil provides shared color math for the palette engine:
// packed ARGB colors, HSL/HSV conversion, WCAG relative luminance and
// contrast ratio, alpha compositing, and minimum-alpha search.
package colorutil

import (
	"fmt"
	"math"
)

// ARGB is a packed 32-bit color with alpha in the high byte.
type ARGB uint32

// Default foreground colors used when deriving readable text colors.
var (
	Black = FromRGB(0, 0, 0)
	White = FromRGB(255, 255, 255)
)

// Binary search bounds for MinimumAlphaForContrast. The search stops once
// the bracket is narrower than the precision, so results are conservative
// upper bounds rather than exact minimums.
const (
	minAlphaSearchMaxIterations = 10
	minAlphaSearchPrecision     = 10
)

// AlphaUnsatisfiable is returned by MinimumAlphaForContrast when no alpha
// value of the foreground can reach the requested contrast ratio.
const AlphaUnsatisfiable = -1

// FromARGB packs alpha, red, green and blue components (0-255) into a color.
func FromARGB(a, r, g, b int) ARGB {
	return ARGB(a&0xff)<<24 | ARGB(r&0xff)<<16 | ARGB(g&0xff)<<8 | ARGB(b&0xff)
}

// FromRGB packs red, green and blue components (0-255) into an opaque color.
func FromRGB(r, g, b int) ARGB {
	return FromARGB(255, r, g, b)
}

// Alpha returns the alpha component (0-255).
func (c ARGB) Alpha() int { return int(c >> 24 & 0xff) }

// Red returns the red component (0-255).
func (c ARGB) Red() int { return int(c >> 16 & 0xff) }

// Green returns the green component (0-255).
func (c ARGB) Green() int { return int(c >> 8 & 0xff) }

// Blue returns the blue component (0-255).
func (c ARGB) Blue() int { return int(c & 0xff) }

// Opaque reports whether the color is fully opaque.
func (c ARGB) Opaque() bool { return c.Alpha() == 255 }

// WithAlpha returns the color with its alpha component replaced.
func (c ARGB) WithAlpha(alpha uint8) ARGB {
	return c&0x00ffffff | ARGB(alpha)<<24
}

// Hex returns the color as a lowercase HTML hex string ("#rrggbb").
// The alpha component is dropped.
func (c ARGB) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c&0x00ffffff))
}

// HSL holds a color as hue (0-360), saturation (0-1) and lightness (0-1).
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// HSV holds a color as hue (0-360), saturation (0-1) and value (0-1).
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// RGBToHSL converts a packed color to HSL. The alpha component is ignored.
func RGBToHSL(c ARGB) HSL {
	rf := float64(c.Red()) / 255
	gf := float64(c.Green()) / 255
	bf := float64(c.Blue()) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	diff := maxC - minC

	var h, s float64
	l := (maxC + minC) / 2

	if diff == 0 {
		// Monochromatic
		h, s = 0, 0
	} else {
		switch maxC {
		case rf:
			h = math.Mod((gf-bf)/diff, 6)
		case gf:
			h = (bf-rf)/diff + 2
		default:
			h = (rf-gf)/diff + 4
		}
		s = diff / (1 - math.Abs(2*l-1))
	}

	h = math.Mod(h*60, 360)
	if h < 0 {
		h += 360
	}

	return HSL{H: h, S: s, L: l}
}

// HSLToRGB converts HSL components to an opaque packed color.
// Out-of-range components are pinned.
func HSLToRGB(hsl HSL) ARGB {
	h := math.Mod(hsl.H, 360)
	if h < 0 {
		h += 360
	}
	s := clampF(hsl.S, 0, 1)
	l := clampF(hsl.L, 0, 1)

	c := (1 - math.Abs(2*l-1)) * s
	m := l - 0.5*c
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))

	var r, g, b float64
	switch int(h) / 60 {
	case 0:
		r, g, b = c+m, x+m, m
	case 1:
		r, g, b = x+m, c+m, m
	case 2:
		r, g, b = m, c+m, x+m
	case 3:
		r, g, b = m, x+m, c+m
	case 4:
		r, g, b = x+m, m, c+m
	default:
		r, g, b = c+m, m, x+m
	}

	return FromRGB(
		clamp(int(math.Round(255*r)), 0, 255),
		clamp(int(math.Round(255*g)), 0, 255),
		clamp(int(math.Round(255*b)), 0, 255),
	)
}

// RGBToHSV converts a packed color to HSV. The alpha component is ignored.
// Black has an undefined hue and comes back with H = 0.
func RGBToHSV(c ARGB) HSV {
	rf := float64(c.Red()) / 255
	gf := float64(c.Green()) / 255
	bf := float64(c.Blue()) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	diff := maxC - minC

	v := maxC

	var s float64
	if maxC > 0 {
		s = diff / maxC
	}

	var h float64
	if diff > 0 {
		switch maxC {
		case rf:
			h = (gf - bf) / diff
		case gf:
			h = 2 + (bf-rf)/diff
		default:
			h = 4 + (rf-gf)/diff
		}
		h *= 60
		if h < 0 {
			h += 360
		}
	}

	return HSV{H: h, S: s, V: v}
}

// HSVToRGB converts HSV components to an opaque packed color.
// Out-of-range components are pinned.
func HSVToRGB(hsv HSV) ARGB {
	h := math.Mod(hsv.H, 360)
	if h < 0 {
		h += 360
	}
	s := clampF(hsv.S, 0, 1)
	v := clampF(hsv.V, 0, 1)

	hf := h / 60
	sector := int(hf) % 6
	f := hf - math.Floor(hf)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return FromRGB(
		clamp(int(math.Round(255*r)), 0, 255),
		clamp(int(math.Round(255*g)), 0, 255),
		clamp(int(math.Round(255*b)), 0, 255),
	)
}

// CompositeOver composites a potentially translucent foreground over a
// potentially translucent background and returns the result.
func CompositeOver(fg, bg ARGB) ARGB {
	fgA := fg.Alpha()
	bgA := bg.Alpha()
	a := 255 - (255-fgA)*(255-bgA)/255

	return FromARGB(a,
		compositeChannel(fg.Red(), fgA, bg.Red(), bgA, a),
		compositeChannel(fg.Green(), fgA, bg.Green(), bgA, a),
		compositeChannel(fg.Blue(), fgA, bg.Blue(), bgA, a),
	)
}

func compositeChannel(fgC, fgA, bgC, bgA, a int) int {
	if a == 0 {
		return 0
	}
	return (255*fgC*fgA + bgC*bgA*(255-fgA)) / (a * 255)
}

// RelativeLuminance returns the WCAG relative luminance of a color (0-1).
// The alpha component is ignored.
//
// Formula defined at http://www.w3.org/TR/2008/REC-WCAG20-20081211/#relativeluminancedef
func RelativeLuminance(c ARGB) float64 {
	r := linearChannel(float64(c.Red()) / 255)
	g := linearChannel(float64(c.Green()) / 255)
	b := linearChannel(float64(c.Blue()) / 255)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearChannel(v float64) float64 {
	if v < 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between a foreground and an
// opaque background (1-21). A translucent foreground is composited over the
// background first. A translucent background is an error.
//
// Formula defined at http://www.w3.org/TR/2008/REC-WCAG20-20081211/#contrast-ratiodef
func ContrastRatio(fg, bg ARGB) (float64, error) {
	if !bg.Opaque() {
		return 0, fmt.Errorf("background %s must be opaque, got alpha %d", bg.Hex(), bg.Alpha())
	}
	return contrastOpaque(fg, bg), nil
}

// contrastOpaque computes the contrast ratio assuming bg is opaque.
func contrastOpaque(fg, bg ARGB) float64 {
	if !fg.Opaque() {
		fg = CompositeOver(fg, bg)
	}

	l1 := RelativeLuminance(fg) + 0.05
	l2 := RelativeLuminance(bg) + 0.05

	// Lighter luminance divided by the darker
	return math.Max(l1, l2) / math.Min(l1, l2)
}

// MinimumAlphaForContrast returns the smallest alpha which can be applied
// to the foreground so that it has a contrast ratio of at least minContrast
// against the opaque background. Returns AlphaUnsatisfiable when even a
// fully opaque foreground falls short. A translucent background is an error.
func MinimumAlphaForContrast(fg, bg ARGB, minContrast float64) (int, error) {
	if !bg.Opaque() {
		return 0, fmt.Errorf("background %s must be opaque, got alpha %d", bg.Hex(), bg.Alpha())
	}

	// A fully opaque foreground must have sufficient contrast, otherwise
	// no alpha value can.
	if contrastOpaque(fg.WithAlpha(255), bg) < minContrast {
		return AlphaUnsatisfiable, nil
	}

	// Binary search for the smallest alpha providing sufficient contrast
	iterations := 0
	minAlpha, maxAlpha := 0, 255

	for iterations <= minAlphaSearchMaxIterations &&
		maxAlpha-minAlpha > minAlphaSearchPrecision {
		testAlpha := (minAlpha + maxAlpha) / 2

		if contrastOpaque(fg.WithAlpha(uint8(testAlpha)), bg) < minContrast {
			minAlpha = testAlpha
		} else {
			maxAlpha = testAlpha
		}

		iterations++
	}

	// Return the top of the remaining bracket, which is known to pass.
	return maxAlpha, nil
}

func clamp(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func clampF(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
