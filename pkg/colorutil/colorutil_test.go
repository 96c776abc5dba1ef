package colorutil

import (
	"math"
	"testing"
)

func TestPackedComponents(t *testing.T) {
	t.Parallel()

	c := FromARGB(0x12, 0x34, 0x56, 0x78)
	if c != 0x12345678 {
		t.Fatalf("FromARGB packed 0x%08x, want 0x12345678", uint32(c))
	}
	if c.Alpha() != 0x12 || c.Red() != 0x34 || c.Green() != 0x56 || c.Blue() != 0x78 {
		t.Errorf("components = %d,%d,%d,%d, want 18,52,86,120",
			c.Alpha(), c.Red(), c.Green(), c.Blue())
	}

	if got := FromRGB(1, 2, 3); got.Alpha() != 255 {
		t.Errorf("FromRGB alpha = %d, want 255", got.Alpha())
	}
}

func TestWithAlpha(t *testing.T) {
	t.Parallel()

	c := FromRGB(10, 20, 30).WithAlpha(77)
	if c.Alpha() != 77 {
		t.Errorf("alpha = %d, want 77", c.Alpha())
	}
	if c.Red() != 10 || c.Green() != 20 || c.Blue() != 30 {
		t.Errorf("rgb changed: %d,%d,%d", c.Red(), c.Green(), c.Blue())
	}
}

func TestHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		color ARGB
		want  string
	}{
		{0xffaeaeae, "#aeaeae"},
		{0x00000001, "#000001"},
		{FromRGB(255, 0, 0), "#ff0000"},
		{FromRGB(0, 0, 0), "#000000"},
		{FromARGB(0, 255, 255, 255), "#ffffff"},
	}
	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("Hex(0x%08x) = %q, want %q", uint32(tt.color), got, tt.want)
		}
	}
}

func TestRGBToHSLKnownColors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		color   ARGB
		h, s, l float64
	}{
		{"red", FromRGB(255, 0, 0), 0, 1, 0.5},
		{"green", FromRGB(0, 255, 0), 120, 1, 0.5},
		{"blue", FromRGB(0, 0, 255), 240, 1, 0.5},
		{"white", FromRGB(255, 255, 255), 0, 0, 1},
		{"black", FromRGB(0, 0, 0), 0, 0, 0},
		{"gray", FromRGB(128, 128, 128), 0, 0, 0.50196},
	}
	for _, tt := range tests {
		hsl := RGBToHSL(tt.color)
		if math.Abs(hsl.H-tt.h) > 0.5 || math.Abs(hsl.S-tt.s) > 0.01 || math.Abs(hsl.L-tt.l) > 0.01 {
			t.Errorf("%s: HSL = (%.2f, %.3f, %.3f), want (%.2f, %.3f, %.3f)",
				tt.name, hsl.H, hsl.S, hsl.L, tt.h, tt.s, tt.l)
		}
	}
}

func TestHSLHueRange(t *testing.T) {
	t.Parallel()

	// Colors on the magenta side used to produce negative hues in the
	// naive mod-6 formulation. Hue must always land in [0, 360).
	for r := 0; r <= 255; r += 51 {
		for b := 0; b <= 255; b += 51 {
			hsl := RGBToHSL(FromRGB(r, 0, b))
			if hsl.H < 0 || hsl.H >= 360 {
				t.Fatalf("hue out of range for rgb(%d,0,%d): %f", r, b, hsl.H)
			}
		}
	}
}

func TestHSLRoundTrip(t *testing.T) {
	t.Parallel()

	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				in := FromRGB(r, g, b)
				out := HSLToRGB(RGBToHSL(in))
				if channelDelta(in, out) > 1 {
					t.Fatalf("round trip rgb(%d,%d,%d) -> %s drifted more than 1 per channel",
						r, g, b, out.Hex())
				}
			}
		}
	}
}

func TestHSVKnownColorsAndRoundTrip(t *testing.T) {
	t.Parallel()

	red := RGBToHSV(FromRGB(255, 0, 0))
	if math.Abs(red.H) > 0.5 || math.Abs(red.S-1) > 0.01 || math.Abs(red.V-1) > 0.01 {
		t.Errorf("red HSV = (%.2f, %.3f, %.3f), want (0, 1, 1)", red.H, red.S, red.V)
	}

	black := RGBToHSV(FromRGB(0, 0, 0))
	if black.H != 0 || black.S != 0 || black.V != 0 {
		t.Errorf("black HSV = %+v, want zeros", black)
	}

	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				in := FromRGB(r, g, b)
				out := HSVToRGB(RGBToHSV(in))
				if channelDelta(in, out) > 1 {
					t.Fatalf("round trip rgb(%d,%d,%d) -> %s drifted more than 1 per channel",
						r, g, b, out.Hex())
				}
			}
		}
	}
}

func TestCompositeOver(t *testing.T) {
	t.Parallel()

	bg := FromRGB(0, 0, 0)

	// An opaque foreground fully replaces the background.
	if got := CompositeOver(FromRGB(10, 20, 30), bg); got != FromRGB(10, 20, 30) {
		t.Errorf("opaque over = %s, want #0a141e", got.Hex())
	}

	// A fully transparent foreground leaves the background untouched.
	if got := CompositeOver(FromRGB(200, 100, 50).WithAlpha(0), FromRGB(1, 2, 3)); got != FromRGB(1, 2, 3) {
		t.Errorf("transparent over = %s, want #010203", got.Hex())
	}

	// 50% white over black lands near mid gray and stays opaque.
	half := CompositeOver(White.WithAlpha(128), bg)
	if half.Alpha() != 255 {
		t.Errorf("alpha = %d, want 255", half.Alpha())
	}
	if half.Red() < 126 || half.Red() > 129 {
		t.Errorf("red = %d, want ~128", half.Red())
	}
	if half.Red() != half.Green() || half.Green() != half.Blue() {
		t.Errorf("result not gray: %s", half.Hex())
	}
}

func TestRelativeLuminance(t *testing.T) {
	t.Parallel()

	if got := RelativeLuminance(Black); got != 0 {
		t.Errorf("luminance(black) = %f, want 0", got)
	}
	if got := RelativeLuminance(White); math.Abs(got-1) > 1e-9 {
		t.Errorf("luminance(white) = %f, want 1", got)
	}
	mid := RelativeLuminance(FromRGB(128, 128, 128))
	if mid <= 0 || mid >= 1 {
		t.Errorf("luminance(gray) = %f, want within (0, 1)", mid)
	}
}

func TestContrastRatio(t *testing.T) {
	t.Parallel()

	// Identical colors always contrast at exactly 1.
	for _, c := range []ARGB{Black, White, FromRGB(12, 200, 99), FromRGB(128, 128, 128)} {
		ratio, err := ContrastRatio(c, c)
		if err != nil {
			t.Fatalf("ContrastRatio(%s, %s): %v", c.Hex(), c.Hex(), err)
		}
		if ratio != 1 {
			t.Errorf("ContrastRatio(%s, %s) = %f, want 1", c.Hex(), c.Hex(), ratio)
		}
	}

	// Black on white is the maximum, 21.
	ratio, err := ContrastRatio(Black, White)
	if err != nil {
		t.Fatalf("ContrastRatio: %v", err)
	}
	if math.Abs(ratio-21) > 1e-9 {
		t.Errorf("ContrastRatio(black, white) = %f, want 21", ratio)
	}

	// Argument order does not change the value.
	reversed, err := ContrastRatio(White, Black)
	if err != nil {
		t.Fatalf("ContrastRatio: %v", err)
	}
	if reversed != ratio {
		t.Errorf("ContrastRatio not symmetric: %f vs %f", ratio, reversed)
	}

	// A translucent foreground is composited before measuring.
	faint, err := ContrastRatio(White.WithAlpha(100), Black)
	if err != nil {
		t.Fatalf("ContrastRatio: %v", err)
	}
	if faint <= 1 || faint >= 21 {
		t.Errorf("ContrastRatio(translucent white, black) = %f, want within (1, 21)", faint)
	}

	// A translucent background is rejected.
	if _, err := ContrastRatio(Black, White.WithAlpha(254)); err == nil {
		t.Error("expected error for translucent background")
	}
}

func TestMinimumAlphaForContrast(t *testing.T) {
	t.Parallel()

	// White text can never contrast against a white background.
	alpha, err := MinimumAlphaForContrast(White, White, 4.5)
	if err != nil {
		t.Fatalf("MinimumAlphaForContrast: %v", err)
	}
	if alpha != AlphaUnsatisfiable {
		t.Errorf("alpha = %d, want AlphaUnsatisfiable", alpha)
	}

	// Black on white succeeds, and the returned alpha actually passes.
	alpha, err = MinimumAlphaForContrast(Black, White, 4.5)
	if err != nil {
		t.Fatalf("MinimumAlphaForContrast: %v", err)
	}
	if alpha < 0 || alpha > 255 {
		t.Fatalf("alpha = %d, want 0-255", alpha)
	}
	ratio, err := ContrastRatio(Black.WithAlpha(uint8(alpha)), White)
	if err != nil {
		t.Fatalf("ContrastRatio: %v", err)
	}
	if ratio < 4.5 {
		t.Errorf("contrast at returned alpha %d = %f, want >= 4.5", alpha, ratio)
	}

	// A translucent background is rejected.
	if _, err := MinimumAlphaForContrast(Black, White.WithAlpha(1), 3.0); err == nil {
		t.Error("expected error for translucent background")
	}
}

// channelDelta returns the largest per-channel difference between two colors.
func channelDelta(a, b ARGB) int {
	d := abs(a.Red() - b.Red())
	if g := abs(a.Green() - b.Green()); g > d {
		d = g
	}
	if bl := abs(a.Blue() - b.Blue()); bl > d {
		d = bl
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
