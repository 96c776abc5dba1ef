//go:build cgo

// Command palettetest extracts a color palette from an image and prints it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"palette-engine/internal/version"
	"palette-engine/pkg/bitmap"
	"palette-engine/pkg/colorutil"
	"palette-engine/pkg/palette"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func main() {
	imagePath := flag.String("image", "", "Path to image (PNG, JPEG, TIFF, BMP, or WebP)")
	maxColors := flag.Int("colors", palette.DefaultMaxColors, "Maximum number of swatches")
	resizeArea := flag.Int("area", palette.DefaultResizeArea, "Down-sample above this pixel count (0 keeps full size)")
	region := flag.String("region", "", "Sample region as x0,y0,x1,y1 (default: whole image)")
	useOpenCV := flag.Bool("opencv", false, "Load the image through OpenCV instead of the Go decoders")
	noFilter := flag.Bool("nofilter", false, "Keep near-black and near-white colors")
	jsonPath := flag.String("json", "", "Write the palette to a JSON file")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("palettetest %s (built %s, commit %s)\n",
			version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: palettetest -image <path> [-colors 16] [-area 12544] [-region x0,y0,x1,y1] [-opencv] [-nofilter] [-json out.json]")
		os.Exit(1)
	}

	bm, desc, err := loadBitmap(*imagePath, *useOpenCV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer bm.Dispose()

	fmt.Printf("Loaded %s: %dx%d pixels\n", desc, bm.Width(), bm.Height())

	// Set up generation parameters
	params := palette.DefaultParams().
		WithMaxColors(*maxColors).
		WithResizeArea(*resizeArea)
	if *noFilter {
		params = params.WithFilters()
	}
	if *region != "" {
		r, err := parseRegion(*region)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad -region: %v\n", err)
			os.Exit(1)
		}
		params = params.WithRegion(r)
	}

	fmt.Printf("\nGeneration parameters:\n")
	fmt.Printf("  Max colors: %d\n", params.MaxColors)
	fmt.Printf("  Resize area: %d px\n", params.ResizeArea)
	if params.Region != nil {
		fmt.Printf("  Region: %v\n", *params.Region)
	}
	fmt.Printf("  Filters: %d  Targets: %d\n", len(params.Filters), len(params.Targets))

	fmt.Printf("\nGenerating palette...\n")
	p, err := palette.Generate(bm, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}

	swatches := p.Swatches()
	fmt.Printf("\nExtracted %d swatches:\n", len(swatches))
	fmt.Printf("%-9s %10s %6s %6s %6s %12s %12s\n",
		"Color", "Population", "Hue", "Sat", "Light", "Title", "Body")
	fmt.Println(strings.Repeat("-", 66))

	for _, sw := range swatches {
		hsl := sw.HSL()
		fmt.Printf("%-9s %10d %6.0f %6.2f %6.2f %12s %12s\n",
			sw.Color.Hex(), sw.Population, hsl.H, hsl.S, hsl.L,
			argbHex(sw.TitleTextColor()), argbHex(sw.BodyTextColor()))
	}

	fmt.Printf("\nTarget assignments:\n")
	for _, target := range params.Targets {
		if sw := p.SwatchForTarget(target); sw != nil {
			fmt.Printf("  %-14s %s (population %d)\n", target.Name, sw.Color.Hex(), sw.Population)
		} else {
			fmt.Printf("  %-14s (none)\n", target.Name)
		}
	}

	if d := p.DominantSwatch(); d != nil {
		fmt.Printf("\nDominant: %s (population %d)\n", d.Color.Hex(), d.Population)
	}

	if *jsonPath != "" {
		if err := writePaletteJSON(*jsonPath, p, params); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", *jsonPath)
	}
}

// loadBitmap reads the image with the registered Go decoders, or through
// OpenCV when requested to exercise the Mat-backed bitmap path.
func loadBitmap(path string, useOpenCV bool) (bitmap.Bitmap, string, error) {
	if useOpenCV {
		mat := gocv.IMRead(path, gocv.IMReadUnchanged)
		bm, err := bitmap.NewMatBitmap(mat)
		if err != nil {
			return nil, "", err
		}
		return bm, "OpenCV image", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", err
	}
	return bitmap.NewImageBitmap(img), format + " image", nil
}

// parseRegion parses "x0,y0,x1,y1" into a rectangle.
func parseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("want 4 comma-separated integers, got %q", s)
	}
	vals := make([]int, 4)
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("bad coordinate %q: %w", part, err)
		}
		vals[i] = v
	}
	return image.Rect(vals[0], vals[1], vals[2], vals[3]), nil
}

// argbHex formats a color as #aarrggbb, keeping the alpha visible for
// translucent text colors.
func argbHex(c colorutil.ARGB) string {
	return fmt.Sprintf("#%08x", uint32(c))
}

type swatchJSON struct {
	Color      string  `json:"color"`
	Population int     `json:"population"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	TitleText  string  `json:"title_text"`
	BodyText   string  `json:"body_text"`
}

type paletteJSON struct {
	Swatches []swatchJSON      `json:"swatches"`
	Targets  map[string]string `json:"targets"`
	Dominant string            `json:"dominant,omitempty"`
}

func writePaletteJSON(path string, p *palette.Palette, params palette.Params) error {
	out := paletteJSON{Targets: make(map[string]string)}

	for _, sw := range p.Swatches() {
		hsl := sw.HSL()
		out.Swatches = append(out.Swatches, swatchJSON{
			Color:      sw.Color.Hex(),
			Population: sw.Population,
			Hue:        hsl.H,
			Saturation: hsl.S,
			Lightness:  hsl.L,
			TitleText:  argbHex(sw.TitleTextColor()),
			BodyText:   argbHex(sw.BodyTextColor()),
		})
	}

	for _, target := range params.Targets {
		if sw := p.SwatchForTarget(target); sw != nil {
			out.Targets[target.Name] = sw.Color.Hex()
		}
	}
	if d := p.DominantSwatch(); d != nil {
		out.Dominant = d.Color.Hex()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
