package bitmap

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"palette-engine/pkg/colorutil"
)

// ImageBitmap adapts a decoded image.Image to the Bitmap interface.
// Pixels are exposed as non-premultiplied packed ARGB.
type ImageBitmap struct {
	img      image.Image
	disposed bool
}

// NewImageBitmap wraps an image. The image is not copied; it must not be
// mutated while the bitmap is in use.
func NewImageBitmap(img image.Image) *ImageBitmap {
	return &ImageBitmap{img: img}
}

// Width returns the image width in pixels, or 0 after Dispose.
func (b *ImageBitmap) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dx()
}

// Height returns the image height in pixels, or 0 after Dispose.
func (b *ImageBitmap) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Bounds().Dy()
}

// ReadPixels fills buf with packed ARGB values for the requested rectangle.
// Coordinates are relative to the top-left of the image regardless of its
// bounds origin.
func (b *ImageBitmap) ReadPixels(buf []colorutil.ARGB, offset, stride, x, y, w, h int) error {
	if b.disposed {
		return ErrDisposed
	}
	if err := checkReadArgs(b.Width(), b.Height(), len(buf), offset, stride, x, y, w, h); err != nil {
		return err
	}

	bounds := b.img.Bounds()
	for row := 0; row < h; row++ {
		base := offset + row*stride
		for col := 0; col < w; col++ {
			px := b.img.At(bounds.Min.X+x+col, bounds.Min.Y+y+row)
			c := color.NRGBAModel.Convert(px).(color.NRGBA)
			buf[base+col] = colorutil.FromARGB(int(c.A), int(c.R), int(c.G), int(c.B))
		}
	}
	return nil
}

// Scaled returns a resampled copy of the image at the requested size.
func (b *ImageBitmap) Scaled(w, h int) (Bitmap, error) {
	if b.disposed {
		return nil, ErrDisposed
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid scaled size %dx%d", w, h)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), b.img, b.img.Bounds(), xdraw.Src, nil)
	return NewImageBitmap(dst), nil
}

// Dispose drops the reference to the backing image.
func (b *ImageBitmap) Dispose() {
	b.img = nil
	b.disposed = true
}

// Disposed reports whether Dispose has been called.
func (b *ImageBitmap) Disposed() bool { return b.disposed }
