// Package bitmap abstracts pixel access over decoded images. A Bitmap
// exposes its dimensions, bulk packed-ARGB reads over a rectangular
// region, a scaled-copy operation, and an explicit dispose lifecycle for
// sources backed by native resources.
package bitmap

import (
	"errors"
	"fmt"
	"image"

	"palette-engine/pkg/colorutil"
)

// ErrDisposed is returned when a disposed bitmap is read or scaled.
var ErrDisposed = errors.New("bitmap has been disposed")

// Bitmap provides read access to the pixels of a decoded image.
//
// ReadPixels fills buf with packed ARGB values for the rectangle of size
// w*h anchored at (x, y), in row-major order: row r of the rectangle lands
// at buf[offset+r*stride : offset+r*stride+w].
//
// Scaled returns a resampled copy. The caller owns the copy and must
// dispose it; the receiver is left untouched. Dispose releases any backing
// resource and must be called at most once, by whoever created the bitmap.
type Bitmap interface {
	Width() int
	Height() int
	ReadPixels(buf []colorutil.ARGB, offset, stride, x, y, w, h int) error
	Scaled(w, h int) (Bitmap, error)
	Dispose()
	Disposed() bool
}

// Pixels reads the region r of bm into a newly allocated buffer.
func Pixels(bm Bitmap, r image.Rectangle) ([]colorutil.ARGB, error) {
	w, h := r.Dx(), r.Dy()
	buf := make([]colorutil.ARGB, w*h)
	if err := bm.ReadPixels(buf, 0, w, r.Min.X, r.Min.Y, w, h); err != nil {
		return nil, fmt.Errorf("read %dx%d region at (%d,%d): %w", w, h, r.Min.X, r.Min.Y, err)
	}
	return buf, nil
}

// checkReadArgs validates a ReadPixels request against the bitmap size.
func checkReadArgs(bmW, bmH, bufLen, offset, stride, x, y, w, h int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("negative region size %dx%d", w, h)
	}
	if x < 0 || y < 0 || x+w > bmW || y+h > bmH {
		return fmt.Errorf("region %dx%d at (%d,%d) outside %dx%d bitmap", w, h, x, y, bmW, bmH)
	}
	if stride < w {
		return fmt.Errorf("stride %d shorter than row width %d", stride, w)
	}
	if offset < 0 {
		return fmt.Errorf("negative offset %d", offset)
	}
	if h == 0 || w == 0 {
		return nil
	}
	if need := offset + (h-1)*stride + w; bufLen < need {
		return fmt.Errorf("buffer too small: %d values, need %d", bufLen, need)
	}
	return nil
}
