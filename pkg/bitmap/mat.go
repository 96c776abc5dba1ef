//go:build cgo

package bitmap

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"palette-engine/pkg/colorutil"
)

// MatBitmap adapts an OpenCV Mat to the Bitmap interface. OpenCV stores
// channels as BGR (or BGRA), so reads reorder into packed ARGB.
type MatBitmap struct {
	mat      gocv.Mat
	disposed bool
}

// NewMatBitmap wraps an 8-bit BGR or BGRA Mat, such as one produced by
// gocv.IMRead. The bitmap takes ownership of the Mat: Dispose closes it.
func NewMatBitmap(mat gocv.Mat) (*MatBitmap, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("empty mat")
	}
	if t := mat.Type(); t != gocv.MatTypeCV8UC3 && t != gocv.MatTypeCV8UC4 {
		return nil, fmt.Errorf("unsupported mat type %d, want 8-bit BGR or BGRA", t)
	}
	return &MatBitmap{mat: mat}, nil
}

// Width returns the Mat width in pixels, or 0 after Dispose.
func (m *MatBitmap) Width() int {
	if m.disposed {
		return 0
	}
	return m.mat.Cols()
}

// Height returns the Mat height in pixels, or 0 after Dispose.
func (m *MatBitmap) Height() int {
	if m.disposed {
		return 0
	}
	return m.mat.Rows()
}

// ReadPixels fills buf with packed ARGB values for the requested rectangle.
// BGR Mats read as fully opaque; BGRA Mats carry their alpha through.
func (m *MatBitmap) ReadPixels(buf []colorutil.ARGB, offset, stride, x, y, w, h int) error {
	if m.disposed {
		return ErrDisposed
	}
	if err := checkReadArgs(m.Width(), m.Height(), len(buf), offset, stride, x, y, w, h); err != nil {
		return err
	}

	channels := m.mat.Channels()
	for row := 0; row < h; row++ {
		base := offset + row*stride
		py := y + row
		for col := 0; col < w; col++ {
			px := (x + col) * channels
			b := int(m.mat.GetUCharAt(py, px))
			g := int(m.mat.GetUCharAt(py, px+1))
			r := int(m.mat.GetUCharAt(py, px+2))
			a := 255
			if channels == 4 {
				a = int(m.mat.GetUCharAt(py, px+3))
			}
			buf[base+col] = colorutil.FromARGB(a, r, g, b)
		}
	}
	return nil
}

// Scaled returns a resampled copy of the Mat at the requested size.
// Area interpolation averages source pixels, which keeps the color
// population of a downscaled copy representative of the original.
func (m *MatBitmap) Scaled(w, h int) (Bitmap, error) {
	if m.disposed {
		return nil, ErrDisposed
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid scaled size %dx%d", w, h)
	}

	dst := gocv.NewMat()
	gocv.Resize(m.mat, &dst, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
	return &MatBitmap{mat: dst}, nil
}

// Dispose closes the underlying Mat. Safe to call once; the Mat is a
// native resource and must not be closed elsewhere.
func (m *MatBitmap) Dispose() {
	if m.disposed {
		return
	}
	m.mat.Close()
	m.disposed = true
}

// Disposed reports whether Dispose has been called.
func (m *MatBitmap) Disposed() bool { return m.disposed }
