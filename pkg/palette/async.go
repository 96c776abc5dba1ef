package palette

import (
	"sync"

	"palette-engine/pkg/bitmap"
)

// AsyncResult carries the outcome of one asynchronous generation.
type AsyncResult struct {
	Palette *Palette
	Err     error
}

// GenerateAsync runs Generate in a goroutine and delivers the single
// result on the returned channel before closing it.
func GenerateAsync(bm bitmap.Bitmap, params Params) <-chan AsyncResult {
	ch := make(chan AsyncResult, 1)

	go func() {
		defer close(ch)
		p, err := Generate(bm, params)
		ch <- AsyncResult{Palette: p, Err: err}
	}()

	return ch
}

// BatchGenerate extracts palettes from multiple bitmaps concurrently, one
// goroutine per bitmap. Results are indexed like the input. Each bitmap
// must belong to its own generation; nothing else is shared.
func BatchGenerate(bitmaps []bitmap.Bitmap, params Params) []AsyncResult {
	results := make([]AsyncResult, len(bitmaps))
	var wg sync.WaitGroup

	for i := range bitmaps {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			p, err := Generate(bitmaps[idx], params)
			results[idx] = AsyncResult{Palette: p, Err: err}
		}(i)
	}

	wg.Wait()
	return results
}
