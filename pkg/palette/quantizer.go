package palette

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"palette-engine/pkg/colorutil"
)

// Channel indices for median-cut splits, in tie-break priority order.
const (
	channelRed = iota
	channelGreen
	channelBlue
)

// Quantize reduces a pixel buffer to at most maxColors representative
// swatches using median-cut partitioning of RGB space. Fully transparent
// pixels are dropped, then every filter must admit a color for it to take
// part. The result is ordered by descending population; a buffer with no
// surviving pixels yields an empty result and no error.
func Quantize(pixels []colorutil.ARGB, maxColors int, filters ...Filter) ([]*Swatch, error) {
	if maxColors < 1 {
		return nil, fmt.Errorf("invalid max colors %d, want at least 1", maxColors)
	}

	bins := histogram(pixels, filters)
	if len(bins) == 0 {
		return nil, nil
	}

	// Fewer distinct colors than requested: the image already is its own
	// palette, so keep the exact colors instead of averaging.
	if len(bins) <= maxColors {
		swatches := make([]*Swatch, len(bins))
		for i, b := range bins {
			swatches[i] = NewSwatch(b.color, b.count)
		}
		sort.SliceStable(swatches, func(i, j int) bool {
			return swatches[i].Population > swatches[j].Population
		})
		return swatches, nil
	}

	return medianCut(bins, maxColors, filters), nil
}

// bin is one distinct opaque color and the number of pixels carrying it.
type bin struct {
	color colorutil.ARGB
	count int
}

// histogram collapses the buffer to distinct-color bins, dropping fully
// transparent pixels and colors any filter rejects. Bins come back sorted
// ascending by packed RGB, which orders by red, then green, then blue.
func histogram(pixels []colorutil.ARGB, filters []Filter) []bin {
	counts := make(map[colorutil.ARGB]int)
	for _, px := range pixels {
		if px.Alpha() == 0 {
			continue
		}
		counts[px.WithAlpha(255)]++
	}

	bins := make([]bin, 0, len(counts))
	for c, n := range counts {
		if allowed(c, colorutil.RGBToHSL(c), filters) {
			bins = append(bins, bin{color: c, count: n})
		}
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].color < bins[j].color })
	return bins
}

func allowed(c colorutil.ARGB, hsl colorutil.HSL, filters []Filter) bool {
	for _, f := range filters {
		if !f(c, hsl) {
			return false
		}
	}
	return true
}

// medianCut splits the bin range into up to maxColors boxes, always
// splitting the box with the largest population-weighted volume, then
// averages each box into a swatch. Boxes holding a single distinct color
// cannot split and retire from the queue.
func medianCut(bins []bin, maxColors int, filters []Filter) []*Swatch {
	seq := 0
	splittable := &boxQueue{}
	terminal := make([]*colorBox, 0, maxColors)

	offer := func(b *colorBox) {
		if b.canSplit() {
			heap.Push(splittable, b)
		} else {
			terminal = append(terminal, b)
		}
	}
	offer(newColorBox(bins, 0, len(bins)-1, seq))

	for len(terminal)+splittable.Len() < maxColors && splittable.Len() > 0 {
		box := heap.Pop(splittable).(*colorBox)
		left, right := box.split(bins, &seq)
		offer(left)
		offer(right)
	}

	boxes := append(terminal, *splittable...)
	sort.Slice(boxes, func(i, j int) bool {
		if boxes[i].population != boxes[j].population {
			return boxes[i].population > boxes[j].population
		}
		return boxes[i].seq < boxes[j].seq
	})

	swatches := make([]*Swatch, 0, len(boxes))
	for _, box := range boxes {
		sw := box.swatch(bins)
		// Averaging can drift a box's color into filtered territory even
		// though every member passed; drop such swatches.
		if allowed(sw.Color, colorutil.RGBToHSL(sw.Color), filters) {
			swatches = append(swatches, sw)
		}
	}
	return swatches
}

// colorBox is an axis-aligned RGB bounding box over a contiguous range of
// bins, bins[lower] through bins[upper] inclusive.
type colorBox struct {
	lower, upper int
	seq          int // creation order, breaks equal-priority ties

	population         int
	minRed, maxRed     int
	minGreen, maxGreen int
	minBlue, maxBlue   int
}

func newColorBox(bins []bin, lower, upper, seq int) *colorBox {
	b := &colorBox{lower: lower, upper: upper, seq: seq}
	b.fit(bins)
	return b
}

// fit recomputes the channel bounds and population from the member bins.
func (b *colorBox) fit(bins []bin) {
	b.population = 0
	b.minRed, b.minGreen, b.minBlue = 255, 255, 255
	b.maxRed, b.maxGreen, b.maxBlue = 0, 0, 0

	for _, bn := range bins[b.lower : b.upper+1] {
		b.population += bn.count
		b.minRed = min(b.minRed, bn.color.Red())
		b.maxRed = max(b.maxRed, bn.color.Red())
		b.minGreen = min(b.minGreen, bn.color.Green())
		b.maxGreen = max(b.maxGreen, bn.color.Green())
		b.minBlue = min(b.minBlue, bn.color.Blue())
		b.maxBlue = max(b.maxBlue, bn.color.Blue())
	}
}

func (b *colorBox) canSplit() bool { return b.upper > b.lower }

func (b *colorBox) volume() int {
	return (b.maxRed - b.minRed + 1) * (b.maxGreen - b.minGreen + 1) * (b.maxBlue - b.minBlue + 1)
}

func (b *colorBox) priority() int { return b.population * b.volume() }

// longestChannel returns the channel with the widest range, preferring
// red, then green, then blue on ties.
func (b *colorBox) longestChannel() int {
	redSpan := b.maxRed - b.minRed
	greenSpan := b.maxGreen - b.minGreen
	blueSpan := b.maxBlue - b.minBlue

	if redSpan >= greenSpan && redSpan >= blueSpan {
		return channelRed
	}
	if greenSpan >= blueSpan {
		return channelGreen
	}
	return channelBlue
}

// split sorts the member bins along the box's longest channel and cuts at
// the weighted median, so each side carries about half the population.
// The returned child boxes cover [lower, mid] and [mid+1, upper].
func (b *colorBox) split(bins []bin, seq *int) (*colorBox, *colorBox) {
	ch := b.longestChannel()
	section := bins[b.lower : b.upper+1]
	sort.Slice(section, func(i, j int) bool {
		vi, vj := channelValue(section[i].color, ch), channelValue(section[j].color, ch)
		if vi != vj {
			return vi < vj
		}
		return section[i].color < section[j].color
	})

	mid := b.splitIndex(bins)

	*seq++
	left := newColorBox(bins, b.lower, mid, *seq)
	*seq++
	right := newColorBox(bins, mid+1, b.upper, *seq)
	return left, right
}

// splitIndex returns the bin index in [lower, upper-1] whose cumulative
// population is closest to half the box population, taking the lower index
// when two cuts are equally close.
func (b *colorBox) splitIndex(bins []bin) int {
	bestIdx := b.lower
	bestDiff := math.MaxInt
	cum := 0

	for i := b.lower; i < b.upper; i++ {
		cum += bins[i].count
		diff := 2*cum - b.population
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			bestIdx = i
		}
	}
	return bestIdx
}

// swatch averages the box's member colors, weighting each channel mean by
// bin population.
func (b *colorBox) swatch(bins []bin) *Swatch {
	n := b.upper - b.lower + 1
	reds := make([]float64, n)
	greens := make([]float64, n)
	blues := make([]float64, n)
	weights := make([]float64, n)

	for i, bn := range bins[b.lower : b.upper+1] {
		reds[i] = float64(bn.color.Red())
		greens[i] = float64(bn.color.Green())
		blues[i] = float64(bn.color.Blue())
		weights[i] = float64(bn.count)
	}

	red := int(math.Round(stat.Mean(reds, weights)))
	green := int(math.Round(stat.Mean(greens, weights)))
	blue := int(math.Round(stat.Mean(blues, weights)))
	return NewSwatch(colorutil.FromRGB(red, green, blue), b.population)
}

func channelValue(c colorutil.ARGB, ch int) int {
	switch ch {
	case channelRed:
		return c.Red()
	case channelGreen:
		return c.Green()
	default:
		return c.Blue()
	}
}

// boxQueue is a max-heap of splittable boxes keyed by population-weighted
// volume. Equal priorities resolve to the earlier-created box, keeping the
// split order deterministic.
type boxQueue []*colorBox

func (q boxQueue) Len() int { return len(q) }

func (q boxQueue) Less(i, j int) bool {
	pi, pj := q[i].priority(), q[j].priority()
	if pi != pj {
		return pi > pj
	}
	return q[i].seq < q[j].seq
}

func (q boxQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *boxQueue) Push(x any) { *q = append(*q, x.(*colorBox)) }

func (q *boxQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
