package palette

import "math"

// SelectSwatches resolves each target to its best-scoring swatch, keyed by
// target name. Targets are evaluated in slice order; an exclusive target
// claims its swatch, shrinking the candidate pool for the targets after it.
// A target with no candidate simply has no entry in the result.
func SelectSwatches(swatches []*Swatch, targets []Target) map[string]*Swatch {
	selected := make(map[string]*Swatch, len(targets))
	claimed := make(map[*Swatch]bool)

	for _, t := range targets {
		sw := bestForTarget(swatches, t, claimed)
		if sw == nil {
			continue
		}
		selected[t.Name] = sw
		if t.Exclusive {
			claimed[sw] = true
		}
	}
	return selected
}

// bestForTarget scores every candidate swatch against the target and
// returns the winner, or nil when nothing qualifies. Score ties go to the
// higher population, then to the earlier swatch in the input order.
func bestForTarget(swatches []*Swatch, t Target, claimed map[*Swatch]bool) *Swatch {
	maxPopulation := 0
	for _, sw := range swatches {
		if isCandidate(sw, t, claimed) && sw.Population > maxPopulation {
			maxPopulation = sw.Population
		}
	}

	var best *Swatch
	var bestScore float64
	for _, sw := range swatches {
		if !isCandidate(sw, t, claimed) {
			continue
		}
		score := scoreSwatch(sw, t, maxPopulation)
		if best == nil || score > bestScore ||
			(score == bestScore && sw.Population > best.Population) {
			best = sw
			bestScore = score
		}
	}
	return best
}

// isCandidate reports whether the swatch sits inside the target's
// saturation and lightness bands and is still unclaimed.
func isCandidate(sw *Swatch, t Target, claimed map[*Swatch]bool) bool {
	if claimed[sw] {
		return false
	}
	hsl := sw.HSL()
	return hsl.S >= t.SaturationMin && hsl.S <= t.SaturationMax &&
		hsl.L >= t.LightnessMin && hsl.L <= t.LightnessMax
}

// scoreSwatch rates a candidate by how close its saturation and lightness
// sit to the target values and by its population relative to the largest
// candidate population, each term scaled by the normalized target weights.
func scoreSwatch(sw *Swatch, t Target, maxPopulation int) float64 {
	satWeight, lightWeight, popWeight := t.normalizedWeights()
	hsl := sw.HSL()

	score := 0.0
	if satWeight > 0 {
		score += satWeight * (1 - math.Abs(hsl.S-t.SaturationTarget))
	}
	if lightWeight > 0 {
		score += lightWeight * (1 - math.Abs(hsl.L-t.LightnessTarget))
	}
	if popWeight > 0 && maxPopulation > 0 {
		score += popWeight * (float64(sw.Population) / float64(maxPopulation))
	}
	return score
}
