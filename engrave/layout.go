package engrave

import (
	"fmt"

	"github.com/scorefall/scorefall-ink/glyph"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/score"
)

// Options tunes the line breaker. The stretch tolerance is the fraction of
// the page width a candidate line's intrinsic sum may exceed before the
// line closes; it is configurable because no single constant suits every
// page size.
type Options struct {
	MaxBarsPerLine   int
	MaxTokensPerLine int
	Stretch          float64
}

// DefaultOptions matches the engraving defaults.
func DefaultOptions() Options {
	return Options{MaxBarsPerLine: 9, MaxTokensPerLine: 32, Stretch: 0.3}
}

// BarBox is one bar's slot on a line.
type BarBox struct {
	Bar   int     `json:"bar"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// Line is one printed line. Scale is page width over intrinsic sum, the
// stretch applied to the line's content.
type Line struct {
	Bars  []BarBox `json:"bars"`
	Scale float64  `json:"scale"`
}

// UnsatisfiableError means a single bar cannot fit the page at all, which
// makes the proportion rule impossible. It is surfaced, never degraded.
type UnsatisfiableError struct {
	Bar   int
	Width float64
	Page  float64
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("bar %v intrinsic width %.0f exceeds page width %.0f",
		e.Bar, e.Width, e.Page)
}

// Layout packs the score's bars into lines. It is a constrained greedy
// breaker: deterministic and local rather than globally optimal. Re-running
// on identical input yields bit-identical output.
func Layout(sc *score.Score, m *glyph.Metrics, pageWidth float64, opts Options) ([]Line, error) {
	widths := make([]float64, len(sc.Bars))
	tokens := make([]int, len(sc.Bars))
	for i := range sc.Bars {
		resolved := resolveBar(sc, i)
		widths[i] = EstimateWidth(resolved, m)
		for _, toks := range resolved {
			tokens[i] += len(toks)
		}
		if widths[i] > pageWidth {
			return nil, &UnsatisfiableError{Bar: i, Width: widths[i], Page: pageWidth}
		}
	}

	groups := breakLines(widths, tokens, pageWidth, opts)

	var lines []Line
	var prevAlloc []float64
	for _, group := range groups {
		intrinsic := make([]float64, len(group))
		sum := 0.0
		for k, bar := range group {
			intrinsic[k] = widths[bar]
			sum += widths[bar]
		}
		alloc := distribute(pageWidth, intrinsic)
		if prevAlloc != nil && len(prevAlloc) == len(alloc) {
			alloc = alignBarlines(pageWidth, alloc, prevAlloc)
		}

		line := Line{Scale: pageWidth / sum}
		x := 0.0
		for k, bar := range group {
			line.Bars = append(line.Bars, BarBox{Bar: bar, X: x, Width: alloc[k]})
			x += alloc[k]
		}
		lines = append(lines, line)
		prevAlloc = alloc
	}
	return lines, nil
}

func resolveBar(sc *score.Score, bar int) [][]model.Token {
	chans := make([][]model.Token, len(sc.Bars[bar].Chans))
	for j := range sc.Bars[bar].Chans {
		chans[j] = sc.Resolve(bar, j)
	}
	return chans
}

// breakLines walks bars in order, closing a line when the bar, token or
// width budget would be exceeded, or when the balance rule (consecutive
// lines within 2 bars of each other) would break.
func breakLines(widths []float64, tokens []int, pageWidth float64, opts Options) [][]int {
	var groups [][]int
	var cur []int
	sum := 0.0
	toks := 0
	prevCount := 0

	flush := func() {
		groups = append(groups, cur)
		prevCount = len(cur)
		cur = nil
		sum = 0
		toks = 0
	}

	for i := range widths {
		if len(cur) > 0 {
			switch {
			case len(cur) >= opts.MaxBarsPerLine,
				toks+tokens[i] > opts.MaxTokensPerLine,
				sum+widths[i] > pageWidth*(1+opts.Stretch),
				prevCount > 0 && len(cur)+1 > prevCount+2:
				flush()
			}
		}
		cur = append(cur, i)
		sum += widths[i]
		toks += tokens[i]
	}
	if len(cur) > 0 {
		flush()
	}
	rebalanceTail(groups, tokens, opts.MaxTokensPerLine)
	return groups
}

// rebalanceTail pulls bars backwards so no line falls more than 2 bars
// short of the line above it. The greedy walk only guards the forward
// direction; a small remainder line needs this fixup. The token cap is a
// hard limit: a pull that would push the receiving line over it is
// skipped, leaving the lines unbalanced rather than overfull.
func rebalanceTail(groups [][]int, tokens []int, maxTokens int) {
	lineTokens := func(group []int) int {
		n := 0
		for _, bar := range group {
			n += tokens[bar]
		}
		return n
	}
	for moved := true; moved; {
		moved = false
		for i := len(groups) - 1; i > 0; i-- {
			for len(groups[i]) < len(groups[i-1])-2 {
				prev := groups[i-1]
				bar := prev[len(prev)-1]
				if lineTokens(groups[i])+tokens[bar] > maxTokens {
					break
				}
				groups[i] = append([]int{bar}, groups[i]...)
				groups[i-1] = prev[:len(prev)-1]
				moved = true
			}
		}
	}
}

// distribute splits the page among bars in proportion to intrinsic width,
// then clamps so no bar exceeds twice the narrowest, water-filling the
// clamped-off excess back onto the rest. Each pass fixes at least one
// clamp, so it terminates within len(widths) passes.
func distribute(pageWidth float64, widths []float64) []float64 {
	total := 0.0
	for _, w := range widths {
		total += w
	}
	alloc := make([]float64, len(widths))
	for i, w := range widths {
		alloc[i] = w / total * pageWidth
	}
	clampProportions(alloc)
	return alloc
}

const proportionSlack = 1e-9

func clampProportions(alloc []float64) {
	for pass := 0; pass < len(alloc); pass++ {
		mn, mx := alloc[0], alloc[0]
		for _, a := range alloc {
			if a < mn {
				mn = a
			}
			if a > mx {
				mx = a
			}
		}
		limit := 2 * mn
		if mx <= limit+proportionSlack {
			return
		}
		excess := 0.0
		freeSum := 0.0
		for i, a := range alloc {
			if a > limit {
				excess += a - limit
				alloc[i] = limit
			} else {
				freeSum += a
			}
		}
		if freeSum == 0 {
			return
		}
		for i, a := range alloc {
			if a < limit {
				alloc[i] = a + excess*a/freeSum
			}
		}
	}
}

// alignBarlines keeps the k-th barline of a line within a fifth of the
// line length of the barline above it. A violating line is pulled halfway
// toward the previous line's widths (soft anchors) and re-clamped.
func alignBarlines(pageWidth float64, alloc, prevAlloc []float64) []float64 {
	pos := 0.0
	prevPos := 0.0
	misaligned := false
	for k := 0; k < len(alloc)-1; k++ {
		pos += alloc[k]
		prevPos += prevAlloc[k]
		diff := pos - prevPos
		if diff < 0 {
			diff = -diff
		}
		if diff > pageWidth/5 {
			misaligned = true
			break
		}
	}
	if !misaligned {
		return alloc
	}
	nudged := make([]float64, len(alloc))
	sum := 0.0
	for i := range alloc {
		nudged[i] = (alloc[i] + prevAlloc[i]) / 2
		sum += nudged[i]
	}
	for i := range nudged {
		nudged[i] *= pageWidth / sum
	}
	clampProportions(nudged)
	return nudged
}
