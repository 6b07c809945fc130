// Package engrave computes intrinsic bar widths and packs bars into
// printed lines. It emits abstract geometry; rendering is elsewhere.
package engrave

import (
	"github.com/scorefall/scorefall-ink/glyph"
	"github.com/scorefall/scorefall-ink/model"
)

// BaseBarWidth is the reference width of one bar in font units.
const BaseBarWidth = 3200.0

// slotFraction is the per-note fraction of BaseBarWidth for a bar whose
// smallest duration is dur128 128th notes. Finer durations get less width
// per note since more of them must fit; an eighth-note run gets 1/5 each.
func slotFraction(dur128 int) float64 {
	switch {
	case dur128 >= 128:
		return 1.0
	case dur128 >= 64:
		return 1.0 / 2
	case dur128 >= 32:
		return 1.0 / 3
	case dur128 >= 16:
		return 1.0 / 5
	case dur128 >= 8:
		return 1.0 / 8
	case dur128 >= 4:
		return 1.0 / 12
	case dur128 >= 2:
		return 1.0 / 16
	default:
		return 1.0 / 20
	}
}

// EstimateWidth is the intrinsic width of a bar: the widest of its
// channels. It is a relative weight, not page units; absolute scaling
// happens in Layout.
func EstimateWidth(chans [][]model.Token, m *glyph.Metrics) float64 {
	width := 0.0
	for _, toks := range chans {
		if w := channelWidth(toks, m); w > width {
			width = w
		}
	}
	if width == 0 {
		// Whole-measure rest or measure-repeat sign.
		return BaseBarWidth
	}
	return width
}

func channelWidth(toks []model.Token, m *glyph.Metrics) float64 {
	min128 := 0
	for _, tok := range toks {
		if !tok.Countable() {
			continue
		}
		if d := tok.Duration.In128ths(); min128 == 0 || d < min128 {
			min128 = d
		}
	}
	if min128 == 0 {
		return 0
	}
	slot := BaseBarWidth * slotFraction(min128)

	width := 0.0
	first := true
	prevAcc := model.Steps(0)
	hasPrevAcc := false
	for _, tok := range toks {
		switch tok.Kind {
		case model.KindGrace:
			width += m.Width(glyph.CatNotehead) / 2
		case model.KindRest:
			width += slot
			first = false
		case model.KindNote:
			width += slot
			if tok.Duration.Simplify().Num != 1 {
				width += m.Width(glyph.CatDot)
			}
			if tok.Pitch.Accidental != model.AccNone {
				width += accidentalCost(m, tok.Pitch, first, hasPrevAcc, prevAcc)
				prevAcc = tok.Pitch.VisualDistance()
				hasPrevAcc = true
			}
			first = false
		}
	}
	return width
}

// accidentalCost charges full accidental width only when the accidental can
// collide: it is cheaper at the start of the bar, and cheaper still when it
// sits far enough from the previous accidental in the same bar.
func accidentalCost(m *glyph.Metrics, p model.Pitch, first, hasPrev bool, prev model.Steps) float64 {
	cost := m.Width(glyph.CatAccidental)
	if first {
		return cost / 2
	}
	if !hasPrev {
		return cost / 4
	}
	interval := int(p.VisualDistance() - prev)
	if interval < 0 {
		interval = -interval
	}
	if interval >= 6 {
		return cost / 4
	}
	return cost
}
