package render

import (
	"fmt"
	"strings"

	"github.com/scorefall/scorefall-ink/engrave"
	"github.com/scorefall/scorefall-ink/glyph"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/score"
)

// A half or whole step visual distance, in font units.
const stepDY = 125

// Width of barlines and stave lines.
const barlineWidth = 36

// Space before each note.
const noteMargin = 250

const staveLines = 5

// Vertical span reserved for one channel's stave within a system.
const channelHeight = 24 * stepDY

// stavePath draws the five stave lines across width font units.
func stavePath(top, width int) Path {
	var d strings.Builder
	for i := 0; i < staveLines; i++ {
		y := top + stepDY*(i*2) - barlineWidth/2
		fmt.Fprintf(&d, "M%d %dh%dv%dh-%dv-%dz",
			0, y, width, barlineWidth, width, barlineWidth)
	}
	return Path{D: d.String()}
}

// Render draws every laid-out line of the score as one SVG document.
func Render(sc *score.Score, lines []engrave.Line, m *glyph.Metrics, pageWidth float64) string {
	chans := 0
	if len(sc.Bars) > 0 {
		chans = len(sc.Bars[0].Chans)
	}
	systemHeight := channelHeight * chans

	var b strings.Builder
	height := systemHeight * len(lines)
	fmt.Fprintf(&b,
		"<svg xmlns='http://www.w3.org/2000/svg' xmlns:xlink='http://www.w3.org/1999/xlink' viewBox='0 0 %d %d'>",
		int(pageWidth), height)

	for li, line := range lines {
		g := &Group{Y: li * systemHeight}
		for c := 0; c < chans; c++ {
			top := c*channelHeight + 8*stepDY
			g.Push(stavePath(top, int(pageWidth)))
			for _, box := range line.Bars {
				renderBar(g, sc, box, c, top, m)
				g.Push(Rect{
					X:      int(box.X + box.Width - barlineWidth),
					Y:      top,
					Width:  barlineWidth,
					Height: (staveLines - 1) * 2 * stepDY,
				})
			}
		}
		b.WriteString(g.String())
	}
	b.WriteString("</svg>")
	return b.String()
}

func renderBar(g *Group, sc *score.Score, box engrave.BarBox, chn, top int, m *glyph.Metrics) {
	toks := sc.Resolve(box.Bar, chn)
	// Middle C sits two steps below the bottom stave line on a treble
	// stave.
	middleC := top + (staveLines-1)*2*stepDY + 2*stepDY

	if len(toks) == 0 {
		// Whole-measure rest, centered.
		x := int(box.X + box.Width/2 - m.Width(glyph.CatRest)/2)
		g.Push(Use{X: x, Y: top + 2*stepDY, ID: uint32(glyph.Rest1)})
		return
	}

	total := box.Width - noteMargin
	elapsed := model.NewFraction(0, 1)
	barDur := sc.Bars[box.Bar].Effective.Time.Duration()
	for _, tok := range toks {
		if !tok.Countable() {
			continue
		}
		offset := elapsed.Float64() / barDur.Float64()
		x := int(box.X) + noteMargin + int(offset*total)
		dur128 := tok.Duration.In128ths()
		switch tok.Kind {
		case model.KindRest:
			g.Push(Use{X: x, Y: top + 4*stepDY, ID: uint32(glyph.RestForDuration(dur128))})
		case model.KindNote:
			y := middleC - int(tok.Pitch.VisualDistance())*stepDY
			if acc := tok.Pitch.Accidental; acc != model.AccNone {
				ax := x - int(m.Width(glyph.CatAccidental)) - barlineWidth
				g.Push(Use{X: ax, Y: y, ID: uint32(glyph.AccidentalGlyph[acc])})
			}
			g.Push(Use{X: x, Y: y, ID: uint32(glyph.NoteheadForDuration(dur128))})
			if flag := glyph.FlagForDuration(dur128, y > middleC-4*stepDY); flag != 0 {
				g.Push(Use{X: x, Y: y, ID: uint32(flag)})
			}
		}
		elapsed = elapsed.Add(tok.Duration)
	}
}
