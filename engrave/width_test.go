package engrave

import (
	"testing"

	"github.com/scorefall/scorefall-ink/glyph"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/notation"
	"github.com/stretchr/testify/assert"
)

func chanOf(t *testing.T, raw string) [][]model.Token {
	t.Helper()
	toks, err := notation.Decode(raw)
	if err != nil {
		t.Fatalf("Decode(%q): %v", raw, err)
	}
	return [][]model.Token{toks}
}

func TestEmptyBarGetsBaseWidth(t *testing.T) {
	m := glyph.DefaultMetrics()
	assert.Equal(t, BaseBarWidth, EstimateWidth(nil, m))
	assert.Equal(t, BaseBarWidth, EstimateWidth([][]model.Token{{}}, m))
}

func TestWidthScalesWithSmallestDuration(t *testing.T) {
	m := glyph.DefaultMetrics()

	assert := assert.New(t)
	whole := EstimateWidth(chanOf(t, "C1"), m)
	assert.Equal(BaseBarWidth, whole)

	// Eight eighths each get a fifth of the base width.
	eighths := EstimateWidth(chanOf(t, "C8D8E8F8G8A8B8C'8"), m)
	assert.InDelta(8*BaseBarWidth/5, eighths, 1e-9)

	// A single eighth among quarters drags every slot down to the
	// eighth-note size.
	mixed := EstimateWidth(chanOf(t, "C4D4E4F8G8"), m)
	assert.InDelta(5*BaseBarWidth/5, mixed, 1e-9)
}

func TestWidthTakesWidestChannel(t *testing.T) {
	m := glyph.DefaultMetrics()
	narrow := chanOf(t, "C1")[0]
	wide := chanOf(t, "C4D4E4F4")[0]

	both := EstimateWidth([][]model.Token{narrow, wide}, m)
	assert.Equal(t, EstimateWidth([][]model.Token{wide}, m), both)
}

func TestDotsWidenTheBar(t *testing.T) {
	m := glyph.DefaultMetrics()
	plain := EstimateWidth(chanOf(t, "C2D2"), m)

	// Dot the second note without shrinking the smallest duration.
	dottedChan := chanOf(t, "C2D2")
	dottedChan[0][1].Duration = model.NewFraction(3, 4)
	dotted := EstimateWidth(dottedChan, m)

	assert.InDelta(t, m.Width(glyph.CatDot), dotted-plain, 1e-9)
}

func TestGraceNotesCostHalfANotehead(t *testing.T) {
	m := glyph.DefaultMetrics()
	plain := EstimateWidth(chanOf(t, "C1"), m)
	graced := EstimateWidth(chanOf(t, "{DE}C1"), m)

	assert.InDelta(t, m.Width(glyph.CatNotehead), graced-plain, 1e-9)
}

func TestFirstAccidentalIsCheap(t *testing.T) {
	m := glyph.DefaultMetrics()
	plain := EstimateWidth(chanOf(t, "C2D2"), m)
	first := EstimateWidth(chanOf(t, "C#2D2"), m)

	assert.InDelta(t, m.Width(glyph.CatAccidental)/2, first-plain, 1e-9)
}

func TestCloseAccidentalsCostMoreThanDistantOnes(t *testing.T) {
	m := glyph.DefaultMetrics()

	// Second accidental one step from the first collides.
	close := EstimateWidth(chanOf(t, "C#2D#2"), m)
	// Thirteen steps away it cannot.
	distant := EstimateWidth(chanOf(t, "C#2B#'2"), m)

	assert := assert.New(t)
	assert.Greater(close, distant)
	assert.InDelta(m.Width(glyph.CatAccidental)-m.Width(glyph.CatAccidental)/4,
		close-distant, 1e-9)
}
