package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisualDistanceCountsStaffSteps(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Steps(0), Pitch{Name: C}.VisualDistance())
	assert.Equal(Steps(6), Pitch{Name: B}.VisualDistance())
	assert.Equal(Steps(7), Pitch{Name: C, Octave: 1}.VisualDistance())
	assert.Equal(Steps(-7), Pitch{Name: C, Octave: -1}.VisualDistance())
	assert.Equal(Steps(4), Pitch{Name: G}.VisualDistance())
}

func TestPitchStringWritesOctaveMarks(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C", Pitch{Name: C}.String())
	assert.Equal("F#'", Pitch{Name: F, Accidental: Sharp, Octave: 1}.String())
	assert.Equal("Bb,,", Pitch{Name: B, Accidental: Flat, Octave: -2}.String())
	assert.Equal("Edb", Pitch{Name: E, Accidental: ThreeQuarterFlat}.String())
}

func TestMicrotonalAccidentals(t *testing.T) {
	assert := assert.New(t)
	assert.True(QuarterFlat.Microtonal())
	assert.True(ThreeQuarterSharp.Microtonal())
	assert.False(Sharp.Microtonal())
	assert.False(DoubleFlat.Microtonal())
	assert.False(Natural.Microtonal())
}

func TestParseDynamicMatchesWholeRun(t *testing.T) {
	assert := assert.New(t)
	d, ok := ParseDynamic("mf")
	assert.True(ok)
	assert.Equal(MF, d)

	d, ok = ParseDynamic("sfz")
	assert.True(ok)
	assert.Equal(SFZ, d)

	_, ok = ParseDynamic("pf")
	assert.False(ok)
}

func TestParseRepeatSymbols(t *testing.T) {
	assert := assert.New(t)
	r, ok := ParseRepeat("|:")
	assert.True(ok)
	assert.Equal(RepeatOpen, r.Kind)

	r, ok = ParseRepeat("segno")
	assert.True(ok)
	assert.Equal(Segno, r.Kind)

	r, ok = ParseRepeat("2.")
	assert.True(ok)
	assert.Equal(Ending, r.Kind)
	assert.Equal(uint8(2), r.Number)

	_, ok = ParseRepeat("0.")
	assert.False(ok)
	_, ok = ParseRepeat("nope")
	assert.False(ok)
}

func TestSigMicrotonalRule(t *testing.T) {
	assert := assert.New(t)
	assert.False(Sig{Key: 0}.Microtonal())
	assert.True(Sig{Key: 1}.Microtonal())
	assert.False(Sig{Key: 14}.Microtonal())
	assert.True(Sig{Key: 24}.Microtonal())
}

func TestTimeSigValid(t *testing.T) {
	assert := assert.New(t)
	assert.True(TimeSig{Beats: 4, Unit: 4}.Valid())
	assert.True(TimeSig{Beats: 7, Unit: 8}.Valid())
	assert.False(TimeSig{Beats: 4, Unit: 6}.Valid())
	assert.False(TimeSig{Beats: 0, Unit: 4}.Valid())
}
