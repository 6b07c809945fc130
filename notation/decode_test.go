package notation

import (
	"testing"

	"github.com/scorefall/scorefall-ink/model"
	"github.com/stretchr/testify/assert"
)

func mustDecode(t *testing.T, raw string) []model.Token {
	t.Helper()
	toks, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode(%q): %v", raw, err)
	}
	return toks
}

func TestDecodesRunOfQuarterNotes(t *testing.T) {
	toks := mustDecode(t, "C4D4E4")

	assert := assert.New(t)
	assert.Len(toks, 3)
	assert.Equal(model.KindNote, toks[0].Kind)
	assert.Equal(model.C, toks[0].Pitch.Name)
	assert.Equal(model.D, toks[1].Pitch.Name)
	assert.Equal(model.E, toks[2].Pitch.Name)
	for _, tok := range toks {
		assert.True(tok.Duration.Equal(model.NewFraction(1, 4)))
		assert.Equal(int8(0), tok.Pitch.Octave)
	}
}

func TestDecodesOctaveMarks(t *testing.T) {
	toks := mustDecode(t, "C'8A,2G''16")

	assert := assert.New(t)
	assert.Equal(int8(1), toks[0].Pitch.Octave)
	assert.True(toks[0].Duration.Equal(model.NewFraction(1, 8)))
	assert.Equal(int8(-1), toks[1].Pitch.Octave)
	assert.Equal(model.A, toks[1].Pitch.Name)
	assert.Equal(int8(2), toks[2].Pitch.Octave)
	assert.True(toks[2].Duration.Equal(model.NewFraction(1, 16)))
}

func TestDecodesAccidentalsGreedily(t *testing.T) {
	toks := mustDecode(t, "Cbb4Db4C#2Cx1Cn8")

	assert := assert.New(t)
	assert.Equal(model.DoubleFlat, toks[0].Pitch.Accidental)
	assert.Equal(model.Flat, toks[1].Pitch.Accidental)
	assert.Equal(model.Sharp, toks[2].Pitch.Accidental)
	assert.Equal(model.DoubleSharp, toks[3].Pitch.Accidental)
	assert.Equal(model.Natural, toks[4].Pitch.Accidental)
}

func TestQuarterStepAccidentalNeedsMicrotonalKey(t *testing.T) {
	assert := assert.New(t)

	_, err := Decode("Cd4")
	var derr *DecodeError
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrInvalidAccidental, derr.Kind)
	assert.Equal(1, derr.Pos)

	toks, err := DecodeWith("Cd4Ct#2", Options{Microtonal: true})
	assert.NoError(err)
	assert.Equal(model.QuarterFlat, toks[0].Pitch.Accidental)
	assert.Equal(model.ThreeQuarterSharp, toks[1].Pitch.Accidental)
}

func TestDecodesRests(t *testing.T) {
	toks := mustDecode(t, "R2R4R4")

	assert := assert.New(t)
	assert.Len(toks, 3)
	assert.Equal(model.KindRest, toks[0].Kind)
	assert.True(toks[0].Duration.Equal(model.NewFraction(1, 2)))
}

func TestDecodesAugmentationDots(t *testing.T) {
	toks := mustDecode(t, "C4*D4**")

	assert := assert.New(t)
	assert.True(toks[0].Duration.Equal(model.NewFraction(3, 8)))
	assert.True(toks[1].Duration.Equal(model.NewFraction(7, 16)))
}

func TestDecodesDynamicOntoNextNote(t *testing.T) {
	toks := mustDecode(t, "mfC4sfzD4E4")

	assert := assert.New(t)
	assert.Equal(model.MF, toks[0].Dynamic)
	assert.Equal(model.SFZ, toks[1].Dynamic)
	assert.Equal(model.DynNone, toks[2].Dynamic)
}

func TestDanglingDynamicFails(t *testing.T) {
	_, err := Decode("C4D4mf")

	var derr *DecodeError
	assert := assert.New(t)
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrDanglingDynamic, derr.Kind)
	assert.Equal(4, derr.Pos)
}

func TestUnknownDynamicRunFails(t *testing.T) {
	_, err := Decode("pfC4")

	var derr *DecodeError
	assert := assert.New(t)
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrUnrecognizedToken, derr.Kind)
	assert.Equal(0, derr.Pos)
}

func TestDecodesGraceGroup(t *testing.T) {
	toks := mustDecode(t, "{DE}C2")

	assert := assert.New(t)
	assert.Len(toks, 3)
	assert.Equal(model.KindGrace, toks[0].Kind)
	assert.Equal(model.D, toks[0].Pitch.Name)
	assert.True(toks[0].Duration.IsZero())
	assert.Equal(model.KindGrace, toks[1].Kind)
	assert.Equal(model.KindNote, toks[2].Kind)
}

func TestUnterminatedGraceFails(t *testing.T) {
	_, err := Decode("C4{DE")

	var derr *DecodeError
	assert := assert.New(t)
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrUnterminatedGrace, derr.Kind)
	assert.Equal(2, derr.Pos)
}

func TestDecodesArticulationCombos(t *testing.T) {
	toks := mustDecode(t, "C4_.D4>_E4'")

	assert := assert.New(t)
	assert.Equal([]model.Articulation{model.Tenuto, model.Staccato}, toks[0].Articulations)
	assert.Equal([]model.Articulation{model.Accent, model.Tenuto}, toks[1].Articulations)
	assert.Equal([]model.Articulation{model.Staccatissimo}, toks[2].Articulations)
}

func TestDecodesOrnamentsBendsAndTremolo(t *testing.T) {
	toks := mustDecode(t, "C4~D4\\E2:3")

	assert := assert.New(t)
	assert.Equal(model.Trill, toks[0].Ornament)
	assert.Equal(model.BendDown, toks[1].Bend)
	assert.Equal(uint8(3), toks[2].Tremolo)
}

func TestSecondOrnamentFails(t *testing.T) {
	_, err := Decode("C4$~")

	var derr *DecodeError
	assert := assert.New(t)
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrUnrecognizedToken, derr.Kind)
	assert.Equal(3, derr.Pos)
}

func TestDecodesTieAndSlurs(t *testing.T) {
	toks := mustDecode(t, "C2=C4(D8E8)")

	assert := assert.New(t)
	assert.True(toks[0].Tie)
	assert.True(toks[1].SlurOut)
	assert.False(toks[1].SlurIn)
	assert.True(toks[3].SlurIn)
}

func TestDecodesMarkings(t *testing.T) {
	toks := mustDecode(t, ",C4;<D4;;>!pE2")

	assert := assert.New(t)
	assert.Equal(model.Breath, toks[0].Marking)
	assert.Equal(model.CaesuraShort, toks[2].Marking)
	assert.Equal(model.CrescStart, toks[3].Marking)
	assert.Equal(model.CaesuraLong, toks[5].Marking)
	assert.Equal(model.DecrescStart, toks[6].Marking)
	assert.Equal(model.Pizzicato, toks[7].Marking)
}

func TestMeasureRepeatMustBeAlone(t *testing.T) {
	assert := assert.New(t)

	toks := mustDecode(t, "%")
	assert.Len(toks, 1)
	assert.Equal(model.MeasureRepeat, toks[0].Marking)

	_, err := Decode("%C4")
	var derr *DecodeError
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrMisplacedRepeat, derr.Kind)
}

func TestBadDurationDenominatorFails(t *testing.T) {
	_, err := Decode("C3")

	var derr *DecodeError
	assert := assert.New(t)
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrUnrecognizedToken, derr.Kind)
	assert.Equal(1, derr.Pos)
}

func TestUnrecognizedSoleCharacterFails(t *testing.T) {
	_, err := Decode("Q")

	var derr *DecodeError
	assert := assert.New(t)
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrUnrecognizedToken, derr.Kind)
	assert.Equal(0, derr.Pos)
}

func TestUnrecognizedByteFailsAtPosition(t *testing.T) {
	_, err := Decode("C4?D4")

	var derr *DecodeError
	assert := assert.New(t)
	assert.ErrorAs(err, &derr)
	assert.Equal(ErrUnrecognizedToken, derr.Kind)
	assert.Equal(2, derr.Pos)
}

func TestEncodeRoundTripsCanonicalText(t *testing.T) {
	assert := assert.New(t)
	for _, raw := range []string{
		"C4D4E4F4",
		"R2C,4D'4",
		"{DE}F2R2",
		"mfA2R4C#4",
		"C4*D8E8~",
		"C2=C4(D8E8)",
		",C4;<D2*",
		"%",
	} {
		toks, err := Decode(raw)
		assert.NoError(err, raw)
		assert.Equal(raw, Encode(toks), raw)
	}
}

func TestEncodeCanonicalizesSplitArticulations(t *testing.T) {
	// "_" then "." re-encodes as the two-byte combo.
	toks := mustDecode(t, "C4_.")
	again, err := Decode(Encode(toks))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(toks, again)
}
