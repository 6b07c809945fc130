// Package midi maps MIDI note numbers onto notation pitches so live input
// can be transcribed into editable tokens.
package midi

import (
	"github.com/scorefall/scorefall-ink/model"
)

// Spelling tables indexed by key % 12. Sharps are the default; flats are
// used when the caller's key signature prefers them.
var sharpNames = [12]model.PitchName{
	model.C, model.C, model.D, model.D, model.E, model.F,
	model.F, model.G, model.G, model.A, model.A, model.B,
}

var sharpAccidentals = [12]model.Accidental{
	model.AccNone, model.Sharp, model.AccNone, model.Sharp, model.AccNone,
	model.AccNone, model.Sharp, model.AccNone, model.Sharp, model.AccNone,
	model.Sharp, model.AccNone,
}

var flatNames = [12]model.PitchName{
	model.C, model.D, model.D, model.E, model.E, model.F,
	model.G, model.G, model.A, model.A, model.B, model.B,
}

var flatAccidentals = [12]model.Accidental{
	model.AccNone, model.Flat, model.AccNone, model.Flat, model.AccNone,
	model.AccNone, model.Flat, model.AccNone, model.Flat, model.AccNone,
	model.Flat, model.AccNone,
}

// PitchFromKey spells a MIDI key. Key 60 is middle C, octave 0.
func PitchFromKey(key uint8, flats bool) model.Pitch {
	pc := key % 12
	octave := int8(key/12) - 5
	if flats {
		return model.Pitch{Name: flatNames[pc], Accidental: flatAccidentals[pc], Octave: octave}
	}
	return model.Pitch{Name: sharpNames[pc], Accidental: sharpAccidentals[pc], Octave: octave}
}

// TokenForKey builds a note token for a held MIDI key.
func TokenForKey(key uint8, dur model.Fraction, flats bool) model.Token {
	return model.Token{
		Kind:     model.KindNote,
		Pitch:    PitchFromKey(key, flats),
		Duration: dur,
	}
}
