package model

// Steps is a visual distance in staff steps above middle C.
type Steps int

// PitchName is a white-key note name.
type PitchName uint8

const (
	C PitchName = iota
	D
	E
	F
	G
	A
	B
)

var pitchNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

func (n PitchName) String() string {
	return pitchNames[n]
}

// Accidental alters a pitch in quarter-step increments.
type Accidental uint8

const (
	AccNone Accidental = iota
	DoubleFlat
	ThreeQuarterFlat
	Flat
	QuarterFlat
	Natural
	QuarterSharp
	Sharp
	ThreeQuarterSharp
	DoubleSharp
)

var accidentalText = map[Accidental]string{
	DoubleFlat:        "bb",
	ThreeQuarterFlat:  "db",
	Flat:              "b",
	QuarterFlat:       "d",
	Natural:           "n",
	QuarterSharp:      "t",
	Sharp:             "#",
	ThreeQuarterSharp: "t#",
	DoubleSharp:       "x",
}

func (a Accidental) String() string {
	return accidentalText[a]
}

// Microtonal reports whether the accidental shifts by a quarter step and is
// therefore only legal under a microtonal key signature.
func (a Accidental) Microtonal() bool {
	switch a {
	case ThreeQuarterFlat, QuarterFlat, QuarterSharp, ThreeQuarterSharp:
		return true
	}
	return false
}

// Pitch is a note name, accidental and octave. Octave 0 is the octave
// starting at middle C (scientific octave 4).
type Pitch struct {
	Name       PitchName
	Accidental Accidental
	Octave     int8
}

// VisualDistance is the number of staff steps above middle C.
func (p Pitch) VisualDistance() Steps {
	return Steps(int(p.Name) + int(p.Octave)*7)
}

func (p Pitch) String() string {
	s := p.Name.String()
	if p.Accidental != AccNone {
		s += p.Accidental.String()
	}
	if p.Octave > 0 {
		for i := int8(0); i < p.Octave; i++ {
			s += "'"
		}
	} else {
		for i := p.Octave; i < 0; i++ {
			s += ","
		}
	}
	return s
}
