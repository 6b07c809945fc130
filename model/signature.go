package model

import "fmt"

// TimeSig is a time signature, beats per bar over the beat unit.
type TimeSig struct {
	Beats uint16
	Unit  uint16
}

// Duration is the required total duration of one bar.
func (t TimeSig) Duration() Fraction {
	return NewFraction(t.Beats, t.Unit)
}

// Valid requires a positive beat count and a power-of-two unit.
func (t TimeSig) Valid() bool {
	return t.Beats > 0 && t.Unit > 0 && t.Unit&(t.Unit-1) == 0
}

func (t TimeSig) String() string {
	return fmt.Sprintf("%v/%v", t.Beats, t.Unit)
}

// DefaultSwing is straight time.
const DefaultSwing = 50

// Sig is a key/time signature pair with playback hints. Key counts quarter
// steps above C (0-23); 24+ is reserved for non-western key tables.
type Sig struct {
	Key   uint8
	Time  TimeSig
	Tempo uint16
	// Swing percent 0-100, DefaultSwing when unset.
	Swing uint8
}

// Microtonal reports whether quarter-step accidentals are legal under this
// key signature.
func (s Sig) Microtonal() bool {
	return s.Key%2 == 1 || s.Key >= 24
}
