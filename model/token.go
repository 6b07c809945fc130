package model

// Dynamic is an intensity marking. It carries no duration and attaches to
// the note that follows it.
type Dynamic uint8

const (
	DynNone Dynamic = iota
	PPPPP
	PPPP
	PPP
	PP
	P
	MP
	MF
	Forte
	FF
	FFF
	FFFF
	FFFFF
	SF
	SFZ
	FP
	SFP
	// Niente (silent).
	N
)

var dynamicText = map[Dynamic]string{
	PPPPP: "ppppp",
	PPPP:  "pppp",
	PPP:   "ppp",
	PP:    "pp",
	P:     "p",
	MP:    "mp",
	MF:    "mf",
	Forte: "f",
	FF:    "ff",
	FFF:   "fff",
	FFFF:  "ffff",
	FFFFF: "fffff",
	SF:    "sf",
	SFZ:   "sfz",
	FP:    "fp",
	SFP:   "sfp",
	N:     "n",
}

func (d Dynamic) String() string {
	return dynamicText[d]
}

// ParseDynamic matches a run of dynamic letters against the dynamic table.
func ParseDynamic(s string) (Dynamic, bool) {
	for d, text := range dynamicText {
		if text == s {
			return d, true
		}
	}
	return DynNone, false
}

// Articulation affects how a note is played.
type Articulation uint8

const (
	Marcato Articulation = iota
	Accent
	Staccato
	Staccatissimo
	Tenuto
	ClosedMute
	OpenMute
	Harmonic
	Pedal
)

var articulationText = [...]string{"^", ">", ".", "'", "_", "+", "o", "@", "|"}

func (a Articulation) String() string {
	return articulationText[a]
}

// Ornament adds extra notes within one note.
type Ornament uint8

const (
	OrnNone Ornament = iota
	Trill
	Turn
	Mordent
)

var ornamentText = map[Ornament]string{Trill: "~", Turn: "$", Mordent: "&"}

func (o Ornament) String() string {
	return ornamentText[o]
}

// Bend is a pitch-bend slide out of a note.
type Bend uint8

const (
	BendNone Bend = iota
	BendUp
	BendDown
)

// MarkingKind is a standalone mark between notes.
type MarkingKind uint8

const (
	Breath MarkingKind = iota
	CaesuraShort
	CaesuraLong
	CrescStart
	DecrescStart
	Pizzicato
	Arco
	MuteOn
	OpenOn
	// MeasureRepeat aliases the channel to the previous bar's channel.
	MeasureRepeat
)

var markingText = [...]string{",", ";", ";;", "<", ">", "!p", "!a", "!m", "!o", "%"}

func (k MarkingKind) String() string {
	return markingText[k]
}

// Kind discriminates the token variants.
type Kind uint8

const (
	KindNote Kind = iota
	KindRest
	KindGrace
	KindMarking
)

// Token is one decoded notation event.
type Token struct {
	Kind Kind

	// Note and grace note fields.
	Pitch         Pitch
	Dynamic       Dynamic
	Articulations []Articulation
	Ornament      Ornament
	Bend          Bend
	// Tremolo strokes, 0-3.
	Tremolo uint8
	Tie     bool
	SlurIn  bool
	SlurOut bool

	// Note and rest duration. Zero for grace notes and markings.
	Duration Fraction

	// Marking field.
	Marking MarkingKind
}

// Countable reports whether the token contributes to the beat sum.
func (t Token) Countable() bool {
	return t.Kind == KindNote || t.Kind == KindRest
}

// HasArticulation reports whether a is among the token's articulations.
func (t Token) HasArticulation(a Articulation) bool {
	for _, b := range t.Articulations {
		if a == b {
			return true
		}
	}
	return false
}

// RepeatKind is a repeat symbol attached to a bar.
type RepeatKind uint8

const (
	RepeatOpen RepeatKind = iota
	RepeatClose
	Segno
	DC
	DS
	Coda
	ToCoda
	Fine
	Ending
)

// Repeat is one repeat symbol; Number is only meaningful for Ending.
type Repeat struct {
	Kind   RepeatKind
	Number uint8
}

var repeatText = map[string]RepeatKind{
	"|:":     RepeatOpen,
	":|":     RepeatClose,
	"segno":  Segno,
	"dc":     DC,
	"ds":     DS,
	"coda":   Coda,
	"tocoda": ToCoda,
	"fine":   Fine,
}

// ParseRepeat reads a repeat symbol in its textual form. Numbered endings
// are written "1.", "2.", ...
func ParseRepeat(s string) (Repeat, bool) {
	if kind, ok := repeatText[s]; ok {
		return Repeat{Kind: kind}, true
	}
	if len(s) == 2 && s[1] == '.' && s[0] >= '1' && s[0] <= '9' {
		return Repeat{Kind: Ending, Number: s[0] - '0'}, true
	}
	return Repeat{}, false
}

func (r Repeat) String() string {
	if r.Kind == Ending {
		return string([]byte{'0' + r.Number, '.'})
	}
	for text, kind := range repeatText {
		if kind == r.Kind {
			return text
		}
	}
	return ""
}
