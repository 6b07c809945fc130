// Package notation decodes the compact per-channel note encoding into
// structured tokens, and re-encodes tokens into canonical text.
//
// A channel string is a separator-free run of tokens. Pitch letters A-G and
// R mark note/rest starts, a digit run is the duration denominator, and
// punctuation carries accidentals, articulations and markings. Ambiguities
// between one- and two-character symbols ("_." vs "_") resolve by greedy
// longest match.
package notation

import (
	"fmt"

	"github.com/scorefall/scorefall-ink/model"
)

// ErrKind classifies a DecodeError.
type ErrKind uint8

const (
	// ErrUnrecognizedToken is any malformed or unknown sequence.
	ErrUnrecognizedToken ErrKind = iota
	// ErrInvalidAccidental is a quarter-step accidental outside a
	// microtonal key signature.
	ErrInvalidAccidental
	// ErrUnterminatedGrace is a '{' without a matching '}'.
	ErrUnterminatedGrace
	// ErrMisplacedRepeat is a '%' that is not the sole channel content.
	ErrMisplacedRepeat
	// ErrDanglingDynamic is a dynamic with no note to attach to.
	ErrDanglingDynamic
)

var errKindText = [...]string{
	"unrecognized token",
	"invalid accidental",
	"unterminated grace group",
	"misplaced measure repeat",
	"dangling dynamic",
}

// DecodeError is a positional decoding failure.
type DecodeError struct {
	Kind ErrKind
	Pos  int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at position %v", errKindText[e.Kind], e.Pos)
}

// Options configures decoding for the active signature.
type Options struct {
	// Microtonal permits quarter-step accidentals.
	Microtonal bool
}

// Decode scans a channel string into tokens under a non-microtonal key.
func Decode(raw string) ([]model.Token, error) {
	return DecodeWith(raw, Options{})
}

// DecodeWith scans a channel string into an ordered token sequence.
func DecodeWith(raw string, opts Options) ([]model.Token, error) {
	d := &decoder{src: raw, opts: opts}
	return d.run()
}

type decoder struct {
	src  string
	opts Options
	pos  int
	toks []model.Token

	pending    model.Dynamic
	pendingPos int
	grace      bool
	gracePos   int
}

func (d *decoder) fail(kind ErrKind, pos int) error {
	return &DecodeError{Kind: kind, Pos: pos}
}

// peek returns the byte n past the cursor, or 0 at end of input.
func (d *decoder) peek(n int) byte {
	if d.pos+n >= len(d.src) {
		return 0
	}
	return d.src[d.pos+n]
}

func (d *decoder) run() ([]model.Token, error) {
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		switch {
		case c == '%':
			if d.pos != 0 || len(d.src) != 1 {
				return nil, d.fail(ErrMisplacedRepeat, d.pos)
			}
			d.toks = append(d.toks, model.Token{Kind: model.KindMarking, Marking: model.MeasureRepeat})
			d.pos++
		case c == '{':
			if d.grace {
				return nil, d.fail(ErrUnrecognizedToken, d.pos)
			}
			d.grace, d.gracePos = true, d.pos
			d.pos++
		case c == '}':
			if !d.grace {
				return nil, d.fail(ErrUnrecognizedToken, d.pos)
			}
			d.grace = false
			d.pos++
		case c >= 'A' && c <= 'G':
			if err := d.scanNote(); err != nil {
				return nil, err
			}
		case c == 'R':
			if d.grace {
				return nil, d.fail(ErrUnrecognizedToken, d.pos)
			}
			if err := d.scanRest(); err != nil {
				return nil, err
			}
		case isDynamicLetter(c):
			if err := d.scanDynamic(); err != nil {
				return nil, err
			}
		case c == ',':
			d.mark(model.Breath)
		case c == ';':
			if d.peek(1) == ';' {
				d.pos++
				d.mark(model.CaesuraLong)
			} else {
				d.mark(model.CaesuraShort)
			}
		case c == '<':
			d.mark(model.CrescStart)
		case c == '>':
			d.mark(model.DecrescStart)
		case c == '!':
			kind, ok := map[byte]model.MarkingKind{
				'p': model.Pizzicato, 'a': model.Arco,
				'm': model.MuteOn, 'o': model.OpenOn,
			}[d.peek(1)]
			if !ok {
				return nil, d.fail(ErrUnrecognizedToken, d.pos)
			}
			d.pos++
			d.mark(kind)
		default:
			return nil, d.fail(ErrUnrecognizedToken, d.pos)
		}
	}
	if d.grace {
		return nil, d.fail(ErrUnterminatedGrace, d.gracePos)
	}
	if d.pending != model.DynNone {
		return nil, d.fail(ErrDanglingDynamic, d.pendingPos)
	}
	return d.toks, nil
}

func (d *decoder) mark(kind model.MarkingKind) {
	d.toks = append(d.toks, model.Token{Kind: model.KindMarking, Marking: kind})
	d.pos++
}

func isDynamicLetter(c byte) bool {
	switch c {
	case 'p', 'f', 'm', 's', 'z', 'n':
		return true
	}
	return false
}

// scanDynamic reads a maximal run of dynamic letters and matches it against
// the dynamic table as a whole.
func (d *decoder) scanDynamic() error {
	start := d.pos
	for d.pos < len(d.src) && isDynamicLetter(d.src[d.pos]) {
		d.pos++
	}
	dyn, ok := model.ParseDynamic(d.src[start:d.pos])
	if !ok {
		return d.fail(ErrUnrecognizedToken, start)
	}
	if d.pending != model.DynNone {
		return d.fail(ErrDanglingDynamic, d.pendingPos)
	}
	d.pending, d.pendingPos = dyn, start
	return nil
}

// scanPitch reads a note letter, optional accidental and octave marks.
func (d *decoder) scanPitch() (model.Pitch, error) {
	p := model.Pitch{Name: model.PitchName(byName(d.src[d.pos]))}
	d.pos++

	accPos := d.pos
	p.Accidental = d.scanAccidental()
	if p.Accidental.Microtonal() && !d.opts.Microtonal {
		return p, d.fail(ErrInvalidAccidental, accPos)
	}

	for d.pos < len(d.src) {
		switch d.src[d.pos] {
		case '\'':
			p.Octave++
		case ',':
			p.Octave--
		default:
			return p, nil
		}
		d.pos++
	}
	return p, nil
}

func byName(c byte) uint8 {
	// Letters run A-G, names run C-B.
	return uint8((int(c-'A') + 5) % 7)
}

func (d *decoder) scanAccidental() model.Accidental {
	two := map[string]model.Accidental{
		"bb": model.DoubleFlat, "db": model.ThreeQuarterFlat, "t#": model.ThreeQuarterSharp,
	}
	if d.pos+1 < len(d.src) {
		if acc, ok := two[d.src[d.pos:d.pos+2]]; ok {
			d.pos += 2
			return acc
		}
	}
	one := map[byte]model.Accidental{
		'b': model.Flat, 'd': model.QuarterFlat, 'n': model.Natural,
		't': model.QuarterSharp, '#': model.Sharp, 'x': model.DoubleSharp,
	}
	if acc, ok := one[d.peek(0)]; ok {
		d.pos++
		return acc
	}
	return model.AccNone
}

// scanDuration reads a denominator digit run plus augmentation dots.
func (d *decoder) scanDuration() (model.Fraction, error) {
	start := d.pos
	den := 0
	for d.pos < len(d.src) && d.src[d.pos] >= '0' && d.src[d.pos] <= '9' {
		den = den*10 + int(d.src[d.pos]-'0')
		d.pos++
	}
	switch den {
	case 1, 2, 4, 8, 16, 32, 64, 128:
	default:
		return model.Fraction{}, d.fail(ErrUnrecognizedToken, start)
	}
	dur := model.NewFraction(1, uint16(den))
	if d.peek(0) == '*' {
		d.pos++
		if d.peek(0) == '*' {
			d.pos++
			dur = dur.Mul(model.NewFraction(7, 4))
		} else {
			dur = dur.Mul(model.NewFraction(3, 2))
		}
	}
	return dur, nil
}

func (d *decoder) scanNote() error {
	pitch, err := d.scanPitch()
	if err != nil {
		return err
	}

	if d.grace {
		d.toks = append(d.toks, model.Token{Kind: model.KindGrace, Pitch: pitch})
		return nil
	}

	dur, err := d.scanDuration()
	if err != nil {
		return err
	}
	tok := model.Token{
		Kind:     model.KindNote,
		Pitch:    pitch,
		Duration: dur,
		Dynamic:  d.pending,
	}
	d.pending = model.DynNone
	if err := d.scanPostfix(&tok); err != nil {
		return err
	}
	d.toks = append(d.toks, tok)
	return nil
}

func (d *decoder) scanRest() error {
	d.pos++
	dur, err := d.scanDuration()
	if err != nil {
		return err
	}
	d.toks = append(d.toks, model.Token{Kind: model.KindRest, Duration: dur})
	return nil
}

var articulationPairs = map[string][2]model.Articulation{
	"_.": {model.Tenuto, model.Staccato},
	"^.": {model.Marcato, model.Staccato},
	"^_": {model.Marcato, model.Tenuto},
	">.": {model.Accent, model.Staccato},
	">_": {model.Accent, model.Tenuto},
}

var articulationSingles = map[byte]model.Articulation{
	'^': model.Marcato, '>': model.Accent, '.': model.Staccato,
	'\'': model.Staccatissimo, '_': model.Tenuto, '+': model.ClosedMute,
	'o': model.OpenMute, '@': model.Harmonic, '|': model.Pedal,
}

// scanPostfix accumulates modifiers onto the note just scanned. Two-byte
// articulations win over their one-byte prefixes.
func (d *decoder) scanPostfix(tok *model.Token) error {
	for d.pos < len(d.src) {
		c := d.src[d.pos]
		if d.pos+1 < len(d.src) {
			if pair, ok := articulationPairs[d.src[d.pos:d.pos+2]]; ok {
				tok.Articulations = append(tok.Articulations, pair[0], pair[1])
				d.pos += 2
				continue
			}
		}
		if art, ok := articulationSingles[c]; ok {
			tok.Articulations = append(tok.Articulations, art)
			d.pos++
			continue
		}
		switch c {
		case '~', '$', '&':
			if tok.Ornament != model.OrnNone {
				return d.fail(ErrUnrecognizedToken, d.pos)
			}
			tok.Ornament = map[byte]model.Ornament{
				'~': model.Trill, '$': model.Turn, '&': model.Mordent,
			}[c]
		case '/':
			tok.Bend = model.BendUp
		case '\\':
			tok.Bend = model.BendDown
		case ':':
			n := d.peek(1)
			if n < '1' || n > '3' {
				return d.fail(ErrUnrecognizedToken, d.pos)
			}
			tok.Tremolo = n - '0'
			d.pos++
		case '=':
			tok.Tie = true
		case '(':
			tok.SlurOut = true
		case ')':
			tok.SlurIn = true
		default:
			return nil
		}
		d.pos++
	}
	return nil
}
