package notation

import (
	"strconv"
	"strings"

	"github.com/scorefall/scorefall-ink/model"
)

// Encode writes tokens back out as canonical channel text. Decoding the
// result yields the same token sequence; the byte form is canonical, not
// necessarily the bytes the tokens were decoded from ("_." and "_" "."
// describe the same articulations).
func Encode(toks []model.Token) string {
	var b strings.Builder
	grace := false
	closeGrace := func() {
		if grace {
			b.WriteByte('}')
			grace = false
		}
	}
	for _, tok := range toks {
		if tok.Kind != model.KindGrace {
			closeGrace()
		}
		switch tok.Kind {
		case model.KindMarking:
			b.WriteString(tok.Marking.String())
		case model.KindGrace:
			if !grace {
				b.WriteByte('{')
				grace = true
			}
			b.WriteString(tok.Pitch.String())
		case model.KindRest:
			b.WriteByte('R')
			b.WriteString(encodeDuration(tok.Duration))
		case model.KindNote:
			if tok.Dynamic != model.DynNone {
				b.WriteString(tok.Dynamic.String())
			}
			b.WriteString(tok.Pitch.String())
			b.WriteString(encodeDuration(tok.Duration))
			for _, art := range tok.Articulations {
				b.WriteString(art.String())
			}
			if tok.Ornament != model.OrnNone {
				b.WriteString(tok.Ornament.String())
			}
			switch tok.Bend {
			case model.BendUp:
				b.WriteByte('/')
			case model.BendDown:
				b.WriteByte('\\')
			}
			if tok.Tremolo > 0 {
				b.WriteByte(':')
				b.WriteByte('0' + tok.Tremolo)
			}
			if tok.Tie {
				b.WriteByte('=')
			}
			if tok.SlurOut {
				b.WriteByte('(')
			}
			if tok.SlurIn {
				b.WriteByte(')')
			}
		}
	}
	closeGrace()
	return b.String()
}

func encodeDuration(f model.Fraction) string {
	f = f.Simplify()
	switch f.Num {
	case 1:
		return strconv.Itoa(int(f.Den))
	case 3:
		// One augmentation dot: 3/2 over the base duration.
		return strconv.Itoa(int(f.Den)/2) + "*"
	case 7:
		return strconv.Itoa(int(f.Den)/4) + "**"
	}
	return f.String()
}
