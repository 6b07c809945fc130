// Package glyph is the font-metrics collaborator: per-category intrinsic
// widths and duration-to-glyph selection. Widths are in font units (1000
// per staff space quad), the same unit system the engraver works in.
package glyph

// ID is a SMuFL codepoint for one music glyph.
type ID uint32

const (
	ClefG ID = 0xE050
	ClefC ID = 0xE05C
	ClefF ID = 0xE062

	NoteheadDouble ID = 0xE0A0
	NoteheadWhole  ID = 0xE0A2
	NoteheadHalf   ID = 0xE0A3
	NoteheadFill   ID = 0xE0A4

	FlagUp8    ID = 0xE240
	FlagDown8  ID = 0xE241
	FlagUp16   ID = 0xE242
	FlagDown16 ID = 0xE243
	FlagUp32   ID = 0xE244
	FlagDown32 ID = 0xE245
	FlagUp64   ID = 0xE246
	FlagDown64 ID = 0xE247
	FlagUp128  ID = 0xE248
	FlagDown128 ID = 0xE249

	AccidentalFlat         ID = 0xE260
	AccidentalNatural      ID = 0xE261
	AccidentalSharp        ID = 0xE262
	AccidentalDoubleSharp  ID = 0xE263
	AccidentalDoubleFlat   ID = 0xE264
	AccidentalQuarterFlat  ID = 0xE280
	AccidentalThreeQFlat   ID = 0xE281
	AccidentalQuarterSharp ID = 0xE282
	AccidentalThreeQSharp  ID = 0xE283

	Rest1   ID = 0xE4E3
	Rest2   ID = 0xE4E4
	Rest4   ID = 0xE4E5
	Rest8   ID = 0xE4E6
	Rest16  ID = 0xE4E7
	Rest32  ID = 0xE4E8
	Rest64  ID = 0xE4E9
	Rest128 ID = 0xE4EA
)

// Category is a width class of glyphs.
type Category uint8

const (
	CatNotehead Category = iota
	CatNoteheadWhole
	CatAccidental
	CatFlag
	CatRest
	CatDynamic
	CatDot
)

// Metrics is a per-category width lookup, supplied by the font subsystem.
type Metrics struct {
	widths map[Category]float64
}

func NewMetrics(widths map[Category]float64) *Metrics {
	return &Metrics{widths: widths}
}

// Width is the intrinsic width of a glyph category, 0 if unknown.
func (m *Metrics) Width(c Category) float64 {
	return m.widths[c]
}

// DefaultMetrics carries Bravura's widths.
func DefaultMetrics() *Metrics {
	return NewMetrics(map[Category]float64{
		CatNotehead:      266,
		CatNoteheadWhole: 430,
		CatAccidental:    230,
		CatFlag:          264,
		CatRest:          230,
		CatDynamic:       420,
		CatDot:           100,
	})
}

// NoteheadForDuration picks a notehead for a duration in 128th notes.
func NoteheadForDuration(dur128 int) ID {
	switch {
	case dur128 < 64:
		return NoteheadFill
	case dur128 < 128:
		return NoteheadHalf
	case dur128 < 256:
		return NoteheadWhole
	default:
		return NoteheadDouble
	}
}

// FlagForDuration picks a flag glyph, or 0 for durations without flags.
func FlagForDuration(dur128 int, up bool) ID {
	pick := func(u, d ID) ID {
		if up {
			return u
		}
		return d
	}
	switch {
	case dur128 < 2:
		return pick(FlagUp128, FlagDown128)
	case dur128 < 4:
		return pick(FlagUp64, FlagDown64)
	case dur128 < 8:
		return pick(FlagUp32, FlagDown32)
	case dur128 < 16:
		return pick(FlagUp16, FlagDown16)
	case dur128 < 32:
		return pick(FlagUp8, FlagDown8)
	default:
		return 0
	}
}

// RestForDuration picks a rest glyph for a duration in 128th notes.
func RestForDuration(dur128 int) ID {
	switch {
	case dur128 < 2:
		return Rest128
	case dur128 < 4:
		return Rest64
	case dur128 < 8:
		return Rest32
	case dur128 < 16:
		return Rest16
	case dur128 < 32:
		return Rest8
	case dur128 < 64:
		return Rest4
	case dur128 < 128:
		return Rest2
	default:
		return Rest1
	}
}

// AccidentalGlyph maps an accidental index (model.Accidental order) to its
// glyph. Index 0 (no accidental) returns 0.
var AccidentalGlyph = [...]ID{
	0,
	AccidentalDoubleFlat,
	AccidentalThreeQFlat,
	AccidentalFlat,
	AccidentalQuarterFlat,
	AccidentalNatural,
	AccidentalQuarterSharp,
	AccidentalSharp,
	AccidentalThreeQSharp,
	AccidentalDoubleSharp,
}
