// Package score assembles decoded bars and signatures into a validated,
// immutable score document.
package score

import (
	"errors"
	"fmt"

	"github.com/scorefall/scorefall-ink/beat"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/notation"
)

// ChanSource is the raw text of one channel of one bar.
type ChanSource struct {
	Notes string
	Lyric string
}

// BarSource is one bar as loaded from the container: raw channel text, an
// optional signature override index and repeat symbols.
type BarSource struct {
	Sig    *int
	Chans  []ChanSource
	Repeat []string
}

// Channel is a decoded channel. RepeatsPrevious channels carry no tokens of
// their own; consumers resolve them against the previous bar explicitly.
type Channel struct {
	Tokens          []model.Token
	Lyric           string
	RepeatsPrevious bool
}

// Bar is a decoded bar with its effective signature resolved at assembly,
// so later stages never scan backwards for the active signature.
type Bar struct {
	Sig       *int
	Effective model.Sig
	Chans     []Channel
	Repeat    []model.Repeat
}

// Score is an assembled, validated score. It is treated as immutable by
// layout; edits build a new Score.
type Score struct {
	Sigs []model.Sig
	Bars []Bar
}

// BarError locates one assembly failure. Chan is -1 for bar-level errors.
type BarError struct {
	Bar  int
	Chan int
	Err  error
}

func (e BarError) Error() string {
	if e.Bar < 0 {
		return e.Err.Error()
	}
	if e.Chan < 0 {
		return fmt.Sprintf("bar %v: %v", e.Bar, e.Err)
	}
	return fmt.Sprintf("bar %v chan %v: %v", e.Bar, e.Chan, e.Err)
}

func (e BarError) Unwrap() error { return e.Err }

var (
	// ErrSigRange is a signature override index out of range.
	ErrSigRange = errors.New("signature index out of range")
	// ErrUnmatchedRepeat is a repeat symbol without its structural partner.
	ErrUnmatchedRepeat = errors.New("unmatched repeat")
	// ErrBadRepeat is an unknown repeat symbol.
	ErrBadRepeat = errors.New("unknown repeat symbol")
	// ErrFirstBarRepeat is a measure repeat in the first bar.
	ErrFirstBarRepeat = errors.New("first bar repeats previous measure")
	// ErrNoSignature is a score with no signatures at all.
	ErrNoSignature = errors.New("score has no signatures")
	// ErrBadTime is a time signature without positive beats over a
	// power-of-two unit.
	ErrBadTime = errors.New("invalid time signature")
	// ErrBadTempo is a zero tempo.
	ErrBadTempo = errors.New("tempo must be positive")
)

// Assemble decodes and validates every bar. Errors are collected per bar
// and channel rather than aborting on the first, so an editor can surface
// every problem at once. On any error the score is nil.
func Assemble(sigs []model.Sig, bars []BarSource) (*Score, []BarError) {
	var errs []BarError
	if len(sigs) == 0 {
		return nil, []BarError{{Bar: -1, Chan: -1, Err: ErrNoSignature}}
	}
	for i, sig := range sigs {
		if !sig.Time.Valid() {
			errs = append(errs, BarError{Bar: -1, Chan: -1,
				Err: fmt.Errorf("%w: signature %v has time %v", ErrBadTime, i, sig.Time)})
		}
		if sig.Tempo == 0 {
			errs = append(errs, BarError{Bar: -1, Chan: -1,
				Err: fmt.Errorf("%w: signature %v", ErrBadTempo, i)})
		}
	}
	if len(errs) > 0 {
		// Bars cannot be beat-checked against a broken signature.
		return nil, errs
	}

	sc := &Score{Sigs: sigs, Bars: make([]Bar, 0, len(bars))}
	active := sigs[0]
	for i, src := range bars {
		bar := Bar{Sig: src.Sig}
		if src.Sig != nil {
			if *src.Sig < 0 || *src.Sig >= len(sigs) {
				errs = append(errs, BarError{Bar: i, Chan: -1, Err: ErrSigRange})
			} else {
				active = sigs[*src.Sig]
			}
		}
		bar.Effective = active

		for _, sym := range src.Repeat {
			rep, ok := model.ParseRepeat(sym)
			if !ok {
				errs = append(errs, BarError{Bar: i, Chan: -1,
					Err: fmt.Errorf("%w: %q", ErrBadRepeat, sym)})
				continue
			}
			bar.Repeat = append(bar.Repeat, rep)
		}

		for j, ch := range src.Chans {
			chErr := func(err error) {
				errs = append(errs, BarError{Bar: i, Chan: j, Err: err})
			}
			toks, err := notation.DecodeWith(ch.Notes,
				notation.Options{Microtonal: active.Microtonal()})
			if err != nil {
				chErr(err)
				bar.Chans = append(bar.Chans, Channel{Lyric: ch.Lyric})
				continue
			}
			channel := Channel{Tokens: toks, Lyric: ch.Lyric}
			if repeatsPrevious(toks) {
				channel.RepeatsPrevious = true
				if i == 0 {
					chErr(ErrFirstBarRepeat)
				}
			} else if err := beat.Validate(toks, active.Time); err != nil {
				chErr(err)
			}
			bar.Chans = append(bar.Chans, channel)
		}
		sc.Bars = append(sc.Bars, bar)
	}

	errs = append(errs, checkRepeats(sc.Bars)...)
	if len(errs) > 0 {
		return nil, errs
	}
	return sc, nil
}

func repeatsPrevious(toks []model.Token) bool {
	return len(toks) == 1 && toks[0].Kind == model.KindMarking &&
		toks[0].Marking == model.MeasureRepeat
}

// checkRepeats verifies the repeat structure across the bar sequence: every
// open has a later close, and DS/to-coda targets exist exactly once.
func checkRepeats(bars []Bar) []BarError {
	var errs []BarError
	counts := make(map[model.RepeatKind]int)
	open := 0
	for i, bar := range bars {
		for _, rep := range bar.Repeat {
			counts[rep.Kind]++
			switch rep.Kind {
			case model.RepeatOpen:
				open++
			case model.RepeatClose:
				if open == 0 {
					errs = append(errs, BarError{Bar: i, Chan: -1,
						Err: fmt.Errorf("%w: close without open", ErrUnmatchedRepeat)})
				} else {
					open--
				}
			}
		}
	}
	last := len(bars) - 1
	if open > 0 {
		errs = append(errs, BarError{Bar: last, Chan: -1,
			Err: fmt.Errorf("%w: open without close", ErrUnmatchedRepeat)})
	}
	if counts[model.DS] > 0 && counts[model.Segno] != 1 {
		errs = append(errs, BarError{Bar: last, Chan: -1,
			Err: fmt.Errorf("%w: DS needs exactly one segno, have %v",
				ErrUnmatchedRepeat, counts[model.Segno])})
	}
	if counts[model.ToCoda] > 0 && counts[model.Coda] != 1 {
		errs = append(errs, BarError{Bar: last, Chan: -1,
			Err: fmt.Errorf("%w: to-coda needs exactly one coda, have %v",
				ErrUnmatchedRepeat, counts[model.Coda])})
	}
	return errs
}

// Resolve returns the tokens of a channel, following measure-repeat
// back-references to the nearest bar with real content.
func (s *Score) Resolve(bar, chn int) []model.Token {
	for bar >= 0 {
		if chn >= len(s.Bars[bar].Chans) {
			return nil
		}
		ch := s.Bars[bar].Chans[chn]
		if !ch.RepeatsPrevious {
			return ch.Tokens
		}
		bar--
	}
	return nil
}
