// Package beat checks that a decoded channel fills its bar exactly.
package beat

import (
	"fmt"

	"github.com/scorefall/scorefall-ink/model"
)

// MismatchError reports a channel whose durations do not sum to the bar's
// time signature. Both sides are exact rationals.
type MismatchError struct {
	Expected model.Fraction
	Actual   model.Fraction
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("beat mismatch: expected %v, got %v",
		e.Expected.Simplify(), e.Actual.Simplify())
}

// Sum is the total duration of the countable tokens. Grace notes and
// markings contribute nothing.
func Sum(toks []model.Token) model.Fraction {
	total := model.NewFraction(0, 1)
	for _, tok := range toks {
		if tok.Countable() {
			total = total.Add(tok.Duration)
		}
	}
	return total
}

// Validate requires the channel's duration sum to equal the signature's bar
// duration exactly. A measure-repeat channel is always valid: its content
// is the previous bar's, which was validated there.
func Validate(toks []model.Token, time model.TimeSig) error {
	if len(toks) == 1 && toks[0].Kind == model.KindMarking &&
		toks[0].Marking == model.MeasureRepeat {
		return nil
	}
	expected := time.Duration()
	actual := Sum(toks)
	if !actual.Equal(expected) {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}
