package model

import (
	"fmt"
)

// Fraction is an exact (unsigned) fraction of a whole note. Durations and
// beat sums are never floats so that equality checks stay exact.
type Fraction struct {
	Num uint16
	Den uint16
}

func NewFraction(num, den uint16) Fraction {
	if den == 0 {
		panic("fraction with zero denominator")
	}
	return Fraction{Num: num, Den: den}
}

func (f Fraction) IsZero() bool {
	return f.Num == 0
}

// Simplify reduces the fraction, (2/2) => (1/1).
func (f Fraction) Simplify() Fraction {
	a := gcd(uint32(f.Num), uint32(f.Den))
	return Fraction{Num: f.Num / uint16(a), Den: f.Den / uint16(a)}
}

func (f Fraction) Add(other Fraction) Fraction {
	if f.Num == 0 {
		return other
	}
	num := uint32(f.Num)*uint32(other.Den) + uint32(other.Num)*uint32(f.Den)
	den := uint32(f.Den) * uint32(other.Den)
	a := gcd(num, den)
	return Fraction{Num: uint16(num / a), Den: uint16(den / a)}
}

func (f Fraction) Mul(other Fraction) Fraction {
	num := uint32(f.Num) * uint32(other.Num)
	den := uint32(f.Den) * uint32(other.Den)
	a := gcd(num, den)
	return Fraction{Num: uint16(num / a), Den: uint16(den / a)}
}

func (f Fraction) Equal(other Fraction) bool {
	return uint32(f.Num)*uint32(other.Den) == uint32(other.Num)*uint32(f.Den)
}

// Cmp returns -1, 0 or 1 comparing f to other.
func (f Fraction) Cmp(other Fraction) int {
	a := uint32(f.Num) * uint32(other.Den)
	b := uint32(other.Num) * uint32(f.Den)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// In128ths returns the duration counted in 128th notes, the grain the
// engraving tables are written in.
func (f Fraction) In128ths() int {
	return int(uint32(f.Num) * 128 / uint32(f.Den))
}

func (f Fraction) Float64() float64 {
	return float64(f.Num) / float64(f.Den)
}

func (f Fraction) String() string {
	return fmt.Sprintf("%v/%v", f.Num, f.Den)
}

func gcd(a, b uint32) uint32 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	for {
		a %= b
		if a == 0 {
			return b
		}
		b %= a
		if b == 0 {
			return a
		}
	}
}
