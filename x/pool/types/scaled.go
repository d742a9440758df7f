package types

import (
	"math/big"

	"cosmossdk.io/math"
)

// Denominators for the two fixed-point scales the pool core uses. Every
// quantity that crosses a function boundary carries its scale in its type,
// never mixed: Scaled values are rate-scaled (denominator R), Percent
// values are percent-scaled (denominator P).
const (
	rateDenom    = 1_000_000_000 // R = 1e9
	percentDenom = 10_000        // P = 1e4
)

var (
	rDenom = math.NewInt(rateDenom)
	pDenom = math.NewInt(percentDenom)

	// maxInt128 / minInt128 bound every checked operation below: the pool
	// core is specified over a signed 128-bit integer, and math.Int (an
	// arbitrary-precision big.Int) does not enforce that width on its own.
	maxInt128 = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)))
	minInt128 = math.NewIntFromBigInt(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127)))
)

// Scaled is a rate-scaled fixed-point value: the integer n represents n/R.
type Scaled struct {
	v math.Int
}

// Percent is a percent-scaled fixed-point value: the integer n represents
// n/P (so 10_000 means 100%).
type Percent struct {
	v math.Int
}

// ScaledOne is 1.0 in rate-scaled representation: the floor every accrued
// index starts at and never goes below.
func ScaledOne() Scaled { return Scaled{v: rDenom} }

// ScaledZero is the additive identity.
func ScaledZero() Scaled { return Scaled{v: math.ZeroInt()} }

// NewScaledRaw wraps a raw rate-scaled integer without validation; used for
// values already known to be in-range (stored state, literals in tests).
func NewScaledRaw(n int64) Scaled { return Scaled{v: math.NewInt(n)} }

// NewScaledFromInt wraps an arbitrary-precision rate-scaled integer,
// checking it fits in the pool's signed 128-bit range.
func NewScaledFromInt(n math.Int) (Scaled, error) {
	if err := checkRange(n); err != nil {
		return Scaled{}, err
	}
	return Scaled{v: n}, nil
}

// Int returns the underlying raw rate-scaled integer.
func (s Scaled) Int() math.Int { return s.v }

// IsZero reports whether s is exactly zero.
func (s Scaled) IsZero() bool { return s.v.IsZero() }

// GTE reports whether s >= other.
func (s Scaled) GTE(other Scaled) bool { return s.v.GTE(other.v) }

// LTE reports whether s <= other.
func (s Scaled) LTE(other Scaled) bool { return s.v.LTE(other.v) }

// LT reports whether s < other.
func (s Scaled) LT(other Scaled) bool { return s.v.LT(other.v) }

// MarshalJSON encodes s as its raw rate-scaled integer.
func (s Scaled) MarshalJSON() ([]byte, error) { return s.v.MarshalJSON() }

// UnmarshalJSON decodes a raw rate-scaled integer written by MarshalJSON.
func (s *Scaled) UnmarshalJSON(bz []byte) error { return s.v.UnmarshalJSON(bz) }

// MaxInt128 returns the largest representable signed 128-bit integer, the
// sentinel Withdraw/Repay use to mean "withdraw all" / "repay all".
func MaxInt128() math.Int { return maxInt128 }

func checkRange(n math.Int) error {
	if n.GT(maxInt128) || n.LT(minInt128) {
		return ErrMathOverflow
	}
	return nil
}

// MulInt computes floor(x * n / R) — x is rate-scaled, n and the result are
// plain integers in the underlying asset's units.
func MulInt(x Scaled, n math.Int) (math.Int, error) {
	product := x.v.Mul(n)
	if err := checkRange(product); err != nil {
		return math.Int{}, err
	}
	return product.Quo(rDenom), nil
}

// RecipMulInt computes floor(n * R / x) — the inverse of MulInt, used to
// convert an underlying amount into scaled (s-token/debt-token) units.
func RecipMulInt(x Scaled, n math.Int) (math.Int, error) {
	if x.v.IsZero() {
		return math.Int{}, ErrMathOverflow
	}
	product := n.Mul(rDenom)
	if err := checkRange(product); err != nil {
		return math.Int{}, err
	}
	return product.Quo(x.v), nil
}

// Mul multiplies two rate-scaled values: floor(x*y/R).
func Mul(x, y Scaled) (Scaled, error) {
	product := x.v.Mul(y.v)
	if err := checkRange(product); err != nil {
		return Scaled{}, err
	}
	return NewScaledFromInt(product.Quo(rDenom))
}

// CheckedAdd adds two rate-scaled values, failing on overflow.
func CheckedAdd(x, y Scaled) (Scaled, error) {
	return NewScaledFromInt(x.v.Add(y.v))
}

// CheckedSub subtracts two rate-scaled values, failing on overflow.
func CheckedSub(x, y Scaled) (Scaled, error) {
	return NewScaledFromInt(x.v.Sub(y.v))
}

// FromPercentage converts a percent-scaled value into rate-scaled: p*R/P.
func FromPercentage(p Percent) (Scaled, error) {
	product := p.v.Mul(rDenom)
	if err := checkRange(product); err != nil {
		return Scaled{}, err
	}
	return NewScaledFromInt(product.Quo(pDenom))
}

// FromRational builds a rate-scaled value from num/den: num*R/den.
func FromRational(num, den math.Int) (Scaled, error) {
	if den.IsZero() {
		return Scaled{}, ErrMathOverflow
	}
	product := num.Mul(rDenom)
	if err := checkRange(product); err != nil {
		return Scaled{}, err
	}
	return NewScaledFromInt(product.Quo(den))
}

// NewPercentRaw wraps a raw percent-scaled integer (e.g. 9_000 = 90%).
func NewPercentRaw(n int64) Percent { return Percent{v: math.NewInt(n)} }

// Int returns the underlying raw percent-scaled integer.
func (p Percent) Int() math.Int { return p.v }

// MarshalJSON encodes p as its raw percent-scaled integer.
func (p Percent) MarshalJSON() ([]byte, error) { return p.v.MarshalJSON() }

// UnmarshalJSON decodes a raw percent-scaled integer written by MarshalJSON.
func (p *Percent) UnmarshalJSON(bz []byte) error { return p.v.UnmarshalJSON(bz) }

// GTE reports whether p >= other.
func (p Percent) GTE(other Percent) bool { return p.v.GTE(other.v) }

// LT reports whether p < other.
func (p Percent) LT(other Percent) bool { return p.v.LT(other.v) }

// PercentMul computes floor(x * p / P) for a plain integer x and percent p.
func PercentMul(x math.Int, p Percent) (math.Int, error) {
	product := x.Mul(p.v)
	if err := checkRange(product); err != nil {
		return math.Int{}, err
	}
	return product.Quo(pDenom), nil
}

// PercentDiv computes floor(x * P / p) for a plain integer x and percent p.
func PercentDiv(x math.Int, p Percent) (math.Int, error) {
	if p.v.IsZero() {
		return math.Int{}, ErrMathOverflow
	}
	product := x.Mul(pDenom)
	if err := checkRange(product); err != nil {
		return math.Int{}, err
	}
	return product.Quo(p.v), nil
}
