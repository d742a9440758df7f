package types

import "cosmossdk.io/math"

// IRParams is the process-wide interest-rate curve, admin-writable.
type IRParams struct {
	// Alpha is the curve exponent, percent-scaled: 143 means exponent 0.0143
	// once divided by P; see PowFraction for how it's consumed.
	Alpha Percent
	// InitialRate is the rate-scaled per-second floor.
	InitialRate Scaled
	// MaxRate is the rate-scaled per-second ceiling.
	MaxRate Scaled
	// ScalingCoeff is the percent-scaled fraction of borrower rate paid to
	// lenders; must be < 100% so lender_ir <= borrower_ir always holds.
	ScalingCoeff Percent
}

// DefaultIRParams returns the canonical IRParams: alpha 143, initial_rate
// 200, max_rate 50_000, scaling_coeff 9_000.
func DefaultIRParams() IRParams {
	return IRParams{
		Alpha:        NewPercentRaw(143),
		InitialRate:  NewScaledRaw(200),
		MaxRate:      NewScaledRaw(50_000),
		ScalingCoeff: NewPercentRaw(9_000),
	}
}

// Validate checks the structural invariants IRParams must hold: the rate
// band must be non-decreasing and the lender scaling coefficient must stay
// strictly below 100% so reserve invariant 2 (lender_ir <= borrower_ir)
// can never be violated by construction.
func (p IRParams) Validate() error {
	if p.MaxRate.LT(p.InitialRate) {
		return ErrMathOverflow
	}
	if p.ScalingCoeff.GTE(NewPercentRaw(percentDenom)) {
		return ErrMathOverflow
	}
	if p.Alpha.Int().IsNegative() {
		return ErrMathOverflow
	}
	return nil
}

// PowFraction evaluates u^alpha in fixed point, where u is rate-scaled and
// alpha is percent-scaled (so alpha=10_000 means exponent 1.0). It expands
// the fractional exponent via repeated squaring on alpha converted to a
// rate-scaled binary fraction: alpha/P is written in base-2 as a sum of
// negative powers of two (up to a fixed precision), and u^alpha is the
// product of u^(2^-k) terms selected by those bits, each obtained by
// repeated square-rooting u. This is the standard "exponentiation by
// fractional squaring" trick used when only integer multiply/sqrt is
// available.
func PowFraction(u Scaled, alpha Percent) (Scaled, error) {
	if alpha.Int().IsZero() {
		return ScaledOne(), nil
	}
	if u.IsZero() {
		return ScaledZero(), nil
	}

	whole := alpha.Int().Quo(pDenom)
	frac := alpha.Int().Sub(whole.Mul(pDenom))

	result := ScaledOne()
	base := u
	w := whole.Int64()
	for w > 0 {
		if w&1 == 1 {
			var err error
			result, err = Mul(result, base)
			if err != nil {
				return Scaled{}, err
			}
		}
		base, _ = Mul(base, base)
		w >>= 1
	}

	if frac.IsZero() {
		return result, nil
	}

	const precisionBits = 32
	root := u
	remaining := frac
	bitValue := pDenom
	for i := 0; i < precisionBits && !remaining.IsZero(); i++ {
		var err error
		root, err = sqrtScaled(root)
		if err != nil {
			return Scaled{}, err
		}
		bitValue = bitValue.Quo(math.NewInt(2))
		if bitValue.IsZero() {
			break
		}
		if remaining.GTE(bitValue) {
			remaining = remaining.Sub(bitValue)
			result, err = Mul(result, root)
			if err != nil {
				return Scaled{}, err
			}
		}
	}
	return result, nil
}

// sqrtScaled computes floor(sqrt(x * R)) for a rate-scaled x, i.e. the
// rate-scaled square root of x, via integer Newton's method.
func sqrtScaled(x Scaled) (Scaled, error) {
	if x.IsZero() {
		return ScaledZero(), nil
	}
	target := x.Int().Mul(rDenom)
	if target.IsNegative() {
		return Scaled{}, ErrMathOverflow
	}
	guess := target
	if guess.IsZero() {
		return ScaledZero(), nil
	}
	two := math.NewInt(2)
	for i := 0; i < 100; i++ {
		next := guess.Add(target.Quo(guess)).Quo(two)
		if next.Equal(guess) {
			break
		}
		guess = next
	}
	return NewScaledFromInt(guess)
}
