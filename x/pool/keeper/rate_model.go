package keeper

import (
	"cosmossdk.io/math"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// RateModel computes the per-second nominal borrower and lender rates for
// a reserve from its compounded debt and liquidity:
//
//	u = total_debt / (total_liquidity + total_debt), clamped to [0, 1]
//	borrower_ir = initial_rate + (max_rate - initial_rate) * u^alpha
//	lender_ir   = borrower_ir * scaling_coeff
//
// lender_ir <= borrower_ir follows from scaling_coeff < 100% (IRParams.Validate).
func RateModel(p types.IRParams, totalDebt, totalLiquidity math.Int) (borrowerIr, lenderIr types.Scaled, err error) {
	u, err := utilization(totalDebt, totalLiquidity)
	if err != nil {
		return types.Scaled{}, types.Scaled{}, err
	}

	uPowAlpha, err := types.PowFraction(u, p.Alpha)
	if err != nil {
		return types.Scaled{}, types.Scaled{}, err
	}

	spread, err := types.CheckedSub(p.MaxRate, p.InitialRate)
	if err != nil {
		return types.Scaled{}, types.Scaled{}, err
	}
	variableComponent, err := types.Mul(spread, uPowAlpha)
	if err != nil {
		return types.Scaled{}, types.Scaled{}, err
	}
	borrowerIr, err = types.CheckedAdd(p.InitialRate, variableComponent)
	if err != nil {
		return types.Scaled{}, types.Scaled{}, err
	}

	lenderScaled, err := types.FromPercentage(p.ScalingCoeff)
	if err != nil {
		return types.Scaled{}, types.Scaled{}, err
	}
	lenderIr, err = types.Mul(borrowerIr, lenderScaled)
	if err != nil {
		return types.Scaled{}, types.Scaled{}, err
	}
	return borrowerIr, lenderIr, nil
}

// utilization computes debt/(liquidity+debt) as a rate-scaled value
// clamped to [0, 1.0].
func utilization(totalDebt, totalLiquidity math.Int) (types.Scaled, error) {
	denom := totalLiquidity.Add(totalDebt)
	if denom.IsZero() {
		return types.ScaledZero(), nil
	}
	u, err := types.FromRational(totalDebt, denom)
	if err != nil {
		return types.Scaled{}, err
	}
	if u.GTE(types.ScaledOne()) {
		return types.ScaledOne(), nil
	}
	if u.LT(types.ScaledZero()) {
		return types.ScaledZero(), nil
	}
	return u, nil
}

// UtilizationAfterBorrow computes the post-borrow utilization used by the
// borrow operation's util_cap check.
func UtilizationAfterBorrow(totalDebt, totalLiquidity, borrowAmount math.Int) (types.Scaled, error) {
	return utilization(totalDebt.Add(borrowAmount), totalLiquidity.Sub(borrowAmount))
}
