package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// accrue advances a reserve's two accrued-rate indices by the elapsed time
// since LastUpdateTimestamp. If no time has elapsed the reserve is
// returned unchanged and LastUpdateTimestamp is not touched.
func accrue(r types.ReserveData, now int64) (types.ReserveData, error) {
	delta := now - r.LastUpdateTimestamp
	if delta <= 0 {
		return r, nil
	}

	nextLender, err := compoundIndex(r.LenderAccruedRate, r.LenderIr, delta)
	if err != nil {
		return r, err
	}
	nextBorrower, err := compoundIndex(r.BorrowerAccruedRate, r.BorrowerIr, delta)
	if err != nil {
		return r, err
	}

	r.LenderAccruedRate = nextLender
	r.BorrowerAccruedRate = nextBorrower
	r.LastUpdateTimestamp = now
	return r, nil
}

// compoundIndex computes accruedRate * (1 + ir * delta).
func compoundIndex(accruedRate, ir types.Scaled, delta int64) (types.Scaled, error) {
	deltaScaled, err := types.FromRational(math.NewInt(delta), math.NewInt(1))
	if err != nil {
		return types.Scaled{}, err
	}
	irTimesDelta, err := types.Mul(ir, deltaScaled)
	if err != nil {
		return types.Scaled{}, err
	}
	onePlus, err := types.CheckedAdd(types.ScaledOne(), irTimesDelta)
	if err != nil {
		return types.Scaled{}, err
	}
	return types.Mul(accruedRate, onePlus)
}

// CollatCoeff returns the s-token <-> underlying exchange rate as of
// nextLenderAR, the reserve's lender index after accrual to now.
// If the s-token has no supply, the coefficient is defined as 1.0.
func (k Keeper) CollatCoeff(ctx sdk.Context, asset string) (types.Scaled, error) {
	r, ok := k.GetReserve(ctx, asset)
	if !ok {
		return types.Scaled{}, types.ErrNoReserveExistForAsset
	}
	return k.collatCoeffAt(ctx, asset, r, ctx.BlockTime().Unix())
}

func (k Keeper) collatCoeffAt(ctx sdk.Context, asset string, r types.ReserveData, now int64) (types.Scaled, error) {
	accrued, err := accrue(r, now)
	if err != nil {
		return types.Scaled{}, err
	}

	sSupply := k.sToken.TotalSupply(ctx, asset)
	if sSupply.IsZero() {
		return types.ScaledOne(), nil
	}

	underlying := k.GetMirroredBalance(ctx, asset)
	debtSupply := k.debt.TotalSupply(ctx, asset)

	compoundedDebt, err := types.MulInt(accrued.LenderAccruedRate, debtSupply)
	if err != nil {
		return types.Scaled{}, err
	}
	numerator := underlying.Add(compoundedDebt)
	return types.FromRational(numerator, sSupply)
}

// DebtCoeff returns the debt-token <-> underlying exchange rate as of now
//: simply the borrower accrued rate after accrual.
func (k Keeper) DebtCoeff(ctx sdk.Context, asset string) (types.Scaled, error) {
	r, ok := k.GetReserve(ctx, asset)
	if !ok {
		return types.Scaled{}, types.ErrNoReserveExistForAsset
	}
	accrued, err := accrue(r, ctx.BlockTime().Unix())
	if err != nil {
		return types.Scaled{}, err
	}
	return accrued.BorrowerAccruedRate, nil
}

// Recalculate re-derives a reserve's borrower_ir/lender_ir from current
// utilization, accrues the indices to now, and writes the whole reserve
// back. Every operation that changes s-token supply, debt-token supply, or
// the mirrored underlying balance must call Recalculate before returning.
func (k Keeper) Recalculate(ctx sdk.Context, asset string) error {
	r, ok := k.GetReserve(ctx, asset)
	if !ok {
		return types.ErrNoReserveExistForAsset
	}

	now := ctx.BlockTime().Unix()
	accrued, err := accrue(r, now)
	if err != nil {
		return err
	}

	liquidity := k.GetMirroredBalance(ctx, asset)
	debtSupply := k.debt.TotalSupply(ctx, asset)
	compoundedDebt, err := types.MulInt(accrued.BorrowerAccruedRate, debtSupply)
	if err != nil {
		return err
	}

	params := k.GetParams(ctx)
	borrowerIr, lenderIr, err := RateModel(params.IRParams, compoundedDebt, liquidity)
	if err != nil {
		return err
	}

	accrued.BorrowerIr = borrowerIr
	accrued.LenderIr = lenderIr
	k.SetReserve(ctx, asset, accrued)
	return nil
}
