package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// AccountPosition is the aggregated valuation of a user's reserves under
// the shared price oracle.
type AccountPosition struct {
	TotalCollateral      math.Int // base units
	TotalDebt            math.Int // base units
	DiscountedCollateral math.Int // base units
	NPV                  math.Int // base units, may be negative
}

// IsHealthy reports whether the position's NPV is non-negative.
func (p AccountPosition) IsHealthy() bool {
	return !p.NPV.IsNegative()
}

// AccountPosition aggregates collateral and debt for user across every
// reserve their UserConfiguration touches, iterating in reserve-list
// order, O(N) on the number of reserves.
func (k Keeper) AccountPosition(ctx sdk.Context, user sdk.AccAddress) (AccountPosition, error) {
	uc := k.GetUserConfiguration(ctx, user)

	totalCollateral := math.ZeroInt()
	totalDebt := math.ZeroInt()
	weightedDiscount := math.ZeroInt() // Σ discount_i * collateral_in_base_i, percent-scaled

	for _, asset := range k.GetReserveList(ctx) {
		r, ok := k.GetReserve(ctx, asset)
		if !ok {
			continue
		}

		if uc.IsUsingAsCollateral(r.Id) && r.Configuration.HasLiqThreshold() {
			collatCoeff, err := k.CollatCoeff(ctx, asset)
			if err != nil {
				return AccountPosition{}, err
			}
			balance := k.sToken.Balance(ctx, asset, user)
			compounded, err := types.MulInt(collatCoeff, balance)
			if err != nil {
				return AccountPosition{}, err
			}
			collateralInBase, err := k.toBaseUnits(ctx, asset, r, compounded)
			if err != nil {
				return AccountPosition{}, err
			}
			totalCollateral = totalCollateral.Add(collateralInBase)
			weightedDiscount = weightedDiscount.Add(r.Configuration.Discount.Int().Mul(collateralInBase))
		}

		if uc.IsBorrowing(r.Id) {
			debtCoeff, err := k.DebtCoeff(ctx, asset)
			if err != nil {
				return AccountPosition{}, err
			}
			balance := k.debt.Balance(ctx, asset, user)
			compoundedDebt, err := types.MulInt(debtCoeff, balance)
			if err != nil {
				return AccountPosition{}, err
			}
			debtInBase, err := k.toBaseUnits(ctx, asset, r, compoundedDebt)
			if err != nil {
				return AccountPosition{}, err
			}
			totalDebt = totalDebt.Add(debtInBase)
		}
	}

	discountedCollateral := weightedDiscount.Quo(math.NewInt(10_000))
	npv := discountedCollateral.Sub(totalDebt)

	return AccountPosition{
		TotalCollateral:      totalCollateral,
		TotalDebt:            totalDebt,
		DiscountedCollateral: discountedCollateral,
		NPV:                  npv,
	}, nil
}

// toBaseUnits converts a compounded underlying amount into the pool's base
// price-feed unit: amount * price / 10^decimals.
func (k Keeper) toBaseUnits(ctx sdk.Context, asset string, r types.ReserveData, amount math.Int) (math.Int, error) {
	feed, ok := k.GetPriceFeed(ctx, asset)
	if !ok {
		return math.Int{}, types.ErrNoReserveExistForAsset
	}
	price, err := k.oracle.GetPrice(ctx, feed, asset)
	if err != nil {
		return math.Int{}, err
	}
	scale := pow10(r.Configuration.Decimals)
	return amount.Mul(price).Quo(scale), nil
}

func pow10(n uint8) math.Int {
	v := math.NewInt(1)
	ten := math.NewInt(10)
	for i := uint8(0); i < n; i++ {
		v = v.Mul(ten)
	}
	return v
}
