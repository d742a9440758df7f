package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// Deposit mints s-tokens against an underlying deposit. Collateral is
// minted at the collat_coeff in effect at the start of the call; the
// reserve is recalculated and an event emitted only after every mutation
// below has succeeded — Cosmos SDK discards the whole cached context
// automatically if any step returns an error, so there is no manual
// rollback here: "all or nothing" is the host's guarantee, not this
// keeper's.
func (k Keeper) Deposit(ctx sdk.Context, who sdk.AccAddress, asset string, amount math.Int) error {
	if err := k.RequireAuth(who); err != nil {
		return err
	}
	if err := k.RequireNotPaused(ctx); err != nil {
		return err
	}
	if err := RequirePositiveAmount(amount); err != nil {
		return err
	}
	r, err := k.RequireActiveReserve(ctx, asset, true)
	if err != nil {
		return err
	}

	collatCoeff, err := k.CollatCoeff(ctx, asset)
	if err != nil {
		return err
	}
	amountToMint, err := types.RecipMulInt(collatCoeff, amount)
	if err != nil {
		return err
	}

	if err := k.token.Transfer(ctx, asset, who, types.Addr(r.SToken), amount); err != nil {
		return err
	}
	newMirror := k.GetMirroredBalance(ctx, asset).Add(amount)
	if newMirror.GT(r.Configuration.LiqCap) {
		return types.ErrLiqCapExceeded
	}
	k.SetMirroredBalance(ctx, asset, newMirror)

	if err := k.sToken.Mint(ctx, asset, who, amountToMint); err != nil {
		return err
	}

	cfg := k.Configurator(ctx, who)
	if !cfg.IsUsingAsCollateral(r.Id) {
		cfg.SetCollateral(r.Id, true)
		if err := cfg.Flush(); err != nil {
			return err
		}
		k.emitCollEnabled(ctx, who, asset)
	}

	if err := k.Recalculate(ctx, asset); err != nil {
		return err
	}
	k.emitDeposit(ctx, who, asset, amount)
	return nil
}

// Withdraw burns s-tokens and returns underlying to the caller.
// amount == types.MaxInt128() means "withdraw everything the caller holds
// in this reserve".
func (k Keeper) Withdraw(ctx sdk.Context, who sdk.AccAddress, asset string, amount math.Int, to sdk.AccAddress) error {
	if err := k.RequireAuth(who); err != nil {
		return err
	}
	if err := k.RequireNotPaused(ctx); err != nil {
		return err
	}
	if err := RequirePositiveAmount(amount); err != nil {
		return err
	}
	r, err := k.RequireActiveReserve(ctx, asset, false)
	if err != nil {
		return err
	}

	collatCoeff, err := k.CollatCoeff(ctx, asset)
	if err != nil {
		return err
	}

	sBalance := k.sToken.Balance(ctx, asset, who)

	var amountToBurn, amountUnderlying math.Int
	if IsMaxAmount(amount) {
		amountToBurn = sBalance
		amountUnderlying, err = types.MulInt(collatCoeff, amountToBurn)
		if err != nil {
			return err
		}
	} else {
		amountToBurn, err = types.RecipMulInt(collatCoeff, amount)
		if err != nil {
			return err
		}
		if amountToBurn.GT(sBalance) {
			return types.ErrNotEnoughAvailableUserBalance
		}
		amountUnderlying = amount
	}

	if err := k.sToken.Burn(ctx, asset, who, to, amountToBurn, amountUnderlying); err != nil {
		return err
	}
	k.SetMirroredBalance(ctx, asset, k.GetMirroredBalance(ctx, asset).Sub(amountUnderlying))

	cfg := k.Configurator(ctx, who)
	if k.sToken.Balance(ctx, asset, who).IsZero() {
		cfg.SetCollateral(r.Id, false)
		if err := cfg.Flush(); err != nil {
			return err
		}
		k.emitCollDisabled(ctx, who, asset)
	}

	uc := k.GetUserConfiguration(ctx, who)
	if uc.Borrowing != 0 {
		position, err := k.AccountPosition(ctx, who)
		if err != nil {
			return err
		}
		if !position.IsHealthy() {
			return types.ErrHealthFactorLowerThanLiqThreshold
		}
	}

	if err := k.Recalculate(ctx, asset); err != nil {
		return err
	}
	k.emitWithdraw(ctx, who, asset, to, amountUnderlying)
	return nil
}

// Borrow mints debt tokens and transfers the borrowed underlying to the caller.
func (k Keeper) Borrow(ctx sdk.Context, who sdk.AccAddress, asset string, amount math.Int) error {
	if err := k.RequireAuth(who); err != nil {
		return err
	}
	if err := k.RequireNotPaused(ctx); err != nil {
		return err
	}
	if err := RequirePositiveAmount(amount); err != nil {
		return err
	}
	r, err := k.RequireActiveReserve(ctx, asset, true)
	if err != nil {
		return err
	}
	if err := RequireBorrowingEnabled(r); err != nil {
		return err
	}

	uc := k.GetUserConfiguration(ctx, who)
	if uc.IsEmpty() {
		return types.ErrUserConfigNotExists
	}

	position, err := k.AccountPosition(ctx, who)
	if err != nil {
		return err
	}
	if !position.TotalCollateral.IsPositive() {
		return types.ErrCollateralIsZero
	}
	if !position.NPV.IsPositive() {
		return types.ErrCollateralNotCoverNewBorrow
	}

	liquidity := k.GetMirroredBalance(ctx, asset)
	debtCoeffNow, err := k.DebtCoeff(ctx, asset)
	if err != nil {
		return err
	}
	debtSupply := k.debt.TotalSupply(ctx, asset)
	compoundedDebtSupply, err := types.MulInt(debtCoeffNow, debtSupply)
	if err != nil {
		return err
	}
	postUtil, err := UtilizationAfterBorrow(compoundedDebtSupply, liquidity, amount)
	if err != nil {
		return err
	}
	utilCapScaled, err := types.FromPercentage(r.Configuration.UtilCap)
	if err != nil {
		return err
	}
	if !postUtil.LTE(utilCapScaled) {
		return types.ErrUtilizationCapExceeded
	}

	// Reject borrowing an asset the caller is already using as collateral
	// when the requested amount exceeds their compounded balance of it.
	// The predicate is kept literally as `amount > compounded_balance`;
	// see the design notes for why that's a judgment call rather than an
	// obvious correction.
	if uc.IsUsingAsCollateral(r.Id) && !r.Configuration.Discount.Int().IsZero() {
		sBal := k.sToken.Balance(ctx, asset, who)
		collatCoeff, err := k.CollatCoeff(ctx, asset)
		if err != nil {
			return err
		}
		compoundedBalance, err := types.MulInt(collatCoeff, sBal)
		if err != nil {
			return err
		}
		if amount.GT(compoundedBalance) {
			return types.ErrCollateralSameAsBorrow
		}
	}

	debtCoeff, err := k.DebtCoeff(ctx, asset)
	if err != nil {
		return err
	}
	amountToMint, err := types.RecipMulInt(debtCoeff, amount)
	if err != nil {
		return err
	}

	if err := k.debt.Mint(ctx, asset, who, amountToMint); err != nil {
		return err
	}
	if err := k.sToken.TransferUnderlyingTo(ctx, asset, who, amount); err != nil {
		return err
	}
	k.SetMirroredBalance(ctx, asset, k.GetMirroredBalance(ctx, asset).Sub(amount))

	cfg := k.Configurator(ctx, who)
	if !cfg.IsBorrowing(r.Id) {
		cfg.SetBorrowing(r.Id, true)
		if err := cfg.Flush(); err != nil {
			return err
		}
	}

	if err := k.Recalculate(ctx, asset); err != nil {
		return err
	}
	k.emitBorrow(ctx, who, asset, amount)
	return nil
}

// Repay burns debt tokens against an underlying repayment, splitting the
// payment between the reserve's s-token custody and the treasury.
// amount == types.MaxInt128() or amount >= actual_debt both mean "full repay".
func (k Keeper) Repay(ctx sdk.Context, who sdk.AccAddress, asset string, amount math.Int) error {
	if err := k.RequireAuth(who); err != nil {
		return err
	}
	if err := k.RequireNotPaused(ctx); err != nil {
		return err
	}
	if err := RequirePositiveAmount(amount); err != nil {
		return err
	}
	r, err := k.RequireActiveReserve(ctx, asset, false)
	if err != nil {
		return err
	}

	debtBalance := k.debt.Balance(ctx, asset, who)
	if debtBalance.IsZero() {
		return types.ErrInvalidAmount
	}

	debtCoeff, err := k.DebtCoeff(ctx, asset)
	if err != nil {
		return err
	}
	collatCoeff, err := k.CollatCoeff(ctx, asset)
	if err != nil {
		return err
	}

	actualDebt, err := types.MulInt(debtCoeff, debtBalance)
	if err != nil {
		return err
	}

	var debtToBurn, paid math.Int
	if IsMaxAmount(amount) || amount.GTE(actualDebt) {
		paid = actualDebt
		debtToBurn = debtBalance
	} else {
		debtToBurn, err = types.RecipMulInt(debtCoeff, amount)
		if err != nil {
			return err
		}
		paid = amount
	}

	lenderPart, err := types.MulInt(collatCoeff, debtToBurn)
	if err != nil {
		return err
	}
	if lenderPart.GT(paid) {
		lenderPart = paid
	}
	treasuryPart := paid.Sub(lenderPart)

	treasury := k.GetParams(ctx).Treasury
	if err := k.token.Transfer(ctx, asset, who, types.Addr(r.SToken), lenderPart); err != nil {
		return err
	}
	if treasuryPart.IsPositive() {
		if err := k.token.Transfer(ctx, asset, who, types.Addr(treasury), treasuryPart); err != nil {
			return err
		}
	}
	k.SetMirroredBalance(ctx, asset, k.GetMirroredBalance(ctx, asset).Add(lenderPart))

	if err := k.debt.Burn(ctx, asset, who, debtToBurn); err != nil {
		return err
	}

	if k.debt.Balance(ctx, asset, who).IsZero() {
		cfg := k.Configurator(ctx, who)
		cfg.SetBorrowing(r.Id, false)
		if err := cfg.Flush(); err != nil {
			return err
		}
	}

	if err := k.Recalculate(ctx, asset); err != nil {
		return err
	}
	k.emitRepay(ctx, who, asset, paid)
	return nil
}

// Liquidate repays an unhealthy position's debt using seized collateral.
// It clears every debt reserve the borrower
// holds in reserve-list order, seizing collateral reserve-by-reserve (also
// in list order) until each debt reserve's full compounded debt, scaled by
// that debt reserve's own liquidation bonus, is covered. The native
// compounded debt amount is compared with the collateral's base-unit value
// without applying the debt asset's price; only the collateral reserve's
// price and decimals convert the seized amount into collateral units.
func (k Keeper) Liquidate(ctx sdk.Context, liquidator, who sdk.AccAddress, receiveSToken bool) error {
	if err := k.RequireAuth(liquidator); err != nil {
		return err
	}
	if err := k.RequireNotPaused(ctx); err != nil {
		return err
	}

	position, err := k.AccountPosition(ctx, who)
	if err != nil {
		return err
	}
	if position.IsHealthy() {
		return types.ErrGoodPosition
	}

	reserves := k.GetReserveList(ctx)
	borrowerUC := k.GetUserConfiguration(ctx, who)

	for _, debtAsset := range reserves {
		debtReserve, ok := k.GetReserve(ctx, debtAsset)
		if !ok || !borrowerUC.IsBorrowing(debtReserve.Id) {
			continue
		}

		debtBalance := k.debt.Balance(ctx, debtAsset, who)
		if debtBalance.IsZero() {
			continue
		}
		debtCoeff, err := k.DebtCoeff(ctx, debtAsset)
		if err != nil {
			return err
		}
		compoundedDebt, err := types.MulInt(debtCoeff, debtBalance)
		if err != nil {
			return err
		}

		// The amount covered/seized below is reckoned against the native
		// compounded debt directly: the debt asset's price is not applied
		// here (it only gates solvency in AccountPosition), while the
		// collateral's price converts between base units and collateral.
		remainingDebtBase := compoundedDebt

		for _, collAsset := range reserves {
			if !remainingDebtBase.IsPositive() {
				break
			}
			collReserve, ok := k.GetReserve(ctx, collAsset)
			if !ok || !borrowerUC.IsUsingAsCollateral(collReserve.Id) || !collReserve.Configuration.HasLiqThreshold() {
				continue
			}

			sBal := k.sToken.Balance(ctx, collAsset, who)
			if sBal.IsZero() {
				continue
			}
			collatCoeff, err := k.CollatCoeff(ctx, collAsset)
			if err != nil {
				return err
			}
			compoundedColl, err := types.MulInt(collatCoeff, sBal)
			if err != nil {
				return err
			}
			availableBase, err := k.toBaseUnits(ctx, collAsset, collReserve, compoundedColl)
			if err != nil {
				return err
			}

			maxDebtCoveredByAvailable, err := types.PercentDiv(availableBase, debtReserve.Configuration.LiqBonus)
			if err != nil {
				return err
			}
			debtBaseCovered := remainingDebtBase
			if maxDebtCoveredByAvailable.LT(debtBaseCovered) {
				debtBaseCovered = maxDebtCoveredByAvailable
			}
			if !debtBaseCovered.IsPositive() {
				continue
			}

			seizeBase, err := types.PercentMul(debtBaseCovered, debtReserve.Configuration.LiqBonus)
			if err != nil {
				return err
			}

			feed, _ := k.GetPriceFeed(ctx, collAsset)
			price, err := k.oracle.GetPrice(ctx, feed, collAsset)
			if err != nil {
				return err
			}
			scale := pow10(collReserve.Configuration.Decimals)
			seizeUnderlying := seizeBase.Mul(scale).Quo(price)
			seizeSTokens, err := types.RecipMulInt(collatCoeff, seizeUnderlying)
			if err != nil {
				return err
			}
			if seizeSTokens.GT(sBal) {
				seizeSTokens = sBal
				seizeUnderlying = compoundedColl
			}

			if receiveSToken {
				// The liquidator's own existing debt in collAsset is
				// expected to be repaid first by the caller via a normal
				// Repay before Liquidate, since that mutation belongs to
				// the liquidator's own account, not the borrower's; this
				// step only moves the seized s-tokens to the liquidator.
				if err := k.sToken.Transfer(ctx, collAsset, who, liquidator, seizeSTokens); err != nil {
					return err
				}
			} else {
				if err := k.sToken.Burn(ctx, collAsset, who, liquidator, seizeSTokens, seizeUnderlying); err != nil {
					return err
				}
				k.SetMirroredBalance(ctx, collAsset, k.GetMirroredBalance(ctx, collAsset).Sub(seizeUnderlying))
				k.emitWithdraw(ctx, who, collAsset, liquidator, seizeUnderlying)
			}

			if k.sToken.Balance(ctx, collAsset, who).IsZero() {
				cfg := k.Configurator(ctx, who)
				cfg.SetCollateral(collReserve.Id, false)
				if err := cfg.Flush(); err != nil {
					return err
				}
				k.emitCollDisabled(ctx, who, collAsset)
			}

			remainingDebtBase = remainingDebtBase.Sub(debtBaseCovered)
			if err := k.Recalculate(ctx, collAsset); err != nil {
				return err
			}
		}

		if remainingDebtBase.IsPositive() {
			return types.ErrNotEnoughCollateral
		}

		if err := k.debt.Burn(ctx, debtAsset, who, debtBalance); err != nil {
			return err
		}
		if err := k.token.Transfer(ctx, debtAsset, liquidator, types.Addr(debtReserve.SToken), compoundedDebt); err != nil {
			return err
		}
		k.SetMirroredBalance(ctx, debtAsset, k.GetMirroredBalance(ctx, debtAsset).Add(compoundedDebt))

		cfg := k.Configurator(ctx, who)
		cfg.SetBorrowing(debtReserve.Id, false)
		if err := cfg.Flush(); err != nil {
			return err
		}
		k.emitRepay(ctx, who, debtAsset, compoundedDebt)

		if err := k.Recalculate(ctx, debtAsset); err != nil {
			return err
		}
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeLiquidation,
		sdk.NewAttribute(types.AttributeKeyLiquidator, liquidator.String()),
		sdk.NewAttribute(types.AttributeKeyBorrower, who.String()),
		sdk.NewAttribute(types.AttributeKeyReceiveSToken, strconv.FormatBool(receiveSToken)),
	))
	return nil
}

// -----------------------------------------------------------------------
// Event helpers
// -----------------------------------------------------------------------

func (k Keeper) emitDeposit(ctx sdk.Context, who sdk.AccAddress, asset string, amount math.Int) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeDeposit,
		sdk.NewAttribute(types.AttributeKeyWho, who.String()),
		sdk.NewAttribute(types.AttributeKeyAsset, asset),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
}

func (k Keeper) emitWithdraw(ctx sdk.Context, who sdk.AccAddress, asset string, to sdk.AccAddress, amount math.Int) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyWho, who.String()),
		sdk.NewAttribute(types.AttributeKeyAsset, asset),
		sdk.NewAttribute(types.AttributeKeyTo, to.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
}

func (k Keeper) emitBorrow(ctx sdk.Context, who sdk.AccAddress, asset string, amount math.Int) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeBorrow,
		sdk.NewAttribute(types.AttributeKeyWho, who.String()),
		sdk.NewAttribute(types.AttributeKeyAsset, asset),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
}

func (k Keeper) emitRepay(ctx sdk.Context, who sdk.AccAddress, asset string, amount math.Int) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeRepay,
		sdk.NewAttribute(types.AttributeKeyWho, who.String()),
		sdk.NewAttribute(types.AttributeKeyAsset, asset),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
}

func (k Keeper) emitCollEnabled(ctx sdk.Context, who sdk.AccAddress, asset string) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReserveUsedAsCollEnabled,
		sdk.NewAttribute(types.AttributeKeyWho, who.String()),
		sdk.NewAttribute(types.AttributeKeyAsset, asset),
	))
}

func (k Keeper) emitCollDisabled(ctx sdk.Context, who sdk.AccAddress, asset string) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReserveUsedAsCollDisabled,
		sdk.NewAttribute(types.AttributeKeyWho, who.String()),
		sdk.NewAttribute(types.AttributeKeyAsset, asset),
	))
}
