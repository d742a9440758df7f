package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// Initialize sets the module's admin, treasury, and IR params for the first
// time. It is the only mutation allowed before IsInitialized is true.
func (k Keeper) Initialize(ctx sdk.Context, admin, treasury string, irParams types.IRParams) error {
	if k.IsInitialized(ctx) {
		return types.ErrAlreadyInitialized
	}
	p := types.Params{
		Admin:    admin,
		Treasury: treasury,
		IRParams: irParams,
	}
	return k.SetParams(ctx, p)
}

// requireAdmin loads params and fails unless the module is initialized and
// caller matches the stored admin identity.
func (k Keeper) requireAdmin(ctx sdk.Context, caller sdk.AccAddress) (types.Params, error) {
	if !k.IsInitialized(ctx) {
		return types.Params{}, types.ErrUninitialized
	}
	p := k.GetParams(ctx)
	if caller.Empty() || p.Admin != caller.String() {
		return types.Params{}, types.ErrUnauthorized
	}
	return p, nil
}

// InitReserve registers a new reserve for asset, assigning it the next
// available reserve id. The asset must not already have a reserve.
func (k Keeper) InitReserve(ctx sdk.Context, admin sdk.AccAddress, asset, sToken, debtToken, priceFeed string, cfg types.ReserveConfiguration) error {
	if _, err := k.requireAdmin(ctx, admin); err != nil {
		return err
	}
	if _, ok := k.GetReserve(ctx, asset); ok {
		return types.ErrReserveAlreadyInitialized
	}

	id, err := k.NextReserveId(ctx)
	if err != nil {
		return err
	}
	r := types.NewReserveData(id, asset, sToken, debtToken, cfg, ctx.BlockTime().Unix())
	k.SetReserve(ctx, asset, r)
	k.SetPriceFeed(ctx, asset, priceFeed)
	return nil
}

// SetReserveStatus flips a reserve's active/frozen flags. Freezing a
// reserve blocks new deposits and borrows but still allows withdraw, repay,
// and liquidation — only Deposit and Borrow ever check requireUnfrozen.
func (k Keeper) SetReserveStatus(ctx sdk.Context, admin sdk.AccAddress, asset string, isActive, isFrozen bool) error {
	if _, err := k.requireAdmin(ctx, admin); err != nil {
		return err
	}
	r, ok := k.GetReserve(ctx, asset)
	if !ok {
		return types.ErrNoReserveExistForAsset
	}
	r.Configuration.IsActive = isActive
	r.Configuration.IsFrozen = isFrozen
	k.SetReserve(ctx, asset, r)
	return nil
}

// EnableBorrowingOnReserve flips the borrowing_enabled flag on a reserve.
func (k Keeper) EnableBorrowingOnReserve(ctx sdk.Context, admin sdk.AccAddress, asset string, enabled bool) error {
	if _, err := k.requireAdmin(ctx, admin); err != nil {
		return err
	}
	r, ok := k.GetReserve(ctx, asset)
	if !ok {
		return types.ErrNoReserveExistForAsset
	}
	r.Configuration.BorrowingEnabled = enabled
	k.SetReserve(ctx, asset, r)
	return nil
}

// ConfigureReserveCollateral sets a reserve's discount (used in
// account-position valuation), liquidation bonus, utilization cap and
// liquidity cap.
func (k Keeper) ConfigureReserveCollateral(ctx sdk.Context, admin sdk.AccAddress, asset string, discount, liqBonus, utilCap types.Percent, liqCap math.Int) error {
	if _, err := k.requireAdmin(ctx, admin); err != nil {
		return err
	}
	r, ok := k.GetReserve(ctx, asset)
	if !ok {
		return types.ErrNoReserveExistForAsset
	}
	r.Configuration.Discount = discount
	r.Configuration.LiqBonus = liqBonus
	r.Configuration.UtilCap = utilCap
	r.Configuration.LiqCap = liqCap
	k.SetReserve(ctx, asset, r)
	return nil
}

// SetPriceFeedAdmin reassigns the price-feed identity for asset.
func (k Keeper) SetPriceFeedAdmin(ctx sdk.Context, admin sdk.AccAddress, asset, feed string) error {
	if _, err := k.requireAdmin(ctx, admin); err != nil {
		return err
	}
	if _, ok := k.GetReserve(ctx, asset); !ok {
		return types.ErrNoReserveExistForAsset
	}
	k.SetPriceFeed(ctx, asset, feed)
	return nil
}

// SetIRParams replaces the module-wide interest-rate curve parameters.
func (k Keeper) SetIRParams(ctx sdk.Context, admin sdk.AccAddress, irParams types.IRParams) error {
	p, err := k.requireAdmin(ctx, admin)
	if err != nil {
		return err
	}
	if err := irParams.Validate(); err != nil {
		return err
	}
	p.IRParams = irParams
	return k.SetParams(ctx, p)
}

// SetPaused flips the module-wide pause flag checked by every operation's
// RequireNotPaused precondition.
func (k Keeper) SetPaused(ctx sdk.Context, admin sdk.AccAddress, paused bool) error {
	p, err := k.requireAdmin(ctx, admin)
	if err != nil {
		return err
	}
	p.Paused = paused
	return k.SetParams(ctx, p)
}
