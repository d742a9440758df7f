package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// RequireAuth is a defensive non-empty check, not a signature check: it
// only rejects an empty address. This module defines no message server, so
// verifying that `who` signed is left to whatever invokes the keeper. It
// exists so every operation's auth step is still visible here in the
// keeper.
func (k Keeper) RequireAuth(who sdk.AccAddress) error {
	if who.Empty() {
		return types.ErrUnauthorized
	}
	return nil
}

// RequireNotPaused is step (2) of every operation.
func (k Keeper) RequireNotPaused(ctx sdk.Context) error {
	if k.IsPaused(ctx) {
		return types.ErrPaused
	}
	return nil
}

// RequirePositiveAmount is step (3), where applicable. i128::MAX is
// always treated as positive here; callers that give it special "withdraw
// all"/"repay all" meaning check for it themselves afterwards.
func RequirePositiveAmount(amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount
	}
	return nil
}

// RequireActiveReserve loads and validates a reserve is active, optionally
// also requiring it not be frozen (step 4). Returns the loaded
// reserve so callers don't re-fetch it.
func (k Keeper) RequireActiveReserve(ctx sdk.Context, asset string, requireUnfrozen bool) (types.ReserveData, error) {
	r, ok := k.GetReserve(ctx, asset)
	if !ok {
		return types.ReserveData{}, types.ErrNoReserveExistForAsset
	}
	if !r.Configuration.IsActive {
		return types.ReserveData{}, types.ErrNoActiveReserve
	}
	if requireUnfrozen && r.Configuration.IsFrozen {
		return types.ReserveData{}, types.ErrReserveFrozen
	}
	return r, nil
}

// RequireBorrowingEnabled requires borrowing_enabled == true on the
// reserve. An earlier draft of this check inverted the condition; see the
// design notes for why that was wrong and is not reproduced here.
func RequireBorrowingEnabled(r types.ReserveData) error {
	if !r.Configuration.BorrowingEnabled {
		return types.ErrBorrowingNotEnabled
	}
	return nil
}

// IsMaxAmount reports whether amount is the sentinel "all" value used by
// Withdraw (withdraw everything) and Repay (full repay).
func IsMaxAmount(amount math.Int) bool {
	return amount.Equal(types.MaxInt128())
}
