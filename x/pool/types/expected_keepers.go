package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TokenKeeper is the narrow interface onto the underlying fungible asset
// contract. The pool core never touches balances directly; every
// transfer of the underlying goes through this collaborator.
type TokenKeeper interface {
	Transfer(ctx sdk.Context, asset string, from, to sdk.AccAddress, amount math.Int) error
	Balance(ctx sdk.Context, asset string, addr sdk.AccAddress) math.Int
}

// STokenKeeper is the narrow interface onto a reserve's collateral-receipt
// contract.
type STokenKeeper interface {
	Mint(ctx sdk.Context, asset string, to sdk.AccAddress, amount math.Int) error
	// Burn burns amountSToken s-tokens from `from` and has the s-token
	// collaborator transfer amountUnderlying of the underlying asset to
	// `to` — a single collaborator call, matching "the s-token
	// collaborator performs the underlying transfer to `to`".
	Burn(ctx sdk.Context, asset string, from, to sdk.AccAddress, amountSToken, amountUnderlying math.Int) error
	TransferUnderlyingTo(ctx sdk.Context, asset string, to sdk.AccAddress, amount math.Int) error
	Balance(ctx sdk.Context, asset string, addr sdk.AccAddress) math.Int
	TotalSupply(ctx sdk.Context, asset string) math.Int
	Decimals(ctx sdk.Context, asset string) uint8
	// Transfer moves s-tokens between holders without touching the
	// underlying — used by Liquidate's receive_s_token=true path.
	Transfer(ctx sdk.Context, asset string, from, to sdk.AccAddress, amount math.Int) error
}

// DebtTokenKeeper is the narrow interface onto a reserve's debt-receipt
// contract.
type DebtTokenKeeper interface {
	Mint(ctx sdk.Context, asset string, to sdk.AccAddress, amount math.Int) error
	Burn(ctx sdk.Context, asset string, from sdk.AccAddress, amount math.Int) error
	Balance(ctx sdk.Context, asset string, addr sdk.AccAddress) math.Int
	TotalSupply(ctx sdk.Context, asset string) math.Int
}

// PriceOracleKeeper is the narrow interface onto the price feed.
// GetPrice returns the asset's price in the pool's base unit.
type PriceOracleKeeper interface {
	GetPrice(ctx sdk.Context, feed string, asset string) (math.Int, error)
}
